// go-edhoc - EDHOC key establishment and OSCORE context derivation
// Copyright (C) 2026 go-edhoc authors
//
// go-edhoc is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-edhoc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-edhoc. If not, see <https://www.gnu.org/licenses/>.

package cose

import (
	"fmt"

	"github.com/sage-x-project/go-edhoc/cbor"
)

const idCredXKidLabel = 4

// BuildIDCredX produces the id_cred_x header map {4: kid} by encoding the
// array (4, kid) and flipping its header into a one-entry map.
func BuildIDCredX(kid []byte) ([]byte, error) {
	arr, err := cbor.EncodeTuple(int64(idCredXKidLabel), kid)
	if err != nil {
		return nil, fmt.Errorf("cose: build id_cred_x: %w", err)
	}
	out, err := cbor.ArrayToMap(arr)
	if err != nil {
		return nil, fmt.Errorf("cose: build id_cred_x: %w", err)
	}
	return out, nil
}

// GetKID extracts the kid value from an id_cred_x map built by BuildIDCredX.
func GetKID(idCredX []byte) ([]byte, error) {
	if err := requireMapHeader(idCredX); err != nil {
		return nil, fmt.Errorf("cose: get_kid: %w", err)
	}
	arr, err := cbor.MapToArray(idCredX)
	if err != nil {
		return nil, fmt.Errorf("cose: get_kid: %w", err)
	}
	items, err := cbor.DecodeTuple(arr)
	if err != nil {
		return nil, fmt.Errorf("cose: get_kid: %w", err)
	}
	if len(items) != 2 {
		return nil, fmt.Errorf("cose: get_kid: expected 2 fields, got %d", len(items))
	}
	label, err := toInt64(items[0])
	if err != nil {
		return nil, fmt.Errorf("cose: get_kid: label: %w", err)
	}
	if label != idCredXKidLabel {
		return nil, fmt.Errorf("%w: label %d, expected %d", ErrKeyNotFound, label, idCredXKidLabel)
	}
	kid, ok := items[1].([]byte)
	if !ok {
		return nil, fmt.Errorf("cose: get_kid: kid field is not a byte string")
	}
	return kid, nil
}
