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

// CoseKey is the decoded form of a COSE_Key (OKP) map: {1: kty, -1: crv,
// -2: x, 2: kid}. SerializeCOSEKey always writes kty=OKP and crv=X25519;
// DeserializeCOSEKey reports the Kty and Crv values the buffer carries
// without checking them.
type CoseKey struct {
	Crv int64
	X   []byte
	Kty int64
	Kid []byte
}

const (
	ktyOKP    = 1
	crvX25519 = 4
)

// SerializeCOSEKey builds the COSE_Key map {1: 1 (kty=OKP), -1: 4
// (crv=X25519), -2: x, 2: kid}, by encoding the 8-field array
// (-1, 4, -2, x, 1, 1, 2, kid) and flipping the array header into a map
// header. The canonical field order is therefore crv, x, kty, kid.
func SerializeCOSEKey(x, kid []byte) ([]byte, error) {
	arr, err := cbor.EncodeTuple(int64(-1), int64(crvX25519), int64(-2), x, int64(1), int64(ktyOKP), int64(2), kid)
	if err != nil {
		return nil, fmt.Errorf("cose: serialize cose_key: %w", err)
	}
	out, err := cbor.ArrayToMap(arr)
	if err != nil {
		return nil, fmt.Errorf("cose: serialize cose_key: %w", err)
	}
	return out, nil
}

// DeserializeCOSEKey is the inverse of SerializeCOSEKey: it flips the map
// header back to an array header and decodes the four (label, value)
// pairs in their fixed positions.
func DeserializeCOSEKey(data []byte) (CoseKey, error) {
	if err := requireMapHeader(data); err != nil {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: %w", err)
	}
	arr, err := cbor.MapToArray(data)
	if err != nil {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: %w", err)
	}
	items, err := cbor.DecodeTuple(arr)
	if err != nil {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: %w", err)
	}
	if len(items) != 8 {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: expected 8 fields, got %d", len(items))
	}
	x, ok := items[3].([]byte)
	if !ok {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: field -2 (x) is not a byte string")
	}
	kid, ok := items[7].([]byte)
	if !ok {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: field 2 (kid) is not a byte string")
	}
	crv, err := toInt64(items[1])
	if err != nil {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: field -1 (crv): %w", err)
	}
	kty, err := toInt64(items[5])
	if err != nil {
		return CoseKey{}, fmt.Errorf("cose: deserialize cose_key: field 1 (kty): %w", err)
	}
	return CoseKey{Crv: crv, X: x, Kty: kty, Kid: kid}, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("not an integer: %T", v)
	}
}
