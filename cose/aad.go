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

// BuildAD encodes the Encrypt0 associated-data structure ("Encrypt0",
// empty external_aad, thI) used as AEAD associated data for CIPHERTEXT_3.
func BuildAD(thI []byte) ([]byte, error) {
	out, err := cbor.EncodeTuple("Encrypt0", []byte{}, thI)
	if err != nil {
		return nil, fmt.Errorf("cose: build ad: %w", err)
	}
	return out, nil
}
