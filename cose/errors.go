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

import "errors"

var (
	// ErrSignatureInvalid is returned by Verify when the signature does not
	// match the reconstructed Sig_structure under the given public key.
	ErrSignatureInvalid = errors.New("cose: signature verification failed")

	// ErrNotAMap is returned when deserializing a buffer that does not
	// carry a CBOR map header at the offset expected.
	ErrNotAMap = errors.New("cose: expected a CBOR map")

	// ErrKeyNotFound is returned by GetKID when the id_cred_x map's label
	// is not kid (4). DeserializeCOSEKey reads its fields by position and
	// does not check their labels.
	ErrKeyNotFound = errors.New("cose: required map label not found")
)

// cborMajorMap is the CBOR major type 5 (map) marker in the top three bits
// of the initial byte, per RFC 8949 section 3.1.
const cborMajorMap = 5

// requireMapHeader reports ErrNotAMap if data's leading byte is not a CBOR
// map header, before handing the buffer to cbor.MapToArray's own
// arity/truncation checks.
func requireMapHeader(data []byte) error {
	if len(data) == 0 || data[0]>>5 != cborMajorMap {
		return ErrNotAMap
	}
	return nil
}
