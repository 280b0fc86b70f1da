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

// BuildKDFContext encodes a COSE_KDF_Context: (algorithmID, PartyUInfo,
// PartyVInfo, SuppPubInfo), where PartyUInfo/PartyVInfo are each the
// three-field null placeholder struct this EDHOC profile always uses, and
// SuppPubInfo is (keyDataLength, empty protected header, other). Callers
// pass the key length in bits, e.g. 8*len(key) for a byte-oriented key.
func BuildKDFContext(algorithmID string, keyDataLength uint64, other []byte) ([]byte, error) {
	partyInfo := []interface{}{nil, nil, nil}
	suppPubInfo := []interface{}{keyDataLength, []byte{}, other}
	out, err := cbor.EncodeTuple(algorithmID, partyInfo, partyInfo, suppPubInfo)
	if err != nil {
		return nil, fmt.Errorf("cose: build kdf context: %w", err)
	}
	return out, nil
}
