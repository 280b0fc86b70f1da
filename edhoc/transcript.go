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

package edhoc

import "crypto/sha256"

// transcriptHash computes SHA-256 over the concatenation of the byte
// segments supplied, in order. message_1 is hashed as received; data_2 is
// the canonical CBOR encoding of G_Y and C_R, which the receiver of
// message_2 rebuilds from the decoded fields; CIPHERTEXT_2 and
// CIPHERTEXT_3 are hashed as their byte-string contents, without the CBOR
// byte-string header.
func transcriptHash(segments ...[]byte) []byte {
	h := sha256.New()
	for _, s := range segments {
		h.Write(s)
	}
	return h.Sum(nil)
}

// computeTH2 = H(message_1 || data_2), where data_2 = CBOR(G_Y) || CBOR(C_R).
func computeTH2(message1, data2 []byte) []byte {
	return transcriptHash(message1, data2)
}

// computeTH3 = H(TH_2 || CIPHERTEXT_2 || data_3), where data_3 in this
// profile is empty: C_R, although message_3 carries it, is not hashed
// into TH_3.
func computeTH3(th2, ciphertext2, data3 []byte) []byte {
	return transcriptHash(th2, ciphertext2, data3)
}

// computeTH4 = H(TH_3 || CIPHERTEXT_3).
func computeTH4(th3, ciphertext3 []byte) []byte {
	return transcriptHash(th3, ciphertext3)
}
