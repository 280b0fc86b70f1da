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

// Package cose implements the small slice of COSE (RFC 8152) that EDHOC
// needs: the Sig_structure fed to Ed25519, the COSE_KDF_Context fed to
// HKDF-Expand, COSE_Key (OKP) serialization, the id_cred_x header map, and
// the Encrypt0 associated-data structure. It builds on package cbor for
// wire encoding.
package cose

import (
	"crypto/ed25519"
	"fmt"

	"github.com/sage-x-project/go-edhoc/cbor"
)

// BuildToBeSigned returns the CBOR encoding of the COSE Sig_structure
// ("Signature1", id_cred_x, th_i, cred_x), with the three byte-string
// fields wrapped as CBOR byte strings.
func BuildToBeSigned(idCredX, thI, credX []byte) ([]byte, error) {
	out, err := cbor.EncodeTuple("Signature1", idCredX, thI, credX)
	if err != nil {
		return nil, fmt.Errorf("cose: build to_be_signed: %w", err)
	}
	return out, nil
}

// Sign computes the Ed25519 signature over BuildToBeSigned(idCredX, thI,
// credX) using a 64-byte keypair (32-byte seed/private half || 32-byte
// public half, the stdlib ed25519.PrivateKey layout).
func Sign(idCredX, thI, credX []byte, keypair ed25519.PrivateKey) ([]byte, error) {
	if len(keypair) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("cose: sign: keypair must be %d bytes, got %d", ed25519.PrivateKeySize, len(keypair))
	}
	tbs, err := BuildToBeSigned(idCredX, thI, credX)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(keypair, tbs), nil
}

// Verify checks an Ed25519 signature over BuildToBeSigned(idCredX, thI,
// credX) against a 32-byte public key.
func Verify(idCredX, thI, credX []byte, publicKey ed25519.PublicKey, signature []byte) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("cose: verify: public key must be %d bytes, got %d", ed25519.PublicKeySize, len(publicKey))
	}
	tbs, err := BuildToBeSigned(idCredX, thI, credX)
	if err != nil {
		return err
	}
	if !ed25519.Verify(publicKey, tbs, signature) {
		return ErrSignatureInvalid
	}
	return nil
}
