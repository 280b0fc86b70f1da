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

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"fmt"

	"github.com/sage-x-project/go-edhoc/cose"
)

// Signer signs a COSE Sig_structure built from (idCredX, thI, credX).
// The state machine always uses the ed25519Signer built from
// SessionKeys.SigningKey; it does not accept a caller-supplied Signer.
type Signer interface {
	Sign(idCredX, thI, credX []byte) ([]byte, error)
}

// Verifier checks a signature over a COSE Sig_structure built from
// (idCredX, thI, credX).
type Verifier interface {
	Verify(idCredX, thI, credX, signature []byte) error
}

type ed25519Signer struct {
	key ed25519.PrivateKey
}

func (s ed25519Signer) Sign(idCredX, thI, credX []byte) ([]byte, error) {
	return cose.Sign(idCredX, thI, credX, s.key)
}

type ed25519Verifier struct {
	key ed25519.PublicKey
}

func (v ed25519Verifier) Verify(idCredX, thI, credX, signature []byte) error {
	if err := cose.Verify(idCredX, thI, credX, v.key, signature); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}

// x25519ECDH computes the X25519 shared secret G_XY = x25519(ourSecret,
// peerPublic).
func x25519ECDH(ourSecret, peerPublic []byte) ([]byte, error) {
	curve := ecdh.X25519()
	priv, err := curve.NewPrivateKey(ourSecret)
	if err != nil {
		return nil, fmt.Errorf("edhoc: x25519: invalid private key: %w", err)
	}
	pub, err := curve.NewPublicKey(peerPublic)
	if err != nil {
		return nil, fmt.Errorf("edhoc: x25519: invalid public key: %w", err)
	}
	shared, err := priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("edhoc: x25519: %w", err)
	}
	return shared, nil
}
