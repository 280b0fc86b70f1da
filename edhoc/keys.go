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

import "crypto/ed25519"

// SessionKeys bundles a party's ephemeral X25519 keypair, optional
// long-term Ed25519 authentication keypair, and connection identifier.
// Callers construct one of these per session and pass it to the
// corresponding Msg1Sender/Msg1Receiver constructor.
type SessionKeys struct {
	// ConnID is this party's connection identifier, echoed by the peer.
	ConnID []byte

	// EphemeralSecret is the 32-byte X25519 private scalar.
	EphemeralSecret []byte
	// EphemeralPublic is the 32-byte X25519 public key derived from
	// EphemeralSecret, supplied by the caller alongside it. This package
	// never generates key material itself.
	EphemeralPublic []byte

	// SigningKey is this party's long-term Ed25519 keypair (64 bytes:
	// 32-byte seed || 32-byte public), used to sign this party's
	// Sig_structure. May be nil for raw-public-key-only deployments
	// that never sign locally, though the one authenticated suite this
	// package implements always needs it.
	SigningKey ed25519.PrivateKey
}

// Destroy zeroes the secret material held by k. Safe to call multiple
// times.
func (k *SessionKeys) Destroy() {
	zeroBytes(k.EphemeralSecret)
	zeroBytes(k.SigningKey)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
