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
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/sage-x-project/go-edhoc/cbor"
	"github.com/sage-x-project/go-edhoc/cose"
	"github.com/sage-x-project/go-edhoc/internal/aesccm"
)

// Each state value below may drive exactly one transition. Every
// transition method checks and sets a used flag as its first act. A
// transition that fails still consumes the state: there is no retry on
// the same value.

// Msg1Sender is the Initiator's starting state.
type Msg1Sender struct {
	used bool
	keys *SessionKeys
}

// NewMsg1Sender constructs the Initiator's starting state from its
// session keys (ephemeral ECDH keypair, connection identifier, and
// long-term Ed25519 keypair, registered together here since the one
// supported authentication method always signs).
func NewMsg1Sender(keys *SessionKeys) *Msg1Sender {
	return &Msg1Sender{keys: keys}
}

// GenerateMessage1 emits message_1 = (METHOD_CORR, SUITES_I, G_X, C_I) and
// transitions to Msg2Receiver.
func (m *Msg1Sender) GenerateMessage1() ([]byte, *Msg2Receiver, error) {
	if m.used {
		return nil, nil, ErrStateConsumed
	}
	m.used = true

	msg1Bytes, err := encodeMessage1(SupportedSuite.MethodCorr, SupportedSuite.SuiteID, m.keys.EphemeralPublic, m.keys.ConnID)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_1: %w", err)
	}
	return msg1Bytes, &Msg2Receiver{keys: m.keys, message1Bytes: msg1Bytes}, nil
}

// Msg2Receiver awaits message_2 from the Responder.
type Msg2Receiver struct {
	used          bool
	keys          *SessionKeys
	message1Bytes []byte
}

// HandleMessage2 verifies the Responder's signature over message_2 using
// peerPublic (resolved by the caller, e.g. via the id_cred_v kid carried
// inside the just-decrypted plaintext) and transitions to Msg3Sender.
func (m *Msg2Receiver) HandleMessage2(msg2Bytes []byte, peerPublic ed25519.PublicKey) (*Msg3Sender, error) {
	if m.used {
		return nil, ErrStateConsumed
	}
	m.used = true

	msg2, err := decodeMessage2(msg2Bytes)
	if err != nil {
		return nil, err
	}

	gXY, err := x25519ECDH(m.keys.EphemeralSecret, msg2.gY)
	if err != nil {
		return nil, fmt.Errorf("edhoc: handle_message_2: %w", err)
	}
	defer zeroBytes(gXY)
	prk2e := hkdfExtract(nil, gXY)

	data2, err := cbor.EncodeSequence(msg2.gY, msg2.cR)
	if err != nil {
		return nil, fmt.Errorf("edhoc: handle_message_2: %w", err)
	}
	th2 := computeTH2(m.message1Bytes, data2)

	ks, err := keystream(prk2e, th2, len(msg2.ciphertext2))
	if err != nil {
		return nil, fmt.Errorf("edhoc: handle_message_2: %w", err)
	}
	plaintext2 := xorBytes(msg2.ciphertext2, ks)

	idCredV, signatureV, err := decodePlaintext(plaintext2)
	if err != nil {
		return nil, err
	}
	credV, err := cose.SerializeCOSEKey(msg2.gY, msg2.cR)
	if err != nil {
		return nil, fmt.Errorf("edhoc: handle_message_2: %w", err)
	}
	verifier := ed25519Verifier{key: peerPublic}
	if err := verifier.Verify(idCredV, th2, credV, signatureV); err != nil {
		return nil, err
	}

	next := &Msg3Sender{
		keys:        m.keys,
		th2:         th2,
		prk3e2m:     prk2e,
		peerConnID:  msg2.cR,
		ciphertext2: msg2.ciphertext2,
	}
	return next, nil
}

// Msg3Sender holds everything needed to produce message_3 and the
// derived OSCORE context.
type Msg3Sender struct {
	used        bool
	keys        *SessionKeys
	th2         []byte
	prk3e2m     []byte
	peerConnID  []byte
	ciphertext2 []byte
}

// GenerateMessage3 signs, AEAD-encrypts, and emits message_3 = (C_R,
// CIPHERTEXT_3), then derives and returns the OSCORE Master Secret and
// Master Salt. This is the Initiator's terminal transition.
func (m *Msg3Sender) GenerateMessage3() (msg3Bytes, masterSecret, masterSalt []byte, err error) {
	if m.used {
		return nil, nil, nil, ErrStateConsumed
	}
	m.used = true
	defer zeroBytes(m.prk3e2m)

	data3 := []byte{}
	th3 := computeTH3(m.th2, m.ciphertext2, data3)

	idCredU, err := cose.BuildIDCredX(m.keys.ConnID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}
	credU, err := cose.SerializeCOSEKey(m.keys.EphemeralPublic, m.keys.ConnID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}
	signer := ed25519Signer{key: m.keys.SigningKey}
	signatureU, err := signer.Sign(idCredU, th3, credU)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}
	plaintext3, err := encodePlaintext(idCredU, signatureU)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}

	key, iv, err := deriveAEADKeyIV(m.prk3e2m, th3)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}
	defer zeroBytes(key)
	aad, err := cose.BuildAD(th3)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}
	aead, err := aesccm.New(key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}
	ciphertext3, err := aead.Seal(plaintext3, iv, aad)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}

	msg3Bytes, err = encodeMessage3(m.peerConnID, ciphertext3)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}

	th4 := computeTH4(th3, ciphertext3)
	masterSecret, masterSalt, err = deriveMasterSecretAndSalt(m.prk3e2m, th4)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("edhoc: generate_message_3: %w", err)
	}
	return msg3Bytes, masterSecret, masterSalt, nil
}

// Msg1Receiver is the Responder's starting state.
type Msg1Receiver struct {
	used bool
	keys *SessionKeys
}

// NewMsg1Receiver constructs the Responder's starting state.
func NewMsg1Receiver(keys *SessionKeys) *Msg1Receiver {
	return &Msg1Receiver{keys: keys}
}

// HandleMessage1 parses message_1, rejects an unsupported method/suite
// with a peer-visible error, and transitions to Msg2Sender.
func (m *Msg1Receiver) HandleMessage1(msg1Bytes []byte) (*Msg2Sender, error) {
	if m.used {
		return nil, ErrStateConsumed
	}
	m.used = true

	msg1, err := decodeMessage1(msg1Bytes)
	if err != nil {
		return nil, err
	}
	if msg1.methodCorr != SupportedSuite.MethodCorr || msg1.suiteID != SupportedSuite.SuiteID {
		return nil, NewUnsupportedSuiteError()
	}

	return &Msg2Sender{
		keys:          m.keys,
		message1Bytes: msg1Bytes,
		peerEphPublic: msg1.gX,
		peerConnID:    msg1.cI,
	}, nil
}

// Msg2Sender holds the Responder's view after message_1.
type Msg2Sender struct {
	used          bool
	keys          *SessionKeys
	message1Bytes []byte
	peerEphPublic []byte
	peerConnID    []byte
}

// GenerateMessage2 computes G_XY, signs, encrypts, and emits message_2 =
// (G_Y, C_R, CIPHERTEXT_2), transitioning to Msg3Receiver.
func (m *Msg2Sender) GenerateMessage2() ([]byte, *Msg3Receiver, error) {
	if m.used {
		return nil, nil, ErrStateConsumed
	}
	m.used = true

	gXY, err := x25519ECDH(m.keys.EphemeralSecret, m.peerEphPublic)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}
	defer zeroBytes(gXY)
	prk2e := hkdfExtract(nil, gXY)

	data2, err := cbor.EncodeSequence(m.keys.EphemeralPublic, m.keys.ConnID)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}
	th2 := computeTH2(m.message1Bytes, data2)

	idCredV, err := cose.BuildIDCredX(m.keys.ConnID)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}
	credV, err := cose.SerializeCOSEKey(m.keys.EphemeralPublic, m.keys.ConnID)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}
	signer := ed25519Signer{key: m.keys.SigningKey}
	signatureV, err := signer.Sign(idCredV, th2, credV)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}
	plaintext2, err := encodePlaintext(idCredV, signatureV)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}

	ks, err := keystream(prk2e, th2, len(plaintext2))
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}
	ciphertext2 := xorBytes(plaintext2, ks)

	msg2Bytes, err := encodeMessage2(m.keys.EphemeralPublic, m.keys.ConnID, ciphertext2)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: generate_message_2: %w", err)
	}

	next := &Msg3Receiver{
		prk3e2m:       prk2e,
		th2:           th2,
		ciphertext2:   ciphertext2,
		ownConnID:     m.keys.ConnID,
		peerEphPublic: m.peerEphPublic,
		peerConnID:    m.peerConnID,
	}
	return msg2Bytes, next, nil
}

// Msg3Receiver awaits message_3 from the Initiator.
type Msg3Receiver struct {
	used          bool
	prk3e2m       []byte
	th2           []byte
	ciphertext2   []byte
	ownConnID     []byte
	peerEphPublic []byte
	peerConnID    []byte
}

// HandleMessage3 verifies the C_R echo, AEAD-decrypts CIPHERTEXT_3,
// verifies the Initiator's signature using peerPublic, and derives the
// OSCORE Master Secret and Master Salt. This is the Responder's terminal
// transition.
func (m *Msg3Receiver) HandleMessage3(msg3Bytes []byte, peerPublic ed25519.PublicKey) (masterSecret, masterSalt []byte, err error) {
	if m.used {
		return nil, nil, ErrStateConsumed
	}
	m.used = true
	defer zeroBytes(m.prk3e2m)

	msg3, err := decodeMessage3(msg3Bytes)
	if err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(msg3.cR, m.ownConnID) {
		return nil, nil, fmt.Errorf("%w: %w", ErrConnIDMismatch, NewProtocolError("connection identifier mismatch"))
	}

	data3 := []byte{}
	th3 := computeTH3(m.th2, m.ciphertext2, data3)

	key, iv, err := deriveAEADKeyIV(m.prk3e2m, th3)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: handle_message_3: %w", err)
	}
	defer zeroBytes(key)
	aad, err := cose.BuildAD(th3)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: handle_message_3: %w", err)
	}
	aead, err := aesccm.New(key)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: handle_message_3: %w", err)
	}
	plaintext3, err := aead.Open(msg3.ciphertext3, iv, aad)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAEADAuthFailed, err)
	}

	idCredU, signatureU, err := decodePlaintext(plaintext3)
	if err != nil {
		return nil, nil, err
	}
	credU, err := cose.SerializeCOSEKey(m.peerEphPublic, m.peerConnID)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: handle_message_3: %w", err)
	}
	verifier := ed25519Verifier{key: peerPublic}
	if err := verifier.Verify(idCredU, th3, credU, signatureU); err != nil {
		return nil, nil, err
	}

	th4 := computeTH4(th3, msg3.ciphertext3)
	masterSecret, masterSalt, err = deriveMasterSecretAndSalt(m.prk3e2m, th4)
	if err != nil {
		return nil, nil, fmt.Errorf("edhoc: handle_message_3: %w", err)
	}
	return masterSecret, masterSalt, nil
}
