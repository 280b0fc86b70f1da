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
	"crypto/ecdh"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/go-edhoc/internal/testlog"
)

// uEphemeralSecret and vEphemeralSecret are the same values cmd/edhoc-demo
// uses for Party U and Party V. Connection identifiers are fixed byte
// literals here (rather than generated, as cmd/edhoc-demo does) so test
// failures are reproducible across runs.
var (
	uEphemeralSecret = []byte{
		144, 115, 162, 206, 225, 72, 94, 30, 253, 17, 9, 171, 183, 84, 94, 17,
		170, 82, 95, 72, 77, 44, 124, 143, 102, 139, 156, 120, 63, 2, 27, 70,
	}
	uConnID = []byte("Party U")

	vEphemeralSecret = []byte{
		16, 165, 169, 23, 227, 139, 247, 13, 53, 60, 173, 235, 46, 22, 199,
		69, 54, 240, 59, 183, 80, 23, 70, 121, 195, 57, 176, 97, 255, 171,
		154, 93,
	}
	vConnID = []byte("Party V")
)

func ephemeralPublic(t *testing.T, secret []byte) []byte {
	t.Helper()
	priv, err := ecdh.X25519().NewPrivateKey(secret)
	require.NoError(t, err)
	return priv.PublicKey().Bytes()
}

func newSessionKeys(t *testing.T, ephemeralSecret, connID []byte, signing ed25519.PrivateKey) *SessionKeys {
	t.Helper()
	return &SessionKeys{
		ConnID:          connID,
		EphemeralSecret: append([]byte{}, ephemeralSecret...),
		EphemeralPublic: ephemeralPublic(t, ephemeralSecret),
		SigningKey:      signing,
	}
}

// runHandshake drives a full Initiator/Responder exchange and returns both
// sides' derived (master_secret, master_salt), along with every wire
// message produced, for tests that need to tamper with them.
func runHandshake(t *testing.T) (uSecret, uSalt, vSecret, vSalt []byte, msg1, msg2, msg3 []byte) {
	t.Helper()

	_, uPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, vPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	return runHandshakeWithKeys(t, uPriv, vPriv)
}

// runHandshakeWithKeys is runHandshake with caller-chosen signing keys, so
// that every input of the exchange can be held fixed.
func runHandshakeWithKeys(t *testing.T, uPriv, vPriv ed25519.PrivateKey) (uSecret, uSalt, vSecret, vSalt []byte, msg1, msg2, msg3 []byte) {
	t.Helper()

	uPub := uPriv.Public().(ed25519.PublicKey)
	vPub := vPriv.Public().(ed25519.PublicKey)

	uKeys := newSessionKeys(t, uEphemeralSecret, uConnID, uPriv)
	vKeys := newSessionKeys(t, vEphemeralSecret, vConnID, vPriv)

	msg1Sender := NewMsg1Sender(uKeys)
	msg1, msg2Receiver, err := msg1Sender.GenerateMessage1()
	require.NoError(t, err)

	msg1Receiver := NewMsg1Receiver(vKeys)
	msg2Sender, err := msg1Receiver.HandleMessage1(msg1)
	require.NoError(t, err)

	msg2, msg3Receiver, err := msg2Sender.GenerateMessage2()
	require.NoError(t, err)

	msg3Sender, err := msg2Receiver.HandleMessage2(msg2, vPub)
	require.NoError(t, err)

	msg3, uSecret, uSalt, err = msg3Sender.GenerateMessage3()
	require.NoError(t, err)

	vSecret, vSalt, err = msg3Receiver.HandleMessage3(msg3, uPub)
	require.NoError(t, err)

	return uSecret, uSalt, vSecret, vSalt, msg1, msg2, msg3
}

func TestFullHandshake_MatchingMasterSecretAndSalt(t *testing.T) {
	testlog.Section(t, "1.1", "Full EDHOC handshake round trip")

	uSecret, uSalt, vSecret, vSalt, _, _, _ := runHandshake(t)

	require.Len(t, uSecret, 16)
	require.Len(t, uSalt, 8)
	assert.Equal(t, uSecret, vSecret)
	assert.Equal(t, uSalt, vSalt)
	testlog.Success(t, "Initiator and Responder derived identical master secret and salt")
	testlog.Detail(t, "master secret length: %d bytes", len(uSecret))
	testlog.Detail(t, "master salt length: %d bytes", len(uSalt))
}

func TestFullHandshake_StableAcrossRepeatedRunsWithSameInputs(t *testing.T) {
	uPriv := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x01}, ed25519.SeedSize))
	vPriv := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x02}, ed25519.SeedSize))

	u1Secret, u1Salt, _, _, _, _, _ := runHandshakeWithKeys(t, uPriv, vPriv)
	u2Secret, u2Salt, _, _, _, _, _ := runHandshakeWithKeys(t, uPriv, vPriv)
	assert.Len(t, u1Secret, 16)
	assert.Len(t, u1Salt, 8)
	assert.Equal(t, u1Secret, u2Secret)
	assert.Equal(t, u1Salt, u2Salt)
}

func TestTamperDetection_Message2(t *testing.T) {
	testlog.Section(t, "2.1", "Tamper detection on message_2")

	_, uPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	vPub, vPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	uKeys := newSessionKeys(t, uEphemeralSecret, uConnID, uPriv)
	vKeys := newSessionKeys(t, vEphemeralSecret, vConnID, vPriv)

	msg1Sender := NewMsg1Sender(uKeys)
	msg1, msg2Receiver, err := msg1Sender.GenerateMessage1()
	require.NoError(t, err)

	msg1Receiver := NewMsg1Receiver(vKeys)
	msg2Sender, err := msg1Receiver.HandleMessage1(msg1)
	require.NoError(t, err)

	msg2, _, err := msg2Sender.GenerateMessage2()
	require.NoError(t, err)

	tampered := append([]byte{}, msg2...)
	tampered[len(tampered)-1] ^= 0x01

	_, err = msg2Receiver.HandleMessage2(tampered, vPub)
	assert.Error(t, err)
	testlog.Success(t, "tampered message_2 rejected")
}

func TestTamperDetection_Message3(t *testing.T) {
	testlog.Section(t, "2.2", "Tamper detection on message_3")

	uPub, uPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	vPub, vPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	uKeys := newSessionKeys(t, uEphemeralSecret, uConnID, uPriv)
	vKeys := newSessionKeys(t, vEphemeralSecret, vConnID, vPriv)

	msg1Sender := NewMsg1Sender(uKeys)
	msg1, msg2Receiver, err := msg1Sender.GenerateMessage1()
	require.NoError(t, err)

	msg1Receiver := NewMsg1Receiver(vKeys)
	msg2Sender, err := msg1Receiver.HandleMessage1(msg1)
	require.NoError(t, err)

	msg2, msg3Receiver, err := msg2Sender.GenerateMessage2()
	require.NoError(t, err)

	msg3Sender, err := msg2Receiver.HandleMessage2(msg2, vPub)
	require.NoError(t, err)

	msg3, _, _, err := msg3Sender.GenerateMessage3()
	require.NoError(t, err)

	tampered := append([]byte{}, msg3...)
	tampered[len(tampered)-1] ^= 0x01

	_, _, err = msg3Receiver.HandleMessage3(tampered, uPub)
	assert.Error(t, err)
	testlog.Success(t, "tampered message_3 rejected")
}

func TestWrongPeerKeyRejected(t *testing.T) {
	testlog.Section(t, "3.1", "Wrong peer public key rejection")

	_, uPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, vPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	wrongPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	uKeys := newSessionKeys(t, uEphemeralSecret, uConnID, uPriv)
	vKeys := newSessionKeys(t, vEphemeralSecret, vConnID, vPriv)

	msg1Sender := NewMsg1Sender(uKeys)
	msg1, msg2Receiver, err := msg1Sender.GenerateMessage1()
	require.NoError(t, err)

	msg1Receiver := NewMsg1Receiver(vKeys)
	msg2Sender, err := msg1Receiver.HandleMessage1(msg1)
	require.NoError(t, err)

	msg2, _, err := msg2Sender.GenerateMessage2()
	require.NoError(t, err)

	_, err = msg2Receiver.HandleMessage2(msg2, wrongPub)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
	testlog.Success(t, "verification against the wrong public key failed as expected")
}

func TestHandleMessage1_RejectsUnsupportedSuite(t *testing.T) {
	_, vPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	vKeys := newSessionKeys(t, vEphemeralSecret, vConnID, vPriv)

	msg1, err := encodeMessage1(0, 1, ephemeralPublic(t, uEphemeralSecret), uConnID)
	require.NoError(t, err)

	msg1Receiver := NewMsg1Receiver(vKeys)
	_, err = msg1Receiver.HandleMessage1(msg1)
	require.Error(t, err)

	var ownErr *OwnError
	require.ErrorAs(t, err, &ownErr)
	assert.Equal(t, ErrorCodeUnsupportedSuite, ownErr.Code)
}

func TestStateConsumed_CannotTransitionTwice(t *testing.T) {
	_, uPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	uKeys := newSessionKeys(t, uEphemeralSecret, uConnID, uPriv)

	msg1Sender := NewMsg1Sender(uKeys)
	_, _, err = msg1Sender.GenerateMessage1()
	require.NoError(t, err)

	_, _, err = msg1Sender.GenerateMessage1()
	assert.ErrorIs(t, err, ErrStateConsumed)
}
