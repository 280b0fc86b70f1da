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
	"fmt"

	"github.com/sage-x-project/go-edhoc/cbor"
)

// encodeMessage1 serializes message_1 = (METHOD_CORR, SUITES_I, G_X, C_I)
// as a four-item CBOR sequence.
func encodeMessage1(methodCorr, suiteID int64, gX, cI []byte) ([]byte, error) {
	out, err := cbor.EncodeSequence(methodCorr, suiteID, gX, cI)
	if err != nil {
		return nil, fmt.Errorf("edhoc: encode message_1: %w", err)
	}
	return out, nil
}

type message1 struct {
	methodCorr int64
	suiteID    int64
	gX         []byte
	cI         []byte
}

// decodeMessage1 parses message_1. If data instead holds an error_message,
// it is surfaced as an OwnOrPeerError carrying the PeerError.
func decodeMessage1(data []byte) (message1, error) {
	items, _, err := cbor.DecodeSequence(data, 4)
	if err != nil {
		if text, ok := tryParseErrorMessage(data); ok {
			return message1{}, &OwnOrPeerError{Peer: &PeerError{Message: text}}
		}
		return message1{}, fmt.Errorf("%w: message_1: %v", ErrMalformedMessage, err)
	}
	methodCorr, err := toInt64(items[0])
	if err != nil {
		return message1{}, fmt.Errorf("%w: message_1 METHOD_CORR: %v", ErrMalformedMessage, err)
	}
	suiteID, err := toInt64(items[1])
	if err != nil {
		return message1{}, fmt.Errorf("%w: message_1 SUITES_I: %v", ErrMalformedMessage, err)
	}
	gX, ok := items[2].([]byte)
	if !ok {
		return message1{}, fmt.Errorf("%w: message_1 G_X is not a byte string", ErrMalformedMessage)
	}
	cI, ok := items[3].([]byte)
	if !ok {
		return message1{}, fmt.Errorf("%w: message_1 C_I is not a byte string", ErrMalformedMessage)
	}
	return message1{methodCorr: methodCorr, suiteID: suiteID, gX: gX, cI: cI}, nil
}

// encodeMessage2 serializes message_2 = (G_Y, C_R, CIPHERTEXT_2).
func encodeMessage2(gY, cR, ciphertext2 []byte) ([]byte, error) {
	out, err := cbor.EncodeSequence(gY, cR, ciphertext2)
	if err != nil {
		return nil, fmt.Errorf("edhoc: encode message_2: %w", err)
	}
	return out, nil
}

type message2 struct {
	gY          []byte
	cR          []byte
	ciphertext2 []byte
}

func decodeMessage2(data []byte) (message2, error) {
	items, _, err := cbor.DecodeSequence(data, 3)
	if err != nil {
		if text, ok := tryParseErrorMessage(data); ok {
			return message2{}, &OwnOrPeerError{Peer: &PeerError{Message: text}}
		}
		return message2{}, fmt.Errorf("%w: message_2: %v", ErrMalformedMessage, err)
	}
	gY, ok := items[0].([]byte)
	if !ok {
		return message2{}, fmt.Errorf("%w: message_2 G_Y is not a byte string", ErrMalformedMessage)
	}
	cR, ok := items[1].([]byte)
	if !ok {
		return message2{}, fmt.Errorf("%w: message_2 C_R is not a byte string", ErrMalformedMessage)
	}
	ciphertext2, ok := items[2].([]byte)
	if !ok {
		return message2{}, fmt.Errorf("%w: message_2 CIPHERTEXT_2 is not a byte string", ErrMalformedMessage)
	}
	return message2{gY: gY, cR: cR, ciphertext2: ciphertext2}, nil
}

// encodeMessage3 serializes message_3 = (C_R, CIPHERTEXT_3).
func encodeMessage3(cR, ciphertext3 []byte) ([]byte, error) {
	out, err := cbor.EncodeSequence(cR, ciphertext3)
	if err != nil {
		return nil, fmt.Errorf("edhoc: encode message_3: %w", err)
	}
	return out, nil
}

type message3 struct {
	cR          []byte
	ciphertext3 []byte
}

func decodeMessage3(data []byte) (message3, error) {
	items, _, err := cbor.DecodeSequence(data, 2)
	if err != nil {
		if text, ok := tryParseErrorMessage(data); ok {
			return message3{}, &OwnOrPeerError{Peer: &PeerError{Message: text}}
		}
		return message3{}, fmt.Errorf("%w: message_3: %v", ErrMalformedMessage, err)
	}
	cR, ok := items[0].([]byte)
	if !ok {
		// An error_message (ERR_CODE, ERR_MSG) is also a two-item sequence,
		// so it decodes above and is only told apart here.
		if text, ok := tryParseErrorMessage(data); ok {
			return message3{}, &OwnOrPeerError{Peer: &PeerError{Message: text}}
		}
		return message3{}, fmt.Errorf("%w: message_3 C_R is not a byte string", ErrMalformedMessage)
	}
	ciphertext3, ok := items[1].([]byte)
	if !ok {
		return message3{}, fmt.Errorf("%w: message_3 CIPHERTEXT_3 is not a byte string", ErrMalformedMessage)
	}
	return message3{cR: cR, ciphertext3: ciphertext3}, nil
}

// encodePlaintext encodes (id_cred, signature) as a two-item CBOR
// sequence, both fields wrapped as CBOR byte strings: this is plaintext_2
// (before XOR) and the payload AEAD-protected to form CIPHERTEXT_3.
func encodePlaintext(idCred, signature []byte) ([]byte, error) {
	out, err := cbor.EncodeSequence(idCred, signature)
	if err != nil {
		return nil, fmt.Errorf("edhoc: encode plaintext: %w", err)
	}
	return out, nil
}

func decodePlaintext(data []byte) (idCred, signature []byte, err error) {
	items, _, err := cbor.DecodeSequence(data, 2)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: plaintext: %v", ErrMalformedMessage, err)
	}
	idCred, ok := items[0].([]byte)
	if !ok {
		return nil, nil, fmt.Errorf("%w: plaintext id_cred is not a byte string", ErrMalformedMessage)
	}
	signature, ok = items[1].([]byte)
	if !ok {
		return nil, nil, fmt.Errorf("%w: plaintext signature is not a byte string", ErrMalformedMessage)
	}
	return idCred, signature, nil
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
