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
	"errors"
	"fmt"

	"github.com/sage-x-project/go-edhoc/cbor"
)

// Local-fault sentinels: each names one specific, checkable condition.
var (
	ErrStateConsumed    = errors.New("edhoc: state already consumed")
	ErrConnIDMismatch   = errors.New("edhoc: connection identifier mismatch")
	ErrSignatureInvalid = errors.New("edhoc: signature verification failed")
	ErrAEADAuthFailed   = errors.New("edhoc: AEAD authentication failed")
	ErrMalformedMessage = errors.New("edhoc: malformed message")
)

// OwnError is a ready-to-send EDHOC error_message payload: the CBOR
// sequence (ERR_CODE, ERR_MSG). It implements the error interface so it
// can be returned and wrapped like any other error, while also exposing
// its wire bytes for transmission to the peer.
type OwnError struct {
	Code    int64
	Message string
	bytes   []byte
}

func (e *OwnError) Error() string {
	return fmt.Sprintf("edhoc: own error %d: %s", e.Code, e.Message)
}

// Bytes returns the CBOR-sequence encoding of this error_message, ready to
// send to the peer.
func (e *OwnError) Bytes() []byte {
	return e.bytes
}

// newOwnError builds an OwnError with code and message, pre-encoding its
// wire form as an EDHOC error_message CBOR sequence (ERR_CODE, ERR_MSG).
func newOwnError(code int64, message string) *OwnError {
	b, err := cbor.EncodeSequence(code, message)
	if err != nil {
		// Encoding a (int64, string) pair cannot fail under canonical CBOR;
		// a failure here would indicate a bug in package cbor itself.
		panic(fmt.Sprintf("edhoc: failed to encode error_message: %v", err))
	}
	return &OwnError{Code: code, Message: message, bytes: b}
}

// ErrorCodeUnsupportedSuite is sent when a peer proposes a suite other
// than SupportedSuite.
const ErrorCodeUnsupportedSuite int64 = 2

// NewUnsupportedSuiteError builds the peer-visible error_message naming
// the one suite this implementation supports.
func NewUnsupportedSuiteError() *OwnError {
	return newOwnError(ErrorCodeUnsupportedSuite, fmt.Sprintf("unsupported suite, only suite %d (%s) is supported", SupportedSuite.SuiteID, SupportedSuite.AEADName))
}

// ErrorCodeGeneral covers any other protocol violation detected locally.
const ErrorCodeGeneral int64 = 1

// NewProtocolError builds a generic peer-visible error_message.
func NewProtocolError(message string) *OwnError {
	return newOwnError(ErrorCodeGeneral, message)
}

// PeerError wraps a human-readable error message received from the peer
// in place of an expected protocol message.
type PeerError struct {
	Message string
}

func (e *PeerError) Error() string {
	return fmt.Sprintf("edhoc: peer reported error: %s", e.Message)
}

// OwnOrPeerError is a tagged either: an OwnError the caller should send,
// or a legitimate error_message received from the peer (a PeerError).
// The message decoders return it with Peer set when an incoming buffer is
// an error_message; a malformed message is reported as an
// ErrMalformedMessage error instead, not as an OwnError. Exactly one of
// Own or Peer is non-nil.
type OwnOrPeerError struct {
	Own  *OwnError
	Peer *PeerError
}

func (e *OwnOrPeerError) Error() string {
	if e.Peer != nil {
		return e.Peer.Error()
	}
	if e.Own != nil {
		return e.Own.Error()
	}
	return "edhoc: unknown error"
}

// tryParseErrorMessage attempts to decode data as an EDHOC error_message
// CBOR sequence (ERR_CODE, ERR_MSG). It returns ok=false if data does not
// have that shape, so callers can fall back to parsing it as the expected
// protocol message instead.
func tryParseErrorMessage(data []byte) (msg string, ok bool) {
	items, _, err := cbor.DecodeSequence(data, 2)
	if err != nil {
		return "", false
	}
	if _, isInt := items[0].(int64); !isInt {
		if _, isUint := items[0].(uint64); !isUint {
			return "", false
		}
	}
	text, isText := items[1].(string)
	if !isText {
		return "", false
	}
	return text, true
}
