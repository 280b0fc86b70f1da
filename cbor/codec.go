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

// Package cbor adapts github.com/fxamacker/cbor/v2 to the two shapes EDHOC
// and COSE need: a heterogeneous tuple encoded as a definite-length array,
// and a CBOR sequence (RFC 8742) of independently-encoded top-level items.
package cbor

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var encMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: invalid canonical encoding options: %v", err))
	}
	return m
}()

// EncodeTuple serializes items as a single CBOR array of definite length
// len(items), in canonical (deterministic) form.
func EncodeTuple(items ...interface{}) ([]byte, error) {
	out, err := encMode.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("cbor: encode tuple: %w", err)
	}
	return out, nil
}

// DecodeTuple is the inverse of EncodeTuple: it decodes a single CBOR array
// into its elements. Byte strings decode as []byte, text strings as string,
// unsigned/signed integers as uint64/int64, nested arrays as []interface{}.
func DecodeTuple(data []byte) ([]interface{}, error) {
	var items []interface{}
	if err := cbor.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cbor: decode tuple: %w", err)
	}
	return items, nil
}

// EncodeSequence concatenates the canonical encoding of each item, producing
// a CBOR sequence (RFC 8742) rather than a single wrapped array. EDHOC wire
// messages are sequences of this kind.
func EncodeSequence(items ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	for i, item := range items {
		b, err := encMode.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("cbor: encode sequence item %d: %w", i, err)
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}

// DecodeSequence reads exactly n top-level CBOR items from data and returns
// them along with the number of bytes consumed. It errors if fewer than n
// items are present; trailing bytes after the nth item are returned to the
// caller rather than rejected, since EDHOC messages are themselves segments
// of a larger byte stream in some transports.
func DecodeSequence(data []byte, n int) (items []interface{}, consumed int, err error) {
	dec := cbor.NewDecoder(bytes.NewReader(data))
	items = make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, 0, fmt.Errorf("cbor: decode sequence item %d: %w", i, err)
		}
		items = append(items, v)
	}
	return items, dec.NumBytesRead(), nil
}
