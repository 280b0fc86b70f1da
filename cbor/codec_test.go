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

package cbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTuple_KDFContextVector(t *testing.T) {
	// COSE_KDF_Context for ("IV-GENERATION", 104, 0xAAAA).
	partyInfo := []interface{}{nil, nil, nil}
	suppPubInfo := []interface{}{uint64(104), []byte{}, []byte{0xAA, 0xAA}}
	got, err := EncodeTuple("IV-GENERATION", partyInfo, partyInfo, suppPubInfo)
	require.NoError(t, err)

	want := []byte{
		0x84, 0x6D, 0x49, 0x56, 0x2D, 0x47, 0x45, 0x4E, 0x45, 0x52, 0x41, 0x54, 0x49, 0x4F, 0x4E,
		0x83, 0xF6, 0xF6, 0xF6,
		0x83, 0xF6, 0xF6, 0xF6,
		0x83, 0x18, 0x68, 0x40, 0x42, 0xAA, 0xAA,
	}
	assert.Equal(t, want, got)
}

func TestDecodeTuple_RoundTrip(t *testing.T) {
	items := []interface{}{"Signature1", []byte{0x11, 0x11}, []byte{0x22, 0x22, 0x22}, []byte{0x55, 0x55, 0x55, 0x55}}
	encoded, err := EncodeTuple(items...)
	require.NoError(t, err)

	decoded, err := DecodeTuple(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(items))

	assert.Equal(t, items[0], decoded[0])
	assert.Equal(t, items[1], decoded[1])
	assert.Equal(t, items[2], decoded[2])
	assert.Equal(t, items[3], decoded[3])
}

func TestEncodeSequence_ConcatenatesIndependentItems(t *testing.T) {
	seq, err := EncodeSequence(int64(0), int64(0), []byte{0x01, 0x02}, []byte("Party U"))
	require.NoError(t, err)

	items, consumed, err := DecodeSequence(seq, 4)
	require.NoError(t, err)
	assert.Equal(t, len(seq), consumed)
	assert.Equal(t, uint64(0), items[0])
	assert.Equal(t, uint64(0), items[1])
	assert.Equal(t, []byte{0x01, 0x02}, items[2])
	assert.Equal(t, []byte("Party U"), items[3])
}

func TestDecodeSequence_TrailingBytesReturnedNotRejected(t *testing.T) {
	first, err := EncodeSequence(int64(1))
	require.NoError(t, err)
	second, err := EncodeSequence("trailer")
	require.NoError(t, err)
	buf := append(append([]byte{}, first...), second...)

	items, consumed, err := DecodeSequence(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, len(first), consumed)
	assert.Equal(t, uint64(1), items[0])
	assert.Less(t, consumed, len(buf))
}

func TestDecodeSequence_ErrorsOnTooFewItems(t *testing.T) {
	seq, err := EncodeSequence(int64(1), int64(2))
	require.NoError(t, err)

	_, _, err = DecodeSequence(seq, 3)
	assert.Error(t, err)
}
