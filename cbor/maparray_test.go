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

func TestArrayToMap_COSEKeyVector(t *testing.T) {
	// COSE_Key with x = 00 01 02 03, kid = 04 05 06 07.
	arr, err := EncodeTuple(int64(-1), int64(4), int64(-2), []byte{0, 1, 2, 3}, int64(1), int64(1), int64(2), []byte{4, 5, 6, 7})
	require.NoError(t, err)

	got, err := ArrayToMap(arr)
	require.NoError(t, err)

	want := []byte{0xA4, 0x20, 0x04, 0x21, 0x44, 0x00, 0x01, 0x02, 0x03, 0x01, 0x01, 0x02, 0x44, 0x04, 0x05, 0x06, 0x07}
	assert.Equal(t, want, got)
}

func TestBuildIDCredXVector(t *testing.T) {
	// id_cred_x for kid 0x00 01 = A1 04 42 00 01.
	arr, err := EncodeTuple(int64(4), []byte{0x00, 0x01})
	require.NoError(t, err)

	got, err := ArrayToMap(arr)
	require.NoError(t, err)

	want := []byte{0xA1, 0x04, 0x42, 0x00, 0x01}
	assert.Equal(t, want, got)
}

func TestArrayMapFlip_IsInvolution(t *testing.T) {
	arities := []int{0, 2, 4, 8, 48, 254}
	for _, arity := range arities {
		items := make([]interface{}, arity)
		for i := range items {
			items[i] = int64(i)
		}
		arr, err := EncodeTuple(items...)
		require.NoError(t, err)

		m, err := ArrayToMap(arr)
		require.NoError(t, err)

		back, err := MapToArray(m)
		require.NoError(t, err)
		assert.Equal(t, arr, back, "involution failed for arity %d", arity)
	}
}

func TestArrayToMap_RejectsOddArity(t *testing.T) {
	arr, err := EncodeTuple(int64(1), int64(2), int64(3))
	require.NoError(t, err)

	_, err = ArrayToMap(arr)
	assert.Error(t, err)
}

func TestArrayToMap_RejectsNonArrayHeader(t *testing.T) {
	_, err := ArrayToMap([]byte{0x01})
	assert.Error(t, err)
}

func TestMapToArray_RejectsNonMapHeader(t *testing.T) {
	_, err := MapToArray([]byte{0x81, 0x01})
	assert.Error(t, err)
}
