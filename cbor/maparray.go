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

import "fmt"

const (
	majorArray = 4
	majorMap   = 5
)

// header describes a decoded CBOR initial byte: its major type, the number
// of header bytes it occupies (1, 2, 3, 5 or 9), and the value it encodes
// (an array/map count, in our usage).
type header struct {
	major   byte
	width   int // total bytes occupied by the header, including the initial byte
	value   uint64
	addlTag byte // the "additional information" marker in the initial byte (0-27)
}

func decodeHeader(data []byte) (header, error) {
	if len(data) == 0 {
		return header{}, fmt.Errorf("cbor: empty buffer")
	}
	b0 := data[0]
	major := b0 >> 5
	ai := b0 & 0x1F

	switch {
	case ai < 24:
		return header{major: major, width: 1, value: uint64(ai), addlTag: ai}, nil
	case ai == 24:
		if len(data) < 2 {
			return header{}, fmt.Errorf("cbor: truncated 1-byte-length header")
		}
		return header{major: major, width: 2, value: uint64(data[1]), addlTag: ai}, nil
	case ai == 25:
		if len(data) < 3 {
			return header{}, fmt.Errorf("cbor: truncated 2-byte-length header")
		}
		v := uint64(data[1])<<8 | uint64(data[2])
		return header{major: major, width: 3, value: v, addlTag: ai}, nil
	case ai == 26:
		if len(data) < 5 {
			return header{}, fmt.Errorf("cbor: truncated 4-byte-length header")
		}
		var v uint64
		for i := 1; i <= 4; i++ {
			v = v<<8 | uint64(data[i])
		}
		return header{major: major, width: 5, value: v, addlTag: ai}, nil
	case ai == 27:
		if len(data) < 9 {
			return header{}, fmt.Errorf("cbor: truncated 8-byte-length header")
		}
		var v uint64
		for i := 1; i <= 8; i++ {
			v = v<<8 | uint64(data[i])
		}
		return header{major: major, width: 9, value: v, addlTag: ai}, nil
	default:
		return header{}, fmt.Errorf("cbor: indefinite-length or reserved header (additional info %d) not supported", ai)
	}
}

// encodeHeader writes the initial bytes for the given major type and value,
// using exactly the same header width (same addlTag class) as src. This is
// what keeps the array<->map rewrite an in-place operation: the payload
// never shifts because the header never changes length.
func encodeHeader(major byte, value uint64, width int) ([]byte, error) {
	switch width {
	case 1:
		if value > 23 {
			return nil, fmt.Errorf("cbor: value %d does not fit a 1-byte header", value)
		}
		return []byte{major<<5 | byte(value)}, nil
	case 2:
		if value > 0xFF {
			return nil, fmt.Errorf("cbor: value %d does not fit a 1-byte-length header", value)
		}
		return []byte{major<<5 | 24, byte(value)}, nil
	case 3:
		if value > 0xFFFF {
			return nil, fmt.Errorf("cbor: value %d does not fit a 2-byte-length header", value)
		}
		return []byte{major<<5 | 25, byte(value >> 8), byte(value)}, nil
	case 5:
		return []byte{
			major<<5 | 26,
			byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value),
		}, nil
	case 9:
		b := make([]byte, 9)
		b[0] = major<<5 | 27
		for i := 0; i < 8; i++ {
			b[8-i] = byte(value >> (8 * i))
		}
		return b, nil
	default:
		return nil, fmt.Errorf("cbor: unsupported header width %d", width)
	}
}

// ArrayToMap rewrites the leading major-type-4 (array) header of arity 2n
// into a major-type-5 (map) header of arity n, in place. No payload byte
// moves; only the leading header bytes are replaced, and the replacement is
// always the same width as the original so offsets into the rest of the
// buffer stay valid.
func ArrayToMap(data []byte) ([]byte, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	if h.major != majorArray {
		return nil, fmt.Errorf("cbor: array_to_map: leading byte is not an array header (major type %d)", h.major)
	}
	if h.value%2 != 0 {
		return nil, fmt.Errorf("cbor: array_to_map: arity %d is not even", h.value)
	}
	if h.value > 255 {
		return nil, fmt.Errorf("cbor: array_to_map: arity %d exceeds supported range", h.value)
	}
	newHeader, err := encodeHeader(majorMap, h.value/2, h.width)
	if err != nil {
		return nil, fmt.Errorf("cbor: array_to_map: %w", err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	copy(out[:h.width], newHeader)
	return out, nil
}

// MapToArray is the inverse of ArrayToMap: it rewrites a major-type-5 (map)
// header of arity n into a major-type-4 (array) header of arity 2n.
func MapToArray(data []byte) ([]byte, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	if h.major != majorMap {
		return nil, fmt.Errorf("cbor: map_to_array: leading byte is not a map header (major type %d)", h.major)
	}
	if h.value > 127 {
		return nil, fmt.Errorf("cbor: map_to_array: arity %d would overflow on doubling", h.value)
	}
	newHeader, err := encodeHeader(majorArray, h.value*2, h.width)
	if err != nil {
		return nil, fmt.Errorf("cbor: map_to_array: %w", err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	copy(out[:h.width], newHeader)
	return out, nil
}
