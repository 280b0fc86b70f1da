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

// Package aesccm implements AES-CCM-16-64-128 (RFC 8152 algorithm id 10):
// a 128-bit key, 13-byte nonce, and 8-byte authentication tag, built
// directly on crypto/aes per NIST SP 800-38C. golang.org/x/crypto ships
// no CCM mode, so the construction is implemented here rather than
// imported.
package aesccm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"errors"
	"fmt"
)

const (
	KeySize   = 16
	NonceSize = 13
	TagSize   = 8

	// lengthFieldSize is the CCM parameter L for this algorithm
	// identifier: a 2-byte (L=15-NonceSize) length field, next to the
	// 8-byte MAC (M = TagSize), per RFC 8152's naming of
	// "AES-CCM-16-64-128" (16-bit length field, 64-bit tag, 128-bit key).
	lengthFieldSize = 15 - NonceSize
)

var (
	ErrInvalidKeySize   = errors.New("aesccm: key must be 16 bytes")
	ErrInvalidNonceSize = errors.New("aesccm: nonce must be 13 bytes")
	ErrAuthFailed       = errors.New("aesccm: message authentication failed")
)

// AEAD is a minimal cipher.AEAD-shaped interface so callers depend on an
// abstraction rather than a concrete CCM type, the way the stdlib
// cipher.AEAD interface lets callers swap AEAD implementations freely.
type AEAD interface {
	Seal(plaintext, nonce, aad []byte) ([]byte, error)
	Open(ciphertext, nonce, aad []byte) ([]byte, error)
}

type ccm struct {
	block cipher.Block
}

// New constructs an AES-CCM-16-64-128 AEAD over a 16-byte key.
func New(key []byte) (AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesccm: %w", err)
	}
	return &ccm{block: block}, nil
}

// Seal encrypts plaintext and appends an 8-byte authentication tag,
// computed over aad and plaintext using CBC-MAC, then encrypts the
// plaintext with CTR mode keyed off the same nonce (RFC 3610 / SP 800-38C).
func (c *ccm) Seal(plaintext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceSize
	}
	mac, err := c.cbcMAC(nonce, aad, plaintext)
	if err != nil {
		return nil, err
	}
	ciphertext := c.ctrCrypt(nonce, 1, plaintext)
	encryptedMAC := c.ctrCrypt(nonce, 0, mac)
	out := make([]byte, 0, len(ciphertext)+TagSize)
	out = append(out, ciphertext...)
	out = append(out, encryptedMAC...)
	return out, nil
}

// Open verifies and decrypts a buffer produced by Seal. It returns
// ErrAuthFailed without releasing any plaintext if the tag does not match.
func (c *ccm) Open(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceSize
	}
	if len(ciphertext) < TagSize {
		return nil, ErrAuthFailed
	}
	ct := ciphertext[:len(ciphertext)-TagSize]
	gotTag := ciphertext[len(ciphertext)-TagSize:]

	plaintext := c.ctrCrypt(nonce, 1, ct)
	mac, err := c.cbcMAC(nonce, aad, plaintext)
	if err != nil {
		return nil, err
	}
	expectedTag := c.ctrCrypt(nonce, 0, mac)

	if subtle.ConstantTimeCompare(gotTag, expectedTag) != 1 {
		zeroBytes(plaintext)
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// ctrCrypt runs AES in counter mode with counter blocks A_i = flags(L-1) ||
// nonce || i (big-endian, lengthFieldSize wide), starting at counter
// startCounter. Used both to produce the keystream for the message and to
// encrypt the raw CBC-MAC tag (counter 0).
func (c *ccm) ctrCrypt(nonce []byte, startCounter uint64, data []byte) []byte {
	out := make([]byte, len(data))
	block := make([]byte, aes.BlockSize)
	keystream := make([]byte, aes.BlockSize)
	counter := startCounter
	for off := 0; off < len(data); off += aes.BlockSize {
		buildCounterBlock(block, nonce, counter)
		c.block.Encrypt(keystream, block)
		n := copy(out[off:], data[off:min(off+aes.BlockSize, len(data))])
		for i := 0; i < n; i++ {
			out[off+i] ^= keystream[i]
		}
		counter++
	}
	return out
}

func buildCounterBlock(block, nonce []byte, counter uint64) {
	block[0] = byte(lengthFieldSize - 1)
	copy(block[1:1+NonceSize], nonce)
	for i := 0; i < lengthFieldSize; i++ {
		block[aes.BlockSize-1-i] = byte(counter >> (8 * i))
	}
}

// cbcMAC computes the CBC-MAC over the CCM B_0 block, the length-prefixed
// AAD, and the plaintext, per RFC 3610 section 2.2, truncated to TagSize.
func (c *ccm) cbcMAC(nonce, aad, plaintext []byte) ([]byte, error) {
	hasAAD := len(aad) > 0
	b0 := make([]byte, aes.BlockSize)
	flags := byte(lengthFieldSize - 1)
	if hasAAD {
		flags |= 0x40
	}
	flags |= byte((TagSize-2)/2) << 3
	b0[0] = flags
	copy(b0[1:1+NonceSize], nonce)
	putMsgLength(b0[aes.BlockSize-lengthFieldSize:], uint64(len(plaintext)))

	mac := make([]byte, aes.BlockSize)
	xorInto(mac, b0)
	c.block.Encrypt(mac, mac)

	if hasAAD {
		buf := append(encodeAADLength(len(aad)), aad...)
		buf = padToBlock(buf)
		for off := 0; off < len(buf); off += aes.BlockSize {
			xorInto(mac, buf[off:off+aes.BlockSize])
			c.block.Encrypt(mac, mac)
		}
	}

	ptBlock := padToBlock(append([]byte{}, plaintext...))
	for off := 0; off < len(ptBlock); off += aes.BlockSize {
		xorInto(mac, ptBlock[off:off+aes.BlockSize])
		c.block.Encrypt(mac, mac)
	}

	return mac[:TagSize], nil
}

// padToBlock zero-pads buf up to the next multiple of the AES block size.
// An already block-aligned (including empty) buf is returned unchanged.
func padToBlock(buf []byte) []byte {
	if rem := len(buf) % aes.BlockSize; rem != 0 {
		buf = append(buf, make([]byte, aes.BlockSize-rem)...)
	}
	return buf
}

// encodeAADLength encodes the AAD length prefix per RFC 3610 section 2.2:
// a 2-byte big-endian length for AAD under 0xFF00 bytes, which covers
// every length this protocol ever produces.
func encodeAADLength(l int) []byte {
	return []byte{byte(l >> 8), byte(l)}
}

func putMsgLength(dst []byte, l uint64) {
	for i := 0; i < lengthFieldSize; i++ {
		dst[lengthFieldSize-1-i] = byte(l >> (8 * i))
	}
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
