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
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/sage-x-project/go-edhoc/cose"
)

// hkdfExtract computes PRK = HKDF-Extract(salt, ikm) with SHA-256.
func hkdfExtract(salt, ikm []byte) []byte {
	return hkdf.Extract(sha256.New, ikm, salt)
}

// edhocKDF implements EDHOC-KDF(prk, transcriptHash, label, length):
// HKDF-Expand(prk, info, length) where info = build_kdf_context(label,
// 8*length, transcriptHash).
func edhocKDF(prk []byte, transcriptHash []byte, label string, length int) ([]byte, error) {
	info, err := cose.BuildKDFContext(label, uint64(8*length), transcriptHash)
	if err != nil {
		return nil, fmt.Errorf("edhoc: kdf: %w", err)
	}
	r := hkdf.Expand(sha256.New, prk, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("edhoc: kdf: %w", err)
	}
	return out, nil
}

// edhocExporter implements EDHOC-Exporter(prk_4x3m, th_4, label, length): a
// thin wrapper over edhocKDF used to derive the OSCORE master secret and
// master salt.
func edhocExporter(prk4x3m, th4 []byte, label string, length int) ([]byte, error) {
	out, err := edhocKDF(prk4x3m, th4, label, length)
	if err != nil {
		return nil, fmt.Errorf("edhoc: exporter: %w", err)
	}
	return out, nil
}

// deriveMasterSecretAndSalt computes the OSCORE Master Secret (16 bytes)
// and Master Salt (8 bytes) from prk_4x3m and TH_4.
func deriveMasterSecretAndSalt(prk4x3m, th4 []byte) (secret, salt []byte, err error) {
	secret, err = edhocExporter(prk4x3m, th4, labelMasterSecret, masterSecretLength)
	if err != nil {
		return nil, nil, err
	}
	salt, err = edhocExporter(prk4x3m, th4, labelMasterSalt, masterSaltLength)
	if err != nil {
		zeroBytes(secret)
		return nil, nil, err
	}
	return secret, salt, nil
}

// keystream produces the XOR-stream used to (de)confidentiality-wrap
// CIPHERTEXT_2: EDHOC-KDF(PRK_2e, TH_2, "K_2e", length).
func keystream(prk2e, th2 []byte, length int) ([]byte, error) {
	out, err := edhocKDF(prk2e, th2, labelK2e, length)
	if err != nil {
		return nil, fmt.Errorf("edhoc: keystream: %w", err)
	}
	return out, nil
}

// xorBytes returns a XOR b, truncated to the shorter of the two lengths.
func xorBytes(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// deriveAEADKeyIV derives the AES-CCM-16-64-128 key and nonce used for
// CIPHERTEXT_3 from PRK_3e2m and TH_3: key = EDHOC-KDF(prk, th, suite
// AEAD name, 16), iv = EDHOC-KDF(prk, th, "IV-GENERATION", 13).
func deriveAEADKeyIV(prk3e2m, th3 []byte) (key, iv []byte, err error) {
	key, err = edhocKDF(prk3e2m, th3, SupportedSuite.AEADName, aesCCMKeyLength)
	if err != nil {
		return nil, nil, err
	}
	iv, err = edhocKDF(prk3e2m, th3, labelIVGeneration, aesCCMNonceLength)
	if err != nil {
		zeroBytes(key)
		return nil, nil, err
	}
	return key, iv, nil
}
