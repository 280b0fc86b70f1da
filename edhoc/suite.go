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

// Package edhoc implements the EDHOC three-message handshake (method 0,
// suite 0: signature authentication, SHA-256, HKDF-SHA-256,
// AES-CCM-16-64-128) and the EDHOC-Exporter used to derive an OSCORE
// Master Secret and Master Salt.
package edhoc

// Suite pins the single combination of primitives this package supports.
type Suite struct {
	MethodCorr int64
	SuiteID    int64
	AEADName   string
}

// SupportedSuite is the only method/suite combination this package
// negotiates: no correlation, suite 0 (signature authentication,
// SHA-256, HKDF-SHA-256, AES-CCM-16-64-128).
var SupportedSuite = Suite{
	MethodCorr: 0,
	SuiteID:    0,
	AEADName:   "AES-CCM-16-64-128",
}

const (
	masterSecretLength = 16
	masterSaltLength   = 8

	labelK2e          = "K_2e"
	labelIVGeneration = "IV-GENERATION"
	labelMasterSecret = "OSCORE Master Secret"
	labelMasterSalt   = "OSCORE Master Salt"
	aesCCMKeyLength   = 16
	aesCCMNonceLength = 13
)
