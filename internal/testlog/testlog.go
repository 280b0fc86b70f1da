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

// Package testlog provides section/pass/detail narration helpers for the
// handshake round-trip tests.
package testlog

import "testing"

// Section prints a test section header.
func Section(t *testing.T, sectionID, description string) {
	t.Helper()
	t.Logf("===== %s %s =====", sectionID, description)
}

// Success logs a pass message.
func Success(t *testing.T, message string) {
	t.Helper()
	t.Logf("[PASS] %s", message)
}

// Detail logs an indented detail message.
func Detail(t *testing.T, format string, args ...interface{}) {
	t.Helper()
	if len(args) > 0 {
		t.Logf("  "+format, args...)
	} else {
		t.Logf("  " + format)
	}
}
