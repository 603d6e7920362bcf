// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cipher

import "github.com/eriscorp/darkages-go/internal/fastmd5"

// keystreamSize is the width of both keystream1 and a derived
// per-packet keystream2: nine bytes, cycled over the transformed
// buffer by position modulo 9.
const keystreamSize = 9

// keystream2TableSize is the length of the table a session's
// Keystream2Table name expands to.
const keystream2TableSize = 1024

// generateKeystream2Table expands name into the 1024-byte table that
// per-packet keystream2 values are drawn from. The table is the ASCII
// bytes of repeatedly self-hashing hex digests: two MD5 passes over
// name to seed a 32-character string, then 31 rounds of appending the
// lowercase hex MD5 of the string-so-far, until the accumulated text
// reaches exactly 1024 bytes (32 chars seed + 31 * 32 chars appended).
func generateKeystream2Table(name string) [keystream2TableSize]byte {
	t := fastmd5.HexLower([]byte(fastmd5.HexLower([]byte(name))))
	for i := 0; i < 31; i++ {
		t += fastmd5.HexLower([]byte(t))
	}
	var table [keystream2TableSize]byte
	copy(table[:], t)
	return table
}

// deriveKeystream2 computes the per-packet keystream from the
// keystream2 table and the packet's nonce pair.
func deriveKeystream2(table *[keystream2TableSize]byte, a uint16, b uint8) [keystreamSize]byte {
	var ks [keystreamSize]byte
	bb := int(b) * int(b)
	for i := 0; i < keystreamSize; i++ {
		idx := (i*(9*i+bb) + int(a)) % keystream2TableSize
		ks[i] = table[idx]
	}
	return ks
}
