// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastmd5 provides the MD5 helper used by the packet cipher's
// framing layer. The wire format requires MD5 specifically (it is a
// legacy compatibility constant, not a design choice left open to the
// implementation) and is hashed once per packet over a short, bounded
// scratch slice, so a pooled hash.Hash avoids an allocation per call
// without needing a single shared, serialized hasher.
package fastmd5

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"sync"
)

var pool = sync.Pool{
	New: func() any { return md5.New() },
}

// Sum returns the 16-byte MD5 digest of data.
func Sum(data []byte) [md5.Size]byte {
	h := pool.Get().(hash.Hash)
	h.Reset()
	h.Write(data)
	var out [md5.Size]byte
	h.Sum(out[:0])
	pool.Put(h)
	return out
}

// HexLower returns the lowercase hex encoding of the MD5 digest of data,
// matching the wire format's md5_hex_lower primitive.
func HexLower(data []byte) string {
	sum := Sum(data)
	return hex.EncodeToString(sum[:])
}
