// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"fmt"

	"github.com/eriscorp/darkages-go/internal/daerr"
)

// maxNameLen is the longest entry name the legacy .dat format can store:
// 13 ASCII bytes, NUL-padded.
const maxNameLen = 13

// extraLen is the size of the opaque per-entry trailer carried by the
// "new format" variant (12-byte name + 20 unknown bytes). Those bytes
// are never interpreted, only preserved across read-modify-write.
const extraLen = 20

// Entry describes one member of an Archive: its name, and the byte
// range it occupies within the Archive's backing source. An Entry's
// lifetime is tied to the Archive that produced it; using one after its
// Archive has been closed is undefined.
type Entry struct {
	Name   string
	Offset uint32
	Length uint32

	// Extra carries the 20 opaque bytes following the name in the
	// FormatExtended on-disk layout. It is always zero for
	// FormatLegacy archives.
	Extra [extraLen]byte
}

// validateName reports whether name fits the given format's on-disk
// name field: ASCII, and no longer than the field allows.
func validateName(op, name string, format Format) error {
	limit := maxNameLen
	if format == FormatExtended {
		limit = maxNameLen - 1
	}
	if len(name) > limit {
		return daerr.New(daerr.NameTooLong, op, fmt.Sprintf("entry name %s exceeds %d bytes", name, limit))
	}
	for i := 0; i < len(name); i++ {
		if name[i] == 0 || name[i] > 0x7F {
			return daerr.New(daerr.NameTooLong, op, "entry name "+name+" is not plain ASCII")
		}
	}
	return nil
}

// foldName returns the case-insensitive lookup key for name. Archive
// entry names are ASCII, so a byte-wise ASCII fold is exact and avoids
// pulling in strings.ToLower's Unicode table for no benefit.
func foldName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
