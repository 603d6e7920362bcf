// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"encoding/binary"

	"github.com/eriscorp/darkages-go/internal/daerr"
)

// Format selects the on-disk entry-header layout written by Save and
// Compile, and expected by parseIndex.
type Format int

const (
	// FormatLegacy is the original 13-byte NUL-padded name field.
	FormatLegacy Format = iota
	// FormatExtended is the "new format" variant: a 12-byte name
	// field followed by 20 opaque bytes, preserved verbatim but
	// never interpreted.
	FormatExtended
)

// entryHeaderSize is the size in bytes of one real entry's header
// record: a uint32 offset followed by the format's name field.
func (f Format) entryHeaderSize() int {
	if f == FormatExtended {
		return 4 + maxNameLen - 1 + extraLen
	}
	return 4 + maxNameLen
}

// headerBytes is the total size of an archive's count field, its real
// entry headers, and the trailing bare final-offset field — i.e. the
// byte offset at which the first entry's payload begins.
func headerBytes(count int, format Format) int {
	return 4 + count*format.entryHeaderSize() + 4
}

// parseIndex decodes the entry index at the front of raw. The header
// declares count+1; the last "offset" is a bare sentinel (no name
// field) equal to the total file length, used only to derive the last
// real entry's length.
func parseIndex(op string, raw []byte, format Format) ([]Entry, error) {
	if len(raw) < 4 {
		return nil, daerr.New(daerr.MalformedFrame, op, "archive shorter than the count field")
	}
	count := int(binary.LittleEndian.Uint32(raw[0:4])) - 1
	if count < 0 {
		return nil, daerr.New(daerr.MalformedFrame, op, "archive count field underflows")
	}
	need := headerBytes(count, format)
	if need > len(raw) {
		return nil, daerr.New(daerr.MalformedFrame, op, "archive index runs past end of file")
	}

	nameLen := maxNameLen
	if format == FormatExtended {
		nameLen = maxNameLen - 1
	}

	entries := make([]Entry, count)
	pos := 4
	for i := 0; i < count; i++ {
		offset := binary.LittleEndian.Uint32(raw[pos : pos+4])
		pos += 4
		name := trimName(raw[pos : pos+nameLen])
		pos += nameLen
		var extra [extraLen]byte
		if format == FormatExtended {
			copy(extra[:], raw[pos:pos+extraLen])
			pos += extraLen
		}
		entries[i] = Entry{Name: name, Offset: offset, Extra: extra}
	}
	finalOffset := binary.LittleEndian.Uint32(raw[pos : pos+4])
	if int64(finalOffset) != int64(len(raw)) {
		return nil, daerr.New(daerr.MalformedFrame, op, "archive final offset does not match file length")
	}

	for i := 0; i < count; i++ {
		var end uint32
		if i+1 < count {
			end = entries[i+1].Offset
		} else {
			end = finalOffset
		}
		if end < entries[i].Offset {
			return nil, daerr.New(daerr.MalformedFrame, op, "archive entry offsets are not ascending")
		}
		entries[i].Length = end - entries[i].Offset
	}
	return entries, nil
}

// trimName strips trailing NUL padding from a fixed-width name field.
func trimName(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}

// encodeIndex writes the header/index for entries (in the given order)
// followed by the bare final-offset sentinel.
func encodeIndex(op string, entries []Entry, format Format) ([]byte, error) {
	nameLen := maxNameLen
	if format == FormatExtended {
		nameLen = maxNameLen - 1
	}
	hdrSize := headerBytes(len(entries), format)
	buf := make([]byte, hdrSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(entries)+1))

	offset := uint32(hdrSize)
	pos := 4
	for _, e := range entries {
		if err := validateName(op, e.Name, format); err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint32(buf[pos:pos+4], offset)
		pos += 4
		copy(buf[pos:pos+nameLen], e.Name)
		pos += nameLen
		if format == FormatExtended {
			copy(buf[pos:pos+extraLen], e.Extra[:])
			pos += extraLen
		}
		offset += e.Length
	}
	binary.LittleEndian.PutUint32(buf[pos:pos+4], offset)

	return buf, nil
}
