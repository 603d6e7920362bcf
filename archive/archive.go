// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive implements the indexed ".dat" container format used
// to ship game assets: a small header/index of named byte ranges
// followed by their concatenated payloads. An Archive can be backed by
// an owned, mutable byte buffer or a read-only memory-mapped file.
package archive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/eriscorp/darkages-go/internal/daerr"
	"github.com/eriscorp/darkages-go/internal/dalog"
)

// Archive is an indexed collection of named byte ranges over a single
// backing source. The zero value is not usable; construct one with
// Open, OpenMapped, New, or FromDirectory.
type Archive struct {
	src     source
	mutable bool
	format  Format
	entries []Entry
	index   map[string]int // foldName(name) -> index into entries
	closed  bool
}

// New returns an empty, in-memory archive that can be patched and
// saved.
func New() (*Archive, error) {
	m, err := newMemSource()
	if err != nil {
		return nil, err
	}
	return &Archive{src: m, mutable: true, format: FormatLegacy, index: map[string]int{}}, nil
}

// Open reads the archive at path entirely into memory. The resulting
// Archive owns its buffer and may be patched and saved.
func Open(path string) (*Archive, error) {
	return OpenFormat(path, FormatLegacy)
}

// OpenFormat is Open with an explicit index layout; use FormatExtended
// for the "new format" 12-byte-name-plus-20-opaque-bytes variant.
func OpenFormat(path string, format Format) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, daerr.Wrap(daerr.IoError, "archive.Open", err)
	}
	entries, err := parseIndex("archive.Open", data, format)
	if err != nil {
		return nil, err
	}
	payloadStart := headerBytes(len(entries), format)
	src, err := memSourceFrom(data[payloadStart:])
	if err != nil {
		return nil, err
	}
	rebaseOffsets(entries, uint32(payloadStart))
	return newFromEntries(src, true, format, entries), nil
}

// OpenMapped memory-maps the archive at path read-only. Patch and Save
// are rejected on the result.
func OpenMapped(path string) (*Archive, error) {
	return OpenMappedFormat(path, FormatLegacy)
}

// OpenMappedFormat is OpenMapped with an explicit index layout.
func OpenMappedFormat(path string, format Format) (*Archive, error) {
	src, err := openMmapSource(path)
	if err != nil {
		return nil, daerr.Wrap(daerr.IoError, "archive.OpenMapped", err)
	}
	full := make([]byte, src.len())
	if err := src.readAt(full, 0); err != nil {
		src.close()
		return nil, err
	}
	entries, err := parseIndex("archive.OpenMapped", full, format)
	if err != nil {
		src.close()
		return nil, err
	}
	return newFromEntries(src, false, format, entries), nil
}

// Option configures the optional behavior of FromDirectory, Compile,
// and ExtractTo.
type Option func(*options)

type options struct {
	log *dalog.Logger
}

// WithLogger makes the operation log its progress at DEBUG through log.
func WithLogger(log *dalog.Logger) Option {
	return func(o *options) { o.log = log }
}

func resolveOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FromDirectory builds a new in-memory archive from the regular files
// directly inside dir, in OS readdir order. See the Design Notes on
// natural ordering if a specific legacy archive's entry order must be
// reproduced bit-exactly.
func FromDirectory(dir string, opts ...Option) (*Archive, error) {
	o := resolveOptions(opts)
	a, err := New()
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, daerr.Wrap(daerr.IoError, "archive.FromDirectory", err)
	}
	for _, de := range ents {
		if de.IsDir() {
			continue
		}
		payload, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, daerr.Wrap(daerr.IoError, "archive.FromDirectory", err)
		}
		if err := a.Patch(de.Name(), payload); err != nil {
			return nil, err
		}
		o.log.Debug("packed entry", "name", de.Name(), "bytes", len(payload))
	}
	return a, nil
}

// Compile rebuilds an archive from the regular files in fromDir and
// writes it to toPath in a single pass, equivalent to
// FromDirectory(fromDir) followed by Save(toPath).
func Compile(fromDir, toPath string, opts ...Option) error {
	o := resolveOptions(opts)
	a, err := FromDirectory(fromDir, opts...)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.Save(toPath); err != nil {
		return err
	}
	o.log.Debug("compiled archive", "from", fromDir, "to", toPath, "entries", len(a.Entries()))
	return nil
}

func newFromEntries(src source, mutable bool, format Format, entries []Entry) *Archive {
	a := &Archive{src: src, mutable: mutable, format: format, entries: entries, index: make(map[string]int, len(entries))}
	for i, e := range entries {
		a.index[foldName(e.Name)] = i
	}
	return a
}

func rebaseOffsets(entries []Entry, delta uint32) {
	for i := range entries {
		entries[i].Offset -= delta
	}
}

// Entries returns the archive's entries in iteration order. The
// returned slice must not be modified.
func (a *Archive) Entries() []Entry { return a.entries }

// GetEntryStream returns a read-only view over the named entry's bytes.
func (a *Archive) GetEntryStream(name string) (io.ReadSeeker, error) {
	if a.closed {
		return nil, daerr.New(daerr.Disposed, "archive.GetEntryStream", "archive is closed")
	}
	i, ok := a.index[foldName(name)]
	if !ok {
		return nil, daerr.New(daerr.MalformedFrame, "archive.GetEntryStream", "no such entry: "+name)
	}
	e := a.entries[i]
	buf := make([]byte, e.Length)
	if err := a.src.readAt(buf, int64(e.Offset)); err != nil {
		return nil, err
	}
	return bytes.NewReader(buf), nil
}

// Patch appends payload as a new entry named name. If name already
// names an entry, that entry is replaced in place — same index, same
// iteration order — to point at the newly appended bytes; the old
// bytes are not reclaimed. Patch only succeeds on a mutable archive.
func (a *Archive) Patch(name string, payload []byte) error {
	if a.closed {
		return daerr.New(daerr.Disposed, "archive.Patch", "archive is closed")
	}
	if !a.mutable {
		return daerr.New(daerr.ReadOnlyArchive, "archive.Patch", "archive is read-only")
	}
	if err := validateName("archive.Patch", name, a.format); err != nil {
		return err
	}
	off, err := a.src.append(payload)
	if err != nil {
		return err
	}
	e := Entry{Name: name, Offset: uint32(off), Length: uint32(len(payload))}
	if i, ok := a.index[foldName(name)]; ok {
		e.Extra = a.entries[i].Extra
		a.entries[i] = e
		return nil
	}
	a.index[foldName(name)] = len(a.entries)
	a.entries = append(a.entries, e)
	return nil
}

// ExtractTo writes every entry as dir/<name>, verbatim.
func (a *Archive) ExtractTo(dir string, opts ...Option) error {
	o := resolveOptions(opts)
	if a.closed {
		return daerr.New(daerr.Disposed, "archive.ExtractTo", "archive is closed")
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return daerr.Wrap(daerr.IoError, "archive.ExtractTo", err)
	}
	buf := make([]byte, 0)
	for _, e := range a.entries {
		if cap(buf) < int(e.Length) {
			buf = make([]byte, e.Length)
		} else {
			buf = buf[:e.Length]
		}
		if err := a.src.readAt(buf, int64(e.Offset)); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name), buf, 0o666); err != nil {
			return daerr.Wrap(daerr.IoError, "archive.ExtractTo", err)
		}
		o.log.Debug("extracted entry", "name", e.Name, "bytes", e.Length)
	}
	return nil
}

// Save re-packs every entry contiguously and writes the canonical
// header/index followed by the concatenated payloads to path. Save
// only succeeds on a mutable archive.
func (a *Archive) Save(path string) error {
	if a.closed {
		return daerr.New(daerr.Disposed, "archive.Save", "archive is closed")
	}
	if !a.mutable {
		return daerr.New(daerr.ReadOnlyArchive, "archive.Save", "archive is read-only")
	}
	ordered := append([]Entry(nil), a.entries...)

	idx, err := encodeIndex("archive.Save", ordered, a.format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return daerr.Wrap(daerr.IoError, "archive.Save", err)
	}
	defer f.Close()
	if _, err := f.Write(idx); err != nil {
		return daerr.Wrap(daerr.IoError, "archive.Save", err)
	}
	buf := make([]byte, 0)
	for _, e := range ordered {
		if cap(buf) < int(e.Length) {
			buf = make([]byte, e.Length)
		} else {
			buf = buf[:e.Length]
		}
		if err := a.src.readAt(buf, int64(e.Offset)); err != nil {
			return err
		}
		if _, err := f.Write(buf); err != nil {
			return daerr.Wrap(daerr.IoError, "archive.Save", err)
		}
	}
	return nil
}

// Close releases the archive's backing source. Subsequent
// GetEntryStream, Patch, ExtractTo, and Save calls report Disposed;
// calling Close again is a no-op.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.src.close()
}
