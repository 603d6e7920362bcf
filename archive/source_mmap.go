// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapSource is a read-only backing source over a memory-mapped file.
// Archive lookups become direct slice reads of the mapping; Patch and
// Save are rejected, matching the "memory-mapped sources are read-only"
// invariant from the data model.
type mmapSource struct {
	file *os.File
	data []byte
}

// openMmapSource maps the entirety of the file named by path read-only.
func openMmapSource(path string) (*mmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		// unix.Mmap rejects a zero-length mapping, so an empty file
		// is accepted here without one; parseIndex then rejects it
		// as shorter than the count field.
		return &mmapSource{file: f, data: nil}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &mmapSource{file: f, data: data}, nil
}

func (m *mmapSource) readAt(p []byte, off int64) error {
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return errRange("archive.mmapSource.readAt", off, int64(len(p)), int64(len(m.data)))
	}
	copy(p, m.data[off:off+int64(len(p))])
	return nil
}

func (m *mmapSource) len() int64 { return int64(len(m.data)) }

func (m *mmapSource) append([]byte) (int64, error) {
	return 0, errReadOnly("archive.mmapSource.append")
}

func (m *mmapSource) close() error {
	var err error
	if m.data != nil {
		err = unix.Munmap(m.data)
		m.data = nil
	}
	if m.file != nil {
		if cerr := m.file.Close(); err == nil {
			err = cerr
		}
		m.file = nil
	}
	return err
}
