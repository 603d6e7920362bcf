// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"github.com/eriscorp/darkages-go/internal/span"
)

// memMaxReserve bounds the virtual address space a memSource reserves up
// front. Archives are small game assets, not databases; 4 GiB of
// reserved (not committed) address space is effectively free and avoids
// ever needing to grow the reservation itself.
const memMaxReserve = 4 << 30

// memSource is an owned, mutable, in-memory backing source. It is
// growable without the repeated copy a plain append(buf, more...) would
// require, by reserving address space up front the way the teacher's
// disk trees reserve a span for their whole memory image.
type memSource struct {
	sp  *span.Span
	buf []byte // sp.Expand(len(buf))[:len(buf)]
}

// newMemSource returns an empty, growable memSource.
func newMemSource() (*memSource, error) {
	sp, err := span.Reserve(memMaxReserve)
	if err != nil {
		return nil, err
	}
	return &memSource{sp: sp}, nil
}

// memSourceFrom returns a memSource pre-populated with a copy of data.
func memSourceFrom(data []byte) (*memSource, error) {
	m, err := newMemSource()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return m, nil
	}
	buf, err := m.sp.Expand(len(data))
	if err != nil {
		return nil, err
	}
	copy(buf, data)
	m.buf = buf
	return m, nil
}

func (m *memSource) readAt(p []byte, off int64) error {
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return errRange("archive.memSource.readAt", off, int64(len(p)), int64(len(m.buf)))
	}
	copy(p, m.buf[off:off+int64(len(p))])
	return nil
}

func (m *memSource) len() int64 { return int64(len(m.buf)) }

func (m *memSource) append(p []byte) (int64, error) {
	off := len(m.buf)
	buf, err := m.sp.Expand(off + len(p))
	if err != nil {
		return 0, err
	}
	copy(buf[off:], p)
	m.buf = buf
	return int64(off), nil
}

func (m *memSource) close() error {
	if m.sp == nil {
		return nil
	}
	err := m.sp.Release()
	m.sp = nil
	m.buf = nil
	return err
}
