// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"fmt"

	"github.com/eriscorp/darkages-go/internal/daerr"
)

// source is the storage backing an Archive. It is modeled on the
// teacher's split between an in-memory tree and an on-disk tree: one
// interface, two implementations, with mutation confined to the one
// that actually owns writable memory.
type source interface {
	// readAt copies the byte range [off, off+len(p)) into p.
	readAt(p []byte, off int64) error
	// len returns the total size of the backing source.
	len() int64
	// append adds p to the end of the source and returns the offset it
	// was written at. Read-only sources return errReadOnly.
	append(p []byte) (off int64, err error)
	// close releases any OS resources (open file, mapping) held by the
	// source. It is safe to call close more than once.
	close() error
}

func errReadOnly(op string) error {
	return daerr.New(daerr.ReadOnlyArchive, op, "backing source does not support append/save")
}

func errRange(op string, off, n, size int64) error {
	return daerr.New(daerr.InvalidRange, op,
		fmt.Sprintf("range out of bounds: offset=%d length=%d size=%d", off, n, size))
}
