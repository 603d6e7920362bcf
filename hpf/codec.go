// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpf

import (
	"github.com/eriscorp/darkages-go/internal/daerr"
)

// Header is the 4-byte magic that begins every HPF blob.
var Header = [4]byte{0x55, 0xAA, 0x02, 0xFF}

// Compress encodes data as an HPF blob: the 4-byte header followed by the
// LSB-first packed adaptive-Huffman code for each input byte, terminated
// by the EOF symbol and zero-padded to a byte boundary. Compress never
// fails: there is no input that the encoder cannot represent.
func Compress(data []byte) []byte {
	tree := NewAdaptiveTree()
	w := new(bitWriter)
	for _, b := range data {
		emitSymbol(tree, w, int(b))
	}
	emitSymbol(tree, w, EOF)

	out := make([]byte, 0, 4+len(w.bytes())+1)
	out = append(out, Header[:]...)
	out = append(out, w.bytes()...)
	return out
}

// emitSymbol writes the current root-to-leaf path for sym and then runs
// the tree update, exactly as the decoder does for the same symbol.
func emitSymbol(tree *AdaptiveTree, w *bitWriter, sym int) {
	for _, bit := range tree.pathTo(sym) {
		w.writeBit(bit)
	}
	tree.update(leafFor(sym))
}

// Decompress decodes an HPF blob produced by Compress (or by the legacy
// game client), returning the original bytes. It fails with a
// MalformedFrame error if the header is missing or if tree traversal
// reaches an impossible state.
func Decompress(blob []byte) ([]byte, error) {
	if len(blob) < 4 || blob[0] != Header[0] || blob[1] != Header[1] || blob[2] != Header[2] || blob[3] != Header[3] {
		return nil, daerr.New(daerr.MalformedFrame, "hpf.Decompress", "missing HPF header")
	}

	tree := NewAdaptiveTree()
	r := &bitReader{data: blob[4:]}
	var out []byte
	for {
		node := 0
		for node <= 0xFF {
			bit, ok := r.nextBit()
			if !ok {
				return nil, daerr.New(daerr.MalformedFrame, "hpf.Decompress", "stream ended before EOF symbol")
			}
			next, ok := tree.descend(node, int(bit))
			if !ok {
				return nil, daerr.New(daerr.MalformedFrame, "hpf.Decompress", "impossible tree traversal")
			}
			node = next
		}
		sym := node - 0x100
		if sym == EOF {
			return out, nil
		}
		if sym < 0 || sym > 0xFF {
			return nil, daerr.New(daerr.MalformedFrame, "hpf.Decompress", "impossible leaf symbol")
		}
		out = append(out, byte(sym))
		tree.update(node)
	}
}

// bitWriter packs bits LSB-first into bytes, matching the HPF wire format.
type bitWriter struct {
	buf  []byte
	cur  byte
	nbit uint
}

func (w *bitWriter) writeBit(b byte) {
	if b != 0 {
		w.cur |= 1 << w.nbit
	}
	w.nbit++
	if w.nbit == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nbit = 0
	}
}

// bytes flushes any partial final byte, padding with zero bits, and
// returns the accumulated payload.
func (w *bitWriter) bytes() []byte {
	if w.nbit > 0 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nbit = 0
	}
	return w.buf
}

// bitReader reads bits LSB-first from a byte slice.
type bitReader struct {
	data []byte
	pos  int
	bit  uint
}

func (r *bitReader) nextBit() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}
	b := (r.data[r.pos] >> r.bit) & 1
	r.bit++
	if r.bit == 8 {
		r.bit = 0
		r.pos++
	}
	return b, true
}
