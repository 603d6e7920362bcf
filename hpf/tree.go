// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hpf implements the adaptive Huffman codec used by HPF assets:
// bit-exact compress/decompress of byte streams framed with the legacy
// 0x55 0xAA 0x02 0xFF header.
package hpf

// EOF is the pseudo-symbol that terminates an encoded stream.
const EOF = 0x100

// numLeaves is the number of symbol leaves: 256 byte values plus EOF.
const numLeaves = 257

// AdaptiveTree is the mutable binary tree shared by the encoder and
// decoder. Rather than a tree of heap-allocated nodes, it is an arena of
// small integers: left and right give the child node IDs of each of the
// 256 internal nodes, and parent maps every node ID (internal or leaf)
// back to its parent. Node IDs 0..255 are internal, 256..511 are the 256
// byte-symbol leaves, and 512 is the EOF leaf. The root is node 0.
//
// A tree is built fresh for every Compress/Decompress call; nothing
// persists across calls.
type AdaptiveTree struct {
	left   [256]int
	right  [256]int
	parent [513]int
}

// NewAdaptiveTree returns a freshly initialized tree: a complete binary
// tree over 256 internal nodes with symbol s (0..255) at leaf s+256 and
// the EOF symbol at leaf 512.
func NewAdaptiveTree() *AdaptiveTree {
	t := new(AdaptiveTree)
	for i := range 256 {
		l, r := 2*i+1, 2*i+2
		t.left[i] = l
		t.right[i] = r
		t.parent[l] = i
		t.parent[r] = i
	}
	return t
}

// leafFor returns the leaf node ID holding symbol sym (0..255, or EOF).
func leafFor(sym int) int { return sym + 0x100 }

// pathTo returns the root-to-leaf sequence of descend bits (0 = left,
// 1 = right) for the leaf currently holding symbol sym.
func (t *AdaptiveTree) pathTo(sym int) []byte {
	node := leafFor(sym)
	var rev []byte
	for node != 0 {
		p := t.parent[node]
		if t.left[p] == node {
			rev = append(rev, 0)
		} else {
			rev = append(rev, 1)
		}
		node = p
	}
	path := make([]byte, len(rev))
	for i, b := range rev {
		path[len(rev)-1-i] = b
	}
	return path
}

// descend walks one step from node following bit (0 = left, 1 = right).
// It reports the impossible-state error if node is not a valid internal
// node index.
func (t *AdaptiveTree) descend(node int, bit int) (int, bool) {
	if node < 0 || node > 0xFF {
		return 0, false
	}
	if bit != 0 {
		return t.right[node], true
	}
	return t.left[node], true
}

// update runs the tree mutation that both encoder and decoder perform
// after seeing the leaf for a symbol, so that the two trees co-evolve
// identically. Starting from leaf v3 and its parent v2, it repeatedly
// swaps v3 with its uncle (the grandparent's other child, the sibling
// of v2), so v3 moves one level closer to the root, then continues one
// level up, stopping once it reaches a zero node.
func (t *AdaptiveTree) update(leaf int) {
	v3 := leaf
	v2 := t.parent[v3]
	for v3 != 0 && v2 != 0 {
		i := t.parent[v2]
		j := t.left[i]
		if j == v2 {
			j = t.right[i]
			t.right[i] = v3
		} else {
			t.left[i] = v3
		}
		if t.left[v2] == v3 {
			t.left[v2] = j
		} else {
			t.right[v2] = j
		}
		t.parent[v3] = i
		t.parent[j] = v2
		v3 = i
		v2 = t.parent[v3]
	}
}
