// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package darkages is the root of the DarkAges support library: the
// hpf adaptive Huffman codec, the cipher packet cipher, and the
// archive indexed container format. It holds no behavior of its own
// beyond version identification; import the subpackages directly.
package darkages

// Version is the library's semantic version, bumped on any change to
// wire-format or on-disk compatibility.
const Version = "0.1.0"
