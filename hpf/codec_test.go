// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpf

import (
	"bytes"
	"math/rand/v2"
	"strconv"
	"testing"
)

func TestRoundTripSmall(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	blob := Compress(in)
	out, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip: got %x want %x", out, in)
	}
}

func TestCompressEmitsHeader(t *testing.T) {
	blob := Compress(nil)
	if len(blob) < 4 || blob[0] != 0x55 || blob[1] != 0xAA || blob[2] != 0x02 || blob[3] != 0xFF {
		t.Fatalf("header = % x, want 55 aa 02 ff prefix", blob[:min(4, len(blob))])
	}
}

func TestRoundTripEmpty(t *testing.T) {
	blob := Compress(nil)
	out, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("decompress(compress(nil)) = %x, want empty", out)
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{0, 1, 2, 17, 256, 4096, 32 << 10} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			in := make([]byte, n)
			for i := range in {
				in[i] = byte(rng.IntN(256))
			}
			blob := Compress(in)
			out, err := Decompress(blob)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(out, in) {
				t.Fatalf("round trip mismatch for n=%d", n)
			}
		})
	}
}

func TestRoundTripAllBytesRepeated(t *testing.T) {
	var in []byte
	for range 16 {
		for b := range 256 {
			in = append(in, byte(b))
		}
	}
	blob := Compress(in)
	out, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecompressMissingHeader(t *testing.T) {
	_, err := Decompress([]byte{0, 1, 2, 3, 4})
	if err == nil {
		t.Fatalf("want error for missing header")
	}
}

func TestDecompressTruncated(t *testing.T) {
	blob := Compress([]byte("hello, darkages"))
	_, err := Decompress(blob[:len(blob)-1])
	if err == nil {
		t.Fatalf("want error for truncated stream")
	}
}
