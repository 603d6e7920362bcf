// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cipher

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"math/rand/v2"
	"testing"
)

func TestSaltSeed0(t *testing.T) {
	salt := generateSalt(0)
	if salt[0] != 0 {
		t.Fatalf("salt[0] = %d, want 0", salt[0])
	}
	if salt[255] != 255 {
		t.Fatalf("salt[255] = %d, want 255", salt[255])
	}
}

func TestKeystream2TableDeterminism(t *testing.T) {
	table := generateKeystream2Table("test")

	inner := md5.Sum([]byte("test"))
	innerHex := hex.EncodeToString(inner[:])
	outer := md5.Sum([]byte(innerHex))
	outerHex := hex.EncodeToString(outer[:])

	if got := string(table[:16]); got != outerHex[:16] {
		t.Fatalf("table[:16] = %q, want %q", got, outerHex[:16])
	}
}

func TestDefaultCipherClientRoundTrip(t *testing.T) {
	c := NewDefault(0)
	payload := []byte{0x11, 0x22, 0x33}

	frame, err := c.EncryptClientData(payload, 0, len(payload)-1, 0, false)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got, err := c.DecryptClientData(frame, false)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip = %x, want %x", got, payload)
	}
}

func TestDefaultCipherServerRoundTrip(t *testing.T) {
	c := NewDefault(0)
	payload := []byte{0xAA, 0x01, 0x02, 0x03, 0x04}

	frame, err := c.EncryptServerData(payload, 0, len(payload)-1, 5, false)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got, err := c.DecryptServerData(frame, false)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip = %x, want %x", got, payload)
	}
}

func TestCipherRoundTripMatrix(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	names := []string{"test", "playerOne", "A"}

	for seed := 0; seed <= 9; seed++ {
		for _, name := range names {
			for _, useKs2 := range []bool{false, true} {
				encC := New(seed, defaultKeystreamBytes())
				decC := New(seed, defaultKeystreamBytes())
				encC.GenerateKeystream2Table(name)
				decC.GenerateKeystream2Table(name)

				for pkt := 0; pkt < 8; pkt++ {
					n := rng.IntN(32)
					payload := make([]byte, n+1)
					for i := range payload {
						payload[i] = byte(rng.IntN(256))
					}
					seq := byte(rng.IntN(256))

					frame, err := encC.EncryptClientData(payload, 0, n, seq, useKs2)
					if err != nil {
						t.Fatalf("seed=%d name=%s ks2=%v encrypt: %v", seed, name, useKs2, err)
					}
					got, err := decC.DecryptClientData(frame, useKs2)
					if err != nil {
						t.Fatalf("seed=%d name=%s ks2=%v decrypt: %v", seed, name, useKs2, err)
					}
					if !bytes.Equal(got, payload) {
						t.Fatalf("seed=%d name=%s ks2=%v pkt=%d: round trip = %x, want %x",
							seed, name, useKs2, pkt, got, payload)
					}
				}
			}
		}
	}
}

func TestEncryptCountZero(t *testing.T) {
	c := NewDefault(0)
	frame, err := c.EncryptClientData([]byte{0x99}, 0, 0, 0, false)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	// opcode, seq, sentinel, 4-byte hash tag, 3-byte nonce footer.
	if len(frame) != 2+1+4+3 {
		t.Fatalf("frame length = %d, want %d", len(frame), 2+1+4+3)
	}
}

func TestEncryptClientDataInvalidRange(t *testing.T) {
	c := NewDefault(0)
	if _, err := c.EncryptClientData([]byte{0x01}, 0, 5, 0, false); err == nil {
		t.Fatal("expected InvalidRange error, got nil")
	}
}

func TestDecryptClientDataTooShort(t *testing.T) {
	c := NewDefault(0)
	if _, err := c.DecryptClientData([]byte{0x01, 0x02}, false); err == nil {
		t.Fatal("expected InvalidRange error, got nil")
	}
}

func defaultKeystreamBytes() [keystreamSize]byte {
	var ks [keystreamSize]byte
	copy(ks[:], "UrkcnItnI")
	ks[3] = 0xE5
	ks[7] = 0xA3
	return ks
}
