// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cipher implements the DarkAges packet cipher: a seed-salted,
// dual-keystream XOR stream cipher with MD5-tagged, sequence-bound
// client→server and server→client packet framing.
package cipher

import (
	"github.com/eriscorp/darkages-go/internal/daerr"
	"github.com/eriscorp/darkages-go/internal/fastmd5"
)

// scratchSize bounds the payload a single transform call can process
// in place. It mirrors the legacy client's fixed packet scratch buffer
// rather than growing on demand — a payload larger than this is not a
// real game packet.
const scratchSize = 65532

// defaultKeystreamName is the session keystream a default
// PacketCipher (built with [NewDefault]) is keyed with. Bytes 3 and 7
// are deliberately corrupted from the ASCII source string — see
// [NewDefault].
const defaultKeystreamName = "UrkcnItnI"

// PacketCipher encrypts and decrypts DarkAges packet frames. It is not
// safe for concurrent use: every call mutates a shared scratch buffer
// in place, and the nonce generator is stateful and must see every
// packet's call in sequence order.
type PacketCipher struct {
	seed            int
	salt            [saltSize]byte
	keystream1      [keystreamSize]byte
	keystream2Table [keystream2TableSize]byte
	nonce           *nonceLCG
	scratch         [scratchSize]byte
}

// New returns a PacketCipher seeded with seed and keyed with
// keystream1 as its session (non-per-packet) keystream.
func New(seed int, keystream1 [keystreamSize]byte) *PacketCipher {
	c := &PacketCipher{keystream1: keystream1, nonce: newNonceLCG()}
	c.SetSeed(seed)
	return c
}

// NewDefault returns a PacketCipher with the legacy default keystream:
// the ASCII bytes of "UrkcnItnI" with indices 3 and 7 overwritten to
// 0xE5 and 0xA3. This corruption is a wire-compatibility requirement,
// not a bug — any implementation that "fixes" it cannot talk to a
// legacy client using the default keystream.
func NewDefault(seed int) *PacketCipher {
	var ks [keystreamSize]byte
	copy(ks[:], defaultKeystreamName)
	ks[3] = 0xE5
	ks[7] = 0xA3
	return New(seed, ks)
}

// SetSeed changes the cipher's seed, regenerating its salt table.
func (c *PacketCipher) SetSeed(seed int) {
	c.seed = seed
	c.salt = generateSalt(seed)
}

// Seed reports the cipher's current seed.
func (c *PacketCipher) Seed() int { return c.seed }

// GenerateKeystream2Table derives the cipher's per-packet keystream
// source table from name (typically the account or character name),
// normally called once after login.
func (c *PacketCipher) GenerateKeystream2Table(name string) {
	c.keystream2Table = generateKeystream2Table(name)
}

// transform applies the cipher's symmetric XOR transform to buf in
// place, using keystream and sequence byte seq.
func (c *PacketCipher) transform(buf []byte, seq byte, keystream *[keystreamSize]byte) {
	for i := range buf {
		b := buf[i]
		b ^= c.salt[seq]
		b ^= keystream[i%keystreamSize]
		saltIdx := byte((i / keystreamSize) % saltSize)
		if saltIdx != seq {
			b ^= c.salt[saltIdx]
		}
		buf[i] = b
	}
}

func (c *PacketCipher) keystreamFor(useKeystream2 bool, a uint16, b uint8) [keystreamSize]byte {
	if useKeystream2 {
		return deriveKeystream2(&c.keystream2Table, a, b)
	}
	return c.keystream1
}

// EncryptClientData builds an encrypted client→server frame from
// data[offset], the plaintext opcode, and the count bytes of payload
// following it. seq is the packet sequence byte; useKeystream2 selects
// the per-packet keystream derived from this packet's nonce (and adds
// the opcode echo that entails) over the session keystream1. A fresh
// nonce is drawn and written to the footer on every call either way.
func (c *PacketCipher) EncryptClientData(data []byte, offset, count int, seq byte, useKeystream2 bool) ([]byte, error) {
	if offset < 0 || count < 0 || offset+1+count > len(data) {
		return nil, daerr.New(daerr.InvalidRange, "cipher.EncryptClientData", "offset/count outside buffer")
	}
	if count > scratchSize {
		return nil, daerr.New(daerr.InvalidRange, "cipher.EncryptClientData", "payload exceeds scratch capacity")
	}
	opcode := data[offset]

	payload := c.scratch[:count]
	copy(payload, data[offset+1:offset+1+count])
	a, b := c.nonce.next()
	ks := c.keystreamFor(useKeystream2, a, b)
	c.transform(payload, seq, &ks)

	frameLen := 2 + count + 1 + 4 + 3
	if useKeystream2 {
		frameLen++
	}
	frame := make([]byte, 0, frameLen)
	frame = append(frame, opcode, seq)
	frame = append(frame, payload...)
	frame = append(frame, 0x00)
	if useKeystream2 {
		frame = append(frame, opcode)
	}

	sum := fastmd5.Sum(frame)
	frame = append(frame, sum[13], sum[3], sum[11], sum[7])

	axor := a ^ 0x7470
	frame = append(frame, byte(axor), b^0x23, byte(axor>>8))
	return frame, nil
}

// DecryptClientData recovers the plaintext opcode-and-payload from an
// encrypted client→server frame produced by EncryptClientData. The
// returned slice is {opcode} followed by the count payload bytes
// originally passed to EncryptClientData. useKeystream2 must match the
// flag the frame was encrypted with; the MD5 tag is not verified, per
// legacy behavior.
func (c *PacketCipher) DecryptClientData(frame []byte, useKeystream2 bool) ([]byte, error) {
	overhead := 2 + 1 + 4 + 3
	if useKeystream2 {
		overhead++
	}
	if len(frame) < overhead {
		return nil, daerr.New(daerr.InvalidRange, "cipher.DecryptClientData", "frame shorter than fixed overhead")
	}
	footer := frame[len(frame)-3:]
	axor := uint16(footer[0]) | uint16(footer[2])<<8
	a := axor ^ 0x7470
	b := footer[1] ^ 0x23

	opcode := frame[0]
	seq := frame[1]
	count := len(frame) - overhead

	ks := c.keystreamFor(useKeystream2, a, b)
	payload := c.scratch[:count]
	copy(payload, frame[2:2+count])
	c.transform(payload, seq, &ks)

	out := make([]byte, 0, 1+count)
	out = append(out, opcode)
	out = append(out, payload...)
	return out, nil
}

// EncryptServerData builds an encrypted server→client frame. Unlike
// the client direction, there is no MD5 tag or sentinel byte.
func (c *PacketCipher) EncryptServerData(data []byte, offset, count int, seq byte, useKeystream2 bool) ([]byte, error) {
	if offset < 0 || count < 0 || offset+1+count > len(data) {
		return nil, daerr.New(daerr.InvalidRange, "cipher.EncryptServerData", "offset/count outside buffer")
	}
	if count > scratchSize {
		return nil, daerr.New(daerr.InvalidRange, "cipher.EncryptServerData", "payload exceeds scratch capacity")
	}
	opcode := data[offset]

	payload := c.scratch[:count]
	copy(payload, data[offset+1:offset+1+count])
	a, b := c.nonce.next()
	ks := c.keystreamFor(useKeystream2, a, b)
	c.transform(payload, seq, &ks)

	frame := make([]byte, 0, 2+count+3)
	frame = append(frame, opcode, seq)
	frame = append(frame, payload...)

	axor := a ^ 0x6474
	frame = append(frame, byte(axor), b^0x24, byte(axor>>8))
	return frame, nil
}

// DecryptServerData recovers the plaintext opcode-and-payload from an
// encrypted server→client frame produced by EncryptServerData.
func (c *PacketCipher) DecryptServerData(frame []byte, useKeystream2 bool) ([]byte, error) {
	const overhead = 2 + 3
	if len(frame) < overhead {
		return nil, daerr.New(daerr.InvalidRange, "cipher.DecryptServerData", "frame shorter than fixed overhead")
	}
	footer := frame[len(frame)-3:]
	axor := uint16(footer[0]) | uint16(footer[2])<<8
	a := axor ^ 0x6474
	b := footer[1] ^ 0x24

	opcode := frame[0]
	seq := frame[1]
	count := len(frame) - overhead

	ks := c.keystreamFor(useKeystream2, a, b)
	payload := c.scratch[:count]
	copy(payload, frame[2:2+count])
	c.transform(payload, seq, &ks)

	out := make([]byte, 0, 1+count)
	out = append(out, opcode)
	out = append(out, payload...)
	return out, nil
}
