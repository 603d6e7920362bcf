// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cipher

// saltSize is the length of the per-seed salt table mixed into every
// transform position.
const saltSize = 256

// generateSalt derives the 256-byte salt table for seed. The table is
// a pure function of seed; changing a PacketCipher's Seed regenerates
// it from scratch via [PacketCipher.SetSeed].
//
// Each entry is computed from a seed-specific formula over the byte
// index and truncated to its low byte. The legacy generator also
// broadcasts the value into every byte lane of a 32-bit word before
// storing the low byte; that step leaves the low byte unchanged, so it
// is not performed here.
func generateSalt(seed int) [saltSize]byte {
	var salt [saltSize]byte
	for i := 0; i < saltSize; i++ {
		salt[i] = byte(saltFormula(seed, i))
	}
	return salt
}

func saltFormula(seed, i int) int32 {
	odd := i%2 != 0
	sign := int32(1)
	if odd {
		sign = -1
	}
	switch seed {
	case 0:
		return int32(i)
	case 1:
		return sign*int32((i+1)/2) + 128
	case 2:
		return int32(255 - i)
	case 3:
		return sign*int32((255-i)/2) + 128
	case 4:
		v := int32(i / 16)
		return v * v
	case 5:
		return int32((2 * i) % 256)
	case 6:
		return int32(255 - (2*i)%256)
	case 7:
		if i > 127 {
			return int32(2*i - 256)
		}
		return int32(255 - 2*i)
	case 8:
		if i > 127 {
			return int32(511 - 2*i)
		}
		return int32(2 * i)
	case 9:
		v := int32(i-128) / 8
		sq := v * v
		return 255 - sq%256
	default:
		return int32(i)
	}
}
