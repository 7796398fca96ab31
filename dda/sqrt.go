package dda

import "golang.org/x/exp/constraints"

// bitSqrt extends seed with the bits firstBit down to 1, keeping the largest
// value whose square does not exceed target. Running each stage at the
// narrowest width that can hold the trial square keeps the routine usable on
// targets without fast wide multiplication, so IntSqrt and IntInvSqrt call
// this once per width stage instead of searching all bits at full width.
func bitSqrt[T constraints.Unsigned](seed, firstBit, target T) T {
	x := seed
	for bit := firstBit; bit != 0; bit >>= 1 {
		x |= bit
		if x*x > target {
			x ^= bit
		}
	}
	return x
}

// IntSqrt returns the integer square root of a: the unique x with
// x*x <= a < (x+1)*(x+1).
//
// The result is found by binary search from the most significant bit down,
// in three stages of increasing width: the top four result bits against the
// top byte of a, the next four against the high word, and the low byte
// against the full input. Worst case is 16 trial squarings.
func IntSqrt(a uint32) uint16 {
	z := bitSqrt[uint8](0, 0x8, uint8(a>>24))
	x := bitSqrt[uint16](uint16(z)<<4, 0x8, uint16(a>>16))
	return uint16(bitSqrt[uint32](uint32(x)<<8, 0x80, a))
}

// IntInvSqrt returns 4096 / sqrt(a), rounded down: the unique x with
// 4096/sqrt(a) - 1 < x <= 4096/sqrt(a).
//
// A 16-bit reciprocal is taken first (0xFFFF rather than 0x10000 keeps the
// first search stage inside 16 bits), shifted up to a 24-bit fixed-point
// target, then resolved with the same staged bit search as IntSqrt: eight
// result bits at 16-bit width, four more at 32-bit width.
//
// a must be non-zero.
func IntInvSqrt(a uint16) uint16 {
	q := (0xFFFF / uint32(a)) << 8
	z := bitSqrt[uint16](0, 0x80, uint16(q>>8))
	return uint16(bitSqrt[uint32](uint32(z)<<4, 0x8, q))
}
