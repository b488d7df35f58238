// Package simd provides the small set of byte-scanning primitives the
// prefilter package needs to skip ahead through a haystack without
// invoking the NFA simulator at every position: finding a single byte,
// finding a short literal substring, and finding the next ASCII digit.
//
// Despite the name there is no assembly here. The regex engine only ever
// scans prefilter candidates, never whole files at a time, so the SWAR
// (SIMD-within-a-register) word tricks below already remove the
// byte-by-byte branch from the hot path; a real vectorized backend would
// be the next step if profiling ever showed this package as a bottleneck.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// broadcast replicates b into every byte of a uint64, so it can be XORed
// against an 8-byte chunk to turn matching bytes into zero bytes.
func broadcast(b byte) uint64 {
	return uint64(b) * lo8
}

// firstZeroByte returns the index (0-7) of the first zero byte in v, for
// a v already known to contain one.
func firstZeroByte(v uint64) int {
	return bits.TrailingZeros64(v) / 8
}

// hasZeroByte is the classic Hacker's Delight formula: it is nonzero iff
// v contains a byte equal to 0x00.
func hasZeroByte(v uint64) uint64 {
	return (v - lo8) &^ v & hi8
}

// Memchr returns the index of the first occurrence of needle in
// haystack, or -1 if it does not appear. Used by the single-byte
// prefilter and by the CLI's line splitter to find '\n' boundaries.
func Memchr(haystack []byte, needle byte) int {
	n := len(haystack)
	mask := broadcast(needle)

	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := hasZeroByte(chunk ^ mask); z != 0 {
			return i + firstZeroByte(z)
		}
		i += 8
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}
