package simd

// MemchrDigitAt returns the index of the first ASCII digit ('0'-'9') at or
// after position at in haystack, or -1 if none is found or at is out of
// bounds. It backs DigitPrefilter, used for patterns whose every
// alternative begins with a digit class (IP octets, numeric fields).
func MemchrDigitAt(haystack []byte, at int) int {
	if at < 0 || at >= len(haystack) {
		return -1
	}
	for i := at; i < len(haystack); i++ {
		if b := haystack[i]; b >= '0' && b <= '9' {
			return i
		}
	}
	return -1
}
