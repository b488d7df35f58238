package simd

// Memmem returns the index of the first occurrence of needle in haystack,
// or -1 if it does not occur. It backs the multi-byte literal prefilter
// built from a compiled pattern's required prefix.
//
// The search anchors on needle's last byte rather than its first: Memchr
// scans for candidate positions of that byte with the SWAR loop above,
// and each candidate is verified by comparing the rest of needle
// backwards from there. Anchoring on the last byte lets a prefix like
// "error" skip past every "err" that isn't actually followed by "or".
func Memmem(haystack, needle []byte) int {
	n, m := len(haystack), len(needle)
	if m == 0 {
		return 0
	}
	if m > n {
		return -1
	}

	last := needle[m-1]
	pos := m - 1
	for pos < n {
		rel := Memchr(haystack[pos:], last)
		if rel == -1 {
			return -1
		}
		pos += rel
		start := pos - (m - 1)
		if matchesAt(haystack, needle, start) {
			return start
		}
		pos++
	}
	return -1
}

// matchesAt reports whether needle occurs in haystack at start, comparing
// back-to-front since the caller has already confirmed the last byte.
func matchesAt(haystack, needle []byte, start int) bool {
	for i := len(needle) - 2; i >= 0; i-- {
		if haystack[start+i] != needle[i] {
			return false
		}
	}
	return true
}
