package main

import (
	"github.com/jar-of-salt/saltgrep/simd"
)

// iterLines calls fn with each line of data (newline stripped, trailing
// '\r' stripped), using simd.Memchr to find line boundaries instead of a
// byte-at-a-time scan — the same primitive prefilter.Builder's memchr path
// is built on, reused here for the CLI's own read loop.
func iterLines(data []byte, fn func(line []byte)) {
	start := 0
	for start <= len(data) {
		rel := simd.Memchr(data[start:], '\n')
		if rel == -1 {
			if start < len(data) {
				fn(trimCR(data[start:]))
			}
			return
		}
		end := start + rel
		fn(trimCR(data[start:end]))
		start = end + 1
	}
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}
