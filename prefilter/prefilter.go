// Package prefilter provides fast candidate filtering for regex search using
// a literal prefix extracted from the compiled NFA.
//
// A prefilter is used to quickly reject positions in the haystack that cannot
// possibly match the full pattern. This provides dramatic speedup for patterns
// that begin with a required literal, since SIMD-accelerated search primitives
// can be used instead of running the full automaton at every position.
//
// The package selects the prefilter strategy based on the extracted prefix:
//   - Single byte  -> memchrPrefilter (SIMD byte search)
//   - Multi byte   -> memmemPrefilter (SIMD substring search)
//   - No prefix    -> nil (caller falls back to scanning with the automaton)
package prefilter

import (
	"github.com/jar-of-salt/saltgrep/simd"
)

// Prefilter is used to quickly find candidate match positions before running
// the full NFA simulation.
//
// A prefilter match is a candidate, not a confirmed match: the caller must
// still run the automaton at the returned position, unless IsComplete
// reports that the literal alone is sufficient.
type Prefilter interface {
	// Find returns the index of the first candidate position at or after
	// start, or -1 if no candidate exists in haystack[start:].
	Find(haystack []byte, start int) int

	// IsComplete reports whether a prefilter hit is itself a full match,
	// letting the caller skip NFA verification entirely. This holds only
	// when the compiled pattern is an exact literal with no other atoms.
	IsComplete() bool

	// LiteralLen returns the byte length of the match when IsComplete is
	// true, and 0 otherwise.
	LiteralLen() int

	// HeapBytes reports the heap memory retained by this prefilter, for
	// profiling.
	HeapBytes() int
}

// Builder constructs the best available prefilter for a required literal
// prefix.
type Builder struct {
	prefix   []byte
	complete bool
}

// NewBuilder creates a builder from a required prefix.
//
// prefix is the sequence of bytes every match must begin with, as determined
// by walking the compiled machine's leading literal states. complete
// indicates the pattern is exactly this literal and nothing more, so a
// prefilter hit needs no further verification.
func NewBuilder(prefix []byte, complete bool) *Builder {
	return &Builder{prefix: prefix, complete: complete}
}

// Build returns the selected Prefilter, or nil if prefix is empty.
func (b *Builder) Build() Prefilter {
	switch len(b.prefix) {
	case 0:
		return nil
	case 1:
		return newMemchrPrefilter(b.prefix[0], b.complete)
	default:
		return newMemmemPrefilter(b.prefix, b.complete)
	}
}

// memchrPrefilter wraps simd.Memchr as a Prefilter for single-byte prefixes.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{needle: needle, complete: complete}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }

func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchrPrefilter) HeapBytes() int { return 0 }

// memmemPrefilter wraps simd.Memmem as a Prefilter for multi-byte prefixes.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)
	return &memmemPrefilter{needle: needleCopy, complete: complete}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }

func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmemPrefilter) HeapBytes() int { return len(p.needle) }
