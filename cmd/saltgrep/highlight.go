package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jar-of-salt/saltgrep/nfa"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// printMatchedLine writes line to w with every span in spans wrapped in
// ANSI red, optionally prefixed with a 1-based line number. spans must be
// sorted and non-overlapping, which TryFindIterAt's non-overlapping
// iteration already guarantees.
func printMatchedLine(w io.Writer, line string, spans []nfa.Match, lineNo int, withLineNumber bool) {
	if withLineNumber {
		io.WriteString(w, strconv.Itoa(lineNo))
		io.WriteString(w, ":")
	}

	prev := 0
	for _, m := range spans {
		io.WriteString(w, line[prev:m.Start])
		fmt.Fprintf(w, "%s%s%s", ansiRed, line[m.Start:m.End], ansiReset)
		prev = m.End
	}
	io.WriteString(w, line[prev:])
	io.WriteString(w, "\n")
}
