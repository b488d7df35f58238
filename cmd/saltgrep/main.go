// Command saltgrep reads a file line by line and prints the lines matching
// a pattern, with the matched substrings highlighted.
package main

import (
	"os"

	"github.com/jar-of-salt/saltgrep"
	"github.com/jar-of-salt/saltgrep/nfa"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
)

type options struct {
	pattern    string
	file       string
	lineNumber bool
	count      bool
}

func main() {
	opts := parseFlags()

	re, err := saltgrep.Compile(opts.pattern)
	if err != nil {
		gologger.Fatal().Msgf("invalid pattern %q: %s\n", opts.pattern, err)
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		gologger.Fatal().Msgf("could not read file: %s\n", err)
	}

	matched := grepLines(re, data, os.Stdout, opts)

	if opts.count {
		gologger.Info().Msgf("%d matching line(s)", matched)
	}

	if matched == 0 {
		os.Exit(1)
	}
}

// parseFlags builds the saltgrep flag set, mirroring the teacher CLI's
// grouped goflags.NewFlagSet usage (named flags rather than bare
// positionals, since goflags has no positional-argument primitive).
func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Small regular-expression grep over a single file.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.pattern, "pattern", "p", "", "pattern to search for"),
		flagSet.StringVarP(&opts.file, "file", "f", "", "file to search"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.lineNumber, "line-number", "n", false, "prefix matched lines with their line number"),
		flagSet.BoolVarP(&opts.count, "count", "c", false, "print only the count of matching lines"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not parse flags: %s\n", err)
	}

	if opts.pattern == "" || opts.file == "" {
		gologger.Fatal().Msgf("both -pattern and -file are required\n")
	}

	return opts
}

// grepLines walks data line by line via iterLines, writing matched lines
// (optionally line-numbered and highlighted) to w, and returns the number
// of matching lines found.
func grepLines(re *saltgrep.Regexp, data []byte, w *os.File, opts *options) int {
	matched := 0
	lineNo := 0
	iterLines(data, func(lineBytes []byte) {
		lineNo++
		line := string(lineBytes)

		spans := findAllNonOverlapping(re, line)
		if len(spans) == 0 {
			return
		}
		matched++
		if opts.count {
			return
		}
		printMatchedLine(w, line, spans, lineNo, opts.lineNumber)
	})
	return matched
}

// findAllNonOverlapping collects every non-overlapping match in line using
// the compiled pattern's own iteration primitive, so the CLI never
// re-implements the "advance past zero-width matches" rule itself.
func findAllNonOverlapping(re *saltgrep.Regexp, line string) []nfa.Match {
	var spans []nfa.Match
	_ = re.TryFindIterAt(line, 0, func(m nfa.Match) (bool, error) {
		spans = append(spans, m)
		return true, nil
	})
	return spans
}
