package saltgrep

import (
	"testing"

	"github.com/jar-of-salt/saltgrep/ast"
	"github.com/jar-of-salt/saltgrep/nfa"
	"github.com/jar-of-salt/saltgrep/token"
)

func assertMatch(t *testing.T, pattern, input, want string) {
	t.Helper()
	re, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	got, ok := re.Find(input)
	if !ok {
		t.Fatalf("Find(%q) against %q: expected match %q, got none", pattern, input, want)
	}
	if input[got.Start:got.End] != want {
		t.Fatalf("Find(%q) against %q: got %q, want %q", pattern, input, input[got.Start:got.End], want)
	}
}

func assertFullMatch(t *testing.T, pattern, input string) {
	t.Helper()
	assertMatch(t, pattern, input, input)
}

func assertNoMatch(t *testing.T, pattern, input string) {
	t.Helper()
	re, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	if _, ok := re.Find(input); ok {
		t.Fatalf("Find(%q) against %q: expected no match", pattern, input)
	}
}

func assertCaptures(t *testing.T, pattern, input string, want map[uint16]nfa.Match) {
	t.Helper()
	re, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	caps, ok := re.Captures(input)
	if !ok {
		t.Fatalf("Captures(%q) against %q: expected a match", pattern, input)
	}
	if len(caps) != len(want) {
		t.Fatalf("Captures(%q) against %q: got %d groups %+v, want %d groups %+v", pattern, input, len(caps), caps, len(want), want)
	}
	for idx, span := range want {
		got, ok := caps[idx]
		if !ok || got != span {
			t.Fatalf("Captures(%q) against %q: group %d got %+v, want %+v", pattern, input, idx, got, span)
		}
	}
}

func TestNFAAlternationWithConcatenation(t *testing.T) {
	assertFullMatch(t, `abcd+(efg)|i`, `i`)
}

func TestExoticEscapeAndWildcard(t *testing.T) {
	assertFullMatch(t, `ab\c.d+(efg)|i`, `abcxdddefg`)
}

func TestWordCharClass(t *testing.T) {
	assertFullMatch(t, `\w`, `a`)
	assertFullMatch(t, `\w+`, `abfhkg10235_1204`)
	assertNoMatch(t, `\w`, `-`)
	assertNoMatch(t, `\w+`, `%^$//-`)

	assertFullMatch(t, `\W`, `&`)
	assertMatch(t, `\W+`, `%^$//_0-`, `%^$//`)
	assertNoMatch(t, `\W`, `a`)
	assertNoMatch(t, `\W+`, `abckjdjfk`)
}

func TestDigitCharClass(t *testing.T) {
	assertFullMatch(t, `\d`, `0`)
	assertFullMatch(t, `\d+`, `1234567890`)
	assertNoMatch(t, `\d`, `^`)
	assertNoMatch(t, `\d+`, `abc(*`)

	assertFullMatch(t, `\D`, `a`)
	assertFullMatch(t, `\D+`, `cddfi*&^w`)
	assertNoMatch(t, `\D`, `1`)
	assertNoMatch(t, `\D+`, `12345`)
}

func TestWhitespaceCharClass(t *testing.T) {
	assertFullMatch(t, `\s`, ` `)
	assertFullMatch(t, `\s+`, " \n")
	assertNoMatch(t, `\s`, `d`)
	assertNoMatch(t, `\s+`, `abc(*`)

	assertFullMatch(t, `\S`, `d`)
	assertFullMatch(t, `\S+`, `cddfi*&^w`)
	assertNoMatch(t, `\S`, "\n")
	assertNoMatch(t, `\S+`, "  \n  ")
}

func TestBasicCharacterClass(t *testing.T) {
	assertFullMatch(t, `[abc]`, `b`)
	assertFullMatch(t, `[a-z]`, `x`)
	assertFullMatch(t, `[a-zA-Z]`, `Y`)

	assertNoMatch(t, `[abc]`, `d`)
	assertNoMatch(t, `[a-z]`, `X`)
	assertNoMatch(t, `[a-zA-Z]`, `5`)
}

func TestBasicNegativeCharacterClass(t *testing.T) {
	assertFullMatch(t, `[^abc]`, `d`)
	assertFullMatch(t, `[^a-z]`, `A`)
	assertFullMatch(t, `[^a-zA-Z]`, `5`)

	assertNoMatch(t, `[^abc]`, `c`)
	assertNoMatch(t, `[^a-z]`, `a`)
	assertNoMatch(t, `[^a-zA-Z]`, `X`)
}

func TestQuantifiedCharacterClass(t *testing.T) {
	assertFullMatch(t, `[abc]+`, `abcabccba`)
	assertFullMatch(t, `[^abc]+`, `def`)
	assertFullMatch(t, `[a-z]*`, `a`)
	assertFullMatch(t, `[^a-z]?`, `A`)
	assertFullMatch(t, `[a-zA-Z]+`, `abcdAXZ`)
	assertFullMatch(t, `[^a-zA-Z]*`, `52787&^%$`)

	assertNoMatch(t, `[abc]+`, `defdfk`)
	assertNoMatch(t, `[^abc]+`, `abc`)
	assertNoMatch(t, `[a-z]+`, `ABC`)
	assertNoMatch(t, `[^a-z]+`, `abc`)
	assertNoMatch(t, `[a-zA-Z]+`, `1203845`)
	assertNoMatch(t, `[^a-zA-Z]+`, `abcACCD`)
}

func TestWildcardMatches(t *testing.T) {
	assertMatch(t, `.*d`, "mod", "mod")
	assertMatch(t, `.*d`, "my mod in rust", "my mod")
}

func TestSimpleCapturingGroup(t *testing.T) {
	assertCaptures(t, `(abc)`, `cdeabcdef`, map[uint16]nfa.Match{
		0: {Start: 3, End: 6},
		1: {Start: 3, End: 6},
	})
}

func TestSimpleStaggeredCapturingGroup(t *testing.T) {
	assertCaptures(t, `123(abc)`, `123abcdfdefg`, map[uint16]nfa.Match{
		0: {Start: 0, End: 6},
		1: {Start: 3, End: 6},
	})
}

func TestCapturingGroup(t *testing.T) {
	assertCaptures(t, `(abc)df(defg)(123)`, `abcdfdefg123`, map[uint16]nfa.Match{
		0: {Start: 0, End: 12},
		1: {Start: 0, End: 3},
		2: {Start: 5, End: 9},
		3: {Start: 9, End: 12},
	})
}

func TestNestedCapturingGroup(t *testing.T) {
	assertCaptures(t, `(a(bc(de)))df(defg)`, `abcdedfdefgh`, map[uint16]nfa.Match{
		0: {Start: 0, End: 11},
		1: {Start: 0, End: 5},
		2: {Start: 1, End: 5},
		3: {Start: 3, End: 5},
		4: {Start: 7, End: 11},
	})
}

func TestCapturingGroupWithAlternation(t *testing.T) {
	assertCaptures(t, `(abc)df(defg)|(123)`, `abcdfdefg123`, map[uint16]nfa.Match{
		0: {Start: 0, End: 9},
		1: {Start: 0, End: 3},
		2: {Start: 5, End: 9},
	})
	assertCaptures(t, `(abc)df(defg)|(123)`, `123abcdfdefg`, map[uint16]nfa.Match{
		0: {Start: 0, End: 3},
		3: {Start: 0, End: 3},
	})
	assertCaptures(t, `(abc)df(defg)|(1(23)a)`, `123abcdfdefg`, map[uint16]nfa.Match{
		0: {Start: 0, End: 4},
		3: {Start: 0, End: 4},
		4: {Start: 1, End: 3},
	})
}

func TestEmptyGroup(t *testing.T) {
	assertCaptures(t, `()af(())d(f()f)`, `afdffdiui`, map[uint16]nfa.Match{
		0: {Start: 0, End: 5},
		1: {Start: 0, End: 0},
		2: {Start: 2, End: 2},
		3: {Start: 2, End: 2},
		4: {Start: 3, End: 5},
		5: {Start: 4, End: 4},
	})
}

func TestCompileLexicalError(t *testing.T) {
	_, err := Compile(`[abc`)
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated character set")
	}
	cErr, ok := err.(*CompileError)
	if !ok || cErr.Kind != LexicalError {
		t.Fatalf("expected LexicalError, got %#v", err)
	}
	var tErr *token.TokenizeError
	if !asTokenizeError(cErr.Err, &tErr) {
		t.Fatalf("expected wrapped *token.TokenizeError, got %#v", cErr.Err)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	_, err := Compile(`(abc`)
	if err == nil {
		t.Fatal("expected a syntax error for an unclosed group")
	}
	cErr, ok := err.(*CompileError)
	if !ok || cErr.Kind != SyntaxErrorKind {
		t.Fatalf("expected SyntaxErrorKind, got %#v", err)
	}
	if _, ok := cErr.Err.(*ast.SyntaxError); !ok {
		t.Fatalf("expected wrapped *ast.SyntaxError, got %#v", cErr.Err)
	}
}

func TestCompileInvalidRange(t *testing.T) {
	_, err := Compile(`[z-a]`)
	if err == nil {
		t.Fatal("expected an error for a descending character range")
	}
	cErr, ok := err.(*CompileError)
	if !ok || cErr.Kind != InvalidRange {
		t.Fatalf("expected InvalidRange, got %#v", err)
	}
}

func asTokenizeError(err error, target **token.TokenizeError) bool {
	tErr, ok := err.(*token.TokenizeError)
	if ok {
		*target = tErr
	}
	return ok
}
