// Package spellcheck flags known misspellings with a fixed substitution
// rule table. It is a pattern matcher, not a dictionary: only substrings
// listed in the table are ever reported.
package spellcheck

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Finding is one flagged token with replacement candidates and the
// surrounding text for display.
type Finding struct {
	Token       string   `json:"token"`
	Suggestions []string `json:"suggestions"`
	Context     string   `json:"context"`
	Info        string   `json:"info"`
}

type rule struct {
	bad         string
	suggestions []string
	info        string
}

var defaultRules = []rule{
	{"teh", []string{"the"}, "common transposition"},
	{"recieve", []string{"receive"}, "i before e"},
	{"seperate", []string{"separate"}, "common misspelling"},
	{"definately", []string{"definitely"}, "common misspelling"},
	{"occured", []string{"occurred"}, "double the r"},
	{"untill", []string{"until"}, "single l"},
	{"wich", []string{"which"}, "missing h"},
	{"becuase", []string{"because"}, "common transposition"},
	{"accomodate", []string{"accommodate"}, "double c, double m"},
	{"alot", []string{"a lot", "allot"}, "two words"},
	{"existance", []string{"existence"}, "ends in -ence"},
	{"enviroment", []string{"environment"}, "missing n"},
	{"publically", []string{"publicly"}, "common misspelling"},
	{"concious", []string{"conscious"}, "missing s"},
	{"recomend", []string{"recommend"}, "double m"},
}

const contextRadius = 24

type Checker struct {
	rules []rule
}

func NewChecker() *Checker {
	return &Checker{rules: defaultRules}
}

// Check scans text for every rule-table entry, case-insensitively, and
// returns one finding per occurrence, grouped by rule.
func (c *Checker) Check(text string) []Finding {
	lower := strings.ToLower(text)
	findings := []Finding{}

	for _, r := range c.rules {
		for start := 0; ; {
			idx := strings.Index(lower[start:], r.bad)
			if idx == -1 {
				break
			}
			pos := start + idx
			end := pos + len(r.bad)
			if wordBounded(lower, pos, end) {
				findings = append(findings, Finding{
					Token:       text[pos:end],
					Suggestions: r.suggestions,
					Context:     contextAround(text, pos, end),
					Info:        r.info,
				})
			}
			start = end
		}
	}

	return findings
}

// wordBounded reports whether text[pos:end] is not embedded inside a
// larger word ("teh" must not fire inside "tether").
func wordBounded(text string, pos, end int) bool {
	if pos > 0 && isWordByte(text[pos-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || b == '\'' || b >= 0x80
}

func contextAround(text string, pos, end int) string {
	lo := pos - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	// The window must open and close on rune boundaries or the ellipsed
	// context comes back as invalid UTF-8.
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	ctx := strings.TrimSpace(text[lo:hi])
	if lo > 0 {
		ctx = "…" + ctx
	}
	if hi < len(text) {
		ctx += "…"
	}
	return ctx
}
