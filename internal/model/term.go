package model

import (
	"regexp"
	"strconv"
	"strings"
)

// Term identifies one academic scheduling period. Calendars and catalog
// views are always scoped to a single term.
type Term string

const (
	TermFall2025   Term = "Fall 2025"
	TermSpring2026 Term = "Spring 2026"
	TermSummer2026 Term = "Summer 2026"
	TermFall2026   Term = "Fall 2026"
)

// SupportedTerms lists every term the tool knows about, in chronological
// order. DefaultTerm is the first entry.
func SupportedTerms() []Term {
	return []Term{TermFall2025, TermSpring2026, TermSummer2026, TermFall2026}
}

// DefaultTerm is the term used when a persisted or shared value is not
// recognized.
func DefaultTerm() Term {
	return TermFall2025
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// NormalizeTerm maps an arbitrary string onto a supported term.
// Matching is case-insensitive on season and year; anything unrecognized
// normalizes to DefaultTerm.
func NormalizeTerm(s string) Term {
	if t, ok := TermForLabel(s); ok {
		return t
	}
	return DefaultTerm()
}

// TermForLabel resolves a free-form term label (catalog values such as
// "2025 Fall" or "Fall 2025") to a supported term. The second return is
// false when no supported term matches.
func TermForLabel(label string) (Term, bool) {
	season := seasonOf(label)
	year := yearOf(label)
	if season == "" {
		return "", false
	}
	for _, t := range SupportedTerms() {
		if t.Season() != season {
			continue
		}
		if year != 0 && t.Year() != year {
			continue
		}
		return t, true
	}
	return "", false
}

// Season returns the lowercase season name of the term ("fall", "spring",
// "summer", "winter"), or "" when the label carries none.
func (t Term) Season() string {
	return seasonOf(string(t))
}

// Year returns the 4-digit year embedded in the term label, or 0 when the
// label carries none.
func (t Term) Year() int {
	return yearOf(string(t))
}

func seasonOf(s string) string {
	lower := strings.ToLower(s)
	for _, season := range []string{"fall", "spring", "summer", "winter"} {
		if strings.Contains(lower, season) {
			return season
		}
	}
	return ""
}

func yearOf(s string) int {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
