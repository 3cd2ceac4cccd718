package store

import (
	"fmt"
	"regexp"

	"coursecal/internal/model"
)

// Name uniqueness is only ever enforced within one term; the same name may
// exist in different terms.

var defaultNamePattern = regexp.MustCompile(`^Calendar (\d+)$`)

// IsDefaultName reports whether a name is an unmodified auto-assigned one.
func IsDefaultName(name string) bool {
	return defaultNamePattern.MatchString(name)
}

// nextDefaultName returns the lowest-numbered unused "Calendar N" among
// the given calendars of the given term.
func nextDefaultName(calendars []*model.Calendar, term model.Term) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("Calendar %d", n)
		if !nameTaken(calendars, term, name) {
			return name
		}
	}
}

// copyName derives a duplicate's name: base + " (copy)", then
// " (copy 2)", " (copy 3)", ... until unique within the term.
func copyName(base string, term model.Term, calendars []*model.Calendar) string {
	name := base + " (copy)"
	for n := 2; nameTaken(calendars, term, name); n++ {
		name = fmt.Sprintf("%s (copy %d)", base, n)
	}
	return name
}

// uniqueName returns base unchanged when free, else base + " (2)",
// " (3)", ... Used by migration when splitting calendars across terms.
func uniqueName(base string, term model.Term, calendars []*model.Calendar) string {
	if !nameTaken(calendars, term, base) {
		return base
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s (%d)", base, n)
		if !nameTaken(calendars, term, name) {
			return name
		}
	}
}

func nameTaken(calendars []*model.Calendar, term model.Term, name string) bool {
	for _, c := range calendars {
		if c.Term == term && c.Name == name {
			return true
		}
	}
	return false
}

var parenTermSuffix = regexp.MustCompile(`\s*\((?i:fall|spring|summer|winter)\s*\d{0,4}\)$`)

// stripTermSuffix removes the parenthetical term suffix the old persisted
// format appended to calendar names, e.g. "My Plan (Fall 2025)".
func stripTermSuffix(name string) string {
	return parenTermSuffix.ReplaceAllString(name, "")
}
