package export

import (
	"time"

	"coursecal/internal/model"
)

// termDates is the fixed per-season table of default term bounds as
// month/day pairs, applied to the canonical year.
var termDates = map[string]struct {
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}{
	"fall":   {time.September, 2, time.December, 19},
	"spring": {time.January, 26, time.May, 6},
	"summer": {time.June, 22, time.August, 7},
	"winter": {time.January, 5, time.January, 23},
}

// canonicalYear determines the year used for term bounds and event dates.
// Preference order: an explicit year in the term label, the earliest
// course start date, then inference from the current date. A term whose
// season has already passed mid-year rolls over to the next year.
func canonicalYear(term model.Term, entries []Entry, now time.Time) int {
	if y := term.Year(); y != 0 {
		return y
	}

	minYear := 0
	for _, e := range entries {
		d, err := parseDate(e.Section.StartDate)
		if err != nil {
			continue
		}
		if minYear == 0 || d.Year() < minYear {
			minYear = d.Year()
		}
	}
	if minYear != 0 {
		return minYear
	}

	year := now.Year()
	switch term.Season() {
	case "spring", "summer", "winter":
		// These sit early in the calendar year; once the current date is
		// past mid-year the upcoming instance is next year's.
		if now.Month() >= time.July {
			year++
		}
	}
	return year
}

// termBounds returns the default start and end dates for the term in the
// canonical year. An end computed before the start collapses to a
// single-day range.
func termBounds(term model.Term, year int, loc *time.Location) (start, end time.Time) {
	season := term.Season()
	td, ok := termDates[season]
	if !ok {
		td = termDates["fall"]
	}
	start = time.Date(year, td.startMonth, td.startDay, 0, 0, 0, 0, loc)
	end = time.Date(year, td.endMonth, td.endDay, 0, 0, 0, 0, loc)
	if end.Before(start) {
		end = start
	}
	return start, end
}

// courseBounds resolves one section's own date range, falling back to the
// term defaults for whichever side is absent or malformed.
func courseBounds(section model.Section, termStart, termEnd time.Time, loc *time.Location) (start, end time.Time) {
	start, end = termStart, termEnd
	if d, err := parseDate(section.StartDate); err == nil {
		start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}
	if d, err := parseDate(section.EndDate); err == nil {
		end = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}
	if end.Before(start) {
		end = start
	}
	return start, end
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
