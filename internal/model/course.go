package model

import (
	"regexp"
	"strings"
	"time"
)

// DayMap records which weekdays a section meets. The JSON keys match the
// persisted shape used since the single-calendar format.
type DayMap struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// On reports whether the section meets on the given weekday.
func (d DayMap) On(w time.Weekday) bool {
	switch w {
	case time.Monday:
		return d.Monday
	case time.Tuesday:
		return d.Tuesday
	case time.Wednesday:
		return d.Wednesday
	case time.Thursday:
		return d.Thursday
	case time.Friday:
		return d.Friday
	case time.Saturday:
		return d.Saturday
	case time.Sunday:
		return d.Sunday
	}
	return false
}

// Any reports whether at least one weekday is active.
func (d DayMap) Any() bool {
	return d.Monday || d.Tuesday || d.Wednesday || d.Thursday || d.Friday || d.Saturday || d.Sunday
}

// SharesDay reports whether two day maps have at least one common weekday.
func (d DayMap) SharesDay(o DayMap) bool {
	for w := time.Sunday; w <= time.Saturday; w++ {
		if d.On(w) && o.On(w) {
			return true
		}
	}
	return false
}

// Weekdays returns the active weekdays in Sunday-first order.
func (d DayMap) Weekdays() []time.Weekday {
	var out []time.Weekday
	for w := time.Sunday; w <= time.Saturday; w++ {
		if d.On(w) {
			out = append(out, w)
		}
	}
	return out
}

// Section is one scheduled meeting pattern of a course.
type Section struct {
	Label       string `json:"section"`
	Instructors string `json:"instructors,omitempty"`
	ClassNumber string `json:"class_number,omitempty"`
	Enrolled    string `json:"enrolled,omitempty"`
	Capacity    string `json:"capacity,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"` // YYYY-MM-DD, term default when empty
	EndDate     string `json:"end_date,omitempty"`
	Days        DayMap `json:"days"`
}

var tbaPattern = regexp.MustCompile(`(?i)\bTBA\b|to be announced`)

// HasLocation reports whether the section has a usable location, treating
// "to be announced" style values as absent.
func (s Section) HasLocation() bool {
	loc := strings.TrimSpace(s.Location)
	return loc != "" && !tbaPattern.MatchString(loc)
}

// Course is one catalog entry with its offered sections.
type Course struct {
	ID       string    `json:"course_id"`
	Code     string    `json:"course_code,omitempty"`
	Title    string    `json:"course_title,omitempty"`
	TermRaw  string    `json:"current_term,omitempty"` // catalog term label, free-form
	Units    float64   `json:"units,omitempty"`
	Hours    float64   `json:"hours,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// DisplayName is the code and title joined for listings.
func (c Course) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(c.Code) + " " + strings.TrimSpace(c.Title))
}

// SectionByLabel returns the named section.
func (c Course) SectionByLabel(label string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Label == label {
			return s, true
		}
	}
	return Section{}, false
}

// DefaultSection returns the course's first section, the one used when no
// explicit choice has been made.
func (c Course) DefaultSection() (Section, bool) {
	if len(c.Sections) == 0 {
		return Section{}, false
	}
	return c.Sections[0], true
}

// ResolveSection returns the section a selection refers to: the labeled
// section when the label is set and present, otherwise the default one.
func (c Course) ResolveSection(label string) (Section, bool) {
	if label != "" {
		if s, ok := c.SectionByLabel(label); ok {
			return s, true
		}
	}
	return c.DefaultSection()
}
