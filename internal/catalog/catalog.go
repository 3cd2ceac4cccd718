// Package catalog supplies the externally produced course catalog. The
// tool consumes this data, it never writes it.
package catalog

import (
	"strings"

	"coursecal/internal/model"
	"coursecal/internal/timeofday"
)

// Catalog is the read side of the course catalog for one loaded term.
type Catalog interface {
	// Term is the term the catalog is currently loaded for.
	Term() model.Term

	// LoadTerm (re)loads the catalog scoped to the given term. Called at
	// startup and again when the session switches terms.
	LoadTerm(term model.Term) error

	// Courses returns every course offered in the loaded term.
	Courses() []model.Course

	// FindCourse resolves a course id within the loaded term.
	FindCourse(id string) (model.Course, bool)
}

// rawCourse mirrors the catalog JSON as scraped, before normalization.
type rawCourse struct {
	CourseID    string       `json:"course_id"`
	CourseCode  string       `json:"course_code"`
	CourseTitle string       `json:"course_title"`
	CurrentTerm string       `json:"current_term"`
	Credits     any          `json:"credits"`
	LatestHours *float64     `json:"latest_hours_per_week"`
	Sections    []rawSection `json:"current_sections"`
}

type rawSection struct {
	Section          string `json:"section"`
	Instructors      string `json:"instructors"`
	ClassNumber      string `json:"class_number"`
	Enrollment       string `json:"enrollment"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Weekdays         string `json:"weekdays"`
	Location         string `json:"location"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	LectureMonday    bool   `json:"lecture_monday"`
	LectureTuesday   bool   `json:"lecture_tuesday"`
	LectureWednesday bool   `json:"lecture_wednesday"`
	LectureThursday  bool   `json:"lecture_thursday"`
	LectureFriday    bool   `json:"lecture_friday"`
	LectureSaturday  bool   `json:"lecture_saturday"`
	LectureSunday    bool   `json:"lecture_sunday"`
}

// normalizeCourse converts a scraped course record into the domain shape.
func normalizeCourse(raw rawCourse) model.Course {
	course := model.Course{
		ID:      raw.CourseID,
		Code:    raw.CourseCode,
		Title:   raw.CourseTitle,
		TermRaw: raw.CurrentTerm,
		Units:   creditsToUnits(raw.Credits),
	}
	if raw.LatestHours != nil {
		course.Hours = *raw.LatestHours
	}
	for _, rs := range raw.Sections {
		course.Sections = append(course.Sections, normalizeSection(rs))
	}
	return course
}

func normalizeSection(raw rawSection) model.Section {
	days := model.DayMap{
		Monday:    raw.LectureMonday,
		Tuesday:   raw.LectureTuesday,
		Wednesday: raw.LectureWednesday,
		Thursday:  raw.LectureThursday,
		Friday:    raw.LectureFriday,
		Saturday:  raw.LectureSaturday,
		Sunday:    raw.LectureSunday,
	}
	// Some scrapes only carry the weekday string.
	if !days.Any() && raw.Weekdays != "" {
		if parsed, err := timeofday.ParseWeekdays(raw.Weekdays); err == nil {
			days = parsed
		}
	}

	enrolled, capacity := splitEnrollment(raw.Enrollment)

	label := raw.Section
	if label == "" {
		label = "default"
	}

	return model.Section{
		Label:       label,
		Instructors: raw.Instructors,
		ClassNumber: raw.ClassNumber,
		Enrolled:    enrolled,
		Capacity:    capacity,
		StartTime:   raw.StartTime,
		EndTime:     raw.EndTime,
		Location:    raw.Location,
		StartDate:   raw.StartDate,
		EndDate:     raw.EndDate,
		Days:        days,
	}
}

// splitEnrollment splits the scraped "enrolled/capacity" string. A
// capacity of 9999 is the registrar's "effectively unlimited" marker.
func splitEnrollment(enrollment string) (enrolled, capacity string) {
	enrolled, capacity = "n/a", "n/a"
	parts := strings.SplitN(enrollment, "/", 2)
	if len(parts) != 2 {
		return
	}
	enrolled = parts[0]
	capacity = parts[1]
	if capacity == "9999" {
		capacity = "n/a"
	}
	return
}

func creditsToUnits(credits any) float64 {
	switch v := credits.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	// Non-numeric credits ("n/a", ranges) count as the standard 4 units.
	return 4
}

// inTerm reports whether a course's free-form term label belongs to the
// given term. Matching is by season word, the way the catalog has always
// been filtered.
func inTerm(course model.Course, term model.Term) bool {
	if course.TermRaw == "" {
		return false
	}
	season := term.Season()
	if season == "" {
		return false
	}
	return strings.Contains(strings.ToLower(course.TermRaw), season)
}
