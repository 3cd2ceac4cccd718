package schedule

import (
	"coursecal/internal/model"
	"coursecal/internal/timeofday"
)

// Overlaps reports whether two sections collide: they share at least one
// meeting weekday and their time intervals [start, end) strictly
// intersect. A section missing day or time information never overlaps
// anything; it is treated as unscheduled.
func Overlaps(a, b model.Section) bool {
	if !a.Days.Any() || !b.Days.Any() {
		return false
	}
	if !a.Days.SharesDay(b.Days) {
		return false
	}

	aStart, err := timeofday.Parse(a.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := timeofday.Parse(a.EndTime)
	if err != nil {
		return false
	}
	bStart, err := timeofday.Parse(b.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := timeofday.Parse(b.EndTime)
	if err != nil {
		return false
	}

	return max(aStart, bStart) < min(aEnd, bEnd)
}

// CourseBlocked reports whether a candidate course cannot fit the
// schedule at all: every section it offers conflicts with some currently
// visible selected section. If at least one section is conflict-free the
// course is not blocked. A course with nothing to compare against, or
// with no scheduled sections, is never blocked.
func CourseBlocked(candidate model.Course, visible []model.Section) bool {
	if len(visible) == 0 || len(candidate.Sections) == 0 {
		return false
	}
	for _, section := range candidate.Sections {
		if !conflictsWithAny(section, visible) {
			return false
		}
	}
	return true
}

func conflictsWithAny(section model.Section, visible []model.Section) bool {
	for _, v := range visible {
		if Overlaps(section, v) {
			return true
		}
	}
	return false
}
