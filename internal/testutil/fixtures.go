package testutil

import (
	"coursecal/internal/model"
)

// Day map shorthands for the common meeting patterns.

func DaysMWF() model.DayMap {
	return model.DayMap{Monday: true, Wednesday: true, Friday: true}
}

func DaysTTh() model.DayMap {
	return model.DayMap{Tuesday: true, Thursday: true}
}

func DaysMW() model.DayMap {
	return model.DayMap{Monday: true, Wednesday: true}
}

// NewSection builds a section with the given meeting pattern. Dates are
// left empty so term defaults apply.
func NewSection(label, start, end string, days model.DayMap) model.Section {
	return model.Section{
		Label:     label,
		StartTime: start,
		EndTime:   end,
		Days:      days,
	}
}

// NewCourse builds a catalog course for the given term label.
func NewCourse(id, code, title string, term model.Term, sections ...model.Section) model.Course {
	return model.Course{
		ID:       id,
		Code:     code,
		Title:    title,
		TermRaw:  string(term),
		Units:    4,
		Hours:    3,
		Sections: sections,
	}
}

// Courses returns a fixed catalog used across tests:
//
//	cs101   MWF 9:00am-10:00am
//	math201 MWF 9:30am-10:30am (overlaps cs101)
//	hist150 TTh 11:00am-12:15pm
//	bio110  two sections, one overlapping cs101 and one free
func Courses(term model.Term) []model.Course {
	return []model.Course{
		NewCourse("cs101", "CS 101", "Intro to Programming", term,
			NewSection("A", "9:00am", "10:00am", DaysMWF())),
		NewCourse("math201", "MATH 201", "Linear Algebra", term,
			NewSection("A", "9:30am", "10:30am", DaysMWF())),
		NewCourse("hist150", "HIST 150", "World History", term,
			NewSection("A", "11:00am", "12:15pm", DaysTTh())),
		NewCourse("bio110", "BIO 110", "General Biology", term,
			NewSection("A", "9:00am", "10:00am", DaysMW()),
			NewSection("B", "2:00pm", "3:00pm", DaysTTh())),
	}
}
