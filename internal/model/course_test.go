package model_test

import (
	"testing"
	"time"

	"coursecal/internal/model"
)

func TestDayMap(t *testing.T) {
	t.Parallel()

	mwf := model.DayMap{Monday: true, Wednesday: true, Friday: true}
	tth := model.DayMap{Tuesday: true, Thursday: true}

	t.Run("On", func(t *testing.T) {
		if !mwf.On(time.Monday) {
			t.Error("expected Monday on")
		}
		if mwf.On(time.Tuesday) {
			t.Error("expected Tuesday off")
		}
	})

	t.Run("Any", func(t *testing.T) {
		if !mwf.Any() {
			t.Error("expected Any() = true")
		}
		if (model.DayMap{}).Any() {
			t.Error("expected Any() = false for zero value")
		}
	})

	t.Run("SharesDay", func(t *testing.T) {
		if mwf.SharesDay(tth) {
			t.Error("MWF and TTh share no day")
		}
		mw := model.DayMap{Monday: true, Wednesday: true}
		if !mwf.SharesDay(mw) {
			t.Error("MWF and MW share Monday")
		}
	})

	t.Run("Weekdays is Sunday-first", func(t *testing.T) {
		days := model.DayMap{Sunday: true, Friday: true, Monday: true}
		got := days.Weekdays()
		want := []time.Weekday{time.Sunday, time.Monday, time.Friday}
		if len(got) != len(want) {
			t.Fatalf("got %d weekdays, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Weekdays()[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})
}

func TestSectionHasLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		location string
		want     bool
	}{
		{location: "Science Hall 201", want: true},
		{location: "", want: false},
		{location: "   ", want: false},
		{location: "TBA", want: false},
		{location: "Room TBA", want: false},
		{location: "To Be Announced", want: false},
	}

	for _, tt := range tests {
		s := model.Section{Location: tt.location}
		if got := s.HasLocation(); got != tt.want {
			t.Errorf("HasLocation(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestCourseResolveSection(t *testing.T) {
	t.Parallel()

	course := model.Course{
		ID: "cs101",
		Sections: []model.Section{
			{Label: "A"},
			{Label: "B"},
		},
	}

	t.Run("labeled section", func(t *testing.T) {
		got, ok := course.ResolveSection("B")
		if !ok || got.Label != "B" {
			t.Errorf("ResolveSection(B) = %q, %v", got.Label, ok)
		}
	})

	t.Run("empty label uses first section", func(t *testing.T) {
		got, ok := course.ResolveSection("")
		if !ok || got.Label != "A" {
			t.Errorf("ResolveSection() = %q, %v", got.Label, ok)
		}
	})

	t.Run("unknown label falls back to first section", func(t *testing.T) {
		got, ok := course.ResolveSection("Z")
		if !ok || got.Label != "A" {
			t.Errorf("ResolveSection(Z) = %q, %v", got.Label, ok)
		}
	})

	t.Run("no sections", func(t *testing.T) {
		empty := model.Course{ID: "none"}
		if _, ok := empty.ResolveSection(""); ok {
			t.Error("expected ok = false for sectionless course")
		}
	})
}

func TestCalendarVisibility(t *testing.T) {
	t.Parallel()

	cal := &model.Calendar{
		Courses: []model.CourseSelection{
			{CourseID: "a"},
			{CourseID: "b"},
			{CourseID: "c"},
		},
		Hidden: map[string]bool{"b": true},
	}

	visible := cal.VisibleCourses()
	if len(visible) != 2 {
		t.Fatalf("got %d visible courses, want 2", len(visible))
	}
	if visible[0].CourseID != "a" || visible[1].CourseID != "c" {
		t.Errorf("visible order = %q, %q", visible[0].CourseID, visible[1].CourseID)
	}
	if !cal.IsHidden("b") {
		t.Error("expected b hidden")
	}
	if cal.IsHidden("missing") {
		t.Error("expected unknown course not hidden")
	}
}

func TestCalendarClone(t *testing.T) {
	t.Parallel()

	orig := &model.Calendar{
		ID:      "cal-1",
		Name:    "Plan",
		Courses: []model.CourseSelection{{CourseID: "a"}},
		Hidden:  map[string]bool{"a": true},
	}

	clone := orig.Clone()
	clone.Courses[0].CourseID = "changed"
	clone.Hidden["b"] = true

	if orig.Courses[0].CourseID != "a" {
		t.Error("clone shares course slice with original")
	}
	if orig.Hidden["b"] {
		t.Error("clone shares hidden map with original")
	}
}
