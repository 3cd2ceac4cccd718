package store_test

import (
	"encoding/json"
	"testing"

	"coursecal/internal/model"
	"coursecal/internal/store"
	"coursecal/internal/testutil"
)

func loadSeeded(t *testing.T, doc string) *store.Store {
	t.Helper()
	backend := store.NewMemoryBackendWith([]byte(doc))
	st := store.NewStore(backend, testutil.NewStubIDGenerator())
	if err := st.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return st
}

func TestMigrate_FlatCourseList(t *testing.T) {
	t.Parallel()

	doc := `{
		"myCourses": [
			{"course_id": "cs101", "selectedSection": {"section": "B"}},
			{"course_id": "hist150"}
		],
		"hiddenCourses": {"hist150": true}
	}`
	st := loadSeeded(t, doc)

	cals := st.Calendars()
	if len(cals) != 1 {
		t.Fatalf("got %d calendars, want 1", len(cals))
	}
	cal := cals[0]
	if cal.Name != "Calendar 1" {
		t.Errorf("name = %q, want %q", cal.Name, "Calendar 1")
	}
	if cal.Term != model.DefaultTerm() {
		t.Errorf("term = %q, want %q", cal.Term, model.DefaultTerm())
	}
	if len(cal.Courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(cal.Courses))
	}
	sel, _ := cal.Selection("cs101")
	if sel.Section != "B" {
		t.Errorf("section = %q, want %q", sel.Section, "B")
	}
	if !cal.IsHidden("hist150") {
		t.Error("hidden flag lost in migration")
	}
}

func TestMigrate_BareCourseArray(t *testing.T) {
	t.Parallel()

	doc := `[
		{"course_id": "cs101"},
		{"course_id": "math201"}
	]`
	st := loadSeeded(t, doc)

	cals := st.Calendars()
	if len(cals) != 1 {
		t.Fatalf("got %d calendars, want 1", len(cals))
	}
	if len(cals[0].Courses) != 2 {
		t.Errorf("got %d courses, want 2", len(cals[0].Courses))
	}
}

func TestMigrate_CalendarList(t *testing.T) {
	t.Run("single-term record keeps id and strips the term suffix", func(t *testing.T) {
		t.Parallel()

		doc := `[
			{
				"id": "legacy-1",
				"name": "My Plan (Fall 2025)",
				"term": "Fall 2025",
				"courses": [{"course_id": "cs101"}],
				"hiddenCourses": {"gone": true}
			}
		]`
		st := loadSeeded(t, doc)

		cals := st.Calendars()
		if len(cals) != 1 {
			t.Fatalf("got %d calendars, want 1", len(cals))
		}
		cal := cals[0]
		if cal.ID != "legacy-1" {
			t.Errorf("id = %q, want %q", cal.ID, "legacy-1")
		}
		if cal.Name != "My Plan" {
			t.Errorf("name = %q, want %q", cal.Name, "My Plan")
		}
		// Stale hidden entries are tolerated, not scrubbed.
		if !cal.IsHidden("gone") {
			t.Error("hidden map must carry over whole for a single-term record")
		}
	})

	t.Run("multi-term record splits per term", func(t *testing.T) {
		t.Parallel()

		doc := `[
			{
				"id": "legacy-1",
				"name": "Mixed",
				"term": "Fall 2025",
				"courses": [
					{"course_id": "cs101", "year_term": "2025 Fall"},
					{"course_id": "span300", "year_term": "2026 Spring"}
				],
				"hiddenCourses": {"span300": true}
			}
		]`
		st := loadSeeded(t, doc)

		cals := st.Calendars()
		if len(cals) != 2 {
			t.Fatalf("got %d calendars, want 2", len(cals))
		}

		fall, spring := cals[0], cals[1]
		if fall.Term != model.TermFall2025 || spring.Term != model.TermSpring2026 {
			t.Fatalf("terms = %q, %q", fall.Term, spring.Term)
		}
		// The first split keeps the original id, the rest get fresh ones.
		if fall.ID != "legacy-1" {
			t.Errorf("fall id = %q, want %q", fall.ID, "legacy-1")
		}
		if spring.ID == "legacy-1" {
			t.Error("spring split must get a fresh id")
		}
		if !fall.HasCourse("cs101") || fall.HasCourse("span300") {
			t.Error("fall split has the wrong courses")
		}
		if !spring.HasCourse("span300") {
			t.Error("spring split missing its course")
		}
		// Split hidden maps keep only their own courses' flags.
		if fall.IsHidden("span300") {
			t.Error("fall split must not carry the spring hidden flag")
		}
		if !spring.IsHidden("span300") {
			t.Error("spring split lost its hidden flag")
		}
		if st.ActiveID() != fall.ID {
			t.Errorf("active = %q, want first migrated calendar", st.ActiveID())
		}
	})

	t.Run("name collisions across records are uniquified", func(t *testing.T) {
		t.Parallel()

		doc := `[
			{"id": "a", "name": "Plan", "term": "Fall 2025", "courses": []},
			{"id": "b", "name": "Plan (Fall)", "term": "Fall 2025", "courses": []}
		]`
		st := loadSeeded(t, doc)

		cals := st.Calendars()
		if len(cals) != 2 {
			t.Fatalf("got %d calendars, want 2", len(cals))
		}
		if cals[0].Name != "Plan" {
			t.Errorf("first name = %q, want %q", cals[0].Name, "Plan")
		}
		if cals[1].Name != "Plan (2)" {
			t.Errorf("second name = %q, want %q", cals[1].Name, "Plan (2)")
		}
	})
}

func TestMigrate_CurrentEnvelope(t *testing.T) {
	t.Parallel()

	doc := `{
		"version": 2,
		"active": "cal-b",
		"term": "Spring 2026",
		"calendars": [
			{"id": "cal-a", "name": "Fall", "term": "Fall 2025", "courses": []},
			{"id": "cal-b", "name": "Spring", "term": "Spring 2026", "courses": [{"course_id": "cs101"}]}
		]
	}`
	st := loadSeeded(t, doc)

	if st.ActiveID() != "cal-b" {
		t.Errorf("active = %q, want %q", st.ActiveID(), "cal-b")
	}
	if st.CurrentTerm() != model.TermSpring2026 {
		t.Errorf("term = %q, want %q", st.CurrentTerm(), model.TermSpring2026)
	}
	if len(st.Calendars()) != 2 {
		t.Fatalf("got %d calendars, want 2", len(st.Calendars()))
	}
}

func TestMigrate_RewritesCurrentShape(t *testing.T) {
	t.Parallel()

	backend := store.NewMemoryBackendWith([]byte(`[{"course_id": "cs101"}]`))
	st := store.NewStore(backend, testutil.NewStubIDGenerator())
	if err := st.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// After load the persisted document must already carry the current
	// version tag.
	data, exists, err := backend.Read()
	if err != nil || !exists {
		t.Fatalf("Read() = %v, %v", exists, err)
	}
	var env struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("persisted document is not JSON: %v", err)
	}
	if env.Version != 2 {
		t.Errorf("persisted version = %d, want 2", env.Version)
	}

	// A second load of the migrated document round-trips cleanly.
	st2 := store.NewStore(backend, testutil.NewStubIDGenerator())
	if err := st2.Load(); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if !st2.Calendars()[0].HasCourse("cs101") {
		t.Error("course lost across migration round-trip")
	}
}

func TestMigrate_UnrecognizedShape(t *testing.T) {
	t.Parallel()

	backend := store.NewMemoryBackendWith([]byte(`"just a string"`))
	st := store.NewStore(backend, testutil.NewStubIDGenerator())
	if err := st.Load(); err == nil {
		t.Fatal("expected error for unrecognizable state document")
	}
}
