package store

import (
	"encoding/json"
	"fmt"

	"coursecal/internal/model"
)

// Persisted state is a JSON document with a discriminated version tag.
// Two legacy shapes are still recognized and migrated on load:
//
//	v0: the single-course-list era, {"myCourses": [...], "hiddenCourses": {...}}
//	    (or a bare array of course objects)
//	v1: a versionless array of calendar records whose courses could
//	    silently span terms
//	v2: {"version": 2, "active": ..., "term": ..., "calendars": [...]}
//
// Decoding sniffs the shape and falls through the chain v0 -> v1 -> v2.

const stateVersion = 2

type stateEnvelope struct {
	Version   int               `json:"version"`
	Active    string            `json:"active"`
	Term      model.Term        `json:"term"`
	Calendars []*model.Calendar `json:"calendars"`
}

// legacyCalendar is a pre-versioning calendar record. Courses were stored
// as full course objects; only the fields migration needs are decoded.
type legacyCalendar struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Term       string          `json:"term"`
	Courses    []legacyCourse  `json:"courses"`
	Hidden     map[string]bool `json:"hiddenCourses"`
	SourceHash string          `json:"sourceHash"`
}

type legacyCourse struct {
	CourseID        string         `json:"course_id"`
	YearTerm        string         `json:"year_term"`
	CurrentTerm     string         `json:"current_term"`
	SelectedSection *legacySection `json:"selectedSection"`
}

type legacySection struct {
	Section string `json:"section"`
}

type decodedState struct {
	calendars []*model.Calendar
	activeID  string
	term      model.Term
}

func encodeState(calendars []*model.Calendar, activeID string, term model.Term) ([]byte, error) {
	env := stateEnvelope{
		Version:   stateVersion,
		Active:    activeID,
		Term:      term,
		Calendars: calendars,
	}
	return json.MarshalIndent(env, "", "  ")
}

// decodeState decodes a persisted document of any recognized vintage into
// current-shape state.
func decodeState(data []byte, idgen IDGenerator) (*decodedState, error) {
	// Current envelope: an object carrying a version tag.
	var env stateEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version >= stateVersion {
		for _, c := range env.Calendars {
			c.Term = model.NormalizeTerm(string(c.Term))
		}
		return &decodedState{
			calendars: env.Calendars,
			activeID:  env.Active,
			term:      model.NormalizeTerm(string(env.Term)),
		}, nil
	}

	// v1: a bare array, either of calendar records or (older still, v0)
	// of course objects.
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err == nil {
		if len(elements) == 0 {
			return &decodedState{}, nil
		}
		if looksLikeCalendar(elements[0]) {
			var records []legacyCalendar
			if err := json.Unmarshal(data, &records); err != nil {
				return nil, fmt.Errorf("decoding legacy calendar list: %w", err)
			}
			return migrateLegacy(records, idgen), nil
		}
		var courses []legacyCourse
		if err := json.Unmarshal(data, &courses); err != nil {
			return nil, fmt.Errorf("decoding legacy course list: %w", err)
		}
		return migrateLegacy([]legacyCalendar{synthesized(courses, nil, idgen)}, idgen), nil
	}

	// v0: the single-list object shape.
	var flat struct {
		MyCourses []legacyCourse  `json:"myCourses"`
		Hidden    map[string]bool `json:"hiddenCourses"`
	}
	if err := json.Unmarshal(data, &flat); err == nil && flat.MyCourses != nil {
		return migrateLegacy([]legacyCalendar{synthesized(flat.MyCourses, flat.Hidden, idgen)}, idgen), nil
	}

	return nil, fmt.Errorf("unrecognized calendar state shape")
}

func looksLikeCalendar(element json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(element, &probe); err != nil {
		return false
	}
	_, hasCourses := probe["courses"]
	_, hasName := probe["name"]
	return hasCourses || hasName
}

// synthesized wraps a flat course list in a single calendar record so the
// v1 migration can take over.
func synthesized(courses []legacyCourse, hidden map[string]bool, idgen IDGenerator) legacyCalendar {
	return legacyCalendar{
		ID:      idgen.New(),
		Name:    "Calendar 1",
		Courses: courses,
		Hidden:  hidden,
	}
}

// migrateLegacy converts pre-versioning calendar records into term-scoped
// calendars. Terms were not a first-class dimension before, so a single
// record's courses may span terms; such records are split into one
// calendar per term, with only the first emitted split retaining the
// original id.
func migrateLegacy(records []legacyCalendar, idgen IDGenerator) *decodedState {
	out := &decodedState{}

	for _, rec := range records {
		fallback := model.NormalizeTerm(rec.Term)
		baseName := stripTermSuffix(rec.Name)
		if baseName == "" {
			baseName = "Calendar 1"
		}

		grouped := groupByTerm(rec.Courses, fallback)

		// Deterministic emission order.
		terms := make([]model.Term, 0, len(grouped))
		for _, t := range model.SupportedTerms() {
			if _, ok := grouped[t]; ok {
				terms = append(terms, t)
			}
		}
		if len(terms) == 0 {
			terms = append(terms, fallback)
			grouped[fallback] = nil
		}

		for i, term := range terms {
			cal := &model.Calendar{
				ID:         idgen.New(),
				Name:       uniqueName(baseName, term, out.calendars),
				Term:       term,
				Courses:    grouped[term],
				SourceHash: rec.SourceHash,
			}
			if i == 0 && rec.ID != "" {
				cal.ID = rec.ID
			}
			if len(terms) == 1 {
				// Hidden flags carry over whole, stale entries included.
				cal.Hidden = rec.Hidden
			} else {
				cal.Hidden = hiddenFor(rec.Hidden, cal.Courses)
			}
			out.calendars = append(out.calendars, cal)
		}
	}

	if len(out.calendars) > 0 {
		out.activeID = out.calendars[0].ID
		out.term = out.calendars[0].Term
	}
	return out
}

// groupByTerm buckets legacy course entries by each course's own term
// metadata, falling back to the calendar's recorded term.
func groupByTerm(courses []legacyCourse, fallback model.Term) map[model.Term][]model.CourseSelection {
	grouped := make(map[model.Term][]model.CourseSelection)
	for _, lc := range courses {
		if lc.CourseID == "" {
			continue
		}
		term := fallback
		label := lc.YearTerm
		if label == "" {
			label = lc.CurrentTerm
		}
		if t, ok := model.TermForLabel(label); ok {
			term = t
		}
		sel := model.CourseSelection{CourseID: lc.CourseID}
		if lc.SelectedSection != nil {
			sel.Section = lc.SelectedSection.Section
		}
		grouped[term] = append(grouped[term], sel)
	}
	return grouped
}

// hiddenFor keeps only the hidden flags belonging to the given selections.
func hiddenFor(hidden map[string]bool, courses []model.CourseSelection) map[string]bool {
	if len(hidden) == 0 {
		return nil
	}
	out := make(map[string]bool)
	for _, sel := range courses {
		if v, ok := hidden[sel.CourseID]; ok {
			out[sel.CourseID] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
