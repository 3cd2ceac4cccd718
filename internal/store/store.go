// Package store owns the set of named calendars, the active-calendar
// pointer and the current term, and persists them after every mutation.
package store

import (
	"errors"
	"fmt"

	"coursecal/internal/model"
)

// Expected domain outcomes. The service layer converts these to silent
// no-ops or notifications; they are never user-facing failures.
var (
	// ErrUnknownCalendar is returned for operations on a calendar id
	// that does not exist.
	ErrUnknownCalendar = errors.New("unknown calendar")

	// ErrLastCalendar is returned when deleting the sole remaining
	// calendar.
	ErrLastCalendar = errors.New("cannot delete the last calendar")

	// ErrNoActiveCalendar is returned for course mutations before Load.
	ErrNoActiveCalendar = errors.New("no active calendar")
)

// IDGenerator produces ids for newly created calendars.
type IDGenerator interface {
	New() string
}

// Store is the calendar store. All mutations apply to the in-memory state
// and are immediately persisted whole-document through the backend.
type Store struct {
	backend Backend
	idgen   IDGenerator

	calendars []*model.Calendar
	activeID  string
	term      model.Term
}

// NewStore creates a Store over the given backend. Call Load before any
// other operation.
func NewStore(backend Backend, idgen IDGenerator) *Store {
	return &Store{backend: backend, idgen: idgen}
}

// Load reads persisted state, migrating legacy shapes as needed. When
// nothing is persisted yet a single empty default calendar is created.
// Postcondition: at least one calendar exists and exactly one is active.
func (s *Store) Load() error {
	data, exists, err := s.backend.Read()
	if err != nil {
		return fmt.Errorf("reading calendar state: %w", err)
	}

	if exists {
		st, err := decodeState(data, s.idgen)
		if err != nil {
			return fmt.Errorf("decoding calendar state: %w", err)
		}
		s.calendars = st.calendars
		s.activeID = st.activeID
		s.term = st.term
	}

	if len(s.calendars) == 0 {
		cal := &model.Calendar{
			ID:   s.idgen.New(),
			Name: nextDefaultName(nil, model.DefaultTerm()),
			Term: model.DefaultTerm(),
		}
		s.calendars = []*model.Calendar{cal}
		s.activeID = cal.ID
		s.term = cal.Term
	}

	if _, ok := s.find(s.activeID); !ok {
		s.activeID = s.calendars[0].ID
	}
	if s.term == "" {
		if active, ok := s.find(s.activeID); ok {
			s.term = active.Term
		}
	}

	return s.persist()
}

// Calendars returns copies of all calendars in creation order.
func (s *Store) Calendars() []*model.Calendar {
	out := make([]*model.Calendar, 0, len(s.calendars))
	for _, c := range s.calendars {
		out = append(out, c.Clone())
	}
	return out
}

// Active returns a copy of the active calendar.
func (s *Store) Active() (*model.Calendar, error) {
	c, ok := s.find(s.activeID)
	if !ok {
		return nil, ErrNoActiveCalendar
	}
	return c.Clone(), nil
}

// ActiveID returns the active calendar's id.
func (s *Store) ActiveID() string { return s.activeID }

// CurrentTerm returns the session's current term.
func (s *Store) CurrentTerm() model.Term { return s.term }

// Find returns a copy of the calendar with the given id.
func (s *Store) Find(id string) (*model.Calendar, bool) {
	c, ok := s.find(id)
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// FindBySourceHash returns the calendar imported from exactly this share
// token, if any. This is a token-identity check, not semantic equality.
func (s *Store) FindBySourceHash(token string) (*model.Calendar, bool) {
	if token == "" {
		return nil, false
	}
	for _, c := range s.calendars {
		if c.SourceHash == token {
			return c.Clone(), true
		}
	}
	return nil, false
}

// SwitchActive sets the active calendar pointer.
func (s *Store) SwitchActive(id string) error {
	cal, ok := s.find(id)
	if !ok {
		return ErrUnknownCalendar
	}
	s.activeID = cal.ID
	s.term = cal.Term
	return s.persist()
}

// Create creates a calendar and makes it active. An empty name gets the
// lowest-numbered unused default name within the term; an empty term gets
// the current term.
func (s *Store) Create(name string, term model.Term) (*model.Calendar, error) {
	if term == "" {
		term = s.term
	}
	term = model.NormalizeTerm(string(term))
	if name == "" {
		name = nextDefaultName(s.calendars, term)
	}
	cal := &model.Calendar{
		ID:   s.idgen.New(),
		Name: name,
		Term: term,
	}
	s.calendars = append(s.calendars, cal)
	s.activeID = cal.ID
	s.term = cal.Term
	if err := s.persist(); err != nil {
		return nil, err
	}
	return cal.Clone(), nil
}

// Delete removes a calendar. Deleting the last remaining calendar is
// rejected. When the deleted calendar was active the first remaining one
// becomes active.
func (s *Store) Delete(id string) error {
	if len(s.calendars) <= 1 {
		return ErrLastCalendar
	}
	idx := -1
	for i, c := range s.calendars {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownCalendar
	}
	s.calendars = append(s.calendars[:idx], s.calendars[idx+1:]...)
	if s.activeID == id {
		s.activeID = s.calendars[0].ID
		s.term = s.calendars[0].Term
	}
	return s.persist()
}

// Rename sets the calendar's name verbatim. Uniqueness is not re-checked
// on rename; duplicates are allowed afterwards.
func (s *Store) Rename(id, name string) error {
	cal, ok := s.find(id)
	if !ok {
		return ErrUnknownCalendar
	}
	cal.Name = name
	return s.persist()
}

// Duplicate clones a calendar under a fresh id with a " (copy)" name,
// incrementing " (copy N)" until unique within the same term. The clone
// becomes active.
func (s *Store) Duplicate(id string) (*model.Calendar, error) {
	src, ok := s.find(id)
	if !ok {
		return nil, ErrUnknownCalendar
	}
	clone := src.Clone()
	clone.ID = s.idgen.New()
	clone.Name = copyName(src.Name, src.Term, s.calendars)
	clone.SourceHash = ""
	s.calendars = append(s.calendars, clone)
	s.activeID = clone.ID
	s.term = clone.Term
	if err := s.persist(); err != nil {
		return nil, err
	}
	return clone.Clone(), nil
}

// AddCourse adds a selection to the active calendar. Adding a course that
// is already present is a no-op.
func (s *Store) AddCourse(sel model.CourseSelection) error {
	cal, ok := s.find(s.activeID)
	if !ok {
		return ErrNoActiveCalendar
	}
	if cal.HasCourse(sel.CourseID) {
		return nil
	}
	cal.Courses = append(cal.Courses, sel)
	return s.persist()
}

// RemoveCourse removes a course from the active calendar. Its hidden flag
// is pruned along with it.
func (s *Store) RemoveCourse(courseID string) error {
	cal, ok := s.find(s.activeID)
	if !ok {
		return ErrNoActiveCalendar
	}
	kept := cal.Courses[:0]
	for _, sel := range cal.Courses {
		if sel.CourseID != courseID {
			kept = append(kept, sel)
		}
	}
	cal.Courses = kept
	delete(cal.Hidden, courseID)
	return s.persist()
}

// SetSection records the chosen section for a course in the active
// calendar.
func (s *Store) SetSection(courseID, section string) error {
	cal, ok := s.find(s.activeID)
	if !ok {
		return ErrNoActiveCalendar
	}
	for i := range cal.Courses {
		if cal.Courses[i].CourseID == courseID {
			cal.Courses[i].Section = section
			return s.persist()
		}
	}
	return nil
}

// ToggleHidden flips a course's hidden flag in the active calendar.
func (s *Store) ToggleHidden(courseID string) error {
	cal, ok := s.find(s.activeID)
	if !ok {
		return ErrNoActiveCalendar
	}
	if cal.Hidden == nil {
		cal.Hidden = make(map[string]bool)
	}
	cal.Hidden[courseID] = !cal.Hidden[courseID]
	return s.persist()
}

// ChangeTerm switches to the first calendar of the given term, creating a
// default-named one when none exists. Idempotent when already there.
func (s *Store) ChangeTerm(term model.Term) (*model.Calendar, error) {
	term = model.NormalizeTerm(string(term))
	if s.term == term {
		if active, ok := s.find(s.activeID); ok && active.Term == term {
			return active.Clone(), nil
		}
	}
	for _, c := range s.calendars {
		if c.Term == term {
			s.activeID = c.ID
			s.term = term
			if err := s.persist(); err != nil {
				return nil, err
			}
			return c.Clone(), nil
		}
	}
	return s.Create("", term)
}

// Insert adds a fully formed calendar (an import result), makes it
// active and switches the current term to its term. An empty or
// unmodified default name gets the recipient's own next default name;
// any other name is uniquified within the target term.
func (s *Store) Insert(cal *model.Calendar) error {
	if cal.ID == "" {
		cal.ID = s.idgen.New()
	}
	stored := cal.Clone()
	if stored.Name == "" || IsDefaultName(stored.Name) {
		stored.Name = nextDefaultName(s.calendars, stored.Term)
	} else {
		stored.Name = uniqueName(stored.Name, stored.Term, s.calendars)
	}
	cal.Name = stored.Name
	s.calendars = append(s.calendars, stored)
	s.activeID = stored.ID
	s.term = stored.Term
	return s.persist()
}

func (s *Store) find(id string) (*model.Calendar, bool) {
	for _, c := range s.calendars {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (s *Store) persist() error {
	data, err := encodeState(s.calendars, s.activeID, s.term)
	if err != nil {
		return fmt.Errorf("encoding calendar state: %w", err)
	}
	if err := s.backend.Write(data); err != nil {
		return fmt.Errorf("persisting calendar state: %w", err)
	}
	return nil
}
