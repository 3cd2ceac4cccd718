// Package schedule is the orchestration layer between the CLI and the
// calendar store, catalog, conflict engine, export engine and share
// codec.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"coursecal/internal/catalog"
	"coursecal/internal/export"
	"coursecal/internal/model"
	"coursecal/internal/share"
	"coursecal/internal/store"
)

// ErrCourseNotFound is returned when a course id does not exist in the
// catalog for the current term.
var ErrCourseNotFound = errors.New("course not found in catalog")

// Service coordinates all schedule operations for one session.
type Service struct {
	store   *store.Store
	catalog catalog.Catalog
	logger  Logger
	clock   Clock
	palette *Palette
	origin  string

	pending *pendingImport
}

// pendingImport gates a deferred import across a term switch: the import
// re-fires exactly once, after the catalog for the target term is loaded.
type pendingImport struct {
	token string
	term  model.Term
}

// NewService creates a Service with the provided dependencies.
func NewService(st *store.Store, cat catalog.Catalog, logger Logger, clock Clock, origin string) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		logger:  logger,
		clock:   clock,
		palette: NewPalette(),
		origin:  origin,
	}
}

// Load restores persisted state and loads the catalog for the current
// term. Afterwards at least one calendar exists and exactly one is
// active.
func (s *Service) Load() error {
	if err := s.store.Load(); err != nil {
		return fmt.Errorf("loading calendars: %w", err)
	}
	if err := s.catalog.LoadTerm(s.store.CurrentTerm()); err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	s.logger.Debug("session loaded", "term", s.store.CurrentTerm(), "calendars", len(s.store.Calendars()))
	return nil
}

// Palette returns the session's course color assignments.
func (s *Service) Palette() *Palette { return s.palette }

// Calendars returns all calendars.
func (s *Service) Calendars() []*model.Calendar { return s.store.Calendars() }

// Active returns the active calendar.
func (s *Service) Active() (*model.Calendar, error) { return s.store.Active() }

// ActiveID returns the active calendar's id.
func (s *Service) ActiveID() string { return s.store.ActiveID() }

// CurrentTerm returns the session's term.
func (s *Service) CurrentTerm() model.Term { return s.store.CurrentTerm() }

// SwitchCalendar activates the calendar with the given id. An unknown id
// is a logged no-op.
func (s *Service) SwitchCalendar(id string) error {
	err := s.store.SwitchActive(id)
	if errors.Is(err, store.ErrUnknownCalendar) {
		s.logger.Warn("switch to unknown calendar ignored", "id", id)
		return nil
	}
	if err != nil {
		return err
	}
	return s.catalog.LoadTerm(s.store.CurrentTerm())
}

// CreateCalendar creates a calendar (default-named when name is empty)
// and makes it active.
func (s *Service) CreateCalendar(name string, term model.Term) (*model.Calendar, error) {
	cal, err := s.store.Create(name, term)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.LoadTerm(s.store.CurrentTerm()); err != nil {
		return nil, err
	}
	s.logger.Info("calendar created", "id", cal.ID, "name", cal.Name, "term", cal.Term)
	return cal, nil
}

// DeleteCalendar removes a calendar. Deleting the last one is a logged
// no-op, per the store's guarantee that one calendar always exists.
func (s *Service) DeleteCalendar(id string) error {
	err := s.store.Delete(id)
	switch {
	case errors.Is(err, store.ErrLastCalendar):
		s.logger.Warn("delete of last calendar ignored", "id", id)
		return nil
	case errors.Is(err, store.ErrUnknownCalendar):
		s.logger.Warn("delete of unknown calendar ignored", "id", id)
		return nil
	case err != nil:
		return err
	}
	s.logger.Info("calendar deleted", "id", id)
	return s.catalog.LoadTerm(s.store.CurrentTerm())
}

// RenameCalendar sets a calendar's name verbatim.
func (s *Service) RenameCalendar(id, name string) error {
	err := s.store.Rename(id, name)
	if errors.Is(err, store.ErrUnknownCalendar) {
		s.logger.Warn("rename of unknown calendar ignored", "id", id)
		return nil
	}
	return err
}

// DuplicateCalendar clones a calendar and makes the clone active.
func (s *Service) DuplicateCalendar(id string) (*model.Calendar, error) {
	cal, err := s.store.Duplicate(id)
	if errors.Is(err, store.ErrUnknownCalendar) {
		s.logger.Warn("duplicate of unknown calendar ignored", "id", id)
		return nil, nil
	}
	return cal, err
}

// ChangeTerm switches the session to a term, activating its first
// calendar or creating one, then reloads the catalog.
func (s *Service) ChangeTerm(term model.Term) (*model.Calendar, error) {
	cal, err := s.store.ChangeTerm(term)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.LoadTerm(s.store.CurrentTerm()); err != nil {
		return nil, err
	}
	return cal, nil
}

// AddCourse adds a catalog course to the active calendar, optionally with
// an explicit section choice. Adding a present course is a no-op.
func (s *Service) AddCourse(courseID, sectionLabel string) error {
	course, ok := s.catalog.FindCourse(courseID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	if sectionLabel != "" {
		if _, ok := course.SectionByLabel(sectionLabel); !ok {
			return fmt.Errorf("course %s has no section %q", courseID, sectionLabel)
		}
	}
	return s.store.AddCourse(model.CourseSelection{CourseID: courseID, Section: sectionLabel})
}

// RemoveCourse removes a course from the active calendar.
func (s *Service) RemoveCourse(courseID string) error {
	return s.store.RemoveCourse(courseID)
}

// SetSection records a section choice for a course in the active calendar.
func (s *Service) SetSection(courseID, sectionLabel string) error {
	course, ok := s.catalog.FindCourse(courseID)
	if ok {
		if _, found := course.SectionByLabel(sectionLabel); !found {
			return fmt.Errorf("course %s has no section %q", courseID, sectionLabel)
		}
	}
	return s.store.SetSection(courseID, sectionLabel)
}

// ToggleHidden flips a course's visibility in the active calendar.
func (s *Service) ToggleHidden(courseID string) error {
	return s.store.ToggleHidden(courseID)
}

// ClearCourses removes every course from the active calendar.
func (s *Service) ClearCourses() error {
	cal, err := s.store.Active()
	if err != nil {
		return err
	}
	for _, sel := range cal.Courses {
		if err := s.store.RemoveCourse(sel.CourseID); err != nil {
			return err
		}
	}
	return nil
}

// VisibleSections resolves the active calendar's visible selections to
// their sections. Selections whose course is missing from the catalog are
// skipped.
func (s *Service) VisibleSections() ([]model.Section, error) {
	cal, err := s.store.Active()
	if err != nil {
		return nil, err
	}
	var out []model.Section
	for _, sel := range cal.VisibleCourses() {
		course, ok := s.catalog.FindCourse(sel.CourseID)
		if !ok {
			continue
		}
		if section, ok := course.ResolveSection(sel.Section); ok {
			out = append(out, section)
		}
	}
	return out, nil
}

// FitsSchedule reports whether a candidate course could still be added
// without a conflict. Courses already in the active calendar are always
// reported as fitting.
func (s *Service) FitsSchedule(course model.Course) (bool, error) {
	cal, err := s.store.Active()
	if err != nil {
		return false, err
	}
	if cal.HasCourse(course.ID) {
		return true, nil
	}
	visible, err := s.VisibleSections()
	if err != nil {
		return false, err
	}
	return !CourseBlocked(course, visible), nil
}

// FilterCourses returns the catalog courses matching a search query,
// optionally restricted to courses that fit the current schedule. The
// search is case- and whitespace-insensitive across code, title and
// instructors.
func (s *Service) FilterCourses(query string, fitsOnly bool) ([]model.Course, error) {
	needle := normalizeSearch(query)
	var out []model.Course
	for _, course := range s.catalog.Courses() {
		if needle != "" && !matchesSearch(course, needle) {
			continue
		}
		if fitsOnly {
			fits, err := s.FitsSchedule(course)
			if err != nil {
				return nil, err
			}
			if !fits {
				continue
			}
		}
		out = append(out, course)
	}
	return out, nil
}

// TotalHours sums the weekly workload hours of the visible courses,
// rounded to one decimal place.
func (s *Service) TotalHours() (float64, error) {
	cal, err := s.store.Active()
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, sel := range cal.VisibleCourses() {
		if course, ok := s.catalog.FindCourse(sel.CourseID); ok {
			sum += course.Hours
		}
	}
	return math.Round(sum*10) / 10, nil
}

// TotalUnits sums the credit units of the visible courses.
func (s *Service) TotalUnits() (float64, error) {
	cal, err := s.store.Active()
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, sel := range cal.VisibleCourses() {
		if course, ok := s.catalog.FindCourse(sel.CourseID); ok {
			sum += course.Units
		}
	}
	return sum, nil
}

// ExportActive builds the iCalendar document for the active calendar's
// visible courses. A nil result means there was nothing exportable.
func (s *Service) ExportActive() (*export.Result, error) {
	cal, err := s.store.Active()
	if err != nil {
		return nil, err
	}
	var entries []export.Entry
	for _, sel := range cal.VisibleCourses() {
		course, ok := s.catalog.FindCourse(sel.CourseID)
		if !ok {
			continue
		}
		section, ok := course.ResolveSection(sel.Section)
		if !ok {
			continue
		}
		entries = append(entries, export.Entry{Course: course, Section: section})
	}
	return export.Export(cal, entries, s.clock.Now()), nil
}

// ShareLink encodes the active calendar into a shareable URL. The second
// return is false when the calendar has no courses.
func (s *Service) ShareLink() (string, bool, error) {
	cal, err := s.store.Active()
	if err != nil {
		return "", false, err
	}
	token, ok := share.EncodeToken(cal)
	if !ok {
		return "", false, nil
	}
	return share.Link(s.origin, token), true, nil
}

func normalizeSearch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func matchesSearch(course model.Course, needle string) bool {
	if strings.Contains(normalizeSearch(course.Code), needle) {
		return true
	}
	if strings.Contains(normalizeSearch(course.Title), needle) {
		return true
	}
	for _, section := range course.Sections {
		if strings.Contains(normalizeSearch(section.Instructors), needle) {
			return true
		}
	}
	return false
}
