package schedule

import (
	"errors"

	"coursecal/internal/model"
	"coursecal/internal/share"
)

// ImportStatus is the terminal outcome of handling a share token.
type ImportStatus string

const (
	// ImportInvalid: the token is structurally undecodable.
	ImportInvalid ImportStatus = "invalid"
	// ImportDuplicate: a calendar was already imported from this exact token.
	ImportDuplicate ImportStatus = "duplicate"
	// ImportTermMismatch: the token targets another term; the import is
	// pending until confirmed or cancelled.
	ImportTermMismatch ImportStatus = "term_mismatch"
	// ImportNoValidCourses: the token decoded but none of its courses
	// exist in the local catalog.
	ImportNoValidCourses ImportStatus = "no_valid_courses"
	// ImportSucceeded: a new calendar was created and activated.
	ImportSucceeded ImportStatus = "imported"
)

// ErrNoPendingImport is returned when confirming without a pending
// term-mismatched import.
var ErrNoPendingImport = errors.New("no pending import")

// ImportOutcome reports how a share token was handled.
type ImportOutcome struct {
	Status   ImportStatus
	Calendar *model.Calendar // created (imported) or matched (duplicate)
	Missing  []string        // course ids absent from the local catalog
	Term     model.Term      // target term, set on term_mismatch
}

// HandleToken drives the import flow for an incoming share token:
// duplicate check first, then decode, then the term check. A term
// mismatch parks the token; the caller either confirms (switching terms
// and retrying exactly once) or cancels (discarding the token). Failed
// imports perform no calendar-store mutation.
func (s *Service) HandleToken(token string) (*ImportOutcome, error) {
	if dup, ok := s.store.FindBySourceHash(token); ok {
		s.logger.Info("share token already imported", "calendar", dup.ID)
		return &ImportOutcome{Status: ImportDuplicate, Calendar: dup}, nil
	}

	rec, err := share.DecodeToken(token)
	if err != nil {
		s.logger.Warn("undecodable share token", "error", err)
		return &ImportOutcome{Status: ImportInvalid}, nil
	}

	target := model.NormalizeTerm(string(rec.Term))
	if target != s.store.CurrentTerm() {
		s.pending = &pendingImport{token: token, term: target}
		return &ImportOutcome{Status: ImportTermMismatch, Term: target}, nil
	}

	return s.runImport(token, rec)
}

// ConfirmPendingImport switches the session to the pending import's term,
// waits for that term's catalog, and retries the import once. The pending
// marker is cleared regardless of outcome.
func (s *Service) ConfirmPendingImport() (*ImportOutcome, error) {
	pending := s.pending
	if pending == nil {
		return nil, ErrNoPendingImport
	}
	s.pending = nil

	if _, err := s.ChangeTerm(pending.term); err != nil {
		return nil, err
	}

	rec, err := share.DecodeToken(pending.token)
	if err != nil {
		return &ImportOutcome{Status: ImportInvalid}, nil
	}
	return s.runImport(pending.token, rec)
}

// CancelPendingImport discards a parked token so no stale import fires
// later.
func (s *Service) CancelPendingImport() {
	s.pending = nil
}

// PendingImportTerm returns the target term of a parked import, if any.
func (s *Service) PendingImportTerm() (model.Term, bool) {
	if s.pending == nil {
		return "", false
	}
	return s.pending.term, true
}

func (s *Service) runImport(token string, rec *share.Record) (*ImportOutcome, error) {
	plan, err := share.Resolve(rec, s.catalog.Courses())
	if errors.Is(err, share.ErrNoValidCourses) {
		s.logger.Warn("share token resolved no courses", "term", rec.Term)
		return &ImportOutcome{Status: ImportNoValidCourses}, nil
	}
	if err != nil {
		return nil, err
	}

	cal := &model.Calendar{
		Name:       rec.Name,
		Term:       model.NormalizeTerm(string(rec.Term)),
		Courses:    plan.Resolved,
		Hidden:     plan.Hidden,
		SourceHash: token,
	}
	if err := s.store.Insert(cal); err != nil {
		return nil, err
	}

	s.logger.Info("calendar imported",
		"id", cal.ID, "name", cal.Name,
		"courses", len(plan.Resolved), "missing", len(plan.Missing))
	return &ImportOutcome{
		Status:   ImportSucceeded,
		Calendar: cal,
		Missing:  plan.Missing,
	}, nil
}
