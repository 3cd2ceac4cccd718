package share

import (
	"errors"

	"coursecal/internal/model"
)

// ErrNoValidCourses marks a structurally valid token none of whose
// course ids exist in the recipient's catalog.
var ErrNoValidCourses = errors.New("no valid courses in share token")

// ImportPlan is the result of reconciling a decoded record against the
// recipient's catalog. It performs no calendar-store mutation; the
// service layer applies it.
type ImportPlan struct {
	Record   *Record
	Resolved []model.CourseSelection
	Hidden   map[string]bool
	Missing  []string
}

// Resolve matches a record's course ids against the available catalog
// courses. Unresolved ids are collected as missing rather than aborting;
// only a plan with zero resolvable courses fails.
func Resolve(rec *Record, available []model.Course) (*ImportPlan, error) {
	byID := make(map[string]model.Course, len(available))
	for _, c := range available {
		byID[c.ID] = c
	}

	plan := &ImportPlan{Record: rec}
	for _, rc := range rec.Courses {
		course, ok := byID[rc.CourseID]
		if !ok {
			plan.Missing = append(plan.Missing, rc.CourseID)
			continue
		}

		sel := model.CourseSelection{CourseID: rc.CourseID}
		// Keep the sharer's section choice only when the recipient's
		// catalog still offers it.
		if rc.Section != "" {
			if _, ok := course.SectionByLabel(rc.Section); ok {
				sel.Section = rc.Section
			}
		}
		plan.Resolved = append(plan.Resolved, sel)

		if rc.Hidden {
			if plan.Hidden == nil {
				plan.Hidden = make(map[string]bool)
			}
			plan.Hidden[rc.CourseID] = true
		}
	}

	if len(plan.Resolved) == 0 {
		return nil, ErrNoValidCourses
	}
	return plan, nil
}
