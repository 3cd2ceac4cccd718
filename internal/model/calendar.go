package model

// CourseSelection is one catalog course chosen into a calendar, plus the
// user's section choice. An empty Section means "use the course's default
// (first) section".
type CourseSelection struct {
	CourseID string `json:"course_id"`
	Section  string `json:"section,omitempty"`
}

// Calendar is a user-named, term-scoped collection of selected courses.
// Distinct from the exported calendar document.
type Calendar struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Term    Term              `json:"term"`
	Courses []CourseSelection `json:"courses"`

	// Hidden flags courses excluded from totals, conflict checks and
	// export. Keyed by course id.
	Hidden map[string]bool `json:"hiddenCourses,omitempty"`

	// SourceHash is the exact share token this calendar was imported
	// from, if any. Used only for duplicate-import detection.
	SourceHash string `json:"sourceHash,omitempty"`
}

// HasCourse reports whether the calendar already contains the course.
func (c *Calendar) HasCourse(courseID string) bool {
	for _, sel := range c.Courses {
		if sel.CourseID == courseID {
			return true
		}
	}
	return false
}

// Selection returns the selection entry for a course id.
func (c *Calendar) Selection(courseID string) (CourseSelection, bool) {
	for _, sel := range c.Courses {
		if sel.CourseID == courseID {
			return sel, true
		}
	}
	return CourseSelection{}, false
}

// IsHidden reports whether the course is flagged hidden.
func (c *Calendar) IsHidden(courseID string) bool {
	return c.Hidden[courseID]
}

// VisibleCourses returns the selections not flagged hidden, in order.
func (c *Calendar) VisibleCourses() []CourseSelection {
	out := make([]CourseSelection, 0, len(c.Courses))
	for _, sel := range c.Courses {
		if !c.IsHidden(sel.CourseID) {
			out = append(out, sel)
		}
	}
	return out
}

// Clone returns a deep copy of the calendar.
func (c *Calendar) Clone() *Calendar {
	cp := *c
	cp.Courses = append([]CourseSelection(nil), c.Courses...)
	if c.Hidden != nil {
		cp.Hidden = make(map[string]bool, len(c.Hidden))
		for k, v := range c.Hidden {
			cp.Hidden[k] = v
		}
	}
	return &cp
}
