package catalog

import "coursecal/internal/model"

// MemoryCatalog serves a fixed set of courses. Useful for testing.
type MemoryCatalog struct {
	all  []model.Course
	term model.Term
	byID map[string]model.Course
}

// NewMemoryCatalog creates a catalog over the given courses. Term
// filtering still applies via LoadTerm, against each course's TermRaw.
func NewMemoryCatalog(courses []model.Course) *MemoryCatalog {
	return &MemoryCatalog{all: append([]model.Course(nil), courses...)}
}

func (c *MemoryCatalog) Term() model.Term { return c.term }

func (c *MemoryCatalog) LoadTerm(term model.Term) error {
	c.term = term
	c.byID = make(map[string]model.Course)
	for _, course := range c.all {
		if inTerm(course, term) {
			c.byID[course.ID] = course
		}
	}
	return nil
}

func (c *MemoryCatalog) Courses() []model.Course {
	out := make([]model.Course, 0, len(c.byID))
	for _, course := range c.all {
		if _, ok := c.byID[course.ID]; ok {
			out = append(out, course)
		}
	}
	return out
}

func (c *MemoryCatalog) FindCourse(id string) (model.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Compile-time check that MemoryCatalog implements Catalog
var _ Catalog = (*MemoryCatalog)(nil)
