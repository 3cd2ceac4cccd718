package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"coursecal/internal/model"
)

// FileCatalog reads the scraped master-courses JSON file and serves the
// slice of it belonging to one term.
type FileCatalog struct {
	path    string
	term    model.Term
	courses []model.Course
	byID    map[string]model.Course
}

// NewFileCatalog creates a catalog backed by the JSON file at path. No
// data is read until LoadTerm is called.
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (c *FileCatalog) Term() model.Term { return c.term }

// LoadTerm reads the catalog file and keeps only the courses offered in
// the given term.
func (c *FileCatalog) LoadTerm(term model.Term) error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	var raw []rawCourse
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding catalog %s: %w", c.path, err)
	}

	c.term = term
	c.courses = c.courses[:0]
	c.byID = make(map[string]model.Course)
	for _, r := range raw {
		course := normalizeCourse(r)
		if course.ID == "" || !inTerm(course, term) {
			continue
		}
		c.courses = append(c.courses, course)
		c.byID[course.ID] = course
	}
	return nil
}

func (c *FileCatalog) Courses() []model.Course {
	return append([]model.Course(nil), c.courses...)
}

func (c *FileCatalog) FindCourse(id string) (model.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Compile-time check that FileCatalog implements Catalog
var _ Catalog = (*FileCatalog)(nil)
