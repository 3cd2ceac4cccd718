package schedule

// Palette assigns a stable display color to every course id. It is owned
// by one Service instance and passed by reference into rendering; there
// is no package-level color state.
type Palette struct {
	colors   []string
	assigned map[string]string
}

var defaultColors = []string{
	"blue", "green", "purple", "red", "yellow", "pink", "indigo",
}

// NewPalette creates a palette over the default color cycle.
func NewPalette() *Palette {
	return &Palette{
		colors:   defaultColors,
		assigned: make(map[string]string),
	}
}

// ColorFor returns the color assigned to a course id. The assignment is a
// deterministic hash of the id, so the same course keeps its color across
// the session.
func (p *Palette) ColorFor(courseID string) string {
	if c, ok := p.assigned[courseID]; ok {
		return c
	}
	h := int32(0)
	for _, r := range courseID {
		h = (h << 5) - h + r
	}
	if h < 0 {
		h = -h
	}
	c := p.colors[int(h)%len(p.colors)]
	p.assigned[courseID] = c
	return c
}
