package textedit

// Group collects the edits produced for one logical change.
type Group struct {
	// Name describes the change.
	Name string

	edits []*Edit
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// Add appends e to the group.
func (g *Group) Add(e *Edit) {
	g.edits = append(g.edits, e)
}

// Edits returns the edits in the order they were added.
func (g *Group) Edits() []*Edit { return g.edits }

// IsEmpty reports whether the group holds no edits.
func (g *Group) IsEmpty() bool { return len(g.edits) == 0 }
