package textedit

import "errors"

// ErrEmptyScope is returned by Pop when only the root scope is left.
var ErrEmptyScope = errors.New("textedit: no scope to pop")

// Builder assembles an edit tree. Edits are added to the current scope;
// Push makes an added edit the current scope so that later edits nest
// inside it.
type Builder struct {
	root  *Edit
	stack []*Edit
}

// NewBuilder creates a builder whose root covers a buffer of length bytes.
func NewBuilder(length int) *Builder {
	root := NewRoot(length)
	return &Builder{root: root, stack: []*Edit{root}}
}

// Root returns the root edit.
func (b *Builder) Root() *Edit { return b.root }

// Current returns the current scope.
func (b *Builder) Current() *Edit { return b.stack[len(b.stack)-1] }

// Depth returns the number of open scopes above the root.
func (b *Builder) Depth() int { return len(b.stack) - 1 }

// Add adds e as a child of the current scope.
func (b *Builder) Add(e *Edit) error {
	return b.Current().AddChild(e)
}

// Push makes e the current scope. e must already be in the tree.
func (b *Builder) Push(e *Edit) {
	b.stack = append(b.stack, e)
}

// Pop closes the current scope and returns it.
func (b *Builder) Pop() (*Edit, error) {
	if len(b.stack) == 1 {
		return nil, ErrEmptyScope
	}
	e := b.Current()
	b.stack = b.stack[:len(b.stack)-1]
	return e, nil
}
