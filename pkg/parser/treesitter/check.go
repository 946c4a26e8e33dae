// Package treesitter checks Java source with the tree-sitter Java grammar.
// The rewrite pipeline uses it to confirm that rewritten output still parses
// with a parser independent of the one that produced the tree.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// ErrInvalidSource is wrapped by *CheckError.
var ErrInvalidSource = errors.New("source does not parse as Java")

// maxProblems bounds the problems collected from one source.
const maxProblems = 20

// Problem is an error or missing node in the parsed source.
type Problem struct {
	Offset int
	Length int

	// Line and Column are 1-based; Column counts bytes.
	Line   int
	Column int

	// Missing is set for a token the parser inserted to recover.
	Missing bool

	// Kind is the grammar symbol of a missing node.
	Kind string
}

func (p Problem) String() string {
	if p.Missing {
		return fmt.Sprintf("%d:%d: missing %s", p.Line, p.Column, p.Kind)
	}
	return fmt.Sprintf("%d:%d: unexpected input", p.Line, p.Column)
}

// CheckError lists the problems of a source that failed the check.
type CheckError struct {
	Problems []Problem
}

func (e *CheckError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("%v: %s", ErrInvalidSource, strings.Join(parts, "; "))
}

func (e *CheckError) Unwrap() error { return ErrInvalidSource }

// Problems parses src and returns its error and missing nodes in source
// order.
func Problems(ctx context.Context, src []byte) ([]Problem, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}
	var problems []Problem
	collect(root, &problems)
	return problems, nil
}

// Check returns a *CheckError when src does not parse cleanly.
func Check(ctx context.Context, src []byte) error {
	problems, err := Problems(ctx, src)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return &CheckError{Problems: problems}
	}
	return nil
}

func collect(n *sitter.Node, out *[]Problem) {
	if len(*out) >= maxProblems {
		return
	}
	if n.IsMissing() || n.IsError() {
		start := n.StartPoint()
		*out = append(*out, Problem{
			Offset:  int(n.StartByte()),
			Length:  int(n.EndByte() - n.StartByte()),
			Line:    int(start.Row) + 1,
			Column:  int(start.Column) + 1,
			Missing: n.IsMissing(),
			Kind:    n.Type(),
		})
		if n.IsError() {
			return
		}
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collect(n.Child(i), out)
	}
}
