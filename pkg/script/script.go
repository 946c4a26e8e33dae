// Package script reads declarative change scripts and records their steps
// on a rewrite.
//
// A script is a YAML document with a list of steps. Each step selects
// original nodes with a match and applies one action to every selected
// node:
//
//	name: example
//	steps:
//	  - group: "rename call"
//	    match: {kind: MethodInvocation, name: oldName}
//	    replace: {slot: Name, text: newName}
//	  - match: {kind: FieldDeclaration, name: unused}
//	    remove: {}
//
// New code is written as Java source text and inserted as a string
// placeholder re-indented to its position.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/jrewrite/pkg/jast"
)

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Match selects original nodes.
type Match struct {
	// Kind is the node kind name, such as MethodDeclaration.
	Kind string `yaml:"kind"`

	// Name compares the identifier of the node's name. Declarations with
	// fragments use the name of the first fragment.
	Name string `yaml:"name,omitempty"`

	// Operator compares the operator of infix, prefix, postfix and
	// assignment expressions.
	Operator string `yaml:"operator,omitempty"`

	// Nth selects only the nth match, counting from 1. Zero selects all.
	Nth int `yaml:"nth,omitempty"`
}

func (m Match) String() string {
	var b strings.Builder
	b.WriteString(m.Kind)
	if m.Name != "" {
		fmt.Fprintf(&b, " name=%s", m.Name)
	}
	if m.Operator != "" {
		fmt.Fprintf(&b, " operator=%s", m.Operator)
	}
	if m.Nth > 0 {
		fmt.Fprintf(&b, " nth=%d", m.Nth)
	}
	return b.String()
}

// Step is one match with exactly one action.
type Step struct {
	// Group names the change group of the recorded edits.
	Group string `yaml:"group,omitempty"`

	Match Match `yaml:"match"`

	Replace   *Replace   `yaml:"replace,omitempty"`
	Modifiers *Modifiers `yaml:"modifiers,omitempty"`
	Insert    *Insert    `yaml:"insert,omitempty"`
	Remove    *Remove    `yaml:"remove,omitempty"`
	Operator  string     `yaml:"operator,omitempty"`
	Move      *Transfer  `yaml:"move,omitempty"`
	Copy      *Transfer  `yaml:"copy,omitempty"`
}

// Replace substitutes the child of Slot, or the matched node itself when
// Slot is empty, with Text.
type Replace struct {
	Slot string `yaml:"slot,omitempty"`
	Text string `yaml:"text"`
}

// Modifiers adds and removes modifier keywords.
type Modifiers struct {
	Add    []string `yaml:"add,omitempty"`
	Remove []string `yaml:"remove,omitempty"`
}

// Insert adds Text to a list slot at Index; -1 appends.
type Insert struct {
	Slot  string `yaml:"slot"`
	Index int    `yaml:"index"`
	Text  string `yaml:"text"`

	// Kind overrides the node kind of the inserted code. It decides
	// spacing between members and statements.
	Kind string `yaml:"kind,omitempty"`
}

// Remove deletes the matched node, the child of an optional slot, or one
// entry of a list slot.
type Remove struct {
	Slot  string `yaml:"slot,omitempty"`
	Index *int   `yaml:"index,omitempty"`
}

// Transfer moves or copies the matched node into a list slot of the node
// selected by To.
type Transfer struct {
	To    Match  `yaml:"to"`
	Slot  string `yaml:"slot"`
	Index int    `yaml:"index"`
}

// Validation errors.
var (
	ErrNoSteps      = errors.New("script has no steps")
	ErrNoAction     = errors.New("step has no action")
	ErrManyActions  = errors.New("step has more than one action")
	ErrUnknownKind  = errors.New("unknown node kind")
	ErrUnknownSlot  = errors.New("unknown slot")
	ErrUnknownMod   = errors.New("unknown modifier")
	ErrNoMatch      = errors.New("match selected no node")
	ErrNotList      = errors.New("slot is not a list")
	ErrIndexRange   = errors.New("index out of range")
	ErrInvalidMatch = errors.New("invalid match")
)

// StepError reports the step that failed.
type StepError struct {
	// Index is the zero-based position of the step.
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Parse decodes and validates a script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	s := &Script{}
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSteps
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks kinds, slots, modifiers and that each step has exactly
// one action.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrNoSteps
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return &StepError{Index: i, Err: err}
		}
	}
	return nil
}

func (st *Step) validate() error {
	if err := st.Match.validate(); err != nil {
		return err
	}
	switch n := st.actions(); {
	case n == 0:
		return ErrNoAction
	case n > 1:
		return ErrManyActions
	}

	switch {
	case st.Replace != nil:
		return validatePath(st.Replace.Slot)
	case st.Modifiers != nil:
		for _, kw := range append(append([]string{}, st.Modifiers.Add...), st.Modifiers.Remove...) {
			if _, ok := jast.ModifierBit(kw); !ok {
				return fmt.Errorf("%w: %q", ErrUnknownMod, kw)
			}
		}
	case st.Insert != nil:
		if st.Insert.Kind != "" {
			if _, ok := jast.ParseKind(st.Insert.Kind); !ok {
				return fmt.Errorf("%w: %q", ErrUnknownKind, st.Insert.Kind)
			}
		}
		return validatePath(st.Insert.Slot)
	case st.Remove != nil:
		return validatePath(st.Remove.Slot)
	case st.Move != nil:
		return st.Move.validate()
	case st.Copy != nil:
		return st.Copy.validate()
	}
	return nil
}

func (st *Step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Replace != nil, st.Modifiers != nil, st.Insert != nil, st.Remove != nil,
		st.Operator != "", st.Move != nil, st.Copy != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (m Match) validate() error {
	if m.Kind == "" {
		return fmt.Errorf("%w: kind is required", ErrInvalidMatch)
	}
	if _, ok := jast.ParseKind(m.Kind); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}
	if m.Nth < 0 {
		return fmt.Errorf("%w: nth must be positive", ErrInvalidMatch)
	}
	return nil
}

func (t *Transfer) validate() error {
	if err := t.To.validate(); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	if t.Slot == "" {
		return fmt.Errorf("%w: slot is required", ErrUnknownSlot)
	}
	return validatePath(t.Slot)
}

// parsePath splits a dotted slot path such as Body.Statements.
func parsePath(path string) ([]jast.Slot, error) {
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, ".")
	slots := make([]jast.Slot, 0, len(parts))
	for _, p := range parts {
		s, ok := jast.ParseSlot(p)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, p)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func validatePath(path string) error {
	_, err := parsePath(path)
	return err
}
