package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/jrewrite/internal/logging"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/rewrite"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// StepResult describes what a step recorded.
type StepResult struct {
	Index   int
	Matches int

	// Group collects the edits of the step after edit generation. nil when
	// the step has no group name.
	Group *textedit.Group
}

// listDefaults are the kinds given to inserted code in lists that have no
// entry to copy a kind from.
var listDefaults = map[jast.Slot]jast.Kind{
	jast.SlotImports:             jast.KindImportDeclaration,
	jast.SlotTypes:               jast.KindTypeDeclaration,
	jast.SlotBodyDeclarations:    jast.KindMethodDeclaration,
	jast.SlotEnumConstants:       jast.KindEnumConstantDeclaration,
	jast.SlotParameters:          jast.KindSingleVariableDeclaration,
	jast.SlotThrownExceptions:    jast.KindSimpleType,
	jast.SlotSuperInterfaceTypes: jast.KindSimpleType,
	jast.SlotTypeArguments:       jast.KindSimpleType,
	jast.SlotTypeParameters:      jast.KindTypeParameter,
	jast.SlotStatements:          jast.KindExpressionStatement,
	jast.SlotArguments:           jast.KindSimpleName,
	jast.SlotFragments:           jast.KindVariableDeclarationFragment,
	jast.SlotAnnotations:         jast.KindMarkerAnnotation,
	jast.SlotCatchClauses:        jast.KindCatchClause,
	jast.SlotExpressions:         jast.KindSimpleName,
}

// Run records every step of s on r in order. The first failing step aborts
// with a *StepError. Cancellation is checked between steps.
func Run(ctx context.Context, s *Script, r *rewrite.Rewrite) ([]StepResult, error) {
	logger := logging.FromContext(ctx)
	results := make([]StepResult, 0, len(s.Steps))
	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		st := &s.Steps[i]
		res, err := runStep(r, st)
		if err != nil {
			return results, &StepError{Index: i, Err: err}
		}
		res.Index = i
		logger.Debug("recorded step", logging.FieldStep, i+1, logging.FieldKind, st.Match.Kind, "matches", res.Matches)
		results = append(results, res)
	}
	return results, nil
}

func runStep(r *rewrite.Rewrite, st *Step) (StepResult, error) {
	if err := st.validate(); err != nil {
		return StepResult{}, err
	}
	nodes := find(r.Tree(), st.Match)
	if len(nodes) == 0 {
		return StepResult{}, fmt.Errorf("%w: %s", ErrNoMatch, st.Match)
	}

	var group *textedit.Group
	if st.Group != "" {
		group = textedit.NewGroup(st.Group)
	}
	for _, n := range nodes {
		if err := apply(r, st, n, group); err != nil {
			return StepResult{}, fmt.Errorf("%s at offset %d: %w", r.Tree().Kind(n), r.Tree().Start(n), err)
		}
	}
	return StepResult{Matches: len(nodes), Group: group}, nil
}

func apply(r *rewrite.Rewrite, st *Step, n jast.NodeID, group *textedit.Group) error {
	switch {
	case st.Replace != nil:
		return replace(r, n, st.Replace, group)
	case st.Modifiers != nil:
		return modifiers(r, n, st.Modifiers, group)
	case st.Insert != nil:
		return insert(r, n, st.Insert, group)
	case st.Remove != nil:
		return remove(r, n, st.Remove, group)
	case st.Operator != "":
		if !jast.HasSlot(r.Tree().Kind(n), jast.SlotOperator) {
			return fmt.Errorf("%w: Operator", ErrUnknownSlot)
		}
		return r.Set(n, jast.SlotOperator, jast.StrValue(st.Operator), group)
	case st.Move != nil:
		return transfer(r, n, st.Move, true, group)
	case st.Copy != nil:
		return transfer(r, n, st.Copy, false, group)
	}
	return ErrNoAction
}

// resolve follows all but the last slot of path from n and returns the
// owner of the final slot.
func resolve(t *jast.Tree, n jast.NodeID, path string) (jast.NodeID, jast.Slot, error) {
	slots, err := parsePath(path)
	if err != nil {
		return jast.NoNode, jast.SlotInvalid, err
	}
	if len(slots) == 0 {
		return n, jast.SlotInvalid, nil
	}
	owner := n
	for _, s := range slots[:len(slots)-1] {
		d, ok := jast.Descriptor(t.Kind(owner), s)
		if !ok || !d.Shape.IsNode() || d.Shape == jast.ShapeList {
			return jast.NoNode, jast.SlotInvalid, fmt.Errorf("%w: %s.%s", ErrUnknownSlot, t.Kind(owner), s)
		}
		owner = t.Child(owner, s)
		if owner == jast.NoNode {
			return jast.NoNode, jast.SlotInvalid, fmt.Errorf("%w: %s is empty", ErrNoMatch, s)
		}
	}
	last := slots[len(slots)-1]
	if !jast.HasSlot(t.Kind(owner), last) {
		return jast.NoNode, jast.SlotInvalid, fmt.Errorf("%w: %s.%s", ErrUnknownSlot, t.Kind(owner), last)
	}
	return owner, last, nil
}

// newCode builds the node that stands for text in a slot that held old.
func newCode(r *rewrite.Rewrite, text string, k jast.Kind) jast.NodeID {
	if k == jast.KindSimpleName || k == jast.KindQualifiedName {
		return r.Tree().NewName(text)
	}
	return r.CreateStringPlaceholder(text, k)
}

func replace(r *rewrite.Rewrite, n jast.NodeID, a *Replace, group *textedit.Group) error {
	t := r.Tree()
	owner, slot, err := resolve(t, n, a.Slot)
	if err != nil {
		return err
	}
	if slot == jast.SlotInvalid {
		return r.Replace(n, newCode(r, a.Text, t.Kind(n)), group)
	}

	d, _ := jast.Descriptor(t.Kind(owner), slot)
	switch d.Shape {
	case jast.ShapeChild, jast.ShapeOptional:
		old := t.Child(owner, slot)
		k := jast.KindSimpleName
		if old != jast.NoNode {
			k = t.Kind(old)
		}
		return r.SetChild(owner, slot, newCode(r, a.Text, k), group)
	case jast.ShapeString:
		return r.Set(owner, slot, jast.StrValue(a.Text), group)
	default:
		return fmt.Errorf("%w: cannot replace %s.%s with text", ErrUnknownSlot, t.Kind(owner), slot)
	}
}

func modifiers(r *rewrite.Rewrite, n jast.NodeID, a *Modifiers, group *textedit.Group) error {
	t := r.Tree()
	if !jast.HasSlot(t.Kind(n), jast.SlotModifiers) {
		return fmt.Errorf("%w: %s.Modifiers", ErrUnknownSlot, t.Kind(n))
	}
	mods := t.Int(n, jast.SlotModifiers)
	for _, kw := range a.Remove {
		bit, _ := jast.ModifierBit(kw)
		mods &^= bit
	}
	for _, kw := range a.Add {
		bit, _ := jast.ModifierBit(kw)
		mods |= bit
	}
	return r.Set(n, jast.SlotModifiers, jast.IntValue(mods), group)
}

// list returns the editor of a list slot and the kind for new entries.
func list(r *rewrite.Rewrite, n jast.NodeID, path string) (*rewrite.ListRewrite, jast.Kind, error) {
	t := r.Tree()
	owner, slot, err := resolve(t, n, path)
	if err != nil {
		return nil, jast.KindInvalid, err
	}
	if slot == jast.SlotInvalid {
		return nil, jast.KindInvalid, fmt.Errorf("%w: slot is required", ErrNotList)
	}
	if d, _ := jast.Descriptor(t.Kind(owner), slot); d.Shape != jast.ShapeList {
		return nil, jast.KindInvalid, fmt.Errorf("%w: %s.%s", ErrNotList, t.Kind(owner), slot)
	}
	lr, err := r.ListRewrite(owner, slot)
	if err != nil {
		return nil, jast.KindInvalid, err
	}
	k := listDefaults[slot]
	if entries := t.List(owner, slot); len(entries) > 0 {
		k = t.Kind(entries[len(entries)-1])
	}
	if k == jast.KindInvalid {
		k = jast.KindSimpleName
	}
	return lr, k, nil
}

func checkIndex(lr *rewrite.ListRewrite, index int) error {
	if index < -1 || index > len(lr.Rewritten()) {
		return fmt.Errorf("%w: %d", ErrIndexRange, index)
	}
	return nil
}

// insertIndex converts an index into the rewritten list into one that
// also counts removed entries.
func insertIndex(lr *rewrite.ListRewrite, index int) (int, jast.NodeID) {
	rewritten := lr.Rewritten()
	if index == -1 || index == len(rewritten) {
		return -1, jast.NoNode
	}
	return index, rewritten[index]
}

func insertAt(lr *rewrite.ListRewrite, node jast.NodeID, index int, group *textedit.Group) error {
	if err := checkIndex(lr, index); err != nil {
		return err
	}
	i, next := insertIndex(lr, index)
	if i == -1 {
		return lr.InsertLast(node, group)
	}
	return lr.InsertBefore(node, next, group)
}

func insert(r *rewrite.Rewrite, n jast.NodeID, a *Insert, group *textedit.Group) error {
	lr, k, err := list(r, n, a.Slot)
	if err != nil {
		return err
	}
	if a.Kind != "" {
		k, _ = jast.ParseKind(a.Kind)
	}
	return insertAt(lr, newCode(r, a.Text, k), a.Index, group)
}

func remove(r *rewrite.Rewrite, n jast.NodeID, a *Remove, group *textedit.Group) error {
	t := r.Tree()
	if a.Slot == "" {
		return r.Remove(n, group)
	}
	owner, slot, err := resolve(t, n, a.Slot)
	if err != nil {
		return err
	}
	d, _ := jast.Descriptor(t.Kind(owner), slot)
	switch d.Shape {
	case jast.ShapeList:
		if a.Index == nil {
			return fmt.Errorf("%w: index is required for a list slot", ErrIndexRange)
		}
		lr, err := r.ListRewrite(owner, slot)
		if err != nil {
			return err
		}
		entries := lr.Rewritten()
		i := *a.Index
		if i < 0 {
			i += len(entries)
		}
		if i < 0 || i >= len(entries) {
			return fmt.Errorf("%w: %d", ErrIndexRange, *a.Index)
		}
		return lr.Remove(entries[i], group)
	case jast.ShapeOptional:
		return r.SetChild(owner, slot, jast.NoNode, group)
	default:
		return fmt.Errorf("%w: %s.%s", rewrite.ErrRequiredSlot, t.Kind(owner), slot)
	}
}

func transfer(r *rewrite.Rewrite, n jast.NodeID, a *Transfer, move bool, group *textedit.Group) error {
	t := r.Tree()
	dest := find(t, a.To)
	if len(dest) == 0 {
		return fmt.Errorf("to: %w: %s", ErrNoMatch, a.To)
	}
	to := dest[0]
	if jast.IsAncestor(t, n, to) {
		return fmt.Errorf("to: %w: destination lies inside the node", ErrInvalidMatch)
	}
	lr, _, err := list(r, to, a.Slot)
	if err != nil {
		return err
	}

	var target jast.NodeID
	if move {
		target, err = r.CreateMoveTarget(n)
	} else {
		target, err = r.CreateCopyTarget(n)
	}
	if err != nil {
		return err
	}
	if err := insertAt(lr, target, a.Index, group); err != nil {
		return err
	}
	if !move {
		return nil
	}
	if err := r.Remove(n, group); err != nil {
		if errors.Is(err, rewrite.ErrRequiredSlot) {
			return fmt.Errorf("move source: %w", err)
		}
		return err
	}
	return nil
}
