package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// callTree builds "f(a, b)" as a MethodInvocation with two arguments.
func callTree(t *testing.T) (*jast.Tree, jast.NodeID, []jast.NodeID) {
	t.Helper()

	tree := jast.NewTree([]byte("f(a, b)"))
	call := tree.AddNode(jast.KindMethodInvocation, 0, 7)
	name := tree.AddNode(jast.KindSimpleName, 0, 1)
	tree.SetStr(name, jast.SlotIdentifier, "f")
	a := tree.AddNode(jast.KindSimpleName, 2, 1)
	tree.SetStr(a, jast.SlotIdentifier, "a")
	b := tree.AddNode(jast.KindSimpleName, 5, 1)
	tree.SetStr(b, jast.SlotIdentifier, "b")
	tree.SetChild(call, jast.SlotName, name)
	tree.SetList(call, jast.SlotArguments, []jast.NodeID{a, b})
	tree.SetRoot(call)
	tree.Link()
	return tree, call, []jast.NodeID{name, a, b}
}

func TestStore_SetValue(t *testing.T) {
	t.Parallel()

	tree, call, nodes := callTree(t)
	store := events.NewStore(tree)
	assert.False(t, store.HasChildrenChanges(call))

	replacement := tree.NewName("g")
	group := textedit.NewGroup("rename")
	e, err := store.SetValue(call, jast.SlotName, jast.NodeValue(replacement), group)
	require.NoError(t, err)
	assert.Equal(t, events.Replaced, e.Kind)
	assert.Equal(t, nodes[0], e.OriginalNode())
	assert.Equal(t, replacement, e.NewNode())
	assert.Same(t, group, e.Group)

	assert.True(t, store.IsChanged(call, jast.SlotName))
	assert.True(t, store.HasChangedSlots(call))
	assert.True(t, store.HasChildrenChanges(call))
	assert.Equal(t, replacement, store.NewChild(call, jast.SlotName))

	// Setting the original value back makes the slot unchanged again.
	e, err = store.SetValue(call, jast.SlotName, jast.NodeValue(nodes[0]), nil)
	require.NoError(t, err)
	assert.Equal(t, events.Unchanged, e.Kind)
	assert.False(t, store.HasChangedSlots(call))
}

func TestStore_SetValue_Errors(t *testing.T) {
	t.Parallel()

	tree, call, _ := callTree(t)
	store := events.NewStore(tree)

	_, err := store.SetValue(call, jast.SlotArguments, jast.Value{}, nil)
	require.ErrorIs(t, err, events.ErrShape)

	_, err = store.SetValue(call, jast.SlotBody, jast.Value{}, nil)
	require.ErrorIs(t, err, events.ErrNoSlot)

	fresh := tree.NewNode(jast.KindMethodInvocation)
	_, err = store.SetValue(fresh, jast.SlotName, jast.Value{}, nil)
	require.ErrorIs(t, err, events.ErrNotOriginal)
}

func TestList(t *testing.T) {
	t.Parallel()

	tree, call, nodes := callTree(t)
	a, b := nodes[1], nodes[2]
	store := events.NewStore(tree)

	list, err := store.ListEvent(call, jast.SlotArguments)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, events.Unchanged, list.Event().Kind)

	c := tree.NewName("c")
	_, err = list.Insert(c, 1, nil)
	require.NoError(t, err)
	d := tree.NewName("d")
	_, err = list.Insert(d, -1, nil)
	require.NoError(t, err)
	_, err = list.Remove(a, nil)
	require.NoError(t, err)

	assert.Equal(t, events.Replaced, list.Event().Kind)
	assert.Equal(t, []jast.NodeID{c, b, d}, list.Nodes())
	assert.Equal(t, []jast.NodeID{c, b, d}, store.NewList(call, jast.SlotArguments))
	assert.Equal(t, 0, list.Index(a), "removed entries keep their index")
	assert.Equal(t, 1, list.Index(c))

	kinds := make([]events.Kind, 0, list.Len())
	for _, e := range list.Event().Children {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []events.Kind{events.Removed, events.Inserted, events.Unchanged, events.Inserted}, kinds)

	// Removing an inserted entry drops it.
	_, err = list.Remove(d, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())

	e := tree.NewName("e")
	ev, err := list.Replace(b, e, nil)
	require.NoError(t, err)
	assert.Equal(t, events.Replaced, ev.Kind)
	assert.Equal(t, []jast.NodeID{c, e}, list.Nodes())

	_, err = list.Remove(tree.NewName("z"), nil)
	require.ErrorIs(t, err, events.ErrNotInList)
	_, err = list.Insert(tree.NewName("y"), 9, nil)
	require.Error(t, err)

	// The same list event is returned on later calls.
	again, err := store.ListEvent(call, jast.SlotArguments)
	require.NoError(t, err)
	assert.Same(t, list.Event(), again.Event())
}

func TestStore_Sources(t *testing.T) {
	t.Parallel()

	tree, call, nodes := callTree(t)
	store := events.NewStore(tree)

	require.NoError(t, store.MarkMoveSource(nodes[1]))
	require.ErrorIs(t, store.MarkMoveSource(nodes[1]), events.ErrAlreadyMoved)
	assert.True(t, store.IsMoveSource(nodes[1]))
	assert.True(t, store.HasChildrenChanges(call))
	assert.False(t, store.HasChildrenChanges(nodes[2]))

	require.NoError(t, store.AddCopySource(nodes[2]))
	require.NoError(t, store.AddCopySource(nodes[2]))
	assert.Equal(t, 2, store.CopyCount(nodes[2]))

	group := textedit.NewGroup("track")
	store.Track(nodes[0], group)
	assert.Same(t, group, store.TrackedGroup(nodes[0]))

	ph := tree.NewNode(jast.KindSimpleName)
	store.SetPlaceholder(ph, events.Placeholder{Kind: events.PlaceholderCopy, Source: nodes[2]})
	p, ok := store.Placeholder(ph)
	require.True(t, ok)
	assert.Equal(t, nodes[2], p.Source)
}

func TestStore_InsertBinding(t *testing.T) {
	t.Parallel()

	tree := jast.NewTree(nil)
	store := events.NewStore(tree)

	stmt := tree.NewNode(jast.KindReturnStatement)
	field := tree.NewNode(jast.KindFieldDeclaration)
	arg := tree.NewName("x")

	assert.True(t, store.IsInsertBoundToPrevious(stmt))
	assert.True(t, store.IsInsertBoundToPrevious(field))
	assert.False(t, store.IsInsertBoundToPrevious(arg))

	store.SetInsertBoundToPrevious(stmt, false)
	assert.False(t, store.IsInsertBoundToPrevious(stmt))

	store.SetBinding(func(*jast.Tree, jast.NodeID) bool { return true })
	assert.True(t, store.IsInsertBoundToPrevious(arg))
	store.SetBinding(nil)
	assert.False(t, store.IsInsertBoundToPrevious(arg))
}
