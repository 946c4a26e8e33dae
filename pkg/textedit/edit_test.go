package textedit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/textedit"
)

func TestAddChild_Order(t *testing.T) {
	t.Parallel()

	root := textedit.NewRoot(20)
	d := textedit.Delete(10, 5)
	first := textedit.Insert(5, "a")
	second := textedit.Insert(5, "b")
	atEnd := textedit.Insert(15, "c")
	before := textedit.Insert(10, "x")

	for _, e := range []*textedit.Edit{d, first, second, atEnd, before} {
		require.NoError(t, root.AddChild(e))
	}

	assert.Equal(t, []*textedit.Edit{first, second, before, d, atEnd}, root.Children())
	assert.Same(t, root, d.Parent())
}

func TestAddChild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing *textedit.Edit
		added    *textedit.Edit
		conflict bool
	}{
		{
			name:     "partial overlap",
			existing: textedit.Delete(2, 4),
			added:    textedit.Replace(4, 4, "x"),
			conflict: true,
		},
		{
			name:     "insert inside delete",
			existing: textedit.Delete(2, 4),
			added:    textedit.Insert(3, "x"),
			conflict: true,
		},
		{
			name:     "covering an existing sibling",
			existing: textedit.Insert(3, "x"),
			added:    textedit.Delete(1, 5),
			conflict: true,
		},
		{
			name:  "outside the parent",
			added: textedit.Delete(8, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := textedit.NewRoot(10)
			if tt.existing != nil {
				require.NoError(t, root.AddChild(tt.existing))
			}
			err := root.AddChild(tt.added)
			require.Error(t, err)

			var conflict *textedit.ConflictError
			assert.Equal(t, tt.conflict, errors.As(err, &conflict))
		})
	}
}

func TestAddChild_Nested(t *testing.T) {
	t.Parallel()

	root := textedit.NewRoot(10)
	src := textedit.MoveSource(2, 6)
	require.NoError(t, root.AddChild(src))
	require.NoError(t, src.AddChild(textedit.Replace(3, 1, "y")))
	require.Error(t, src.AddChild(textedit.Insert(9, "z")))

	empty := textedit.Delete(1, 0)
	require.NoError(t, root.AddChild(empty))
	assert.False(t, empty.Covers(textedit.Insert(1, "q")))
	assert.True(t, textedit.NewRange(9, 0).Covers(textedit.Insert(9, "q")))
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := textedit.NewBuilder(10)
	outer := textedit.NewRange(0, 6)
	require.NoError(t, b.Add(outer))
	b.Push(outer)
	require.NoError(t, b.Add(textedit.Insert(2, "x")))
	assert.Equal(t, 1, b.Depth())

	popped, err := b.Pop()
	require.NoError(t, err)
	assert.Same(t, outer, popped)
	require.NoError(t, b.Add(textedit.Insert(8, "y")))

	_, err = b.Pop()
	require.ErrorIs(t, err, textedit.ErrEmptyScope)

	assert.Len(t, b.Root().Children(), 2)
	assert.Len(t, outer.Children(), 1)
	assert.Len(t, textedit.Flatten(b.Root()), 3)
	assert.Equal(t, 2, textedit.Count(b.Root()))
}

func TestCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edits func() []*textedit.Edit
		want  int
	}{
		{
			name: "delete then insert at its start is one replacement",
			edits: func() []*textedit.Edit {
				return []*textedit.Edit{textedit.Delete(4, 3), textedit.Insert(4, "two")}
			},
			want: 1,
		},
		{
			name: "insert after the deleted text counts apart",
			edits: func() []*textedit.Edit {
				return []*textedit.Edit{textedit.Delete(4, 3), textedit.Insert(7, "two")}
			},
			want: 2,
		},
		{
			name: "two inserts at one offset",
			edits: func() []*textedit.Edit {
				return []*textedit.Edit{textedit.Insert(2, "a"), textedit.Insert(2, "b")}
			},
			want: 2,
		},
		{
			name: "sources and ranges are not counted",
			edits: func() []*textedit.Edit {
				src := textedit.MoveSource(0, 2)
				return []*textedit.Edit{src, textedit.NewRange(3, 2), textedit.MoveTarget(9, src, nil)}
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := textedit.NewBuilder(10)
			for _, e := range tt.edits() {
				require.NoError(t, b.Add(e))
			}
			assert.Equal(t, tt.want, textedit.Count(b.Root()))
		})
	}
	assert.Zero(t, textedit.Count(nil))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid tree", func(t *testing.T) {
		t.Parallel()

		root := textedit.NewRoot(10)
		src := textedit.CopySource(0, 3)
		require.NoError(t, root.AddChild(src))
		require.NoError(t, root.AddChild(textedit.CopyTarget(5, src, nil)))
		assert.NoError(t, textedit.Validate(root, 10))
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, textedit.Validate(textedit.NewRoot(10), 11))
	})

	t.Run("source outside tree", func(t *testing.T) {
		t.Parallel()

		root := textedit.NewRoot(10)
		require.NoError(t, root.AddChild(textedit.MoveTarget(5, textedit.MoveSource(0, 2), nil)))

		var verr *textedit.ValidationError
		require.ErrorAs(t, textedit.Validate(root, 10), &verr)
		assert.Contains(t, verr.Message, "not part of the edit tree")
	})

	t.Run("kind mismatch", func(t *testing.T) {
		t.Parallel()

		root := textedit.NewRoot(10)
		src := textedit.CopySource(0, 2)
		require.NoError(t, root.AddChild(src))
		require.NoError(t, root.AddChild(textedit.MoveTarget(5, src, nil)))
		assert.Error(t, textedit.Validate(root, 10))
	})
}
