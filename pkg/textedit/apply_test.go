package textedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

func buildTree(t *testing.T, length int, edits ...*textedit.Edit) *textedit.Edit {
	t.Helper()

	root := textedit.NewRoot(length)
	for _, e := range edits {
		require.NoError(t, root.AddChild(e))
	}
	return root
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   func() []*textedit.Edit
		want    string
	}{
		{
			name:    "no edits returns original",
			content: "int x;",
			edits:   func() []*textedit.Edit { return nil },
			want:    "int x;",
		},
		{
			name:    "replace and insert",
			content: "foo(a, b)",
			edits: func() []*textedit.Edit {
				return []*textedit.Edit{
					textedit.Replace(0, 3, "bar"),
					textedit.Insert(8, ", c"),
				}
			},
			want: "bar(a, b, c)",
		},
		{
			name:    "inserts at the same offset keep order",
			content: "()",
			edits: func() []*textedit.Edit {
				return []*textedit.Edit{
					textedit.Insert(1, "a"),
					textedit.Insert(1, ", "),
					textedit.Insert(1, "b"),
				}
			},
			want: "(a, b)",
		},
		{
			name:    "insert adjacent to delete",
			content: "a, b, c",
			edits: func() []*textedit.Edit {
				return []*textedit.Edit{
					textedit.Delete(3, 3),
					textedit.Insert(6, "x, "),
				}
			},
			want: "a, x, c",
		},
		{
			name:    "move",
			content: "one two three",
			edits: func() []*textedit.Edit {
				src := textedit.MoveSource(4, 4)
				return []*textedit.Edit{src, textedit.MoveTarget(13, src, nil)}
			},
			want: "one threetwo ",
		},
		{
			name:    "two copies share a source",
			content: "x = f();",
			edits: func() []*textedit.Edit {
				src := textedit.CopySource(4, 3)
				return []*textedit.Edit{
					textedit.Insert(0, "a = "),
					src,
					textedit.CopyTarget(7, src, nil),
					textedit.CopyTarget(7, src, nil),
				}
			},
			want: "a = x = f()f()f();",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := buildTree(t, len(tt.content), tt.edits()...)
			res, err := textedit.Apply([]byte(tt.content), root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(res.Content))
		})
	}
}

func TestApply_SourceChildren(t *testing.T) {
	t.Parallel()

	content := "{ a(); b(); }"
	root := textedit.NewRoot(len(content))

	src := textedit.MoveSource(2, 9)
	require.NoError(t, root.AddChild(src))
	require.NoError(t, src.AddChild(textedit.Replace(2, 1, "c")))
	inner := textedit.MoveSource(7, 4)
	require.NoError(t, src.AddChild(inner))
	require.NoError(t, root.AddChild(textedit.MoveTarget(13, src, nil)))
	require.NoError(t, root.AddChild(textedit.MoveTarget(0, inner, nil)))

	res, err := textedit.Apply([]byte(content), root)
	require.NoError(t, err)
	assert.Equal(t, "b();{  }c(); ", string(res.Content))
}

func TestApply_Reindent(t *testing.T) {
	t.Parallel()

	content := "\tif (a) {\n\t\tx();\n\t}\n"
	root := textedit.NewRoot(len(content))
	src := textedit.CopySource(1, 18)
	require.NoError(t, root.AddChild(src))
	require.NoError(t, root.AddChild(textedit.CopyTarget(len(content), src, &textedit.Reindent{
		SourceUnits: 1,
		DestIndent:  "",
		Options:     indent.DefaultOptions(),
	})))

	res, err := textedit.Apply([]byte(content), root)
	require.NoError(t, err)
	assert.Equal(t, content+"if (a) {\n\tx();\n}", string(res.Content))
}

func TestApply_Cycle(t *testing.T) {
	t.Parallel()

	root := textedit.NewRoot(10)
	src := textedit.CopySource(0, 5)
	require.NoError(t, root.AddChild(src))
	require.NoError(t, src.AddChild(textedit.CopyTarget(2, src, nil)))

	_, err := textedit.Apply(make([]byte, 10), root)
	require.Error(t, err)
}

func TestApply_Ranges(t *testing.T) {
	t.Parallel()

	content := "int a; int b;"
	tracked := textedit.NewRange(7, 6)
	ins := textedit.Insert(6, " long c;")
	del := textedit.Delete(0, 6)
	inDeleted := textedit.NewRange(4, 1)
	root := buildTree(t, len(content), del, ins, tracked)
	require.NoError(t, del.AddChild(inDeleted))
	group := textedit.NewGroup("add c")
	group.Add(ins)
	group.Add(tracked)

	res, err := textedit.Apply([]byte(content), root)
	require.NoError(t, err)
	assert.Equal(t, " long c; int b;", string(res.Content))

	rng, ok := res.RangeOf(tracked)
	require.True(t, ok)
	assert.Equal(t, "int b;", string(res.Content[rng.Offset:rng.End()]))

	rng, ok = res.RangeOf(inDeleted)
	require.True(t, ok)
	assert.Equal(t, textedit.Range{Offset: 0}, rng)

	rng, ok = res.GroupRange(group)
	require.True(t, ok)
	assert.Equal(t, " long c; int b;", string(res.Content[rng.Offset:rng.End()]))

	_, ok = res.GroupRange(textedit.NewGroup("empty"))
	assert.False(t, ok)
}

func TestApply_InvalidTree(t *testing.T) {
	t.Parallel()

	_, err := textedit.Apply([]byte("abc"), textedit.NewRoot(5))
	require.Error(t, err)
}
