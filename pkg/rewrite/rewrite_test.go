package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/parser/java"
	"github.com/yaklabco/jrewrite/pkg/rewrite"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

func options() rewrite.Options {
	opts := rewrite.DefaultOptions()
	opts.Format.Indent = indent.Options{TabWidth: 4, IndentWidth: 4, UseTabs: false}
	return opts
}

func setup(t *testing.T, src string) (*jast.Tree, *rewrite.Rewrite) {
	t.Helper()

	tree, err := java.Parse([]byte(src))
	require.NoError(t, err)
	return tree, rewrite.New(tree)
}

// editsOf returns the edits of r below the root in pre-order.
func editsOf(t *testing.T, r *rewrite.Rewrite) []*textedit.Edit {
	t.Helper()

	res, err := r.Edits(options())
	require.NoError(t, err)
	return textedit.Flatten(res.Root)
}

// apply generates the edits of r and returns the rewritten source.
func apply(t *testing.T, r *rewrite.Rewrite) string {
	t.Helper()

	res, err := r.Edits(options())
	require.NoError(t, err)
	out, err := res.Apply(r.Tree().Content())
	require.NoError(t, err)
	return string(out.Content)
}

func first(t *testing.T, tree *jast.Tree, k jast.Kind) jast.NodeID {
	t.Helper()

	all := jast.FindAll(tree, tree.Root(), k)
	require.NotEmpty(t, all, "no %s", k)
	return all[0]
}

func primitive(tree *jast.Tree, code string) jast.NodeID {
	n := tree.NewNode(jast.KindPrimitiveType)
	tree.SetStr(n, jast.SlotPrimitiveCode, code)
	return n
}

func param(tree *jast.Tree, typ, name string) jast.NodeID {
	n := tree.NewNode(jast.KindSingleVariableDeclaration)
	tree.SetChild(n, jast.SlotType, primitive(tree, typ))
	tree.SetChild(n, jast.SlotName, tree.NewName(name))
	return n
}

func field(tree *jast.Tree, typ, name string) jast.NodeID {
	frag := tree.NewNode(jast.KindVariableDeclarationFragment)
	tree.SetChild(frag, jast.SlotName, tree.NewName(name))
	n := tree.NewNode(jast.KindFieldDeclaration)
	tree.SetChild(n, jast.SlotType, primitive(tree, typ))
	tree.SetList(n, jast.SlotFragments, []jast.NodeID{frag})
	return n
}

func method(tree *jast.Tree, name string) jast.NodeID {
	n := tree.NewNode(jast.KindMethodDeclaration)
	tree.SetChild(n, jast.SlotReturnType, primitive(tree, "void"))
	tree.SetChild(n, jast.SlotName, tree.NewName(name))
	tree.SetChild(n, jast.SlotBody, tree.NewNode(jast.KindBlock))
	return n
}

const source = `package p;

import java.util.List;

/** Doc. */
public class A {
    int a; // trailing

    void m() throws A, B {
        foo(1, 2);
    }
}
`

func TestEdits_NoChanges(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)

	res, err := r.Edits(options())
	require.NoError(t, err)
	assert.Zero(t, res.Edits)
	assert.Empty(t, res.Root.Children())
	assert.Empty(t, res.Groups)

	out, err := res.Apply(tree.Content())
	require.NoError(t, err)
	assert.Equal(t, source, string(out.Content))
}

func TestEdits_UnchangedListEvent(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)
	m := first(t, tree, jast.KindMethodDeclaration)

	_, err := r.ListRewrite(m, jast.SlotParameters)
	require.NoError(t, err)

	assert.Equal(t, source, apply(t, r))
}

func TestEdits_ReplaceName(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)
	m := first(t, tree, jast.KindMethodDeclaration)

	require.NoError(t, r.Replace(tree.Child(m, jast.SlotName), tree.NewName("n"), nil))

	res, err := r.Edits(options())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Edits)

	out := apply(t, r)
	assert.Contains(t, out, "    void n() throws A, B {\n")
	assert.Contains(t, out, "/** Doc. */\npublic class A {")
}

func TestEdits_ReplaceBackToOriginal(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)
	m := first(t, tree, jast.KindMethodDeclaration)
	name := tree.Child(m, jast.SlotName)

	require.NoError(t, r.Replace(name, tree.NewName("n"), nil))
	require.NoError(t, r.SetChild(m, jast.SlotName, name, nil))

	res, err := r.Edits(options())
	require.NoError(t, err)
	assert.Zero(t, res.Edits)
}

func TestEdits_RemoveAllThrows(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)
	m := first(t, tree, jast.KindMethodDeclaration)

	for _, ex := range tree.List(m, jast.SlotThrownExceptions) {
		require.NoError(t, r.Remove(ex, nil))
	}

	assert.Contains(t, apply(t, r), "    void m() {\n        foo(1, 2);\n    }\n")
}

func TestEdits_InsertParameters(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)
	m := first(t, tree, jast.KindMethodDeclaration)

	lr, err := r.ListRewrite(m, jast.SlotParameters)
	require.NoError(t, err)
	require.NoError(t, lr.InsertLast(param(tree, "int", "a"), nil))
	require.NoError(t, lr.InsertLast(param(tree, "int", "b"), nil))

	assert.Contains(t, apply(t, r), "    void m(int a, int b) throws A, B {\n")
}

func TestEdits_InsertIntoEmptyList(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, "class A {\n    void m() {\n    }\n}\n")
	m := first(t, tree, jast.KindMethodDeclaration)

	lr, err := r.ListRewrite(m, jast.SlotParameters)
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, lr.InsertLast(param(tree, "int", name), nil))
	}

	separators := 0
	for _, e := range editsOf(t, r) {
		if e.Kind == textedit.KindInsert {
			separators += strings.Count(e.Text, ",")
		}
	}
	assert.Equal(t, 2, separators, "three entries need two separators")
	assert.Contains(t, apply(t, r), "    void m(int a, int b, int c) {\n")
}

func TestEdits_RemoveParameter(t *testing.T) {
	t.Parallel()

	const src = "class A {\n    void m(int a, int b, int c) {\n    }\n}\n"

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{name: "first", index: 0, want: "void m(int b, int c) {"},
		{name: "middle", index: 1, want: "void m(int a, int c) {"},
		{name: "last", index: 2, want: "void m(int a, int b) {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, r := setup(t, src)
			m := first(t, tree, jast.KindMethodDeclaration)
			params := tree.List(m, jast.SlotParameters)

			require.NoError(t, r.Remove(params[tt.index], nil))
			assert.Contains(t, apply(t, r), tt.want)
		})
	}
}

func TestEdits_ReplaceArgument(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)
	call := first(t, tree, jast.KindMethodInvocation)
	args := tree.List(call, jast.SlotArguments)
	require.Len(t, args, 2)

	require.NoError(t, r.Replace(args[1], tree.NewName("x"), nil))

	assert.Contains(t, apply(t, r), "        foo(1, x);\n")
}

func TestEdits_InfixOperator(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, "class A {\n    int x = a + b + c;\n}\n")
	infix := first(t, tree, jast.KindInfixExpression)

	require.NoError(t, r.Set(infix, jast.SlotOperator, jast.StrValue("-"), nil))

	assert.Equal(t, "class A {\n    int x = a - b - c;\n}\n", apply(t, r))
}

func TestEdits_CopyStatement(t *testing.T) {
	t.Parallel()

	const src = "class A {\n    void m() {\n        foo();\n    }\n}\n"
	tree, r := setup(t, src)
	body := first(t, tree, jast.KindBlock)
	stmt := tree.List(body, jast.SlotStatements)[0]

	lr, err := r.ListRewrite(body, jast.SlotStatements)
	require.NoError(t, err)
	for range 2 {
		target, err := r.CreateCopyTarget(stmt)
		require.NoError(t, err)
		require.NoError(t, lr.InsertLast(target, nil))
	}

	want := "class A {\n    void m() {\n        foo();\n        foo();\n        foo();\n    }\n}\n"
	assert.Equal(t, want, apply(t, r))

	var sources, targets []*textedit.Edit
	for _, e := range editsOf(t, r) {
		switch e.Kind {
		case textedit.KindCopySource:
			sources = append(sources, e)
		case textedit.KindCopyTarget:
			targets = append(targets, e)
		}
	}
	require.Len(t, sources, 1, "both copies read one source")
	require.Len(t, targets, 2)
	for _, target := range targets {
		assert.Same(t, sources[0], target.Source)
	}
}

func TestEdits_MoveStatementWithNestedChange(t *testing.T) {
	t.Parallel()

	const src = "class A {\n    void m() {\n        a();\n        b();\n    }\n}\n"
	tree, r := setup(t, src)
	body := first(t, tree, jast.KindBlock)
	stmts := tree.List(body, jast.SlotStatements)
	call := first(t, tree, jast.KindMethodInvocation)

	target, err := r.CreateMoveTarget(stmts[0])
	require.NoError(t, err)
	lr, err := r.ListRewrite(body, jast.SlotStatements)
	require.NoError(t, err)
	require.NoError(t, lr.InsertAfter(target, stmts[1], nil))
	require.NoError(t, lr.Remove(stmts[0], nil))
	require.NoError(t, r.Replace(tree.Child(call, jast.SlotName), tree.NewName("c"), nil))

	want := "class A {\n    void m() {\n        b();\n        c();\n    }\n}\n"
	assert.Equal(t, want, apply(t, r))
}

func TestEdits_MemberParagraphs(t *testing.T) {
	t.Parallel()

	const src = "class A {\n    int a;\n    int b;\n\n    void m() {\n    }\n}\n"

	t.Run("field after field", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, src)
		class := first(t, tree, jast.KindTypeDeclaration)
		decls := tree.List(class, jast.SlotBodyDeclarations)

		lr, err := r.ListRewrite(class, jast.SlotBodyDeclarations)
		require.NoError(t, err)
		require.NoError(t, lr.InsertAfter(field(tree, "int", "c"), decls[1], nil))

		want := "class A {\n    int a;\n    int b;\n    int c;\n\n    void m() {\n    }\n}\n"
		assert.Equal(t, want, apply(t, r))
	})

	t.Run("method appended", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, src)
		class := first(t, tree, jast.KindTypeDeclaration)

		lr, err := r.ListRewrite(class, jast.SlotBodyDeclarations)
		require.NoError(t, err)
		require.NoError(t, lr.InsertLast(method(tree, "n"), nil))

		want := "class A {\n    int a;\n    int b;\n\n    void m() {\n    }\n\n    void n() {\n    }\n}\n"
		assert.Equal(t, want, apply(t, r))
	})
}

func TestEdits_MethodBetweenMethods(t *testing.T) {
	t.Parallel()

	const src = "class A {\n    void a() {\n    }\n\n    void b() {\n    }\n}\n"
	tree, r := setup(t, src)
	class := first(t, tree, jast.KindTypeDeclaration)
	decls := tree.List(class, jast.SlotBodyDeclarations)

	lr, err := r.ListRewrite(class, jast.SlotBodyDeclarations)
	require.NoError(t, err)
	require.NoError(t, lr.InsertAfter(method(tree, "n"), decls[0], nil))

	want := "class A {\n    void a() {\n    }\n\n    void n() {\n    }\n\n    void b() {\n    }\n}\n"
	assert.Equal(t, want, apply(t, r))
}

func TestEdits_OptionalChildAtUnitStart(t *testing.T) {
	t.Parallel()

	t.Run("doc comment of the first type", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, "/** Doc. */\npublic class A {\n}\n")
		require.NoError(t, r.Remove(first(t, tree, jast.KindJavadoc), nil))

		assert.Equal(t, "public class A {\n}\n", apply(t, r))
	})

	t.Run("package removed", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, "package p;\n\nclass A {\n}\n")
		require.NoError(t, r.Remove(first(t, tree, jast.KindPackageDeclaration), nil))

		out := apply(t, r)
		assert.NotContains(t, out, "package")
		assert.Contains(t, out, "class A {\n}\n")
	})

	t.Run("package inserted", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, "class A {\n}\n")
		pkg := tree.NewNode(jast.KindPackageDeclaration)
		tree.SetChild(pkg, jast.SlotName, tree.NewName("p"))
		require.NoError(t, r.SetChild(tree.Root(), jast.SlotPackage, pkg, nil))

		out := apply(t, r)
		assert.True(t, strings.HasPrefix(out, "package p;\n"), out)
		assert.Contains(t, out, "class A {\n}\n")
	})
}

func TestEdits_Groups(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, source)
	m := first(t, tree, jast.KindMethodDeclaration)
	g := r.Track(tree.Child(m, jast.SlotBody))

	require.NoError(t, r.Replace(tree.Child(m, jast.SlotName), tree.NewName("run"), nil))

	res, err := r.Edits(options())
	require.NoError(t, err)
	out, err := res.Apply(tree.Content())
	require.NoError(t, err)

	rng, ok := out.GroupRange(g)
	require.True(t, ok)
	assert.Equal(t, "{\n        foo(1, 2);\n    }", string(out.Content[rng.Offset:rng.End()]))
}

func TestEdits_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unsupported change", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, source)
		m := first(t, tree, jast.KindMethodDeclaration)
		name := tree.Child(m, jast.SlotName)
		require.NoError(t, r.Set(name, jast.SlotIdentifier, jast.StrValue("n"), nil))

		_, err := r.Edits(options())
		var uce *rewrite.UnsupportedChangeError
		require.ErrorAs(t, err, &uce)
		assert.Equal(t, name, uce.Node)
		assert.Equal(t, jast.SlotIdentifier, uce.Slot)
	})

	t.Run("missing move source", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, source)
		body := first(t, tree, jast.KindBlock)
		stmt := tree.List(body, jast.SlotStatements)[0]

		target := tree.NewNode(jast.KindExpressionStatement)
		r.Store().SetPlaceholder(target, events.Placeholder{Kind: events.PlaceholderMove, Source: stmt})
		lr, err := r.ListRewrite(body, jast.SlotStatements)
		require.NoError(t, err)
		require.NoError(t, lr.InsertFirst(target, nil))

		_, err = r.Edits(options())
		var mse *rewrite.MissingSourceError
		require.ErrorAs(t, err, &mse)
		assert.Equal(t, stmt, mse.Node)
		assert.True(t, mse.Move)
	})

	t.Run("required slot", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, source)
		m := first(t, tree, jast.KindMethodDeclaration)

		err := r.Remove(tree.Child(m, jast.SlotName), nil)
		require.ErrorIs(t, err, rewrite.ErrRequiredSlot)
	})

	t.Run("not in tree", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, source)

		require.ErrorIs(t, r.Remove(tree.Root(), nil), rewrite.ErrNotInTree)
		require.ErrorIs(t, r.Replace(tree.NewName("x"), tree.NewName("y"), nil), rewrite.ErrNotInTree)
	})

	t.Run("move twice", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, source)
		body := first(t, tree, jast.KindBlock)

		_, err := r.CreateMoveTarget(body)
		require.NoError(t, err)
		_, err = r.CreateMoveTarget(body)
		require.ErrorIs(t, err, events.ErrAlreadyMoved)
	})

	t.Run("copy of new node", func(t *testing.T) {
		t.Parallel()

		tree, r := setup(t, source)

		_, err := r.CreateCopyTarget(tree.NewName("x"))
		require.ErrorIs(t, err, events.ErrNotOriginal)
	})
}

func TestListRewrite(t *testing.T) {
	t.Parallel()

	tree, r := setup(t, "class A {\n    void m(int a, int b) {\n    }\n}\n")
	m := first(t, tree, jast.KindMethodDeclaration)
	params := tree.List(m, jast.SlotParameters)

	lr, err := r.ListRewrite(m, jast.SlotParameters)
	require.NoError(t, err)
	assert.Equal(t, m, lr.Parent())
	assert.Equal(t, jast.SlotParameters, lr.Slot())

	x := param(tree, "long", "x")
	y := param(tree, "long", "y")
	require.NoError(t, lr.InsertBefore(x, params[1], nil))
	require.NoError(t, lr.InsertAfter(y, params[1], nil))
	require.NoError(t, lr.Remove(params[0], nil))

	assert.Equal(t, params, lr.Original())
	assert.Equal(t, []jast.NodeID{x, params[1], y}, lr.Rewritten())

	err = lr.InsertAfter(param(tree, "int", "z"), tree.NewName("q"), nil)
	require.ErrorIs(t, err, events.ErrNotInList)

	assert.Contains(t, apply(t, r), "void m(long x, int b, long y) {")
}

func TestEdits_StringPlaceholder(t *testing.T) {
	t.Parallel()

	const src = "class A {\n    void m() {\n        a();\n    }\n}\n"
	tree, r := setup(t, src)
	body := first(t, tree, jast.KindBlock)

	lr, err := r.ListRewrite(body, jast.SlotStatements)
	require.NoError(t, err)
	require.NoError(t, lr.InsertLast(r.CreateStringPlaceholder("log();", jast.KindExpressionStatement), nil))

	want := "class A {\n    void m() {\n        a();\n        log();\n    }\n}\n"
	assert.Equal(t, want, apply(t, r))
}
