package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/events"
	"github.com/yaklabco/jrewrite/pkg/format"
	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/textedit"
)

func primitive(t *jast.Tree, code string) jast.NodeID {
	n := t.NewNode(jast.KindPrimitiveType)
	t.SetStr(n, jast.SlotPrimitiveCode, code)
	return n
}

func field(t *jast.Tree, typ, name string) jast.NodeID {
	frag := t.NewNode(jast.KindVariableDeclarationFragment)
	t.SetChild(frag, jast.SlotName, t.NewName(name))
	f := t.NewNode(jast.KindFieldDeclaration)
	t.SetChild(f, jast.SlotType, primitive(t, typ))
	t.SetList(f, jast.SlotFragments, []jast.NodeID{frag})
	return f
}

func call(t *jast.Tree, name string, args ...jast.NodeID) jast.NodeID {
	c := t.NewNode(jast.KindMethodInvocation)
	t.SetChild(c, jast.SlotName, t.NewName(name))
	t.SetList(c, jast.SlotArguments, args)
	return c
}

func exprStmt(t *jast.Tree, expr jast.NodeID) jast.NodeID {
	s := t.NewNode(jast.KindExpressionStatement)
	t.SetChild(s, jast.SlotExpression, expr)
	return s
}

func TestJava_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(t *jast.Tree) jast.NodeID
		base  string
		want  string
	}{
		{
			name: "method with body",
			build: func(t *jast.Tree) jast.NodeID {
				lit := t.NewNode(jast.KindNumberLiteral)
				t.SetStr(lit, jast.SlotToken, "0")
				ret := t.NewNode(jast.KindReturnStatement)
				t.SetChild(ret, jast.SlotExpression, lit)
				body := t.NewNode(jast.KindBlock)
				t.SetList(body, jast.SlotStatements, []jast.NodeID{ret})
				m := t.NewNode(jast.KindMethodDeclaration)
				t.SetInt(m, jast.SlotModifiers, jast.ModPublic)
				t.SetChild(m, jast.SlotReturnType, primitive(t, "int"))
				t.SetChild(m, jast.SlotName, t.NewName("size"))
				t.SetChild(m, jast.SlotBody, body)
				return m
			},
			base: "\t",
			want: "\tpublic int size() {\n\t\treturn 0;\n\t}",
		},
		{
			name: "class members",
			build: func(t *jast.Tree) jast.NodeID {
				m := t.NewNode(jast.KindMethodDeclaration)
				t.SetChild(m, jast.SlotName, t.NewName("m"))
				t.SetChild(m, jast.SlotBody, t.NewNode(jast.KindBlock))
				c := t.NewNode(jast.KindTypeDeclaration)
				t.SetChild(c, jast.SlotName, t.NewName("A"))
				t.SetList(c, jast.SlotBodyDeclarations, []jast.NodeID{field(t, "int", "x"), field(t, "int", "y"), m})
				return c
			},
			want: "class A {\n\tint x;\n\tint y;\n\n\tvoid m() {\n\t}\n}",
		},
		{
			name: "if else without blocks",
			build: func(t *jast.Tree) jast.NodeID {
				s := t.NewNode(jast.KindIfStatement)
				t.SetChild(s, jast.SlotExpression, t.NewName("c"))
				t.SetChild(s, jast.SlotThenStatement, exprStmt(t, call(t, "x")))
				t.SetChild(s, jast.SlotElseStatement, exprStmt(t, call(t, "y")))
				return s
			},
			want: "if (c)\n\tx();\nelse\n\ty();",
		},
		{
			name: "for loop header",
			build: func(t *jast.Tree) jast.NodeID {
				s := t.NewNode(jast.KindForStatement)
				t.SetChild(s, jast.SlotBody, t.NewNode(jast.KindBlock))
				return s
			},
			want: "for (;;) {\n}",
		},
		{
			name: "qualified call with infix argument",
			build: func(t *jast.Tree) jast.NodeID {
				plus := t.NewNode(jast.KindInfixExpression)
				t.SetChild(plus, jast.SlotLeftOperand, t.NewName("a"))
				t.SetStr(plus, jast.SlotOperator, "+")
				t.SetChild(plus, jast.SlotRightOperand, t.NewName("b"))
				t.SetList(plus, jast.SlotExtendedOperands, []jast.NodeID{t.NewName("c")})
				c := call(t, "println", plus)
				t.SetChild(c, jast.SlotExpression, t.NewName("System.out"))
				return c
			},
			want: "System.out.println(a + b + c)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := jast.NewTree(nil)
			node := tt.build(tree)
			f := format.NewJava(events.NewStore(tree), format.DefaultOptions())

			got, markers := f.Format(node, tt.base)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, markers)
		})
	}
}

func TestJava_Format_Markers(t *testing.T) {
	t.Parallel()

	tree := jast.NewTree([]byte("a + b"))
	infix := tree.AddNode(jast.KindInfixExpression, 0, 5)
	a := tree.AddNode(jast.KindSimpleName, 0, 1)
	tree.SetStr(a, jast.SlotIdentifier, "a")
	b := tree.AddNode(jast.KindSimpleName, 4, 1)
	tree.SetStr(b, jast.SlotIdentifier, "b")
	tree.SetChild(infix, jast.SlotLeftOperand, a)
	tree.SetStr(infix, jast.SlotOperator, "+")
	tree.SetChild(infix, jast.SlotRightOperand, b)
	tree.SetRoot(infix)
	tree.Link()

	store := events.NewStore(tree)
	moved := tree.NewNode(jast.KindSimpleName)
	store.SetPlaceholder(moved, events.Placeholder{Kind: events.PlaceholderMove, Source: a})
	tracked := tree.NewName("y")
	store.Track(tracked, textedit.NewGroup("y"))
	code := tree.NewNode(jast.KindSimpleName)
	store.SetPlaceholder(code, events.Placeholder{Kind: events.PlaceholderString, Code: "1 + 2"})

	node := call(tree, "f", moved, tracked, code, b)
	got, markers := format.NewJava(store, format.DefaultOptions()).Format(node, "")

	assert.Equal(t, "f(a, y, 1 + 2, b)", got)
	require.Len(t, markers, 3)
	assert.Equal(t, format.Marker{Kind: format.MarkerMove, Offset: 2, Length: 1, Node: moved}, markers[0])
	assert.Equal(t, format.Marker{Kind: format.MarkerTrack, Offset: 5, Length: 1, Node: tracked}, markers[1])
	assert.Equal(t, format.Marker{Kind: format.MarkerString, Offset: 8, Length: 5, Node: code}, markers[2])
	assert.Equal(t, "1 + 2", got[markers[2].Offset:markers[2].End()])
}

func TestJava_Format_Javadoc(t *testing.T) {
	t.Parallel()

	tree := jast.NewTree(nil)
	doc := tree.NewNode(jast.KindJavadoc)
	tree.SetStr(doc, jast.SlotComment, "/**\n   * Counts.\n   */")
	f := field(tree, "int", "count")
	tree.SetChild(f, jast.SlotJavadoc, doc)
	tree.SetInt(f, jast.SlotModifiers, jast.ModPrivate|jast.ModFinal)

	got, _ := format.NewJava(events.NewStore(tree), format.DefaultOptions()).Format(f, "    ")
	assert.Equal(t, "    /**\n     * Counts.\n     */\n    private final int count;", got)
}

func TestMarkerKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "move", format.MarkerMove.String())
	assert.Equal(t, "track", format.MarkerTrack.String())
	assert.Equal(t, "unknown", format.MarkerKind(0).String())
}
