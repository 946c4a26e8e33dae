package java_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/parser/java"
)

const sample = `package com.example;

import java.util.List;
import static java.util.Collections.*;

/** A sample. */
@SuppressWarnings("unchecked")
public class Sample<T extends Comparable<T>> extends Base implements Runnable, Cloneable {
    private int count = 0, other[];
    static final String[] NAMES = {"a", "b"};

    /** Creates one. */
    public Sample(int count) {
        super();
        this.count = count;
    }

    @Override
    public void run() {
        for (int i = 0; i < count; i++) {
            if (i % 2 == 0) continue;
            System.out.println(i);
        }
        for (String s : NAMES) {
            label: while (true) { break label; }
        }
        try (java.io.Reader r = open()) {
            r.read();
        } catch (IllegalStateException | IllegalArgumentException e) {
            throw e;
        } finally {
            count >>= 1;
        }
        switch (count) {
        case 1:
            count = (int) 2L;
            break;
        default:
        }
        List<? extends Number> xs = new java.util.ArrayList<>();
        int[][] grid = new int[3][];
        Object o = new Object() { public String toString() { return "x"; } };
        boolean b = o instanceof String && a + b + c > d;
        Class<?> k = int[].class;
    }

    <R> R apply(java.util.function.Function<T, R> f) throws Exception, Error {
        return f.apply(null);
    }

    enum Color { RED, GREEN(1) { }, BLUE; Color() {} Color(int x) {} }
}
`

func parse(t *testing.T, src string) *jast.Tree {
	t.Helper()
	tree, err := java.Parse([]byte(src))
	require.NoError(t, err)
	return tree
}

func text(t *jast.Tree, n jast.NodeID) string { return string(t.Text(n)) }

func TestParse_CompilationUnit(t *testing.T) {
	t.Parallel()

	tree := parse(t, sample)
	root := tree.Root()
	require.Equal(t, jast.KindCompilationUnit, tree.Kind(root))
	assert.Equal(t, len(sample), tree.Length(root))

	pkg := tree.Child(root, jast.SlotPackage)
	assert.Equal(t, "com.example", tree.FullName(tree.Child(pkg, jast.SlotName)))

	imports := tree.List(root, jast.SlotImports)
	require.Len(t, imports, 2)
	assert.Equal(t, "import java.util.List;", text(tree, imports[0]))
	assert.Equal(t, 1, tree.Int(imports[1], jast.SlotStatic))
	assert.Equal(t, 1, tree.Int(imports[1], jast.SlotOnDemand))

	types := tree.List(root, jast.SlotTypes)
	require.Len(t, types, 1)
	typ := types[0]
	assert.Equal(t, "/** A sample. */", text(tree, tree.Child(typ, jast.SlotJavadoc)))
	assert.Equal(t, tree.Start(tree.Child(typ, jast.SlotJavadoc)), tree.Start(typ), "declaration starts at its doc comment")
	assert.Len(t, tree.List(typ, jast.SlotAnnotations), 1)
	assert.Equal(t, "Base", text(tree, tree.Child(typ, jast.SlotSuperclassType)))
	assert.Len(t, tree.List(typ, jast.SlotSuperInterfaceTypes), 2)
	assert.Len(t, tree.List(typ, jast.SlotTypeParameters), 1)
	assert.Len(t, tree.List(typ, jast.SlotBodyDeclarations), 6)
}

func TestParse_EveryRangeInsideParent(t *testing.T) {
	t.Parallel()

	tree := parse(t, sample)
	jast.Walk(tree, tree.Root(), func(n jast.NodeID) bool {
		parent := tree.Parent(n)
		if parent == jast.NoNode {
			return true
		}
		assert.GreaterOrEqual(t, tree.Start(n), tree.Start(parent), "%s in %s", tree.Kind(n), tree.Kind(parent))
		assert.LessOrEqual(t, tree.End(n), tree.End(parent), "%s in %s", tree.Kind(n), tree.Kind(parent))
		return true
	})
}

func TestParse_Declarations(t *testing.T) {
	t.Parallel()

	tree := parse(t, sample)
	methods := jast.FindAll(tree, tree.Root(), jast.KindMethodDeclaration)
	require.Len(t, methods, 6)

	ctor := methods[0]
	assert.Equal(t, 1, tree.Int(ctor, jast.SlotConstructor))
	assert.Equal(t, jast.NoNode, tree.Child(ctor, jast.SlotReturnType))
	assert.Equal(t, "/** Creates one. */", text(tree, tree.Child(ctor, jast.SlotJavadoc)))

	run := methods[1]
	ret := tree.Child(run, jast.SlotReturnType)
	require.Equal(t, jast.KindPrimitiveType, tree.Kind(ret))
	assert.Equal(t, "void", tree.Str(ret, jast.SlotPrimitiveCode))
	assert.Equal(t, "@Override", text(tree, tree.List(run, jast.SlotAnnotations)[0]))

	// methods[2] is toString of the anonymous class in run.
	apply := methods[3]
	assert.Len(t, tree.List(apply, jast.SlotTypeParameters), 1)
	assert.Len(t, tree.List(apply, jast.SlotThrownExceptions), 2)
	param := tree.List(apply, jast.SlotParameters)[0]
	assert.Equal(t, jast.KindParameterizedType, tree.Kind(tree.Child(param, jast.SlotType)))

	fields := jast.FindAll(tree, tree.Root(), jast.KindFieldDeclaration)
	require.Len(t, fields, 2)
	frags := tree.List(fields[0], jast.SlotFragments)
	require.Len(t, frags, 2)
	assert.Equal(t, 1, tree.Int(frags[1], jast.SlotExtraDimensions))
	init := tree.Child(tree.List(fields[1], jast.SlotFragments)[0], jast.SlotInitializer)
	assert.Equal(t, jast.KindArrayInitializer, tree.Kind(init))

	enum := jast.FindAll(tree, tree.Root(), jast.KindEnumDeclaration)
	require.Len(t, enum, 1)
	constants := tree.List(enum[0], jast.SlotEnumConstants)
	require.Len(t, constants, 3)
	assert.Len(t, tree.List(constants[1], jast.SlotArguments), 1)
	assert.NotEqual(t, jast.NoNode, tree.Child(constants[1], jast.SlotAnonymousClass))
	assert.Len(t, tree.List(enum[0], jast.SlotBodyDeclarations), 2)
}

func TestParse_Statements(t *testing.T) {
	t.Parallel()

	tree := parse(t, sample)
	for _, k := range []jast.Kind{
		jast.KindForStatement, jast.KindEnhancedForStatement, jast.KindLabeledStatement,
		jast.KindTryStatement, jast.KindSwitchStatement, jast.KindSuperConstructorInvocation,
		jast.KindContinueStatement, jast.KindThrowStatement,
	} {
		assert.Len(t, jast.FindAll(tree, tree.Root(), k), 1, k.String())
	}

	try := jast.FindAll(tree, tree.Root(), jast.KindTryStatement)[0]
	assert.Len(t, tree.List(try, jast.SlotResources), 1)
	catch := tree.List(try, jast.SlotCatchClauses)[0]
	exc := tree.Child(catch, jast.SlotException)
	union := tree.Child(exc, jast.SlotType)
	require.Equal(t, jast.KindUnionType, tree.Kind(union))
	assert.Len(t, tree.List(union, jast.SlotAlternatives), 2)

	sw := jast.FindAll(tree, tree.Root(), jast.KindSwitchStatement)[0]
	stmts := tree.List(sw, jast.SlotStatements)
	require.Len(t, stmts, 4)
	assert.Equal(t, "case 1:", text(tree, stmts[0]))
	assert.Equal(t, jast.KindSwitchCase, tree.Kind(stmts[3]))
	assert.Equal(t, jast.NoNode, tree.Child(stmts[3], jast.SlotExpression))
}

func TestParse_Expressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		expr  string
		kind  jast.Kind
		check func(t *testing.T, tree *jast.Tree, n jast.NodeID)
	}{
		{
			name: "same operator chain",
			expr: "a + b + c + d",
			kind: jast.KindInfixExpression,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				assert.Equal(t, "+", tree.Str(n, jast.SlotOperator))
				assert.Len(t, tree.List(n, jast.SlotExtendedOperands), 2)
			},
		},
		{
			name: "precedence",
			expr: "a + b * c",
			kind: jast.KindInfixExpression,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				right := tree.Child(n, jast.SlotRightOperand)
				assert.Equal(t, "*", tree.Str(right, jast.SlotOperator))
			},
		},
		{
			name: "unsigned shift",
			expr: "a >>> 2",
			kind: jast.KindInfixExpression,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				assert.Equal(t, ">>>", tree.Str(n, jast.SlotOperator))
			},
		},
		{
			name: "shift assignment",
			expr: "a >>= 2",
			kind: jast.KindAssignment,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				assert.Equal(t, ">>=", tree.Str(n, jast.SlotOperator))
			},
		},
		{
			name: "cast of primitive",
			expr: "(long) x",
			kind: jast.KindCastExpression,
		},
		{
			name: "parenthesized name is not a cast",
			expr: "(a) - b",
			kind: jast.KindInfixExpression,
		},
		{
			name: "conditional",
			expr: "a ? b : c ? d : e",
			kind: jast.KindConditionalExpression,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				assert.Equal(t, jast.KindConditionalExpression, tree.Kind(tree.Child(n, jast.SlotElseExpression)))
			},
		},
		{
			name: "qualified call",
			expr: "java.util.Objects.hash(a, b)",
			kind: jast.KindMethodInvocation,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				assert.Equal(t, "java.util.Objects", tree.FullName(tree.Child(n, jast.SlotExpression)))
				assert.Len(t, tree.List(n, jast.SlotArguments), 2)
			},
		},
		{
			name: "array creation",
			expr: "new int[n][2][]",
			kind: jast.KindArrayCreation,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				assert.Len(t, tree.List(n, jast.SlotDimensions), 2)
				assert.Equal(t, 1, tree.Int(n, jast.SlotExtraDimensions))
			},
		},
		{
			name: "generic call",
			expr: "obj.<String>get(0)[1]",
			kind: jast.KindArrayAccess,
		},
		{
			name: "qualified this",
			expr: "Outer.this.x",
			kind: jast.KindFieldAccess,
		},
		{
			name: "super call",
			expr: "super.hashCode()",
			kind: jast.KindSuperMethodInvocation,
		},
		{
			name: "postfix",
			expr: "i++",
			kind: jast.KindPostfixExpression,
		},
		{
			name: "boolean literal",
			expr: "true",
			kind: jast.KindBooleanLiteral,
			check: func(t *testing.T, tree *jast.Tree, n jast.NodeID) {
				assert.Equal(t, 1, tree.Int(n, jast.SlotBooleanValue))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := "class A { Object f = " + tt.expr + "; }"
			tree := parse(t, src)
			frag := jast.FindAll(tree, tree.Root(), jast.KindVariableDeclarationFragment)[0]
			init := tree.Child(frag, jast.SlotInitializer)
			require.Equal(t, tt.kind, tree.Kind(init))
			assert.Equal(t, tt.expr, text(tree, init))
			if tt.check != nil {
				tt.check(t, tree, init)
			}
		})
	}
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	src := "class A {\n    // lead\n    int x; // trail\n}\n"
	tree := parse(t, src)
	require.Len(t, tree.Comments(), 2)

	field := jast.FindAll(tree, tree.Root(), jast.KindFieldDeclaration)[0]
	assert.Equal(t, "int x;", text(tree, field))
	start, length := tree.ExtendedRange(field)
	assert.Equal(t, "// lead\n    int x; // trail", src[start:start+length])
}

func TestParse_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{name: "missing semicolon", src: "class A {\n  int x\n}", line: 3, msg: "expected"},
		{name: "unterminated body", src: "class A {", line: 1, msg: "unterminated"},
		{name: "annotation type", src: "@interface A {}", line: 1, msg: "annotation type"},
		{name: "bad member", src: "class A { + }", line: 1, msg: "expected"},
		{name: "try alone", src: "class A { void m() { try {} } }", line: 1, msg: "try without"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := java.New().Parse(context.Background(), "A.java", []byte(tt.src))
			require.Error(t, err)
			var se *java.SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "A.java", se.Path)
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestParser_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := java.New().Parse(ctx, "A.java", []byte("class A {}"))
	require.ErrorIs(t, err, context.Canceled)
}
