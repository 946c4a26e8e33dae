package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/indent"
	"github.com/yaklabco/jrewrite/pkg/parser/java"
	"github.com/yaklabco/jrewrite/pkg/rewrite"
	"github.com/yaklabco/jrewrite/pkg/script"
)

const unit = `class A {
    int unused;
    int b;

    public void run() {
        oldName(1, 2);
        log(b, 3);
        int x = b + 1;
    }
}
`

func run(t *testing.T, src, doc string) (string, []script.StepResult, error) {
	t.Helper()

	s, err := script.Parse([]byte(doc))
	require.NoError(t, err)
	tree, err := java.Parse([]byte(src))
	require.NoError(t, err)

	r := rewrite.New(tree)
	results, err := script.Run(context.Background(), s, r)
	if err != nil {
		return "", results, err
	}

	opts := rewrite.DefaultOptions()
	opts.Format.Indent = indent.Options{TabWidth: 4, IndentWidth: 4}
	res, err := r.Edits(opts)
	require.NoError(t, err)
	out, err := res.Apply(tree.Content())
	require.NoError(t, err)
	return string(out.Content), results, nil
}

func TestParse_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty", doc: "", want: script.ErrNoSteps},
		{name: "no steps", doc: "name: x\nsteps: []\n", want: script.ErrNoSteps},
		{name: "no action", doc: "steps:\n  - match: {kind: Block}\n", want: script.ErrNoAction},
		{
			name: "two actions",
			doc:  "steps:\n  - match: {kind: InfixExpression}\n    operator: \"-\"\n    remove: {}\n",
			want: script.ErrManyActions,
		},
		{name: "unknown kind", doc: "steps:\n  - match: {kind: Lambda}\n    remove: {}\n", want: script.ErrUnknownKind},
		{name: "missing kind", doc: "steps:\n  - match: {name: x}\n    remove: {}\n", want: script.ErrInvalidMatch},
		{
			name: "unknown slot",
			doc:  "steps:\n  - match: {kind: MethodDeclaration}\n    remove: {slot: Bogus}\n",
			want: script.ErrUnknownSlot,
		},
		{
			name: "unknown modifier",
			doc:  "steps:\n  - match: {kind: MethodDeclaration}\n    modifiers: {add: [sealed]}\n",
			want: script.ErrUnknownMod,
		},
		{
			name: "transfer without slot",
			doc:  "steps:\n  - match: {kind: ReturnStatement}\n    copy: {to: {kind: Block}}\n",
			want: script.ErrUnknownSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := script.Parse([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_StepErrorIndex(t *testing.T) {
	t.Parallel()

	doc := "steps:\n  - match: {kind: Block}\n    remove: {}\n  - match: {kind: Nope}\n    remove: {}\n"
	_, err := script.Parse([]byte(doc))

	var se *script.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Index)
	assert.Contains(t, err.Error(), "step 2")
}

func TestParse_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := script.Parse([]byte("steps:\n  - match: {kind: Block}\n    delete: {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse script")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rename.yml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - match: {kind: Block}\n    remove: {}\n"), 0o600))

	s, err := script.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)
	assert.Len(t, s.Steps, 1)

	_, err = script.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "rename call",
			doc:  "steps:\n  - match: {kind: MethodInvocation, name: oldName}\n    replace: {slot: Name, text: newName}\n",
			want: []string{"        newName(1, 2);\n"},
		},
		{
			name: "remove argument",
			doc:  "steps:\n  - match: {kind: MethodInvocation, name: log}\n    remove: {slot: Arguments, index: 0}\n",
			want: []string{"        log(3);\n"},
		},
		{
			name: "remove last argument",
			doc:  "steps:\n  - match: {kind: MethodInvocation, name: log}\n    remove: {slot: Arguments, index: -1}\n",
			want: []string{"        log(b);\n"},
		},
		{
			name: "operator",
			doc:  "steps:\n  - match: {kind: InfixExpression, operator: \"+\"}\n    operator: \"-\"\n",
			want: []string{"        int x = b - 1;\n"},
		},
		{
			name: "remove field",
			doc:  "steps:\n  - match: {kind: FieldDeclaration, name: unused}\n    remove: {}\n",
			want: []string{"class A {\n    int b;\n\n    public void run() {\n"},
		},
		{
			name: "modifiers",
			doc:  "steps:\n  - match: {kind: MethodDeclaration, name: run}\n    modifiers: {add: [final], remove: [public]}\n",
			want: []string{"    final void run() {\n"},
		},
		{
			name: "insert parameter",
			doc:  "steps:\n  - match: {kind: MethodDeclaration, name: run}\n    insert: {slot: Parameters, index: -1, text: \"int count\"}\n",
			want: []string{"    public void run(int count) {\n"},
		},
		{
			name: "replace node",
			doc:  "steps:\n  - match: {kind: SimpleName, name: b, nth: 2}\n    replace: {text: c}\n",
			want: []string{"        log(c, 3);\n", "        int x = b + 1;\n"},
		},
		{
			name: "copy statement",
			doc: "steps:\n  - match: {kind: ExpressionStatement, nth: 1}\n" +
				"    copy: {to: {kind: MethodDeclaration, name: run}, slot: Body.Statements, index: -1}\n",
			want: []string{"        int x = b + 1;\n        oldName(1, 2);\n    }\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, results, err := run(t, unit, tt.doc)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Positive(t, results[0].Matches)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRun_Group(t *testing.T) {
	t.Parallel()

	doc := "steps:\n  - group: rename\n    match: {kind: MethodInvocation, name: oldName}\n    replace: {slot: Name, text: n}\n"
	_, results, err := run(t, unit, doc)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Group)
	assert.Equal(t, "rename", results[0].Group.Name)
	assert.False(t, results[0].Group.IsEmpty())
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "no match",
			doc:  "steps:\n  - match: {kind: MethodInvocation, name: absent}\n    remove: {}\n",
			want: script.ErrNoMatch,
		},
		{
			name: "required slot",
			doc:  "steps:\n  - match: {kind: MethodDeclaration, name: run}\n    remove: {slot: Name}\n",
			want: rewrite.ErrRequiredSlot,
		},
		{
			name: "not a list",
			doc:  "steps:\n  - match: {kind: MethodDeclaration, name: run}\n    insert: {slot: Name, index: 0, text: x}\n",
			want: script.ErrNotList,
		},
		{
			name: "index out of range",
			doc:  "steps:\n  - match: {kind: MethodInvocation, name: log}\n    remove: {slot: Arguments, index: 5}\n",
			want: script.ErrIndexRange,
		},
		{
			name: "missing slot on kind",
			doc:  "steps:\n  - match: {kind: FieldDeclaration, name: b}\n    operator: \"-\"\n",
			want: script.ErrUnknownSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := run(t, unit, tt.doc)
			require.ErrorIs(t, err, tt.want)

			var se *script.StepError
			require.ErrorAs(t, err, &se)
			assert.Zero(t, se.Index)
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	s, err := script.Parse([]byte("steps:\n  - match: {kind: Block}\n    remove: {}\n"))
	require.NoError(t, err)
	tree, err := java.Parse([]byte(unit))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = script.Run(ctx, s, rewrite.New(tree))
	require.ErrorIs(t, err, context.Canceled)
}
