package treesitter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jrewrite/pkg/parser/treesitter"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		valid bool
	}{
		{name: "class", src: "class A { void m() { foo(1, 2); } }\n", valid: true},
		{name: "empty", src: "", valid: true},
		{name: "unbalanced", src: "class A { void m() { foo(1, 2); }\n", valid: false},
		{name: "garbage", src: "class A { int = ; }\n", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := treesitter.Check(context.Background(), []byte(tt.src))
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, treesitter.ErrInvalidSource)

			var ce *treesitter.CheckError
			require.ErrorAs(t, err, &ce)
			require.NotEmpty(t, ce.Problems)
			assert.Positive(t, ce.Problems[0].Line)
		})
	}
}

func TestProblems_Position(t *testing.T) {
	t.Parallel()

	problems, err := treesitter.Problems(context.Background(), []byte("class A {\n  int = ;\n}\n"))
	require.NoError(t, err)
	require.NotEmpty(t, problems)
	assert.Equal(t, 2, problems[0].Line)
	assert.Contains(t, problems[0].String(), "2:")
}
