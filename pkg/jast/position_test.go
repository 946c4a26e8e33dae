package jast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jrewrite/pkg/jast"
)

func TestLineIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		delim   string
		lines   int
	}{
		{"single line", "int x;", "\n", 1},
		{"lf", "a\nb\n", "\n", 3},
		{"crlf", "a\r\nb", "\r\n", 2},
		{"cr", "a\rb\rc", "\r", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx := jast.NewLineIndex([]byte(tt.content))
			assert.Equal(t, tt.delim, idx.Delimiter())
			assert.Equal(t, tt.lines, idx.LineCount())
		})
	}
}

func TestLineIndex_Queries(t *testing.T) {
	t.Parallel()

	idx := jast.NewLineIndex([]byte("class A {\n\tint x;\r\n    void m() {}\n"))

	assert.Equal(t, 0, idx.LineOf(3))
	assert.Equal(t, 1, idx.LineOf(10))
	assert.Equal(t, 2, idx.LineOf(20))
	assert.Equal(t, "\tint x;", string(idx.LineText(1)))
	assert.Equal(t, "\t", idx.LeadingWhitespace(13))
	assert.Equal(t, "    ", idx.LeadingWhitespace(24))
	assert.Equal(t, -1, idx.LineStart(9))

	line, col := idx.Position(11)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}

// commentTree builds a tree over src with a single statement node covering
// the text "stmt;" and the comments at the given ranges.
func commentTree(src string, comments ...jast.Comment) (*jast.Tree, jast.NodeID) {
	tree := jast.NewTree([]byte(src))
	start := indexOf(src, "stmt;")
	stmt := tree.AddNode(jast.KindEmptyStatement, start, len("stmt;"))
	for _, c := range comments {
		tree.AddComment(c)
	}
	tree.SetRoot(stmt)
	tree.Link()
	return tree, stmt
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestExtendedRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		comments  []jast.Comment
		wantStart string
		wantEnd   string
	}{
		{
			name:      "no comments",
			src:       "  stmt;\n",
			wantStart: "stmt;",
			wantEnd:   "",
		},
		{
			name:      "leading line comment",
			src:       "  // c\n  stmt;\n",
			comments:  []jast.Comment{{Kind: jast.LineComment, Start: 2, End: 6}},
			wantStart: "// c\n  stmt;",
			wantEnd:   "",
		},
		{
			name:      "blank line detaches",
			src:       "  // c\n\n  stmt;\n",
			comments:  []jast.Comment{{Kind: jast.LineComment, Start: 2, End: 6}},
			wantStart: "stmt;",
			wantEnd:   "",
		},
		{
			name:      "comment after code on same line is not leading",
			src:       "x; /* c */\n  stmt;\n",
			comments:  []jast.Comment{{Kind: jast.BlockComment, Start: 3, End: 10}},
			wantStart: "stmt;",
			wantEnd:   "",
		},
		{
			name:      "trailing comment",
			src:       "  stmt; // t\n",
			comments:  []jast.Comment{{Kind: jast.LineComment, Start: 8, End: 12}},
			wantStart: "stmt; // t",
			wantEnd:   "// t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, stmt := commentTree(tt.src, tt.comments...)
			start, length := tree.ExtendedRange(stmt)
			got := tt.src[start : start+length]
			assert.Equal(t, tt.wantStart, got)
			if tt.wantEnd != "" {
				assert.Equal(t, indexOf(tt.src, tt.wantEnd)+len(tt.wantEnd), tree.ExtendedEnd(stmt))
			} else {
				assert.Equal(t, tree.End(stmt), tree.ExtendedEnd(stmt))
			}
		})
	}
}

func TestLineCommentEndsAt(t *testing.T) {
	t.Parallel()

	tree, _ := commentTree("stmt; // t\n", jast.Comment{Kind: jast.LineComment, Start: 6, End: 10})
	assert.True(t, tree.LineCommentEndsAt(10))
	assert.False(t, tree.LineCommentEndsAt(9))
	assert.False(t, tree.LineCommentEndsAt(5))
}
