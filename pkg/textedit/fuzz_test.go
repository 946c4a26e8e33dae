package textedit_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/jrewrite/pkg/textedit"
)

// flatApply applies sorted, non-overlapping flat edits the simple way.
func flatApply(content string, edits []*textedit.Edit) string {
	var b strings.Builder
	cursor := 0
	for _, e := range edits {
		b.WriteString(content[cursor:e.Offset])
		b.WriteString(e.Text)
		cursor = e.End()
	}
	b.WriteString(content[cursor:])
	return b.String()
}

func FuzzApply(f *testing.F) {
	f.Add("public void m(int a) {}", []byte{1, 2, 3, 4, 5, 6})
	f.Add("", []byte{0})
	f.Add("abc", []byte{9, 9, 9, 9})

	f.Fuzz(func(t *testing.T, content string, ops []byte) {
		root := textedit.NewRoot(len(content))
		var added []*textedit.Edit
		pos := 0
		for i := 0; i+1 < len(ops) && pos <= len(content); i += 2 {
			pos += int(ops[i] % 4)
			if pos > len(content) {
				break
			}
			length := int(ops[i+1] % 3)
			if pos+length > len(content) {
				length = len(content) - pos
			}
			var e *textedit.Edit
			switch ops[i+1] % 3 {
			case 0:
				e = textedit.Insert(pos, "<ins>")
			case 1:
				e = textedit.Delete(pos, length)
			default:
				e = textedit.Replace(pos, length, "<rep>")
			}
			if err := root.AddChild(e); err != nil {
				t.Fatalf("AddChild(%s): %v", e, err)
			}
			added = append(added, e)
			pos += e.Length
		}

		if err := textedit.Validate(root, len(content)); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		res, err := textedit.Apply([]byte(content), root)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got, want := string(res.Content), flatApply(content, root.Children()); got != want {
			t.Fatalf("Apply = %q, want %q", got, want)
		}
		for _, e := range added {
			if _, ok := res.RangeOf(e); !ok {
				t.Fatalf("no range recorded for %s", e)
			}
		}
	})
}
