package java_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/jrewrite/pkg/jast"
	"github.com/yaklabco/jrewrite/pkg/parser/java"
)

func FuzzParse(f *testing.F) {
	f.Add([]byte(sample))
	f.Add([]byte("class A { void m() { a >>= b >>> c; } }"))
	f.Add([]byte("enum E { A, B; }"))
	f.Add([]byte("@A(x = {1, 2}) package p;"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, src []byte) {
		tree, err := java.Parse(src)
		if err != nil {
			var se *java.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("unexpected error type %T", err)
			}
			return
		}
		jast.Walk(tree, tree.Root(), func(n jast.NodeID) bool {
			if tree.Start(n) < 0 || tree.End(n) > len(src) {
				t.Fatalf("%s out of range: %d..%d", tree.Kind(n), tree.Start(n), tree.End(n))
			}
			return true
		})
	})
}
