package script

import "github.com/yaklabco/jrewrite/pkg/jast"

// find returns the original nodes selected by m in source order.
func find(t *jast.Tree, m Match) []jast.NodeID {
	k, ok := jast.ParseKind(m.Kind)
	if !ok {
		return nil
	}
	var out []jast.NodeID
	count := 0
	jast.Walk(t, t.Root(), func(n jast.NodeID) bool {
		if t.Kind(n) != k || !matches(t, n, m) {
			return true
		}
		count++
		if m.Nth == 0 || m.Nth == count {
			out = append(out, n)
		}
		return true
	})
	return out
}

func matches(t *jast.Tree, n jast.NodeID, m Match) bool {
	if m.Name != "" && nodeName(t, n) != m.Name {
		return false
	}
	if m.Operator != "" && (!jast.HasSlot(t.Kind(n), jast.SlotOperator) || t.Str(n, jast.SlotOperator) != m.Operator) {
		return false
	}
	return true
}

// nodeName returns the identifier a match name is compared with.
func nodeName(t *jast.Tree, n jast.NodeID) string {
	k := t.Kind(n)
	switch {
	case k == jast.KindSimpleName || k == jast.KindQualifiedName:
		return t.Identifier(n)
	case k == jast.KindSimpleType:
		return t.Identifier(t.Child(n, jast.SlotName))
	case jast.HasSlot(k, jast.SlotName):
		if name := t.Child(n, jast.SlotName); name != jast.NoNode {
			return t.Identifier(name)
		}
	case jast.HasSlot(k, jast.SlotFragments):
		if frags := t.List(n, jast.SlotFragments); len(frags) > 0 {
			return t.Identifier(t.Child(frags[0], jast.SlotName))
		}
	}
	return ""
}
