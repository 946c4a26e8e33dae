package jast

import "strings"

// Modifier bits stored in SlotModifiers.
const (
	ModPublic       = 0x0001
	ModPrivate      = 0x0002
	ModProtected    = 0x0004
	ModStatic       = 0x0008
	ModFinal        = 0x0010
	ModSynchronized = 0x0020
	ModVolatile     = 0x0040
	ModTransient    = 0x0080
	ModNative       = 0x0100
	ModAbstract     = 0x0400
	ModStrictfp     = 0x0800
	ModDefault      = 0x10000

	// ModVisibility masks the access modifiers.
	ModVisibility = ModPublic | ModPrivate | ModProtected
)

// modifierOrder is the conventional print order.
var modifierOrder = []struct {
	bit  int
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModSynchronized, "synchronized"},
	{ModNative, "native"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModStrictfp, "strictfp"},
	{ModDefault, "default"},
}

// ModifierBit returns the bit for a modifier keyword.
func ModifierBit(keyword string) (int, bool) {
	for _, m := range modifierOrder {
		if m.name == keyword {
			return m.bit, true
		}
	}
	return 0, false
}

// ModifierKeywords returns the keywords set in mods, in print order.
func ModifierKeywords(mods int) []string {
	var out []string
	for _, m := range modifierOrder {
		if mods&m.bit != 0 {
			out = append(out, m.name)
		}
	}
	return out
}

// PrintModifiers renders mods with a trailing space after each keyword,
// for example "public static ".
func PrintModifiers(mods int) string {
	var b strings.Builder
	for _, kw := range ModifierKeywords(mods) {
		b.WriteString(kw)
		b.WriteByte(' ')
	}
	return b.String()
}
