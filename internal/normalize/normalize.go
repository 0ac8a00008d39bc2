// Package normalize cleans free-text labels (ingredients, cuisines, courses,
// diets) before they are compared. Labels coming from the UI often carry a
// trailing emoji such as "Italian🍕" or "Spicy🌶️"; these are stripped here so
// comparison code never has to care about decoration.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// decorative covers pictographs, emoticons, flags and the joiners and
// selectors used to compose them.
var decorative = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200D, Hi: 0x200D, Stride: 1}, // zero width joiner
		{Lo: 0x20E3, Hi: 0x20E3, Stride: 1}, // combining enclosing keycap
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1}, // misc symbols, dingbats
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1FBFF, Stride: 1}, // emoticons through legacy computing, incl. flags
		{Lo: 0xE0020, Hi: 0xE007F, Stride: 1}, // tag characters
	},
}

// IsDecorative reports whether r is stripped by Text.
func IsDecorative(r rune) bool {
	return unicode.Is(decorative, r)
}

// Text strips decorative glyphs, case-folds and collapses whitespace.
// Text(Text(s)) == Text(s) for every s.
func Text(s string) string {
	if s == "" {
		return ""
	}
	stripped := strings.Map(func(r rune) rune {
		if IsDecorative(r) {
			return -1
		}
		return r
	}, s)
	// A Caser holds transform state, so one is built per call.
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(folded), " ")
}

// List normalizes every label, dropping empties and duplicates while keeping
// first-seen order.
func List(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		n := Text(l)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SplitIngredients splits a comma-delimited ingredient list into trimmed,
// non-empty items. Items keep their display form.
func SplitIngredients(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Set returns the normalized labels as a lookup set.
func Set(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if n := Text(l); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
