package normalize

import (
	"strings"

	"github.com/stemsi/quizlingua/internal/model"
)

// bilingualSeparator joins the two halves of a combined "English / Hindi" string.
const bilingualSeparator = " / "

// NormalizeText converts a text field to its canonical {en, hi} form.
//
// An object contributes its "en" and "hi" keys only. A combined string is
// split on " / " and the half containing Devanagari goes to hi. Any other
// non-empty string is copied into both languages so consumers never see a
// missing side; that copy is structural, not a translation.
func NormalizeText(v any) model.BilingualText {
	switch ClassifyText(v) {
	case ShapeLanguageMap:
		m := v.(map[string]any)
		return model.BilingualText{
			En: scalarString(m["en"]),
			Hi: scalarString(m["hi"]),
		}
	case ShapePlainString:
		return splitBilingual(v.(string))
	default:
		return model.BilingualText{}
	}
}

func splitBilingual(s string) model.BilingualText {
	if !strings.Contains(s, bilingualSeparator) {
		return model.BilingualText{En: s, Hi: s}
	}

	// Anything after a second separator is dropped.
	parts := strings.Split(s, bilingualSeparator)
	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])

	if ContainsDevanagari(first) {
		return model.BilingualText{En: second, Hi: first}
	}
	return model.BilingualText{En: first, Hi: second}
}

// ContainsDevanagari reports whether s has any rune in U+0900–U+097F.
func ContainsDevanagari(s string) bool {
	for _, r := range s {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
