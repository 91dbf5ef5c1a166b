package i18n

import "strings"

// Lang is a two-letter content language code.
type Lang string

const (
	LangEN Lang = "en"
	LangHI Lang = "hi"
)

// DefaultLanguage is the language every fallback chain ends on.
const DefaultLanguage = LangEN

// SupportedLanguages lists the languages the platform serves, in preference order.
var SupportedLanguages = []Lang{LangEN, LangHI}

// IsSupported reports whether l is one of SupportedLanguages.
func IsSupported(l Lang) bool {
	for _, s := range SupportedLanguages {
		if s == l {
			return true
		}
	}
	return false
}

// ParseLang normalizes a raw code ("HI", " en ") and reports whether it is supported.
func ParseLang(raw string) (Lang, bool) {
	l := Lang(strings.ToLower(strings.TrimSpace(raw)))
	if !IsSupported(l) {
		return DefaultLanguage, false
	}
	return l, true
}
