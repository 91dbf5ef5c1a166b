package model

import (
	"encoding/json"

	"github.com/stemsi/quizlingua/internal/i18n"
)

// BilingualText is the canonical form of every human-readable field.
// Both keys are always serialized, even when empty.
type BilingualText struct {
	En string `json:"en"`
	Hi string `json:"hi"`
}

// Get returns the raw value stored for lang without any fallback.
func (t BilingualText) Get(lang i18n.Lang) string {
	if lang == i18n.LangHI {
		return t.Hi
	}
	return t.En
}

// Has reports whether lang carries non-empty text.
func (t BilingualText) Has(lang i18n.Lang) bool {
	return t.Get(lang) != ""
}

var _ i18n.Multilingual = BilingualText{}

// IsEmpty reports whether neither language carries text.
func (t BilingualText) IsEmpty() bool {
	return t.En == "" && t.Hi == ""
}

// BilingualStringList holds per-language option lists. The two slices are
// filled independently and may differ in length.
type BilingualStringList struct {
	En []string `json:"en"`
	Hi []string `json:"hi"`
}

// MarshalJSON emits empty arrays instead of null for missing sides.
func (l BilingualStringList) MarshalJSON() ([]byte, error) {
	type plain BilingualStringList
	out := plain(l)
	if out.En == nil {
		out.En = []string{}
	}
	if out.Hi == nil {
		out.Hi = []string{}
	}
	return json.Marshal(out)
}
