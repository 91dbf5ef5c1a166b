package i18n

// Multilingual is a typed value holding one string per language, such as
// model.BilingualText. Has reports whether lang carries non-empty text.
type Multilingual interface {
	Get(lang Lang) string
	Has(lang Lang) bool
}

// ExtractContent collapses every multilingual leaf of a content tree into the
// value for lang, following the chain lang → DefaultLanguage → "".
//
// content is expected to be a decoded JSON tree (map[string]any, []any and
// scalars). Plain objects and arrays are rebuilt, never mutated. Typed
// map[string]string and map[Lang]string values are treated like their
// map[string]any counterparts, and Multilingual values resolve to a string.
func ExtractContent(content any, lang Lang) any {
	switch v := content.(type) {
	case nil:
		return nil
	case Multilingual:
		return resolveTyped(v, lang)
	case map[string]any:
		if isMultilingual(v) {
			return resolve(v, lang)
		}
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = ExtractContent(val, lang)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = ExtractContent(val, lang)
		}
		return out
	case map[string]string:
		if isMultilingualStrings(v) {
			return resolveString(v, lang)
		}
		out := make(map[string]string, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	case map[Lang]string:
		if _, en := v[LangEN]; en {
			return resolveLang(v, lang)
		}
		if _, hi := v[LangHI]; hi {
			return resolveLang(v, lang)
		}
		out := make(map[Lang]string, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out
	default:
		return v
	}
}

// ExtractString resolves a single multilingual value to a string. Anything
// that does not resolve to a string yields "".
func ExtractString(content any, lang Lang) string {
	s, _ := ExtractContent(content, lang).(string)
	return s
}

// isMultilingual only tests for en/hi membership; other language keys ride
// along but never make an object a leaf on their own.
func isMultilingual(m map[string]any) bool {
	_, en := m[string(LangEN)]
	_, hi := m[string(LangHI)]
	return en || hi
}

func isMultilingualStrings(m map[string]string) bool {
	_, en := m[string(LangEN)]
	_, hi := m[string(LangHI)]
	return en || hi
}

func resolve(m map[string]any, lang Lang) any {
	v, ok := m[string(lang)]
	if !ok || v == nil {
		v, ok = m[string(DefaultLanguage)]
	}
	if !ok || v == nil {
		return ""
	}

	// A present but empty translation counts as missing.
	if s, isString := v.(string); isString && s == "" && lang != DefaultLanguage {
		if d, ok := m[string(DefaultLanguage)]; ok && d != nil {
			return d
		}
		return ""
	}
	return v
}

func resolveString(m map[string]string, lang Lang) string {
	if v := m[string(lang)]; v != "" {
		return v
	}
	return m[string(DefaultLanguage)]
}

func resolveLang(m map[Lang]string, lang Lang) string {
	if v := m[lang]; v != "" {
		return v
	}
	return m[DefaultLanguage]
}

func resolveTyped(m Multilingual, lang Lang) string {
	if m.Has(lang) {
		return m.Get(lang)
	}
	if m.Has(DefaultLanguage) {
		return m.Get(DefaultLanguage)
	}
	return ""
}
