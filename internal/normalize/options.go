package normalize

import "github.com/stemsi/quizlingua/internal/model"

// NormalizeOptions converts a question's options to parallel en/hi lists.
//
// A legacy [{id, text}, ...] array is mapped element by element through
// NormalizeText, keeping the original order; ids are not consulted. A bare
// string element is treated as its own text. An {en: [...], hi: [...]} map
// is passed through, with a missing or non-array side becoming empty.
func NormalizeOptions(v any) model.BilingualStringList {
	switch ClassifyOptions(v) {
	case ShapeLegacyArray:
		items := v.([]any)
		out := model.BilingualStringList{
			En: make([]string, 0, len(items)),
			Hi: make([]string, 0, len(items)),
		}
		for _, item := range items {
			text := NormalizeText(optionText(item))
			out.En = append(out.En, text.En)
			out.Hi = append(out.Hi, text.Hi)
		}
		return out
	case ShapeLanguageMap:
		m := v.(map[string]any)
		return model.BilingualStringList{
			En: stringList(m["en"]),
			Hi: stringList(m["hi"]),
		}
	default:
		return model.BilingualStringList{En: []string{}, Hi: []string{}}
	}
}

func optionText(item any) any {
	switch o := item.(type) {
	case map[string]any:
		return o["text"]
	case string:
		return o
	default:
		return nil
	}
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = scalarString(item)
	}
	return out
}
