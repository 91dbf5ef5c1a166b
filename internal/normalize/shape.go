// Package normalize converts loosely typed quiz import payloads into the
// canonical bilingual model. Every function here is total: malformed input
// degrades to empty strings, empty lists and documented defaults.
//
// Input values are what encoding/json produces when decoding into any:
// map[string]any, []any, string, float64, bool and nil. json.Number is
// accepted wherever a number is read.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
)

// Shape identifies which of the accepted input forms a field arrived in.
type Shape int

const (
	ShapeMissing Shape = iota
	ShapePlainString
	ShapeLanguageMap
	ShapeLegacyArray
)

func (s Shape) String() string {
	switch s {
	case ShapePlainString:
		return "plain_string"
	case ShapeLanguageMap:
		return "language_map"
	case ShapeLegacyArray:
		return "legacy_array"
	default:
		return "missing"
	}
}

// ClassifyText discriminates a text field. Empty strings count as missing.
func ClassifyText(v any) Shape {
	switch t := v.(type) {
	case map[string]any:
		return ShapeLanguageMap
	case string:
		if t == "" {
			return ShapeMissing
		}
		return ShapePlainString
	default:
		return ShapeMissing
	}
}

// ClassifyOptions discriminates a question's options field.
func ClassifyOptions(v any) Shape {
	switch v.(type) {
	case []any:
		return ShapeLegacyArray
	case map[string]any:
		return ShapeLanguageMap
	default:
		return ShapeMissing
	}
}

// number reads a JSON number. NaN and infinities are rejected.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt truncates f toward zero when the result lies in [lo, hi].
// Out-of-range values report false instead of converting.
func toInt(f float64, lo, hi int) (int, bool) {
	if f < float64(lo) || f >= float64(hi)+1 {
		return 0, false
	}
	return int(f), true
}

// scalarString renders strings and numbers; everything else is "".
func scalarString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
