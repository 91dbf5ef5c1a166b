package i18n

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

type weightedLang struct {
	base string
	q    float64
}

// DetectLanguage picks the best supported language from an Accept-Language
// header. Entries default to q=1.0, region subtags are ignored ("en-US" counts
// as "en"), and an unparseable q sorts after every valid one. An empty header
// or one with no supported entry yields DefaultLanguage.
func DetectLanguage(header string) Lang {
	if strings.TrimSpace(header) == "" {
		return DefaultLanguage
	}

	entries := parseAcceptLanguage(header)
	slices.SortStableFunc(entries, func(a, b weightedLang) int {
		return compareQuality(b.q, a.q)
	})

	for _, e := range entries {
		if l := Lang(e.base); IsSupported(l) {
			return l
		}
	}
	return DefaultLanguage
}

func parseAcceptLanguage(header string) []weightedLang {
	parts := strings.Split(header, ",")
	entries := make([]weightedLang, 0, len(parts))

	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ";")
		tag := strings.TrimSpace(fields[0])
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(param, "q=") {
				continue
			}
			parsed, err := strconv.ParseFloat(strings.TrimSpace(param[2:]), 64)
			if err != nil {
				parsed = math.NaN()
			}
			q = parsed
		}

		base, _, _ := strings.Cut(tag, "-")
		entries = append(entries, weightedLang{base: strings.ToLower(base), q: q})
	}
	return entries
}

// compareQuality orders NaN below every number so malformed entries lose.
func compareQuality(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
