package normalize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/quizlingua/internal/i18n"
	"github.com/stemsi/quizlingua/internal/model"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  model.BilingualText
	}{
		{"plain string duplicated", "Hello", model.BilingualText{En: "Hello", Hi: "Hello"}},
		{"english first", "Hello / नमस्ते", model.BilingualText{En: "Hello", Hi: "नमस्ते"}},
		{"hindi first", "नमस्ते / Hello", model.BilingualText{En: "Hello", Hi: "नमस्ते"}},
		{"no devanagari keeps order", "Hello / Bonjour", model.BilingualText{En: "Hello", Hi: "Bonjour"}},
		{"extra parts dropped", "A / B / C", model.BilingualText{En: "A", Hi: "B"}},
		{"slash without spaces is not a separator", "and/or", model.BilingualText{En: "and/or", Hi: "and/or"}},
		{"object", map[string]any{"en": "Hi", "hi": "नमस्ते", "fr": "Salut"}, model.BilingualText{En: "Hi", Hi: "नमस्ते"}},
		{"object missing hi", map[string]any{"en": "Hi"}, model.BilingualText{En: "Hi"}},
		{"object numeric value", map[string]any{"en": 3.0, "hi": true}, model.BilingualText{En: "3"}},
		{"empty string", "", model.BilingualText{}},
		{"nil", nil, model.BilingualText{}},
		{"number", 12.0, model.BilingualText{}},
		{"array", []any{"x"}, model.BilingualText{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeOptions(t *testing.T) {
	t.Run("legacy array keeps order and length", func(t *testing.T) {
		got := NormalizeOptions(decode(t, `[
			{"id": "a", "text": "Red / लाल"},
			{"id": "b", "text": "Blue"},
			{"id": "c"},
			"नीला / Navy"
		]`))

		assert.Equal(t, []string{"Red", "Blue", "", "Navy"}, got.En)
		assert.Equal(t, []string{"लाल", "Blue", "", "नीला"}, got.Hi)
	})

	t.Run("language map passes through", func(t *testing.T) {
		got := NormalizeOptions(decode(t, `{"en": ["X", "Y", 3], "hi": ["क"]}`))

		assert.Equal(t, []string{"X", "Y", "3"}, got.En)
		assert.Equal(t, []string{"क"}, got.Hi)
	})

	t.Run("language map missing side", func(t *testing.T) {
		got := NormalizeOptions(decode(t, `{"en": ["X"], "hi": "oops"}`))

		assert.Equal(t, []string{"X"}, got.En)
		assert.Equal(t, []string{}, got.Hi)
	})

	for _, input := range []any{nil, "abc", 4.0, true} {
		got := NormalizeOptions(input)
		assert.Equal(t, model.BilingualStringList{En: []string{}, Hi: []string{}}, got)
	}
}

func TestResolveCorrectIndex(t *testing.T) {
	tests := []struct {
		name string
		q    map[string]any
		want int
	}{
		{"letter a", map[string]any{"correctAnswerId": "a"}, 0},
		{"letter b", map[string]any{"correctAnswerId": "b"}, 1},
		{"letter C upper", map[string]any{"correctAnswerId": "C"}, 2},
		{"letter D upper", map[string]any{"correctAnswerId": "D"}, 3},
		{"unknown letter", map[string]any{"correctAnswerId": "x"}, 0},
		{"empty letter", map[string]any{"correctAnswerId": ""}, 0},
		{"missing", map[string]any{}, 0},
		{"nil map", nil, 0},
		{"numeric wins", map[string]any{"correctAnswer": 2.0, "correctAnswerId": "a"}, 2},
		{"numeric truncated", map[string]any{"correctAnswer": 1.7}, 1},
		{"negative numeric", map[string]any{"correctAnswer": -1.0}, 0},
		{"string numeric ignored", map[string]any{"correctAnswer": "3", "correctAnswerId": "b"}, 1},
		{"json number", map[string]any{"correctAnswer": json.Number("3")}, 3},
		{"huge float", map[string]any{"correctAnswer": 1e20}, 0},
		{"huge json number", map[string]any{"correctAnswer": json.Number("99999999999999999999")}, 0},
		{"just past int32", map[string]any{"correctAnswer": 2147483648.0}, 0},
		{"small negative fraction", map[string]any{"correctAnswer": -0.5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCorrectIndex(tt.q))
		})
	}
}

func TestNormalizeIncomingQuizEndToEnd(t *testing.T) {
	payload := decode(t, `{
		"title": "Quiz",
		"questions": [{
			"text": "Q1?",
			"options": [{"id": "a", "text": "X"}, {"id": "b", "text": "Y"}],
			"correctAnswerId": "b",
			"points": 5
		}]
	}`)

	quiz := NormalizeIncomingQuiz(payload, "sub-1", "top-1", "st-1")

	assert.Equal(t, model.BilingualText{En: "Quiz", Hi: "Quiz"}, quiz.Title)
	assert.Equal(t, model.BilingualText{}, quiz.Description)
	require.Len(t, quiz.Questions, 1)

	q := quiz.Questions[0]
	assert.Equal(t, "q1", q.QuestionID)
	assert.Equal(t, model.BilingualText{En: "Q1?", Hi: "Q1?"}, q.Question)
	assert.Equal(t, []string{"X", "Y"}, q.Options.En)
	assert.Equal(t, []string{"X", "Y"}, q.Options.Hi)
	assert.Equal(t, 1, q.CorrectIndex)
	assert.Equal(t, 5, q.Points)
	assert.Equal(t, model.DifficultyMedium, q.Difficulty)

	assert.Equal(t, 5, quiz.TotalPoints)
	assert.Equal(t, []i18n.Lang{i18n.LangEN}, quiz.AvailableLanguages)
	assert.Equal(t, i18n.LangEN, quiz.DefaultLanguage)
	assert.False(t, quiz.IsMultilingual)
	assert.Equal(t, "sub-1", quiz.SubjectID)
	assert.Equal(t, "top-1", quiz.TopicID)
	assert.Equal(t, "st-1", quiz.SubTopicID)
}

func TestNormalizeIncomingQuizBareArray(t *testing.T) {
	payload := decode(t, `[
		{"question": "One", "points": 3},
		{"question": "Two"}
	]`)

	quiz := NormalizeIncomingQuiz(payload, "s", "t", "")

	assert.Equal(t, model.BilingualText{En: "Imported Quiz", Hi: "Imported Quiz"}, quiz.Title)
	assert.Equal(t, model.BilingualText{}, quiz.Description)
	assert.Len(t, quiz.Questions, 2)
	assert.Equal(t, 13, quiz.TotalPoints)
	assert.Equal(t, 10, quiz.Questions[1].Points)
}

func TestNormalizeIncomingQuizLanguages(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantLangs    []i18n.Lang
		wantDefault  i18n.Lang
		multilingual bool
	}{
		{
			name:        "english only",
			payload:     `{"title": "Algebra", "description": "Basics", "questions": [{"question": "2+2?", "options": [{"id": "a", "text": "4"}]}]}`,
			wantLangs:   []i18n.Lang{i18n.LangEN},
			wantDefault: i18n.LangEN,
		},
		{
			name:        "hindi only",
			payload:     `{"title": "बीजगणित", "questions": [{"question": "दो और दो?"}]}`,
			wantLangs:   []i18n.Lang{i18n.LangHI},
			wantDefault: i18n.LangHI,
		},
		{
			name:         "combined strings",
			payload:      `{"title": "Algebra / बीजगणित"}`,
			wantLangs:    []i18n.Lang{i18n.LangEN, i18n.LangHI},
			wantDefault:  i18n.LangEN,
			multilingual: true,
		},
		{
			name:         "hindi only in an explanation",
			payload:      `{"title": "Algebra", "questions": [{"question": "2+2?", "explanation": {"hi": "चार"}}]}`,
			wantLangs:    []i18n.Lang{i18n.LangEN, i18n.LangHI},
			wantDefault:  i18n.LangEN,
			multilingual: true,
		},
		{
			name:         "hindi only in options map",
			payload:      `{"questions": [{"question": {"en": "Pick"}, "options": {"en": ["A"], "hi": ["क"]}}]}`,
			wantLangs:    []i18n.Lang{i18n.LangEN, i18n.LangHI},
			wantDefault:  i18n.LangEN,
			multilingual: true,
		},
		{
			name:        "no content",
			payload:     `{}`,
			wantLangs:   []i18n.Lang{i18n.LangEN},
			wantDefault: i18n.LangEN,
		},
		{
			name:        "availableLanguages in input is ignored",
			payload:     `{"title": "Plain", "availableLanguages": ["en", "hi"], "isMultilingual": true}`,
			wantLangs:   []i18n.Lang{i18n.LangEN},
			wantDefault: i18n.LangEN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := NormalizeIncomingQuiz(decode(t, tt.payload), "s", "t", "st")

			assert.Equal(t, tt.wantLangs, quiz.AvailableLanguages)
			assert.Equal(t, tt.wantDefault, quiz.DefaultLanguage)
			assert.Equal(t, tt.multilingual, quiz.IsMultilingual)
		})
	}
}

func TestNormalizeIncomingQuizDefaults(t *testing.T) {
	payload := decode(t, `{
		"title": {"en": "T"},
		"timeLimit": 12.9,
		"totalPoints": 999,
		"settings": {"shuffle": true},
		"questions": [
			{"id": 7, "question": "", "text": "fallback text", "points": "five", "difficulty": "HARD"},
			{"questionId": "custom", "question": "x", "difficulty": "legendary"},
			"not a question",
			null
		]
	}`)

	quiz := NormalizeIncomingQuiz(payload, "s", "t", "st")

	assert.Equal(t, 12, quiz.TimeLimit)
	assert.Equal(t, map[string]any{"shuffle": true}, quiz.Settings)
	require.Len(t, quiz.Questions, 4)

	first := quiz.Questions[0]
	assert.Equal(t, "7", first.QuestionID)
	assert.Equal(t, "fallback text", first.Question.En)
	assert.Equal(t, 10, first.Points)
	assert.Equal(t, model.DifficultyHard, first.Difficulty)

	second := quiz.Questions[1]
	assert.Equal(t, "custom", second.QuestionID)
	assert.Equal(t, model.DifficultyMedium, second.Difficulty)

	for _, q := range quiz.Questions[2:] {
		assert.Equal(t, model.BilingualText{}, q.Question)
		assert.Equal(t, []string{}, q.Options.En)
		assert.Equal(t, 0, q.CorrectIndex)
		assert.Equal(t, 10, q.Points)
	}
	assert.Equal(t, "q3", quiz.Questions[2].QuestionID)
	assert.Equal(t, 40, quiz.TotalPoints)
}

func TestNormalizeIncomingQuizOutOfRangeNumbers(t *testing.T) {
	payload := decode(t, `{
		"title": "Big numbers",
		"timeLimit": 1e300,
		"questions": [
			{"question": "a", "points": 9.3e18, "correctAnswer": 1e20},
			{"question": "b", "points": 9223372036854775807},
			{"question": "c", "points": 2147483647, "correctAnswer": 2147483647}
		]
	}`)

	quiz := NormalizeIncomingQuiz(payload, "s", "t", "st")

	assert.Equal(t, 0, quiz.TimeLimit)
	require.Len(t, quiz.Questions, 3)
	assert.Equal(t, 10, quiz.Questions[0].Points)
	assert.Equal(t, 0, quiz.Questions[0].CorrectIndex)
	assert.Equal(t, 10, quiz.Questions[1].Points)
	assert.Equal(t, 2147483647, quiz.Questions[2].Points)
	assert.Equal(t, 2147483647, quiz.Questions[2].CorrectIndex)
	assert.Equal(t, 20+quiz.Questions[2].Points, quiz.TotalPoints)

	quiz = NormalizeIncomingQuiz(decode(t, `{"title": "t", "timeLimit": -30}`), "s", "t", "st")
	assert.Equal(t, 0, quiz.TimeLimit)
}

func TestNormalizeIncomingQuizMalformedPayloads(t *testing.T) {
	for _, payload := range []any{nil, "just text", 42.0, true, map[string]any{"questions": "nope"}} {
		quiz := NormalizeIncomingQuiz(payload, "s", "t", "st")

		assert.NotNil(t, quiz.Questions)
		assert.Empty(t, quiz.Questions)
		assert.Equal(t, 0, quiz.TotalPoints)
		assert.Equal(t, []i18n.Lang{i18n.LangEN}, quiz.AvailableLanguages)
		assert.NotNil(t, quiz.Settings)
	}
}

func TestNormalizedQuizJSONShape(t *testing.T) {
	quiz := NormalizeIncomingQuiz(decode(t, `{"questions": [{"question": "Q"}]}`), "s", "t", "")

	raw, err := json.Marshal(quiz)
	require.NoError(t, err)

	body := string(raw)
	assert.True(t, strings.Contains(body, `"description":{"en":"","hi":""}`), body)
	assert.True(t, strings.Contains(body, `"options":{"en":[],"hi":[]}`), body)
	assert.True(t, strings.Contains(body, `"availableLanguages":["en"]`), body)
}

func TestHasContent(t *testing.T) {
	assert.False(t, HasContent(NormalizeIncomingQuiz(decode(t, `{"questions": [{}]}`), "s", "t", "")))
	assert.True(t, HasContent(NormalizeIncomingQuiz(decode(t, `{"questions": [{"options": ["x"]}]}`), "s", "t", "")))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ShapePlainString, ClassifyText("x"))
	assert.Equal(t, ShapeLanguageMap, ClassifyText(map[string]any{}))
	assert.Equal(t, ShapeMissing, ClassifyText(""))
	assert.Equal(t, ShapeLegacyArray, ClassifyOptions([]any{}))
	assert.Equal(t, ShapeLanguageMap, ClassifyOptions(map[string]any{}))
	assert.Equal(t, ShapeMissing, ClassifyOptions("x"))
	assert.Equal(t, "legacy_array", ShapeLegacyArray.String())
}
