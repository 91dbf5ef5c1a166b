package normalize

import (
	"github.com/stemsi/quizlingua/internal/i18n"
	"github.com/stemsi/quizlingua/internal/model"
)

// importedQuizTitle names quizzes that arrive as a bare question array.
const importedQuizTitle = "Imported Quiz"

// NormalizeIncomingQuiz converts an import payload into a NormalizedQuiz.
//
// payload is either a bare array of questions or an object carrying title,
// description, questions, timeLimit and settings. Shapes are normalized
// first; languages are then classified by script over the flattened
// strings, so text duplicated into hi by NormalizeText never counts as
// Hindi unless it actually contains Devanagari.
func NormalizeIncomingQuiz(payload any, subjectID, topicID, subTopicID string) model.NormalizedQuiz {
	var (
		title, description any
		rawQuestions       []any
		timeLimit          int
		settings           = map[string]any{}
	)

	switch p := payload.(type) {
	case []any:
		title = importedQuizTitle
		rawQuestions = p
	case map[string]any:
		title = p["title"]
		description = p["description"]
		rawQuestions, _ = p["questions"].([]any)
		if n, ok := number(p["timeLimit"]); ok {
			timeLimit, _ = toInt(n, 0, maxStoredInt)
		}
		if s, ok := p["settings"].(map[string]any); ok {
			for k, v := range s {
				settings[k] = v
			}
		}
	}

	questions := make([]model.NormalizedQuestion, 0, len(rawQuestions))
	totalPoints := 0
	for i, raw := range rawQuestions {
		q := normalizeQuestion(raw, i)
		totalPoints += q.Points
		questions = append(questions, q)
	}

	quiz := model.NormalizedQuiz{
		Title:       NormalizeText(title),
		Description: NormalizeText(description),
		SubjectID:   subjectID,
		TopicID:     topicID,
		SubTopicID:  subTopicID,
		TimeLimit:   timeLimit,
		TotalPoints: totalPoints,
		Settings:    settings,
		Questions:   questions,
	}

	langs := detectLanguages(contentStrings(quiz))
	quiz.AvailableLanguages = langs
	quiz.DefaultLanguage = langs[0]
	quiz.IsMultilingual = len(langs) == 2

	return quiz
}

// HasContent reports whether any text field of the quiz is non-empty.
func HasContent(quiz model.NormalizedQuiz) bool {
	for _, s := range contentStrings(quiz) {
		if s != "" {
			return true
		}
	}
	return false
}

// contentStrings flattens every language side of every text field.
func contentStrings(quiz model.NormalizedQuiz) []string {
	out := []string{
		quiz.Title.En, quiz.Title.Hi,
		quiz.Description.En, quiz.Description.Hi,
	}
	for _, q := range quiz.Questions {
		out = append(out, q.Question.En, q.Question.Hi)
		out = append(out, q.Options.En...)
		out = append(out, q.Options.Hi...)
		out = append(out, q.Explanation.En, q.Explanation.Hi)
	}
	return out
}

// detectLanguages classifies content by script. The result is never empty
// and English, when present, always comes first.
func detectLanguages(texts []string) []i18n.Lang {
	var hasEnglish, hasHindi bool
	for _, s := range texts {
		if s == "" {
			continue
		}
		if ContainsDevanagari(s) {
			hasHindi = true
		} else {
			hasEnglish = true
		}
	}

	langs := make([]i18n.Lang, 0, 2)
	if hasEnglish {
		langs = append(langs, i18n.LangEN)
	}
	if hasHindi {
		langs = append(langs, i18n.LangHI)
	}
	if len(langs) == 0 {
		langs = append(langs, i18n.LangEN)
	}
	return langs
}
