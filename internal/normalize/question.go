package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/stemsi/quizlingua/internal/model"
)

const defaultPoints = 10

// maxStoredInt is the upper bound of the INTEGER columns numbers end up in.
const maxStoredInt = math.MaxInt32

var answerLetterIndex = map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}

// ResolveCorrectIndex derives the zero-based correct option. A numeric
// correctAnswer wins; otherwise correctAnswerId is mapped a→0 … d→3.
// Negative or oversized numbers and anything unrecognized yield 0, which
// cannot be told apart from a real first-option answer.
func ResolveCorrectIndex(q map[string]any) int {
	if n, ok := number(q["correctAnswer"]); ok {
		idx, _ := toInt(n, 0, maxStoredInt)
		return idx
	}
	if id, ok := q["correctAnswerId"].(string); ok {
		if idx, ok := answerLetterIndex[strings.ToLower(strings.TrimSpace(id))]; ok {
			return idx
		}
	}
	return 0
}

func normalizeQuestion(raw any, index int) model.NormalizedQuestion {
	q, _ := raw.(map[string]any)

	text := q["question"]
	if ClassifyText(text) == ShapeMissing {
		text = q["text"]
	}

	points := defaultPoints
	if n, ok := number(q["points"]); ok {
		if p, ok := toInt(n, -maxStoredInt, maxStoredInt); ok {
			points = p
		}
	}

	difficulty := model.DifficultyMedium
	if s, ok := q["difficulty"].(string); ok {
		difficulty, _ = model.ParseDifficulty(s)
	}

	return model.NormalizedQuestion{
		QuestionID:   questionID(q, index),
		Question:     NormalizeText(text),
		Options:      NormalizeOptions(q["options"]),
		CorrectIndex: ResolveCorrectIndex(q),
		Explanation:  NormalizeText(q["explanation"]),
		Points:       points,
		Difficulty:   difficulty,
	}
}

func questionID(q map[string]any, index int) string {
	for _, key := range []string{"id", "questionId"} {
		if id := scalarString(q[key]); id != "" {
			return id
		}
	}
	return fmt.Sprintf("q%d", index+1)
}
