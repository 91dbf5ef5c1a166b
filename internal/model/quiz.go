package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/quizlingua/internal/i18n"
)

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts the three known grades case-insensitively.
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(raw))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return DifficultyMedium, false
	}
}

// NormalizedQuestion is a single question in canonical bilingual form.
type NormalizedQuestion struct {
	QuestionID   string              `json:"questionId"`
	Question     BilingualText       `json:"question"`
	Options      BilingualStringList `json:"options"`
	CorrectIndex int                 `json:"correctIndex"`
	Explanation  BilingualText       `json:"explanation"`
	Points       int                 `json:"points"`
	Difficulty   Difficulty          `json:"difficulty"`
}

// NormalizedQuiz is the canonical quiz produced from an import payload.
// AvailableLanguages, DefaultLanguage, IsMultilingual and TotalPoints are
// always derived from content, never copied from input.
type NormalizedQuiz struct {
	Title              BilingualText        `json:"title"`
	Description        BilingualText        `json:"description"`
	SubjectID          string               `json:"subjectId"`
	TopicID            string               `json:"topicId"`
	SubTopicID         string               `json:"subTopicId"`
	AvailableLanguages []i18n.Lang          `json:"availableLanguages"`
	DefaultLanguage    i18n.Lang            `json:"defaultLanguage"`
	IsMultilingual     bool                 `json:"isMultilingual"`
	TimeLimit          int                  `json:"timeLimit"`
	TotalPoints        int                  `json:"totalPoints"`
	Settings           map[string]any       `json:"settings"`
	Questions          []NormalizedQuestion `json:"questions"`
}

// Quiz is a persisted canonical quiz.
type Quiz struct {
	ID uuid.UUID `json:"id"`
	NormalizedQuiz
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuizSummary is the list-view projection of a quiz.
type QuizSummary struct {
	ID                 uuid.UUID     `json:"id"`
	Title              BilingualText `json:"title"`
	Description        BilingualText `json:"description"`
	SubjectID          string        `json:"subjectId"`
	TopicID            string        `json:"topicId"`
	SubTopicID         string        `json:"subTopicId"`
	AvailableLanguages []i18n.Lang   `json:"availableLanguages"`
	IsMultilingual     bool          `json:"isMultilingual"`
	TotalPoints        int           `json:"totalPoints"`
	QuestionCount      int           `json:"questionCount"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// ImportQuizRequest is the admin payload for importing a single quiz.
// Payload is any of the accepted legacy or canonical quiz shapes.
type ImportQuizRequest struct {
	SubjectID  string          `json:"subjectId" binding:"required,max=64"`
	TopicID    string          `json:"topicId" binding:"required,max=64"`
	SubTopicID string          `json:"subTopicId" binding:"omitempty,max=64"`
	Payload    json.RawMessage `json:"payload" binding:"required"`
}

// BulkImportRequest queues several quiz payloads under the same topic.
type BulkImportRequest struct {
	SubjectID  string            `json:"subjectId" binding:"required,max=64"`
	TopicID    string            `json:"topicId" binding:"required,max=64"`
	SubTopicID string            `json:"subTopicId" binding:"omitempty,max=64"`
	Payloads   []json.RawMessage `json:"payloads" binding:"required,min=1,max=50,dive,required"`
}

// ImportJob is a queued bulk-import item.
type ImportJob struct {
	JobID      string          `json:"job_id"`
	SubjectID  string          `json:"subject_id"`
	TopicID    string          `json:"topic_id"`
	SubTopicID string          `json:"sub_topic_id"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts,omitempty"`
}

// ImportJobState tracks a queued bulk-import item.
type ImportJobState string

const (
	ImportJobQueued ImportJobState = "QUEUED"
	ImportJobDone   ImportJobState = "DONE"
	ImportJobFailed ImportJobState = "FAILED"
)

// ImportJobStatus is the externally visible state of a bulk-import job.
type ImportJobStatus struct {
	JobID  string         `json:"job_id"`
	State  ImportJobState `json:"state"`
	QuizID string         `json:"quiz_id,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// ListQuizzesQuery holds list filters for quizzes under a topic.
type ListQuizzesQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Available string `form:"available" binding:"omitempty,lang"`
}

// NormalizeRequest is the dry-run payload. Placement fields are optional and
// only echoed into the result.
type NormalizeRequest struct {
	SubjectID  string          `json:"subjectId" binding:"omitempty,max=64"`
	TopicID    string          `json:"topicId" binding:"omitempty,max=64"`
	SubTopicID string          `json:"subTopicId" binding:"omitempty,max=64"`
	Payload    json.RawMessage `json:"payload" binding:"required"`
}
