package model

import (
	"encoding/json"
	"time"
)

// Subject represents an academic subject with a bilingual name.
type Subject struct {
	ID        string        `json:"id"`
	Name      BilingualText `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Topic groups quizzes under a subject.
type Topic struct {
	ID        string        `json:"id"`
	SubjectID string        `json:"subject_id"`
	Name      BilingualText `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CreateSubjectRequest is the payload for creating a subject.
// Name accepts a plain string, an "English / Hindi" string or an {en, hi} object.
type CreateSubjectRequest struct {
	Name json.RawMessage `json:"name" binding:"required"`
}

// CreateTopicRequest is the payload for creating a topic under a subject.
type CreateTopicRequest struct {
	Name json.RawMessage `json:"name" binding:"required"`
}
