package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/quizlingua/internal/i18n"
	"github.com/stemsi/quizlingua/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// QuizRepository handles canonical quiz data access.
// Bilingual fields are stored as JSONB in their canonical {en, hi} shape.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// Create inserts a quiz and its questions in one transaction.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO quizzes (subject_id, topic_id, sub_topic_id, title, description,
			                      available_languages, default_language, is_multilingual,
			                      time_limit, total_points, settings)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING id, created_at, updated_at`,
			q.SubjectID, q.TopicID, q.SubTopicID, q.Title, q.Description,
			langStrings(q.AvailableLanguages), string(q.DefaultLanguage), q.IsMultilingual,
			q.TimeLimit, q.TotalPoints, q.Settings,
		).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}

		if len(q.Questions) == 0 {
			return nil
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"quiz_questions"},
			[]string{"quiz_id", "position", "question_id", "question", "options",
				"correct_index", "explanation", "points", "difficulty"},
			pgx.CopyFromSlice(len(q.Questions), func(i int) ([]interface{}, error) {
				qq := q.Questions[i]
				return []interface{}{q.ID, i, qq.QuestionID, qq.Question, qq.Options,
					qq.CorrectIndex, qq.Explanation, qq.Points, string(qq.Difficulty)}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy questions: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a quiz with its questions in original order.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	q := &model.Quiz{}
	var langs []string
	var defaultLang string

	err := r.pool.QueryRow(ctx,
		`SELECT id, subject_id, topic_id, sub_topic_id, title, description,
		        available_languages, default_language, is_multilingual,
		        time_limit, total_points, settings, created_at, updated_at
		 FROM quizzes WHERE id = $1`, id,
	).Scan(&q.ID, &q.SubjectID, &q.TopicID, &q.SubTopicID, &q.Title, &q.Description,
		&langs, &defaultLang, &q.IsMultilingual,
		&q.TimeLimit, &q.TotalPoints, &q.Settings, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	q.AvailableLanguages = toLangs(langs)
	q.DefaultLanguage = i18n.Lang(defaultLang)
	if q.Settings == nil {
		q.Settings = map[string]any{}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT question_id, question, options, correct_index, explanation, points, difficulty
		 FROM quiz_questions WHERE quiz_id = $1
		 ORDER BY position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	q.Questions = []model.NormalizedQuestion{}
	for rows.Next() {
		var qq model.NormalizedQuestion
		var difficulty string
		if err := rows.Scan(&qq.QuestionID, &qq.Question, &qq.Options, &qq.CorrectIndex,
			&qq.Explanation, &qq.Points, &difficulty); err != nil {
			return nil, err
		}
		qq.Difficulty = model.Difficulty(difficulty)
		q.Questions = append(q.Questions, qq)
	}
	return q, rows.Err()
}

// ListByTopic retrieves quiz summaries for a topic with pagination.
// A non-empty lang keeps only quizzes that carry content in that language.
func (r *QuizRepository) ListByTopic(ctx context.Context, topicID string, lang i18n.Lang, limit, offset int) ([]model.QuizSummary, int, error) {
	where := ` WHERE q.topic_id = $1`
	args := []interface{}{topicID}
	if lang != "" {
		where += ` AND $2 = ANY(q.available_languages)`
		args = append(args, string(lang))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes q`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT q.id, q.title, q.description, q.subject_id, q.topic_id, q.sub_topic_id,
	                 q.available_languages, q.is_multilingual, q.total_points,
	                 (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id),
	                 q.created_at
	          FROM quizzes q` + where +
		` ORDER BY q.created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quizzes []model.QuizSummary
	for rows.Next() {
		var s model.QuizSummary
		var langs []string
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.SubjectID, &s.TopicID, &s.SubTopicID,
			&langs, &s.IsMultilingual, &s.TotalPoints, &s.QuestionCount, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		s.AvailableLanguages = toLangs(langs)
		quizzes = append(quizzes, s)
	}
	return quizzes, total, rows.Err()
}

// Delete removes a quiz; its questions cascade.
func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func langStrings(langs []i18n.Lang) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out
}

func toLangs(raw []string) []i18n.Lang {
	out := make([]i18n.Lang, len(raw))
	for i, s := range raw {
		out[i] = i18n.Lang(s)
	}
	return out
}
