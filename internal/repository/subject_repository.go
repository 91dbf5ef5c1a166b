package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/quizlingua/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
		s.ID, s.Name).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SubjectRepository) GetAll(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM subjects ORDER BY name->>'en' ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM subjects WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *SubjectRepository) CreateTopic(ctx context.Context, t *model.Topic) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO topics (id, subject_id, name) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		t.ID, t.SubjectID, t.Name).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *SubjectRepository) ListTopics(ctx context.Context, subjectID string) ([]model.Topic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject_id, name, created_at, updated_at
		 FROM topics WHERE subject_id = $1 ORDER BY name->>'en' ASC`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.SubjectID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// TopicBelongsTo reports whether topicID exists under subjectID.
func (r *SubjectRepository) TopicBelongsTo(ctx context.Context, subjectID, topicID string) (bool, error) {
	var owner string
	err := r.pool.QueryRow(ctx, `SELECT subject_id FROM topics WHERE id = $1`, topicID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == subjectID, nil
}
