package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/i18n"
	"github.com/stemsi/quizlingua/internal/model"
	"github.com/stemsi/quizlingua/internal/normalize"
	"github.com/stemsi/quizlingua/internal/repository"
	"github.com/stemsi/quizlingua/internal/response"
)

// Domain Errors
var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrNoContent       = errors.New("quiz has no text content in any language")
	ErrInvalidPayload  = errors.New("payload is not valid JSON")
	ErrTopicNotFound   = errors.New("topic not found under subject")
	ErrSubjectNotFound = errors.New("subject not found")
)

// QuizStore persists canonical quizzes.
type QuizStore interface {
	Create(ctx context.Context, q *model.Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error)
	ListByTopic(ctx context.Context, topicID string, lang i18n.Lang, limit, offset int) ([]model.QuizSummary, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TopicChecker verifies topic ownership before an import is accepted.
type TopicChecker interface {
	TopicBelongsTo(ctx context.Context, subjectID, topicID string) (bool, error)
}

// QuizCache holds canonical quizzes. Get returns (nil, nil) on a miss.
type QuizCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Quiz, error)
	Set(ctx context.Context, q *model.Quiz) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// QuizService normalizes incoming quizzes before persistence and resolves
// stored quizzes into a single language on the way out.
type QuizService struct {
	store  QuizStore
	topics TopicChecker
	cache  QuizCache
	log    zerolog.Logger
}

// NewQuizService creates a new QuizService. cache may be nil.
func NewQuizService(store QuizStore, topics TopicChecker, cache QuizCache, log zerolog.Logger) *QuizService {
	return &QuizService{
		store:  store,
		topics: topics,
		cache:  cache,
		log:    log.With().Str("component", "quiz_service").Logger(),
	}
}

// Normalize decodes a raw payload and converts it to canonical form
// without touching storage.
func (s *QuizService) Normalize(raw json.RawMessage, subjectID, topicID, subTopicID string) (model.NormalizedQuiz, error) {
	payload, err := decodePayload(raw)
	if err != nil {
		return model.NormalizedQuiz{}, err
	}
	return normalize.NormalizeIncomingQuiz(payload, subjectID, topicID, subTopicID), nil
}

// Import normalizes and persists a quiz. Quizzes without any text are rejected.
func (s *QuizService) Import(ctx context.Context, req model.ImportQuizRequest) (*model.Quiz, error) {
	ok, err := s.topics.TopicBelongsTo(ctx, req.SubjectID, req.TopicID)
	if err != nil {
		return nil, fmt.Errorf("check topic: %w", err)
	}
	if !ok {
		return nil, ErrTopicNotFound
	}

	nq, err := s.Normalize(req.Payload, req.SubjectID, req.TopicID, req.SubTopicID)
	if err != nil {
		return nil, err
	}
	if !normalize.HasContent(nq) {
		return nil, ErrNoContent
	}

	quiz := &model.Quiz{NormalizedQuiz: nq}
	if err := s.store.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	s.cacheSet(ctx, quiz)

	s.log.Info().
		Str("quiz_id", quiz.ID.String()).
		Int("questions", len(quiz.Questions)).
		Interface("languages", quiz.AvailableLanguages).
		Bool("multilingual", quiz.IsMultilingual).
		Msg("Quiz imported")

	return quiz, nil
}

// GetCanonical loads a quiz in its stored bilingual form, cache first.
func (s *QuizService) GetCanonical(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("quiz_id", id.String()).Msg("Quiz cache read failed")
		}
		if cached != nil {
			return cached, nil
		}
	}

	quiz, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	s.cacheSet(ctx, quiz)
	return quiz, nil
}

// GetLocalized loads a quiz and collapses every bilingual field into lang.
func (s *QuizService) GetLocalized(ctx context.Context, id uuid.UUID, lang i18n.Lang) (any, error) {
	quiz, err := s.GetCanonical(ctx, id)
	if err != nil {
		return nil, err
	}
	return Localize(quiz, lang)
}

// ListByTopic returns localized quiz summaries for a topic. A non-empty
// available filter keeps quizzes with content in that language only.
func (s *QuizService) ListByTopic(ctx context.Context, topicID string, q model.ListQuizzesQuery, lang i18n.Lang) (any, *response.Pagination, error) {
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	var available i18n.Lang
	if q.Available != "" {
		available, _ = i18n.ParseLang(q.Available)
	}

	quizzes, total, err := s.store.ListByTopic(ctx, topicID, available, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, fmt.Errorf("list quizzes: %w", err)
	}
	if quizzes == nil {
		quizzes = []model.QuizSummary{}
	}

	localized, err := Localize(quizzes, lang)
	if err != nil {
		return nil, nil, err
	}
	return localized, response.NewPagination(page, perPage, total), nil
}

// Delete removes a quiz and evicts it from the cache.
func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("delete quiz: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("quiz_id", id.String()).Msg("Quiz cache invalidation failed")
		}
	}
	return nil
}

func (s *QuizService) cacheSet(ctx context.Context, quiz *model.Quiz) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, quiz); err != nil {
		s.log.Warn().Err(err).Str("quiz_id", quiz.ID.String()).Msg("Quiz cache write failed")
	}
}

// Localize converts any JSON-serializable value into a generic tree and
// resolves every multilingual leaf for lang.
func Localize(v any, lang i18n.Lang) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	return i18n.ExtractContent(tree, lang), nil
}

func decodePayload(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}
