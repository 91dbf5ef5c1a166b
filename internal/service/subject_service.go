package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/i18n"
	"github.com/stemsi/quizlingua/internal/model"
	"github.com/stemsi/quizlingua/internal/normalize"
	"github.com/stemsi/quizlingua/internal/repository"
)

type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	log         zerolog.Logger
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

// GetAll returns every subject with its name resolved for lang.
func (s *SubjectService) GetAll(ctx context.Context, lang i18n.Lang) (any, error) {
	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return Localize(subjects, lang)
}

// Create stores a subject whose name may arrive in any accepted text shape.
func (s *SubjectService) Create(ctx context.Context, rawName json.RawMessage) (*model.Subject, error) {
	name, err := normalizeName(rawName)
	if err != nil {
		return nil, err
	}

	sub := &model.Subject{ID: uuid.New().String(), Name: name}
	if err := s.subjectRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return sub, nil
}

// ListTopics returns a subject's topics with names resolved for lang.
func (s *SubjectService) ListTopics(ctx context.Context, subjectID string, lang i18n.Lang) (any, error) {
	topics, err := s.subjectRepo.ListTopics(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	return Localize(topics, lang)
}

// CreateTopic stores a topic under an existing subject.
func (s *SubjectService) CreateTopic(ctx context.Context, subjectID string, rawName json.RawMessage) (*model.Topic, error) {
	exists, err := s.subjectRepo.Exists(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("check subject: %w", err)
	}
	if !exists {
		return nil, ErrSubjectNotFound
	}

	name, err := normalizeName(rawName)
	if err != nil {
		return nil, err
	}

	topic := &model.Topic{ID: uuid.New().String(), SubjectID: subjectID, Name: name}
	if err := s.subjectRepo.CreateTopic(ctx, topic); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topic, nil
}

// TopicBelongsTo satisfies TopicChecker for the quiz import flow.
func (s *SubjectService) TopicBelongsTo(ctx context.Context, subjectID, topicID string) (bool, error) {
	return s.subjectRepo.TopicBelongsTo(ctx, subjectID, topicID)
}

func normalizeName(raw json.RawMessage) (model.BilingualText, error) {
	payload, err := decodePayload(raw)
	if err != nil {
		return model.BilingualText{}, err
	}
	name := normalize.NormalizeText(payload)
	if name.IsEmpty() {
		return model.BilingualText{}, ErrNoContent
	}
	return name, nil
}
