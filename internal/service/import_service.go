package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/model"
)

// ErrJobNotFound is returned for unknown or expired import jobs.
var ErrJobNotFound = errors.New("import job not found")

// importStatusTTL keeps job results readable for a day after completion.
const importStatusTTL = 24 * time.Hour

// ImportService queues bulk quiz imports on a Redis list and tracks their status.
// The queue is drained by worker.ImportWorker.
type ImportService struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(rdb *redis.Client, log zerolog.Logger) *ImportService {
	return &ImportService{
		rdb: rdb,
		log: log.With().Str("component", "import_service").Logger(),
	}
}

// Enqueue pushes one job per payload and returns their statuses.
func (s *ImportService) Enqueue(ctx context.Context, req model.BulkImportRequest) ([]model.ImportJobStatus, error) {
	statuses := make([]model.ImportJobStatus, 0, len(req.Payloads))
	pipe := s.rdb.TxPipeline()

	for _, payload := range req.Payloads {
		job := model.ImportJob{
			JobID:      uuid.New().String(),
			SubjectID:  req.SubjectID,
			TopicID:    req.TopicID,
			SubTopicID: req.SubTopicID,
			Payload:    payload,
		}
		raw, err := json.Marshal(job)
		if err != nil {
			return nil, fmt.Errorf("encode job: %w", err)
		}

		status := model.ImportJobStatus{JobID: job.JobID, State: model.ImportJobQueued}
		statusRaw, _ := json.Marshal(status)

		pipe.Set(ctx, config.CacheKey.ImportJobStatusKey(job.JobID), statusRaw, importStatusTTL)
		pipe.RPush(ctx, config.WorkerKey.ImportQuizQueue, raw)
		statuses = append(statuses, status)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("enqueue import jobs: %w", err)
	}

	s.log.Info().
		Int("jobs", len(statuses)).
		Str("topic_id", req.TopicID).
		Msg("Bulk import queued")

	return statuses, nil
}

// Status returns the current state of a job.
func (s *ImportService) Status(ctx context.Context, jobID string) (*model.ImportJobStatus, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.ImportJobStatusKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job status: %w", err)
	}

	var status model.ImportJobStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("decode job status: %w", err)
	}
	return &status, nil
}

// Complete records the outcome of a processed job.
func (s *ImportService) Complete(ctx context.Context, status model.ImportJobStatus) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, config.CacheKey.ImportJobStatusKey(status.JobID), raw, importStatusTTL).Err()
}
