package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/model"
	"github.com/stemsi/quizlingua/internal/response"
	"github.com/stemsi/quizlingua/internal/service"
)

const (
	// MaxImportAttempts caps storage retries before a job is marked FAILED.
	MaxImportAttempts = 5
	retryBackoff      = 5 * time.Second
)

// Importer is the part of the quiz service the worker drives.
type Importer interface {
	Import(ctx context.Context, req model.ImportQuizRequest) (*model.Quiz, error)
}

// StatusRecorder stores the outcome of each job.
type StatusRecorder interface {
	Complete(ctx context.Context, status model.ImportJobStatus) error
}

// ImportWorker consumes import_quiz_queue, normalizing and persisting each payload.
type ImportWorker struct {
	rdb      *redis.Client
	importer Importer
	status   StatusRecorder
	push     func(ctx context.Context, raw string) error
	log      zerolog.Logger
}

// NewImportWorker creates a new ImportWorker.
func NewImportWorker(rdb *redis.Client, importer Importer, status StatusRecorder, log zerolog.Logger) *ImportWorker {
	return &ImportWorker{
		rdb:      rdb,
		importer: importer,
		status:   status,
		push: func(ctx context.Context, raw string) error {
			return rdb.RPush(ctx, config.WorkerKey.ImportQuizQueue, raw).Err()
		},
		log: log.With().Str("component", "import_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *ImportWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *ImportWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.ImportQuizQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			time.Sleep(time.Second)
		}
		return
	}

	if len(result) < 2 {
		return
	}

	if next, retry := w.handle(ctx, result[1]); retry {
		w.requeue(ctx, next)
		select {
		case <-ctx.Done():
		case <-time.After(retryBackoff):
		}
	}
}

// handle processes one raw job. When the job should run again it returns
// the payload to push back. Content problems are final; storage errors are
// retried up to MaxImportAttempts. Failures caused by ctx being canceled do
// not count as an attempt.
func (w *ImportWorker) handle(ctx context.Context, raw string) (string, bool) {
	var job model.ImportJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error, dropping job")
		return "", false
	}

	quiz, err := w.importer.Import(ctx, model.ImportQuizRequest{
		SubjectID:  job.SubjectID,
		TopicID:    job.TopicID,
		SubTopicID: job.SubTopicID,
		Payload:    job.Payload,
	})

	status := model.ImportJobStatus{JobID: job.JobID}
	switch {
	case err == nil:
		status.State = model.ImportJobDone
		status.QuizID = quiz.ID.String()
	case errors.Is(err, service.ErrNoContent):
		status.State = model.ImportJobFailed
		status.Error = string(response.ErrNoContent)
	case errors.Is(err, service.ErrInvalidPayload):
		status.State = model.ImportJobFailed
		status.Error = string(response.ErrInvalidPayload)
	case errors.Is(err, service.ErrTopicNotFound):
		status.State = model.ImportJobFailed
		status.Error = string(response.ErrTopicNotFound)
	case ctx.Err() != nil:
		w.log.Warn().Err(err).Str("job_id", job.JobID).Msg("Import interrupted, requeueing")
		return raw, true
	default:
		job.Attempts++
		if job.Attempts >= MaxImportAttempts {
			w.log.Error().Err(err).Str("job_id", job.JobID).Int("attempts", job.Attempts).Msg("Import failed, giving up")
			status.State = model.ImportJobFailed
			status.Error = string(response.ErrInternal)
			break
		}

		next, mErr := json.Marshal(job)
		if mErr != nil {
			w.log.Error().Err(mErr).Str("job_id", job.JobID).Msg("Encode error, dropping job")
			return "", false
		}
		w.log.Error().Err(err).Str("job_id", job.JobID).Int("attempts", job.Attempts).Msg("Import error, retrying")
		return string(next), true
	}

	if err := w.status.Complete(context.WithoutCancel(ctx), status); err != nil {
		w.log.Error().Err(err).Str("job_id", job.JobID).Msg("Status write error")
	}

	w.log.Info().
		Str("job_id", job.JobID).
		Str("state", string(status.State)).
		Str("quiz_id", status.QuizID).
		Msg("Import job processed")
	return "", false
}

// requeue pushes a job back even when ctx is already canceled, so shutdown
// never loses queued work.
func (w *ImportWorker) requeue(ctx context.Context, raw string) {
	if err := w.push(context.WithoutCancel(ctx), raw); err != nil {
		w.log.Error().Err(err).Msg("Requeue failed, job lost")
	}
}

// drain processes all remaining items in the queue before shutdown.
func (w *ImportWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.ImportQuizQueue).Result()
		if err != nil {
			break
		}

		if next, retry := w.handle(ctx, result); retry {
			w.requeue(ctx, next)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
