package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/response"
)

const checkTimeout = 2 * time.Second

// healthCheck checks a single backing dependency.
type healthCheck func(ctx context.Context) error

// SystemHandler reports dependency health and import queue depth.
type SystemHandler struct {
	checks    map[string]healthCheck
	queueLen  func(ctx context.Context) (int64, error)
	startTime time.Time
	log       zerolog.Logger
}

func NewSystemHandler(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		checks: map[string]healthCheck{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		queueLen: func(ctx context.Context) (int64, error) {
			return rdb.LLen(ctx, config.WorkerKey.ImportQuizQueue).Result()
		},
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// 200 when every dependency answers, 503 naming the ones that don't.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	down := make(map[string]string)
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			down[name] = "unavailable"
		}
	}

	if len(down) > 0 {
		response.FailWithFields(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable, down)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

type systemStats struct {
	Uptime      string `json:"uptime"`
	ImportQueue int64  `json:"import_queue"`
	Goroutines  int    `json:"goroutines"`
	HeapAlloc   uint64 `json:"heap_alloc"`
	NumGC       uint32 `json:"num_gc"`
	GoVersion   string `json:"go_version"`
}

// Stats godoc
// GET /api/v1/admin/system/stats
func (h *SystemHandler) Stats(c *gin.Context) {
	queued, err := h.queueLen(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	response.Success(c, http.StatusOK, gin.H{"stats": systemStats{
		Uptime:      time.Since(h.startTime).Truncate(time.Second).String(),
		ImportQueue: queued,
		Goroutines:  runtime.NumGoroutine(),
		HeapAlloc:   mem.HeapAlloc,
		NumGC:       mem.NumGC,
		GoVersion:   runtime.Version(),
	}})
}
