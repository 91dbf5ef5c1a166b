package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemsi/quizlingua/internal/middleware"
	"github.com/stemsi/quizlingua/internal/model"
	"github.com/stemsi/quizlingua/internal/response"
	"github.com/stemsi/quizlingua/internal/service"
	"github.com/stemsi/quizlingua/internal/validator"
)

// ImportQueue hands bulk imports to the background worker.
type ImportQueue interface {
	Enqueue(ctx context.Context, req model.BulkImportRequest) ([]model.ImportJobStatus, error)
	Status(ctx context.Context, jobID string) (*model.ImportJobStatus, error)
}

// QuizHandler serves quiz import and localized reads.
type QuizHandler struct {
	quizService *service.QuizService
	imports     ImportQueue
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, imports ImportQueue) *QuizHandler {
	return &QuizHandler{quizService: quizService, imports: imports}
}

// Import godoc
// POST /api/v1/admin/quizzes/import
// Normalizes a quiz payload of any accepted shape and stores it.
func (h *QuizHandler) Import(c *gin.Context) {
	var req model.ImportQuizRequest
	if !bindBody(c, &req) {
		return
	}

	quiz, err := h.quizService.Import(c.Request.Context(), req)
	if err != nil {
		failService(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// BulkImport godoc
// POST /api/v1/admin/quizzes/import/bulk
// Queues payloads for the import worker and returns one job per payload.
func (h *QuizHandler) BulkImport(c *gin.Context) {
	var req model.BulkImportRequest
	if !bindBody(c, &req) {
		return
	}

	jobs, err := h.imports.Enqueue(c.Request.Context(), req)
	if err != nil {
		failService(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"jobs": jobs})
}

// ImportStatus godoc
// GET /api/v1/admin/quizzes/import/jobs/:job_id
func (h *QuizHandler) ImportStatus(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	job, err := h.imports.Status(c.Request.Context(), jobID.String())
	if err != nil {
		failService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"job": job})
}

// Normalize godoc
// POST /api/v1/admin/normalize
// Returns the canonical form of a payload without storing it.
func (h *QuizHandler) Normalize(c *gin.Context) {
	var req model.NormalizeRequest
	if !bindBody(c, &req) {
		return
	}

	quiz, err := h.quizService.Normalize(req.Payload, req.SubjectID, req.TopicID, req.SubTopicID)
	if err != nil {
		failService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// GetQuiz godoc
// GET /api/v1/quizzes/:id
// Resolves every bilingual field into the negotiated language.
// ?raw=true returns the stored bilingual form instead.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if raw, _ := strconv.ParseBool(c.Query("raw")); raw {
		quiz, err := h.quizService.GetCanonical(c.Request.Context(), id)
		if err != nil {
			failService(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
		return
	}

	lang := middleware.GetLanguage(c)
	quiz, err := h.quizService.GetLocalized(c.Request.Context(), id, lang)
	if err != nil {
		failService(c, err)
		return
	}

	response.Localized(c, http.StatusOK, lang, gin.H{"quiz": quiz}, nil)
}

// ListByTopic godoc
// GET /api/v1/topics/:topic_id/quizzes
func (h *QuizHandler) ListByTopic(c *gin.Context) {
	var q model.ListQuizzesQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lang := middleware.GetLanguage(c)
	quizzes, pagination, err := h.quizService.ListByTopic(c.Request.Context(), c.Param("topic_id"), q, lang)
	if err != nil {
		failService(c, err)
		return
	}

	response.Localized(c, http.StatusOK, lang, gin.H{"quizzes": quizzes}, pagination)
}

// Delete godoc
// DELETE /api/v1/admin/quizzes/:id
func (h *QuizHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "quiz deleted successfully"})
}
