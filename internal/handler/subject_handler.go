package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizlingua/internal/middleware"
	"github.com/stemsi/quizlingua/internal/model"
	"github.com/stemsi/quizlingua/internal/response"
	"github.com/stemsi/quizlingua/internal/service"
)

type SubjectHandler struct {
	subjectService *service.SubjectService
}

func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// GetAll godoc
// GET /api/v1/subjects
func (h *SubjectHandler) GetAll(c *gin.Context) {
	lang := middleware.GetLanguage(c)
	subjects, err := h.subjectService.GetAll(c.Request.Context(), lang)
	if err != nil {
		failService(c, err)
		return
	}

	response.Localized(c, http.StatusOK, lang, gin.H{"subjects": subjects}, nil)
}

// Create godoc
// POST /api/v1/admin/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if !bindBody(c, &req) {
		return
	}

	sub, err := h.subjectService.Create(c.Request.Context(), req.Name)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subject": sub})
}

// ListTopics godoc
// GET /api/v1/subjects/:subject_id/topics
func (h *SubjectHandler) ListTopics(c *gin.Context) {
	lang := middleware.GetLanguage(c)
	topics, err := h.subjectService.ListTopics(c.Request.Context(), c.Param("subject_id"), lang)
	if err != nil {
		failService(c, err)
		return
	}

	response.Localized(c, http.StatusOK, lang, gin.H{"topics": topics}, nil)
}

// CreateTopic godoc
// POST /api/v1/admin/subjects/:subject_id/topics
func (h *SubjectHandler) CreateTopic(c *gin.Context) {
	var req model.CreateTopicRequest
	if !bindBody(c, &req) {
		return
	}

	topic, err := h.subjectService.CreateTopic(c.Request.Context(), c.Param("subject_id"), req.Name)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"topic": topic})
}
