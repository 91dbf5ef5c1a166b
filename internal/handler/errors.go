package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizlingua/internal/response"
	"github.com/stemsi/quizlingua/internal/service"
	"github.com/stemsi/quizlingua/internal/validator"
)

// failService maps service sentinels onto response codes.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
	case errors.Is(err, service.ErrSubjectNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
	case errors.Is(err, service.ErrTopicNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrTopicNotFound)
	case errors.Is(err, service.ErrJobNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrJobNotFound)
	case errors.Is(err, service.ErrInvalidPayload):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, service.ErrNoContent):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoContent)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// bindBody is validator.Bind with a 413 for bodies cut off by middleware.BodyLimit.
func bindBody(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrPayloadTooBig)
		return false
	}
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
	return false
}
