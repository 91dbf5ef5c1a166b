package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizlingua/internal/response"
)

// BodyLimit rejects request bodies larger than maxBytes. Declared lengths are
// checked up front; chunked bodies fail on read with *http.MaxBytesError.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.AbortFail(c, http.StatusRequestEntityTooLarge, response.ErrPayloadTooBig)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
