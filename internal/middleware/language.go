package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizlingua/internal/i18n"
)

// ContextKeyLanguage is the Gin context key for the negotiated content language.
const ContextKeyLanguage = "language"

// Language negotiates the response language. A supported ?lang= query
// parameter wins; otherwise the Accept-Language header decides, falling
// back to the default language.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, ok := i18n.ParseLang(c.Query("lang"))
		if !ok {
			lang = i18n.DetectLanguage(c.GetHeader("Accept-Language"))
		}
		c.Set(ContextKeyLanguage, lang)
		c.Next()
	}
}

// GetLanguage returns the negotiated language, or the default outside the middleware.
func GetLanguage(c *gin.Context) i18n.Lang {
	if v, ok := c.Get(ContextKeyLanguage); ok {
		if lang, ok := v.(i18n.Lang); ok {
			return lang
		}
	}
	return i18n.DefaultLanguage
}
