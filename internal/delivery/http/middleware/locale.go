package middleware

import (
	"github.com/gin-gonic/gin"

	"hearing-care-backend/pkg/i18n"
)

// Locale resolves the request language (?lang=, then Accept-Language) and
// stores it in the request context for handlers and templates.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := i18n.FromRequest(c.Request)
		c.Header("Content-Language", tag.String())
		c.Request = c.Request.WithContext(i18n.WithTag(c.Request.Context(), tag))
		c.Next()
	}
}
