package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hearing-care-backend/internal/delivery/http/response"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/logger"
)

// Recovery turns a handler panic into the usual error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Panic recovered",
			"panic", recovered,
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)
		if c.Writer.Written() {
			c.Abort()
			return
		}
		response.Error(c, http.StatusInternalServerError,
			i18n.Tr(c.Request.Context(), "An unexpected error occurred. Please try again later."))
		c.Abort()
	})
}
