package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hearing-care-backend/internal/delivery/http/response"
	"hearing-care-backend/pkg/apperror"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperror.As(err)
		if !ok {
			// Never expose internal error details to clients.
			logger.Log.Error("Unhandled request error",
				"error", err,
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
			)
			appErr = apperror.New(http.StatusInternalServerError,
				i18n.Tr(c.Request.Context(), "An unexpected error occurred. Please try again later."), err)
		} else if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
			logger.Log.Error("Request failed",
				"status", appErr.Code,
				"error", appErr.Err,
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
			)
		}

		if appErr.FallbackToManual {
			response.ErrorWithFallback(c, appErr.Code, appErr.Message)
			return
		}
		response.Error(c, appErr.Code, appErr.Message)
	}
}
