package response

import (
	"time"

	"github.com/gin-gonic/gin"

	"hearing-care-backend/internal/domain"
)

// Response standardizes the API JSON response
type Response struct {
	Success          bool        `json:"success"`
	Message          string      `json:"message,omitempty"`
	Data             interface{} `json:"data,omitempty"`
	Error            string      `json:"error,omitempty"`
	FallbackToManual bool        `json:"fallbackToManual,omitempty"`
	RequestID        string      `json:"request_id,omitempty"`
}

// ReviewsResponse is the success body of the reviews endpoint.
type ReviewsResponse struct {
	Success    bool                         `json:"success"`
	Data       []domain.EnhancedTestimonial `json:"data"`
	Pagination domain.Pagination            `json:"pagination"`
	Cached     bool                         `json:"cached"`
	Timestamp  string                       `json:"timestamp"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Error:     message,
		RequestID: requestID(c),
	})
}

// ErrorWithFallback sends an error response telling the site to show its
// manual alternative (e.g. a link to the Google listing).
func ErrorWithFallback(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:          false,
		Error:            message,
		FallbackToManual: true,
		RequestID:        requestID(c),
	})
}

// Reviews sends a page of testimonials.
func Reviews(c *gin.Context, code int, page *domain.ReviewPage) {
	c.JSON(code, ReviewsResponse{
		Success:    true,
		Data:       page.Data,
		Pagination: page.Pagination,
		Cached:     page.Cached,
		Timestamp:  page.FetchedAt.UTC().Format(time.RFC3339),
	})
}
