package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hearing-care-backend/internal/delivery/http/response"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/pkg/apperror"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/places"
	"hearing-care-backend/pkg/security"
)

type ReviewsHandler struct {
	reviewUC domain.ReviewUsecase
}

func NewReviewsHandler(public *gin.RouterGroup, reviewUC domain.ReviewUsecase) {
	handler := &ReviewsHandler{reviewUC: reviewUC}

	public.GET("/google-reviews", handler.GetGoogleReviews)
}

// GetGoogleReviews godoc
// @Summary      Google reviews
// @Description  Fetches the clinic's Google reviews, keeps those with text rated at least minRating and returns one page.
// @Tags         reviews
// @Produce      json
// @Param        forceRefresh  query     bool    false  "Bypass the review cache"
// @Param        page          query     int     false  "Page number (default 1)"
// @Param        limit         query     int     false  "Items per page (default 10, max 50)"
// @Param        minRating     query     int     false  "Minimum star rating (default 1)"
// @Param        lang          query     string  false  "Response language (es, en)"
// @Success      200  {object}  response.ReviewsResponse
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /google-reviews [get]
func (h *ReviewsHandler) GetGoogleReviews(c *gin.Context) {
	q := domain.ReviewQuery{
		ForceRefresh: queryBool(c, "forceRefresh"),
		Page:         queryInt(c, "page", domain.DefaultReviewPage),
		Limit:        queryInt(c, "limit", domain.DefaultReviewLimit),
		MinRating:    queryInt(c, "minRating", domain.DefaultReviewMinRating),
	}

	page, err := h.reviewUC.GetReviews(c.Request.Context(), q)
	if err != nil {
		c.Error(reviewsError(c, err))
		return
	}

	response.Reviews(c, http.StatusOK, page)
}

// reviewsError maps a reviews failure to the status and localized message
// shown by the site, always asking it to fall back to its manual content.
func reviewsError(c *gin.Context, err error) *apperror.AppError {
	ctx := c.Request.Context()

	if errors.Is(err, domain.ErrPlacesNotConfigured) || errors.Is(err, places.ErrNotConfigured) {
		return apperror.New(http.StatusInternalServerError,
			i18n.Tr(ctx, "Google Places API configuration is incomplete"), err).WithFallback()
	}

	var se *places.StatusError
	if errors.As(err, &se) {
		var msg string
		switch se.StatusCode {
		case http.StatusForbidden:
			security.DefaultLogger().LogUpstreamAuthFailed(ctx, c.GetString("RequestID"), se.StatusCode, se.Status)
			msg = i18n.Tr(ctx, "Invalid API key or missing permissions")
		case http.StatusBadRequest:
			msg = i18n.Tr(ctx, "Invalid Place ID")
		case http.StatusTooManyRequests:
			msg = i18n.Tr(ctx, "Request limit exceeded")
		default:
			msg = i18n.Tr(ctx, "Could not load Google reviews")
		}
		return apperror.FromStatus(se.StatusCode, msg, err).WithFallback()
	}

	return apperror.New(http.StatusInternalServerError, i18n.Tr(ctx, "Could not load Google reviews"), err).WithFallback()
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
