package usecase

import (
	"context"
	"fmt"
	"time"

	"hearing-care-backend/internal/domain"
	"hearing-care-backend/pkg/logger"
)

type reviewUsecase struct {
	client   domain.PlacesClient
	cache    domain.ReviewCache
	cacheTTL time.Duration
	cacheKey string
	now      func() time.Time
}

// NewReviewUsecase creates the reviews pipeline. A nil cache or a zero ttl
// makes every call fetch upstream.
func NewReviewUsecase(client domain.PlacesClient, cache domain.ReviewCache, cacheTTL time.Duration, cacheKey string) domain.ReviewUsecase {
	return &reviewUsecase{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		cacheKey: cacheKey,
		now:      time.Now,
	}
}

// NormalizeReviewQuery applies defaults and bounds to q.
func NormalizeReviewQuery(q domain.ReviewQuery) domain.ReviewQuery {
	if q.Page < 1 {
		q.Page = domain.DefaultReviewPage
	}
	if q.Limit < 1 {
		q.Limit = domain.DefaultReviewLimit
	}
	if q.Limit > domain.MaxReviewLimit {
		q.Limit = domain.MaxReviewLimit
	}
	if q.MinRating < 1 {
		q.MinRating = domain.DefaultReviewMinRating
	}
	if q.MinRating > domain.MaxReviewRating {
		q.MinRating = domain.MaxReviewRating
	}
	return q
}

func (u *reviewUsecase) GetReviews(ctx context.Context, q domain.ReviewQuery) (*domain.ReviewPage, error) {
	if !u.client.IsConfigured() {
		return nil, domain.ErrPlacesNotConfigured
	}
	q = NormalizeReviewQuery(q)

	reviews, cached, err := u.loadReviews(ctx, q.ForceRefresh)
	if err != nil {
		return nil, err
	}

	now := u.now()
	filtered := FilterReviews(reviews, q.MinRating)
	start, end, hasMore := PageBounds(len(filtered), q.Page, q.Limit)

	data := make([]domain.EnhancedTestimonial, 0, end-start)
	for i, r := range filtered[start:end] {
		data = append(data, ToTestimonial(ctx, r, start+i, now))
	}

	return &domain.ReviewPage{
		Data: data,
		Pagination: domain.Pagination{
			Page:    q.Page,
			Limit:   q.Limit,
			Total:   len(filtered),
			HasMore: hasMore,
		},
		Cached:    cached,
		FetchedAt: now,
	}, nil
}

func (u *reviewUsecase) cacheEnabled() bool {
	return u.cache != nil && u.cacheTTL > 0
}

// loadReviews returns the raw reviews and whether they came from the cache.
func (u *reviewUsecase) loadReviews(ctx context.Context, forceRefresh bool) ([]domain.GooglePlaceReview, bool, error) {
	if u.cacheEnabled() && !forceRefresh {
		reviews, ok, err := u.cache.Get(ctx, u.cacheKey)
		if err != nil {
			logger.Log.Warn("Review cache read failed", "error", err, "request_id", ctx.Value(domain.KeyRequestID))
		} else if ok {
			return reviews, true, nil
		}
	}

	details, err := u.client.FetchPlaceReviews(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("fetch place reviews: %w", err)
	}

	if u.cacheEnabled() {
		if err := u.cache.Set(ctx, u.cacheKey, details.Reviews, u.cacheTTL); err != nil {
			logger.Log.Warn("Review cache write failed", "error", err, "request_id", ctx.Value(domain.KeyRequestID))
		}
	}

	return details.Reviews, false, nil
}
