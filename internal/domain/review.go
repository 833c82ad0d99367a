package domain

import (
	"context"
	"errors"
	"time"
)

// Review query defaults and bounds.
const (
	DefaultReviewPage      = 1
	DefaultReviewLimit     = 10
	MaxReviewLimit         = 50
	DefaultReviewMinRating = 1
	MaxReviewRating        = 5
)

// ReviewSourceGoogle marks testimonials sourced from Google Places.
const ReviewSourceGoogle = "google"

// LocalizedText is a text value tagged with its BCP 47 language code.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

// AuthorAttribution identifies the author of a Google review.
type AuthorAttribution struct {
	DisplayName string `json:"displayName"`
	URI         string `json:"uri"`
	PhotoURI    string `json:"photoUri"`
}

// GooglePlaceReview is a review record as returned by the Places API.
type GooglePlaceReview struct {
	Name                           string            `json:"name"`
	RelativePublishTimeDescription string            `json:"relativePublishTimeDescription"`
	Rating                         int               `json:"rating"`
	Text                           *LocalizedText    `json:"text,omitempty"`
	OriginalText                   *LocalizedText    `json:"originalText,omitempty"`
	AuthorAttribution              AuthorAttribution `json:"authorAttribution"`
	PublishTime                    time.Time         `json:"publishTime"`
}

// PlaceDetails is the subset of a Places API place the reviews endpoint requests.
type PlaceDetails struct {
	ID              string              `json:"id"`
	DisplayName     *LocalizedText      `json:"displayName,omitempty"`
	Rating          float64             `json:"rating"`
	UserRatingCount int                 `json:"userRatingCount"`
	Reviews         []GooglePlaceReview `json:"reviews"`
}

// EnhancedTestimonial is the display record rendered by the site.
type EnhancedTestimonial struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Content      string `json:"content"`
	Rating       int    `json:"rating"`
	Date         string `json:"date"`
	Avatar       string `json:"avatar,omitempty"`
	Service      string `json:"service,omitempty"`
	Source       string `json:"source"`
	Verified     bool   `json:"verified"`
	OriginalText string `json:"originalText,omitempty"`
	Language     string `json:"language,omitempty"`
	RelativeTime string `json:"relativeTime,omitempty"`
	AuthorURL    string `json:"authorUrl,omitempty"`
}

// ReviewQuery carries the normalized query string of the reviews endpoint.
type ReviewQuery struct {
	ForceRefresh bool
	Page         int
	Limit        int
	MinRating    int
}

// Pagination describes the slice of filtered reviews returned.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// ReviewPage is one page of filtered testimonials.
type ReviewPage struct {
	Data       []EnhancedTestimonial
	Pagination Pagination
	Cached     bool
	FetchedAt  time.Time
}

// PlacesClient fetches place details, including reviews, from the upstream API.
type PlacesClient interface {
	FetchPlaceReviews(ctx context.Context) (*PlaceDetails, error)
	IsConfigured() bool
}

// ReviewCache stores raw upstream reviews between requests.
type ReviewCache interface {
	Get(ctx context.Context, key string) ([]GooglePlaceReview, bool, error)
	Set(ctx context.Context, key string, reviews []GooglePlaceReview, ttl time.Duration) error
}

// ReviewUsecase defines the reviews fetch-filter-paginate pipeline.
type ReviewUsecase interface {
	GetReviews(ctx context.Context, q ReviewQuery) (*ReviewPage, error)
}

// ErrPlacesNotConfigured is returned when the Places API key or place id is missing.
var ErrPlacesNotConfigured = errors.New("google places api is not configured")
