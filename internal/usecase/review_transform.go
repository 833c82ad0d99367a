package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hearing-care-backend/internal/domain"
	"hearing-care-backend/pkg/i18n"
)

// ReviewText returns the trimmed display text of r. The untranslated
// originalText is carried separately and never stands in for it.
func ReviewText(r domain.GooglePlaceReview) string {
	if r.Text == nil {
		return ""
	}
	return strings.TrimSpace(r.Text.Text)
}

// FilterReviews keeps reviews rated at least minRating whose text is not
// blank. The input order is preserved.
func FilterReviews(reviews []domain.GooglePlaceReview, minRating int) []domain.GooglePlaceReview {
	out := make([]domain.GooglePlaceReview, 0, len(reviews))
	for _, r := range reviews {
		if r.Rating < minRating || ReviewText(r) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PageBounds returns the [start, end) slice bounds of page over total items
// and whether more items follow. Pages past the end are empty; page and
// limit below 1 are treated as 1.
func PageBounds(total, page, limit int) (start, end int, hasMore bool) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	// (page-1)*limit can overflow for huge pages, so compare by division.
	if page-1 > total/limit {
		return total, total, false
	}
	start = min((page-1)*limit, total)
	end = start + min(limit, total-start)
	return start, end, end < total
}

// ReviewID derives a stable id from the last segment of the upstream
// resource name ("places/<place>/reviews/<id>"). Names without a usable
// segment get a timestamped id unique within the response.
func ReviewID(name string, index int, now time.Time) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return fmt.Sprintf("google-%d-%d-%s", now.UnixMilli(), index, uuid.NewString()[:8])
}

// ToTestimonial maps an upstream review to its display record.
func ToTestimonial(ctx context.Context, r domain.GooglePlaceReview, index int, now time.Time) domain.EnhancedTestimonial {
	name := strings.TrimSpace(r.AuthorAttribution.DisplayName)
	if name == "" {
		name = i18n.Tr(ctx, "Google user")
	}

	t := domain.EnhancedTestimonial{
		ID:           ReviewID(r.Name, index, now),
		Name:         name,
		Content:      ReviewText(r),
		Rating:       r.Rating,
		Avatar:       r.AuthorAttribution.PhotoURI,
		Source:       domain.ReviewSourceGoogle,
		Verified:     true,
		RelativeTime: r.RelativePublishTimeDescription,
		AuthorURL:    r.AuthorAttribution.URI,
	}
	if !r.PublishTime.IsZero() {
		t.Date = r.PublishTime.UTC().Format("2006-01-02")
	}
	if r.Text != nil {
		t.Language = r.Text.LanguageCode
	}
	if r.OriginalText != nil {
		t.OriginalText = strings.TrimSpace(r.OriginalText.Text)
		if t.Language == "" {
			t.Language = r.OriginalText.LanguageCode
		}
	}
	return t
}
