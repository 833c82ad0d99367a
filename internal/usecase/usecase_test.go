package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hearing-care-backend/config"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/internal/gallery"
	"hearing-care-backend/internal/usecase"
	"hearing-care-backend/pkg/apperror"
	"hearing-care-backend/pkg/email"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/validation"
)

// Mocks

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

type MockPlacesClient struct {
	mock.Mock
}

func (m *MockPlacesClient) FetchPlaceReviews(ctx context.Context) (*domain.PlaceDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceDetails), args.Error(1)
}

func (m *MockPlacesClient) IsConfigured() bool {
	return m.Called().Bool(0)
}

type MockReviewCache struct {
	mock.Mock
}

func (m *MockReviewCache) Get(ctx context.Context, key string) ([]domain.GooglePlaceReview, bool, error) {
	args := m.Called(ctx, key)
	reviews, _ := args.Get(0).([]domain.GooglePlaceReview)
	return reviews, args.Bool(1), args.Error(2)
}

func (m *MockReviewCache) Set(ctx context.Context, key string, reviews []domain.GooglePlaceReview, ttl time.Duration) error {
	return m.Called(ctx, key, reviews, ttl).Error(0)
}

// Fixtures

func contactConfig() *config.Config {
	return &config.Config{
		ContactEmailTo: "inbox@clinic.example",
		ClinicName:     "Centro Auditivo Sol",
		ClinicPhone:    "910 000 000",
	}
}

func validContact() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:             "  Lucía Pérez ",
		Email:            "lucia@example.com",
		Phone:            "+34 600 123 456",
		Subject:          "Cita para revisión",
		Message:          "Me gustaría pedir cita para revisar mis audífonos.",
		PreferredContact: "Phone",
	}
}

func review(name string, rating int, text string) domain.GooglePlaceReview {
	return domain.GooglePlaceReview{
		Name:              name,
		Rating:            rating,
		Text:              &domain.LocalizedText{Text: text, LanguageCode: "es"},
		AuthorAttribution: domain.AuthorAttribution{DisplayName: "Autor " + name},
		PublishTime:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func placeReviews() []domain.GooglePlaceReview {
	return []domain.GooglePlaceReview{
		review("places/p/reviews/r1", 5, "Excelente"),
		review("places/p/reviews/r2", 1, "Malo"),
		review("places/p/reviews/r3", 4, "Muy bien"),
		review("places/p/reviews/r4", 5, "   "),
		review("places/p/reviews/r5", 5, "Perfecto"),
		review("places/p/reviews/r6", 4, "Recomendable"),
		review("places/p/reviews/r7", 5, "Amables"),
		review("places/p/reviews/r8", 3, "Correcto"),
		review("places/p/reviews/r9", 5, "Genial"),
		review("places/p/reviews/r10", 4, "Bien"),
	}
}

// Contact

func TestContactSendsTwoEmails(t *testing.T) {
	require.NoError(t, i18n.Setup("es"))

	mailer := new(MockMailer)
	mailer.On("IsConfigured").Return(true)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool {
		return msg.To[0] == "inbox@clinic.example" && msg.ReplyTo == "lucia@example.com"
	})).Return(nil).Once()
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool {
		return msg.To[0] == "lucia@example.com"
	})).Return(nil).Once()

	uc := usecase.NewContactUsecase(mailer, validation.New(), contactConfig())
	req := validContact()
	err := uc.SendContactMessage(context.Background(), req)

	require.NoError(t, err)
	mailer.AssertNumberOfCalls(t, "Send", 2)
	mailer.AssertExpectations(t)
	assert.Equal(t, "Lucía Pérez", req.Name, "fields are trimmed")
	assert.Equal(t, "phone", req.PreferredContact)

	first := mailer.Calls[1].Arguments.Get(1).(email.Message) // Calls[0] is IsConfigured
	assert.Contains(t, first.HTMLBody, "Contacto preferido:</span> Teléfono")
}

func TestContactFailures(t *testing.T) {
	require.NoError(t, i18n.Setup("es"))
	smtpErr := errors.New("421 service not available")

	t.Run("business notification failure aborts before confirmation", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(true)
		mailer.On("Send", mock.Anything, mock.Anything).Return(smtpErr).Once()

		uc := usecase.NewContactUsecase(mailer, validation.New(), contactConfig())
		err := uc.SendContactMessage(context.Background(), validContact())

		assert.ErrorIs(t, err, smtpErr)
		mailer.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("confirmation failure is still an error", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(true)
		mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
		mailer.On("Send", mock.Anything, mock.Anything).Return(smtpErr).Once()

		uc := usecase.NewContactUsecase(mailer, validation.New(), contactConfig())
		err := uc.SendContactMessage(context.Background(), validContact())

		assert.ErrorIs(t, err, smtpErr)
		assert.Contains(t, err.Error(), "confirmation")
		mailer.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("mail not configured", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(false)

		uc := usecase.NewContactUsecase(mailer, validation.New(), contactConfig())
		err := uc.SendContactMessage(context.Background(), validContact())

		assert.ErrorIs(t, err, domain.ErrMailNotConfigured)
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestContactValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *domain.ContactRequest)
		message string
	}{
		{"missing name", func(r *domain.ContactRequest) { r.Name = "   " }, "Nombre: Campo obligatorio"},
		{"bad email", func(r *domain.ContactRequest) { r.Email = "lucia" }, "Correo electrónico: Formato de correo no válido"},
		{"bad phone", func(r *domain.ContactRequest) { r.Phone = "call me" }, "Teléfono: Formato de teléfono no válido"},
		{"short message", func(r *domain.ContactRequest) { r.Message = "Hola" }, "Mensaje: Mínimo 10 caracteres"},
		{"unknown channel", func(r *domain.ContactRequest) { r.PreferredContact = "fax" }, "Medio de contacto preferido: Debe ser uno de: correo, teléfono, WhatsApp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := new(MockMailer)
			uc := usecase.NewContactUsecase(mailer, validation.New(), contactConfig())

			req := validContact()
			tt.mutate(req)
			err := uc.SendContactMessage(context.Background(), req)

			appErr, ok := apperror.As(err)
			require.True(t, ok, "validation errors are AppErrors")
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
			mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

// Reviews

func TestReviewsFilterAndPaginate(t *testing.T) {
	client := new(MockPlacesClient)
	client.On("IsConfigured").Return(true)
	client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{Reviews: placeReviews()}, nil)

	uc := usecase.NewReviewUsecase(client, nil, 0, "p")

	wantSizes := []int{3, 3, 1}
	wantMore := []bool{true, true, false}
	var seen []string

	for page := 1; page <= 3; page++ {
		res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{Page: page, Limit: 3, MinRating: 4})
		require.NoError(t, err)

		assert.Len(t, res.Data, wantSizes[page-1], "page %d", page)
		assert.Equal(t, wantMore[page-1], res.Pagination.HasMore, "page %d", page)
		assert.Equal(t, 7, res.Pagination.Total)
		assert.False(t, res.Cached)

		for _, tm := range res.Data {
			assert.GreaterOrEqual(t, tm.Rating, 4)
			assert.NotEmpty(t, tm.Content)
			assert.Equal(t, domain.ReviewSourceGoogle, tm.Source)
			seen = append(seen, tm.ID)
		}
	}

	assert.Equal(t, []string{"r1", "r3", "r5", "r6", "r7", "r9", "r10"}, seen, "upstream order is kept")
	client.AssertNumberOfCalls(t, "FetchPlaceReviews", 3)
}

func TestReviewsPageBeyondEnd(t *testing.T) {
	client := new(MockPlacesClient)
	client.On("IsConfigured").Return(true)
	client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{Reviews: placeReviews()}, nil)

	uc := usecase.NewReviewUsecase(client, nil, 0, "p")
	res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{Page: 9, Limit: 3, MinRating: 1})

	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.False(t, res.Pagination.HasMore)
	assert.Equal(t, 9, res.Pagination.Total)
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name               string
		total, page, limit int
		start, end         int
		hasMore            bool
	}{
		{"first page", 7, 1, 3, 0, 3, true},
		{"last partial page", 7, 3, 3, 6, 7, false},
		{"exact fit", 6, 2, 3, 3, 6, false},
		{"past the end", 7, 4, 3, 7, 7, false},
		{"empty", 0, 1, 10, 0, 0, false},
		{"max page", 7, math.MaxInt, 50, 7, 7, false},
		{"first overflowing page", 7, math.MaxInt/50 + 2, 50, 7, 7, false},
		{"wraps to a small product", 7, 184467440737095517, 50, 7, 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, hasMore := usecase.PageBounds(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.hasMore, hasMore)
		})
	}
}

func TestReviewsHugePage(t *testing.T) {
	client := new(MockPlacesClient)
	client.On("IsConfigured").Return(true)
	client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{Reviews: placeReviews()}, nil)

	uc := usecase.NewReviewUsecase(client, nil, 0, "p")
	res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{Page: math.MaxInt, Limit: 50})

	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.False(t, res.Pagination.HasMore)
	assert.Equal(t, math.MaxInt, res.Pagination.Page)
}

func TestReviewsOnlyTranslatedTextCounts(t *testing.T) {
	untranslated := review("places/p/reviews/orig", 5, "")
	untranslated.Text = nil
	untranslated.OriginalText = &domain.LocalizedText{Text: "Very friendly staff", LanguageCode: "en"}

	client := new(MockPlacesClient)
	client.On("IsConfigured").Return(true)
	client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{
		Reviews: []domain.GooglePlaceReview{untranslated, review("places/p/reviews/ok", 5, "Muy amables")},
	}, nil)

	uc := usecase.NewReviewUsecase(client, nil, 0, "p")
	res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{})

	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "ok", res.Data[0].ID)
}

func TestReviewIDFallback(t *testing.T) {
	now := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	prefix := fmt.Sprintf("google-%d-", now.UnixMilli())

	assert.Equal(t, "abc123", usecase.ReviewID("places/p/reviews/abc123", 0, now))

	a := usecase.ReviewID("bogus", 0, now)
	b := usecase.ReviewID("bogus", 0, now)
	assert.True(t, strings.HasPrefix(a, prefix), a)
	assert.NotEqual(t, a, b, "same millisecond, same index")
	assert.True(t, strings.HasPrefix(usecase.ReviewID("places/p/reviews/", 1, now), prefix+"1-"))
	assert.True(t, strings.HasPrefix(usecase.ReviewID("", 2, now), prefix+"2-"))
}

func TestReviewsMalformedNames(t *testing.T) {
	client := new(MockPlacesClient)
	client.On("IsConfigured").Return(true)
	client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{
		Reviews: []domain.GooglePlaceReview{
			review("bogus", 5, "Sin nombre de recurso"),
			review("places/p/reviews/", 5, "Barra final"),
			review("places/p/reviews/good", 5, "Normal"),
		},
	}, nil)

	uc := usecase.NewReviewUsecase(client, nil, 0, "p")
	before := time.Now().UnixMilli()
	res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{})
	after := time.Now().UnixMilli()

	require.NoError(t, err)
	require.Len(t, res.Data, 3)
	assert.Equal(t, "good", res.Data[2].ID)
	assert.NotEqual(t, res.Data[0].ID, res.Data[1].ID)

	for _, tm := range res.Data[:2] {
		parts := strings.SplitN(tm.ID, "-", 4)
		require.Len(t, parts, 4, tm.ID)
		assert.Equal(t, "google", parts[0])
		ms, err := strconv.ParseInt(parts[1], 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ms, before)
		assert.LessOrEqual(t, ms, after)
	}
}

func TestReviewsNotConfigured(t *testing.T) {
	client := new(MockPlacesClient)
	client.On("IsConfigured").Return(false)

	uc := usecase.NewReviewUsecase(client, nil, 0, "p")
	_, err := uc.GetReviews(context.Background(), domain.ReviewQuery{})

	assert.ErrorIs(t, err, domain.ErrPlacesNotConfigured)
	client.AssertNotCalled(t, "FetchPlaceReviews", mock.Anything)
}

func TestReviewsUpstreamErrorPropagates(t *testing.T) {
	upstream := errors.New("upstream 429")
	client := new(MockPlacesClient)
	client.On("IsConfigured").Return(true)
	client.On("FetchPlaceReviews", mock.Anything).Return(nil, upstream)

	uc := usecase.NewReviewUsecase(client, nil, 0, "p")
	_, err := uc.GetReviews(context.Background(), domain.ReviewQuery{})

	assert.ErrorIs(t, err, upstream)
}

func TestReviewsCache(t *testing.T) {
	reviews := placeReviews()

	t.Run("hit skips upstream", func(t *testing.T) {
		client := new(MockPlacesClient)
		client.On("IsConfigured").Return(true)
		cache := new(MockReviewCache)
		cache.On("Get", mock.Anything, "p").Return(reviews, true, nil)

		uc := usecase.NewReviewUsecase(client, cache, time.Hour, "p")
		res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{})

		require.NoError(t, err)
		assert.True(t, res.Cached)
		client.AssertNotCalled(t, "FetchPlaceReviews", mock.Anything)
	})

	t.Run("forceRefresh bypasses and refills", func(t *testing.T) {
		client := new(MockPlacesClient)
		client.On("IsConfigured").Return(true)
		client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{Reviews: reviews}, nil)
		cache := new(MockReviewCache)
		cache.On("Set", mock.Anything, "p", reviews, time.Hour).Return(nil)

		uc := usecase.NewReviewUsecase(client, cache, time.Hour, "p")
		res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{ForceRefresh: true})

		require.NoError(t, err)
		assert.False(t, res.Cached)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors fall back to upstream", func(t *testing.T) {
		client := new(MockPlacesClient)
		client.On("IsConfigured").Return(true)
		client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{Reviews: reviews}, nil)
		cache := new(MockReviewCache)
		cache.On("Get", mock.Anything, "p").Return(nil, false, errors.New("redis down"))
		cache.On("Set", mock.Anything, "p", reviews, time.Hour).Return(errors.New("redis down"))

		uc := usecase.NewReviewUsecase(client, cache, time.Hour, "p")
		res, err := uc.GetReviews(context.Background(), domain.ReviewQuery{})

		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Equal(t, 9, res.Pagination.Total)
	})

	t.Run("zero ttl never touches the cache", func(t *testing.T) {
		client := new(MockPlacesClient)
		client.On("IsConfigured").Return(true)
		client.On("FetchPlaceReviews", mock.Anything).Return(&domain.PlaceDetails{Reviews: reviews}, nil)
		cache := new(MockReviewCache)

		uc := usecase.NewReviewUsecase(client, cache, 0, "p")
		_, err := uc.GetReviews(context.Background(), domain.ReviewQuery{})

		require.NoError(t, err)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// Gallery

func TestGalleryUsecase(t *testing.T) {
	uc := usecase.NewGalleryUsecase(gallery.Default())
	ctx := context.Background()

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	team, err := uc.List(ctx, domain.CategoryTeam)
	require.NoError(t, err)
	for _, p := range team {
		assert.Equal(t, domain.CategoryTeam, p.Category)
	}

	_, err = uc.List(ctx, "selfies")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)

	assert.Equal(t, []string{"instalaciones", "equipos", "equipo-humano", "pacientes"}, uc.Categories(ctx))
}
