package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hearing-care-backend/pkg/apperror"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/security"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Setup("es"); err != nil {
		panic(err)
	}
	security.SetDefault(security.NewSecurityLogger(zap.NewNop(), "test", "test"))
	os.Exit(m.Run())
}

func newEngine(handler gin.HandlerFunc, mws ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Locale(), ErrorHandler())
	r.GET("/t", append(mws, handler)...)
	return r
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorHandler(t *testing.T) {
	t.Run("unknown errors are hidden", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) { _ = c.Error(errors.New("pq: connection refused")) })

		w, body := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Ha ocurrido un error inesperado. Por favor, inténtalo más tarde.", body["error"])
		assert.NotContains(t, w.Body.String(), "pq:")
	})

	t.Run("app errors keep status and fallback flag", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			_ = c.Error(apperror.FromStatus(http.StatusTooManyRequests, "quota", nil).WithFallback())
		})

		w, body := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "quota", body["error"])
		assert.Equal(t, true, body["fallbackToManual"])
		assert.NotEmpty(t, body["request_id"])
	})

	t.Run("written responses are left alone", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
			_ = c.Error(errors.New("late"))
		})

		w, body := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
	})
}

func TestRequestID(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.String(http.StatusOK, c.GetString("RequestID")) })

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(RequestIDHeader, "6f1c2a52-2b1e-4f57-9d55-0c3c9a1e7b11")
	w, _ := serve(r, req)
	assert.Equal(t, "6f1c2a52-2b1e-4f57-9d55-0c3c9a1e7b11", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w, _ = serve(r, req)
	assert.NotEqual(t, "<script>", w.Body.String())
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestRateLimitInMemory(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) },
		RateLimitMiddleware(RateLimitConfig{Limit: 2, Window: time.Minute, KeyPrefix: "rl:test:"}))

	for i, want := range []string{"1", "0"} {
		w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))
		require.Equal(t, http.StatusNoContent, w.Code, "request %d", i)
		assert.Equal(t, want, w.Header().Get("X-RateLimit-Remaining"))
	}

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Demasiadas solicitudes. Por favor, inténtalo más tarde.", body["error"])

	other := httptest.NewRequest(http.MethodGet, "/t", nil)
	other.RemoteAddr = "203.0.113.9:5555"
	w, _ = serve(r, other)
	assert.Equal(t, http.StatusNoContent, w.Code, "limits are per client IP")
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) },
		RateLimitMiddleware(RateLimitConfig{Limit: 0}))

	for i := 0; i < 5; i++ {
		w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestMemoryCounterWindow(t *testing.T) {
	m := newMemoryCounter()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	n, reset := m.incr("k", time.Minute, start)
	assert.Equal(t, 1, n)
	assert.Equal(t, start.Add(time.Minute), reset)

	n, _ = m.incr("k", time.Minute, start.Add(30*time.Second))
	assert.Equal(t, 2, n)

	n, _ = m.incr("k", time.Minute, start.Add(61*time.Second))
	assert.Equal(t, 1, n, "counter restarts after the window")

	m.incr("old", time.Minute, start)
	m.incr("k", time.Minute, start.Add(5*time.Minute))
	assert.NotContains(t, m.entries, "old", "expired keys are swept")
}

func TestRateLimitRedisFailure(t *testing.T) {
	// nothing listens on port 1
	broken := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = broken.Close() })

	handler := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	closed := newEngine(handler, RateLimitMiddleware(RateLimitConfig{Limit: 5, Window: time.Minute, FailClosed: true, Redis: broken}))
	w, _ := serve(closed, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	open := newEngine(handler, RateLimitMiddleware(RateLimitConfig{Limit: 5, Window: time.Minute, Redis: broken}))
	w, _ = serve(open, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusNoContent, w.Code, "fail-open falls back to the in-memory counter")
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}
