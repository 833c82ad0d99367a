package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, FromStatus(429, "slow down", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, FromStatus(200, "odd", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, FromStatus(0, "none", nil).Code)
}

func TestAsUnwrapsChain(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	wrapped := fmt.Errorf("reviews: %w", Internal(cause).WithFallback())

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.True(t, appErr.FallbackToManual)
	assert.ErrorIs(t, wrapped, cause)

	_, ok = As(cause)
	assert.False(t, ok)
}
