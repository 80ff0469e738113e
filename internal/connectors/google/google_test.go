package google

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

func TestWrapError_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		code   int
		target error
	}{
		{404, domain.ErrNotFound},
		{401, domain.ErrTransport},
		{403, domain.ErrTransport},
		{429, domain.ErrTransport},
		{500, domain.ErrTransport},
	}

	for _, tt := range tests {
		wrapped := WrapError(&googleapi.Error{Code: tt.code, Message: "boom"})
		assert.ErrorIs(t, wrapped, tt.target, "status %d", tt.code)
	}
}

func TestWrapError_NonAPIError(t *testing.T) {
	wrapped := WrapError(errors.New("connection reset"))
	assert.ErrorIs(t, wrapped, domain.ErrTransport)
	assert.Contains(t, wrapped.Error(), "connection reset")
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&googleapi.Error{Code: 404}))
	assert.True(t, IsNotFound(domain.ErrNotFound))
	assert.False(t, IsNotFound(&googleapi.Error{Code: 403}))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&googleapi.Error{Code: 429}))
	assert.False(t, IsRateLimited(&googleapi.Error{Code: 404}))
	assert.False(t, IsRateLimited(errors.New("other")))
}

func TestParseTime(t *testing.T) {
	parsed := ParseTime("2025-05-01T09:30:00Z")
	assert.Equal(t, time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC), parsed)

	assert.True(t, ParseTime("").IsZero())
	assert.True(t, ParseTime("not-a-time").IsZero())
}

func TestRateLimiter_BackoffBlocksRequests(t *testing.T) {
	limiter := NewRateLimiter(ServiceDrive)
	assert.True(t, limiter.Allow())

	limiter.RecordRateLimitError(30)
	assert.False(t, limiter.Allow())
}

func TestRateLimiter_CustomConfig(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 2})

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}
