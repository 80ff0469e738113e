package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/driveport/internal/core/domain"
)

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, domain.ErrNotFound) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// WrapError maps a Google API error onto the domain error taxonomy so
// callers can use errors.Is without knowing about googleapi.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	switch gerr.Code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, gerr.Message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: unauthorised (invalid credentials)", domain.ErrTransport)
	case http.StatusForbidden:
		return fmt.Errorf("%w: forbidden (insufficient permissions)", domain.ErrTransport)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limit exceeded", domain.ErrTransport)
	default:
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
}
