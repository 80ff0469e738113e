package google

import (
	"time"

	"github.com/custodia-labs/driveport/internal/logger"
)

// ParseTime parses an RFC 3339 timestamp as returned by the Google
// APIs. Malformed values log a warning and yield the zero time, which
// freshness checks treat as "always stale".
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		logger.Warn("Failed to parse timestamp %q: %v", value, err)
		return time.Time{}
	}
	return t
}
