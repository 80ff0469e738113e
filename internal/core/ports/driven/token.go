package driven

import "context"

// TokenProvider supplies a bearer access token for source API calls.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}
