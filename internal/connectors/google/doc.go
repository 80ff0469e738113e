// Package google provides shared infrastructure for Google API connectors.
//
// This package contains common utilities used by the drive, sheets, and
// slides fetcher adapters including:
//   - TokenSource adapter to bridge a TokenProvider to oauth2.TokenSource
//   - Service factories for creating Google API clients
//   - Error mapping for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
// Each fetcher adapter uses this package to create authenticated API
// clients:
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// The export pipeline uses these scopes:
//   - https://www.googleapis.com/auth/drive.readonly (restricted)
//   - https://www.googleapis.com/auth/spreadsheets.readonly (sensitive)
//   - https://www.googleapis.com/auth/presentations.readonly (sensitive)
//
// For user-created internal apps, restricted scopes don't require verification.
package google
