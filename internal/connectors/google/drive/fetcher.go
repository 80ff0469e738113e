// Package drive adapts the Google Drive v3 API to the metadata,
// content and comment fetcher ports.
package drive

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/driveport/internal/connectors/google"
	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/core/ports/driven"
)

// MaxDownloadSize caps exported and downloaded payloads (50MB).
// Markdown exports inline images as base64, so documents run large.
const MaxDownloadSize = 50 * 1024 * 1024

const (
	fileFields    = "id, name, mimeType, createdTime, modifiedTime, exportLinks"
	listFields    = "nextPageToken, files(id, name, mimeType, createdTime, modifiedTime, exportLinks)"
	commentFields = "nextPageToken, comments(id, author/displayName, content, quotedFileContent/value, anchor, resolved, createdTime, modifiedTime, replies(id, author/displayName, content, createdTime, modifiedTime))"
)

// Fetcher wraps one Drive service handle. It implements the metadata
// and comment fetcher ports plus the Drive half of the content port.
// Not safe for sharing across workers; each worker gets its own.
type Fetcher struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

var (
	_ driven.MetadataFetcher = (*Fetcher)(nil)
	_ driven.CommentFetcher  = (*Fetcher)(nil)
)

// NewFetcher creates a fetcher over an authenticated Drive service.
func NewFetcher(svc *drive.Service, limiter *google.RateLimiter) *Fetcher {
	return &Fetcher{svc: svc, limiter: limiter}
}

// GetItem fetches metadata for a single item.
func (f *Fetcher) GetItem(ctx context.Context, itemID string) (*domain.DriveItem, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	file, err := f.svc.Files.Get(itemID).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		f.noteRateLimit(err)
		return nil, google.WrapError(err)
	}

	item := fileToItem(file)
	return &item, nil
}

// ListChildren lists the direct, untrashed children of a folder.
func (f *Fetcher) ListChildren(ctx context.Context, folderID string) ([]domain.DriveItem, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)

	var items []domain.DriveItem
	pageToken := ""
	for {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := f.svc.Files.List().
			Q(query).
			Fields(listFields).
			PageSize(100).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Context(ctx).Do()
		if err != nil {
			f.noteRateLimit(err)
			return nil, google.WrapError(err)
		}

		for _, file := range resp.Files {
			items = append(items, fileToItem(file))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return items, nil
}

// ExportContent exports a Workspace document to the given output MIME
// type.
func (f *Fetcher) ExportContent(ctx context.Context, itemID, mimeType string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := f.svc.Files.Export(itemID, mimeType).Context(ctx).Download()
	if err != nil {
		f.noteRateLimit(err)
		return nil, google.WrapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading export: %v", domain.ErrTransport, err)
	}
	return data, nil
}

// Download retrieves an opaque file's bytes verbatim.
func (f *Fetcher) Download(ctx context.Context, itemID string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := f.svc.Files.Get(itemID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		f.noteRateLimit(err)
		return nil, google.WrapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading download: %v", domain.ErrTransport, err)
	}
	return data, nil
}

// GetComments retrieves the full comment list in API order, with
// quoted snippets, anchors and nested replies.
func (f *Fetcher) GetComments(ctx context.Context, itemID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	pageToken := ""
	for {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := f.svc.Comments.List(itemID).Fields(commentFields).PageSize(100)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Context(ctx).Do()
		if err != nil {
			f.noteRateLimit(err)
			return nil, google.WrapError(err)
		}

		for _, c := range resp.Comments {
			comments = append(comments, commentToDomain(c))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return comments, nil
}

func (f *Fetcher) noteRateLimit(err error) {
	if google.IsRateLimited(err) {
		f.limiter.RecordRateLimitError(0)
	}
}

func fileToItem(file *drive.File) domain.DriveItem {
	item := domain.DriveItem{
		ID:           file.Id,
		Name:         file.Name,
		Kind:         domain.KindFromMIMEType(file.MimeType),
		MIMEType:     file.MimeType,
		CreatedTime:  google.ParseTime(file.CreatedTime),
		ModifiedTime: google.ParseTime(file.ModifiedTime),
	}
	for mime := range file.ExportLinks {
		item.ExportFormats = append(item.ExportFormats, mime)
	}
	return item
}

func commentToDomain(c *drive.Comment) domain.Comment {
	comment := domain.Comment{
		ID:           c.Id,
		Body:         c.Content,
		Anchor:       c.Anchor,
		Resolved:     c.Resolved,
		CreatedTime:  google.ParseTime(c.CreatedTime),
		ModifiedTime: google.ParseTime(c.ModifiedTime),
	}
	if c.Author != nil {
		comment.Author = c.Author.DisplayName
	}
	if c.QuotedFileContent != nil {
		comment.Snippet = c.QuotedFileContent.Value
	}
	for _, r := range c.Replies {
		reply := domain.Reply{
			ID:           r.Id,
			Body:         r.Content,
			CreatedTime:  google.ParseTime(r.CreatedTime),
			ModifiedTime: google.ParseTime(r.ModifiedTime),
		}
		if r.Author != nil {
			reply.Author = r.Author.DisplayName
		}
		comment.Replies = append(comment.Replies, reply)
	}
	return comment
}
