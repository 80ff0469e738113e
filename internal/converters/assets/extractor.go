// Package assets extracts embedded and remote binary payloads out of
// converted content and rewrites references to local asset paths.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/logger"
)

// mimeExtensions maps asset MIME types to file extensions.
// Unknown types fall back to a generic binary extension.
var mimeExtensions = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/gif":       ".gif",
	"image/svg+xml":   ".svg",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// ExtensionForMIME returns the file extension for a MIME type,
// ".bin" when the type is unknown.
func ExtensionForMIME(mimeType string) string {
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	return ".bin"
}

// Google Docs markdown export uses reference-style image definitions:
//
//	![][image1]
//	[image1]: <data:image/png;base64,...>
var (
	refDefPattern = regexp.MustCompile(`(?m)\[([^\]\n]+)\]:\s*<data:([^;>]+);base64,([^>]+)>`)
	inlinePattern = regexp.MustCompile(`!\[([^\]]*)\]\(data:([^;)]+);base64,([^)]+)\)`)
)

// ExtractFromMarkdown decodes embedded data-URI assets out of markdown
// content and rewrites the references to relative local paths under
// assets/. Reference-style definitions keep a stable name derived from
// the in-document reference id, so repeated exports of unmodified
// content produce identical asset names. Decode failures leave the
// reference untouched and never abort extraction.
func ExtractFromMarkdown(content string) (string, []domain.Asset) {
	var extracted []domain.Asset

	// Pass 1: reference-style definitions.
	content = refDefPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := refDefPattern.FindStringSubmatch(match)
		refName, mimeType, payload := groups[1], groups[2], groups[3]

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			logger.Warn("Failed to decode reference asset %s: %v", refName, err)
			return match
		}

		name := refName + ExtensionForMIME(mimeType)
		extracted = append(extracted, domain.Asset{
			Name:     name,
			Content:  data,
			Anchor:   refName,
			MIMEType: mimeType,
		})
		logger.Debug("Extracted reference asset %s (%d bytes)", name, len(data))
		return fmt.Sprintf("[%s]: assets/%s", refName, name)
	})

	// Pass 2: convert reference-style usages of the extracted assets to
	// inline references and drop the now-redundant definition lines.
	for _, a := range extracted {
		use := fmt.Sprintf("![][%s]", a.Anchor)
		inline := fmt.Sprintf("![%s](assets/%s)", a.Anchor, a.Name)
		content = strings.ReplaceAll(content, use, inline)

		def := regexp.MustCompile(`(?m)^\[` + regexp.QuoteMeta(a.Anchor) + `\]:\s*assets/` + regexp.QuoteMeta(a.Name) + `$`)
		content = def.ReplaceAllString(content, "")
	}

	// Pass 3: inline data URIs (fallback for older exports).
	counter := len(extracted)
	content = inlinePattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := inlinePattern.FindStringSubmatch(match)
		altText, mimeType, payload := groups[1], groups[2], groups[3]

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			logger.Warn("Failed to decode inline asset: %v", err)
			return match
		}

		counter++
		anchor := fmt.Sprintf("asset_%03d", counter)
		name := anchor + ExtensionForMIME(mimeType)
		extracted = append(extracted, domain.Asset{
			Name:     name,
			Content:  data,
			Anchor:   anchor,
			MIMEType: mimeType,
		})
		logger.Debug("Extracted inline asset %s (%d bytes)", name, len(data))
		return fmt.Sprintf("![%s](assets/%s)", altText, name)
	})

	logger.Info("Extracted %d assets from markdown", len(extracted))
	return content, extracted
}

// URLFetcher retrieves a remote asset payload.
type URLFetcher interface {
	// Fetch downloads url and returns the body and its MIME type.
	Fetch(ctx context.Context, url string) (data []byte, mimeType string, err error)
}

// FetchRemote downloads one remote asset and names it from the given
// anchor prefix and counter. A fetch failure yields an empty-content
// placeholder asset rather than an error, so one bad URL never aborts
// extraction of the rest.
func FetchRemote(ctx context.Context, fetch URLFetcher, url, prefix string, counter int) domain.Asset {
	anchor := fmt.Sprintf("%s_%03d", prefix, counter)

	data, mimeType, err := fetch.Fetch(ctx, url)
	if err != nil {
		logger.Warn("Failed to download remote asset %s: %v", url, err)
		return domain.Asset{
			Name:     anchor + ".png",
			Anchor:   anchor,
			MIMEType: "image/png",
		}
	}

	if mimeType == "" {
		mimeType = "image/png"
	}
	name := anchor + ExtensionForMIME(mimeType)
	logger.Debug("Downloaded remote asset %s (%d bytes)", name, len(data))
	return domain.Asset{
		Name:     name,
		Content:  data,
		Anchor:   anchor,
		MIMEType: mimeType,
	}
}
