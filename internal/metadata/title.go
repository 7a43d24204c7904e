package metadata

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
)

// Metadata is the result of a speculative metadata fetch for a URL.
type Metadata struct {
	Title    string
	Category domain.Category
}

// FetchMetadata resolves a display title and suggested category for a URL.
//
// The title goes through the fallback chain: page og:title / <title>
// (cleaned), then oEmbed for video platforms, then the raw URL string
// itself. It never returns an empty title.
func (s *Service) FetchMetadata(ctx context.Context, rawURL string) Metadata {
	title := s.ResolveTitle(ctx, rawURL)
	return Metadata{
		Title:    title,
		Category: s.classifier.Suggest(rawURL),
	}
}

// ResolveTitle runs the multi-source title fallback chain. Each later
// source is only consulted while the current candidate is a placeholder.
func (s *Service) ResolveTitle(ctx context.Context, rawURL string) string {
	title := ""

	if fetched, err := s.FetchPageTitle(ctx, rawURL); err == nil {
		title = fetched
	} else {
		s.logger.Debug("page title fetch failed",
			logger.String("url", rawURL),
			logger.Error(err))
	}

	if domain.IsPlaceholderTitle(title, rawURL) {
		if oembed := s.fetchOEmbedTitle(ctx, rawURL); oembed != "" {
			title = oembed
		}
	}

	// Terminal fallback: the URL itself. Placeholder detection stays
	// true for it, so later passes keep trying.
	if domain.IsPlaceholderTitle(title, rawURL) {
		title = rawURL
	}

	return title
}

// FetchPageTitle fetches the page and extracts its title, preferring
// og:title over <title>. The result is cleaned of platform noise.
func (s *Service) FetchPageTitle(ctx context.Context, rawURL string) (string, error) {
	body, _, err := s.get(ctx, s.pageClient, rawURL, "text/html")
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	title, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		return "", nil
	}

	return domain.CleanTitle(title, hostname(rawURL)), nil
}

func hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
