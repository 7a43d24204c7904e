package metadata

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
)

// FetchReadingTime estimates reading time in minutes for a page.
//
// Video hosts and non-http(s) schemes are skipped entirely. The page is
// fetched, script/style blocks removed including their content, the
// remaining markup stripped and entities decoded, and the word count
// converted at 200 words per minute. Returns 0 when no estimate could
// be made.
func (s *Service) FetchReadingTime(ctx context.Context, rawURL string) int {
	if domain.IsVideoHost(rawURL) {
		return 0
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return 0
	}

	body, contentType, err := s.get(ctx, s.pageClient, rawURL, "text/html")
	if err != nil {
		s.logger.Debug("reading time fetch failed",
			logger.String("url", rawURL),
			logger.Error(err))
		return 0
	}

	if !looksLikeHTML(contentType, body) {
		return 0
	}

	text := extractText(body)
	return domain.EstimateReadingMinutes(domain.CountWords(text))
}

// looksLikeHTML checks the Content-Type header, falling back to a scan
// of the body for an opening html tag.
func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	return bytes.Contains(bytes.ToLower(body), []byte("<html"))
}

// extractText walks the parsed document collecting text nodes, skipping
// script and style subtrees. The parser decodes entities along the way.
func extractText(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sb.String()
}
