package metadata

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/linkshelf/linkshelf/internal/logger"
)

type oembedResponse struct {
	Title string `json:"title"`
}

// fetchOEmbedTitle queries the platform's oEmbed endpoint for a title.
//
// Only YouTube and Vimeo have dedicated endpoints; the generic noembed
// proxy is appended as a last candidate. Any failure — network error,
// non-2xx status, malformed JSON — falls through silently to the next
// candidate. Returns "" when every candidate fails.
func (s *Service) fetchOEmbedTitle(ctx context.Context, rawURL string) string {
	host := hostname(rawURL)
	if host == "" {
		return ""
	}

	var endpoints []string
	switch {
	case strings.Contains(host, "youtube") || strings.Contains(host, "youtu.be"):
		endpoints = append(endpoints, oembedRequestURL(s.cfg.YouTubeOEmbedURL, rawURL, true))
	case strings.Contains(host, "vimeo"):
		endpoints = append(endpoints, oembedRequestURL(s.cfg.VimeoOEmbedURL, rawURL, false))
	default:
		return ""
	}
	endpoints = append(endpoints, oembedRequestURL(s.cfg.NoEmbedURL, rawURL, false))

	for _, endpoint := range endpoints {
		if title := s.fetchOEmbedFrom(ctx, endpoint); title != "" {
			return title
		}
	}
	return ""
}

func (s *Service) fetchOEmbedFrom(ctx context.Context, endpoint string) string {
	body, _, err := s.get(ctx, s.videoClient, endpoint, "application/json")
	if err != nil {
		s.logger.Debug("oembed fetch failed",
			logger.String("endpoint", endpoint),
			logger.Error(err))
		return ""
	}

	var decoded oembedResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		s.logger.Debug("oembed decode failed",
			logger.String("endpoint", endpoint),
			logger.Error(err))
		return ""
	}
	return strings.TrimSpace(decoded.Title)
}

// oembedRequestURL builds "<endpoint>?url=<target>[&format=json]".
func oembedRequestURL(endpoint, target string, jsonFormat bool) string {
	values := url.Values{}
	values.Set("url", target)
	if jsonFormat {
		values.Set("format", "json")
	}
	return endpoint + "?" + values.Encode()
}
