package metadata

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
	"github.com/linkshelf/linkshelf/internal/utils"
)

const (
	// DefaultUserAgent is a browser-like UA; several platforms serve
	// stripped-down pages to unknown agents.
	DefaultUserAgent = "Mozilla/5.0"

	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes = 2 << 20 // 2MB
)

// Config contains metadata fetcher configuration.
type Config struct {
	UserAgent    string
	PageTimeout  time.Duration // generic page fetches (title, reading time)
	VideoTimeout time.Duration // YouTube watch page and oEmbed fetches
	MaxBodyBytes int64

	// Endpoint overrides, primarily for tests.
	YouTubeOEmbedURL string
	VimeoOEmbedURL   string
	NoEmbedURL       string
	WatchBaseURL     string
}

// DefaultConfig returns the production fetcher configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent:        DefaultUserAgent,
		PageTimeout:      10 * time.Second,
		VideoTimeout:     8 * time.Second,
		MaxBodyBytes:     DefaultMaxBodyBytes,
		YouTubeOEmbedURL: "https://www.youtube.com/oembed",
		VimeoOEmbedURL:   "https://vimeo.com/api/oembed.json",
		NoEmbedURL:       "https://noembed.com/embed",
		WatchBaseURL:     "https://www.youtube.com/watch",
	}
}

// Service performs best-effort metadata fetches for links.
//
// It holds no state beyond configuration and HTTP clients; all methods
// are safe for concurrent use. Every fetch degrades to an absent value
// on failure — a timeout, a non-2xx status or a malformed body is never
// surfaced as an error to the enrichment pass.
type Service struct {
	cfg         Config
	classifier  *domain.Classifier
	pageClient  *http.Client
	videoClient *http.Client
	logger      logger.Logger
}

// New creates a metadata service.
func New(cfg Config, classifier *domain.Classifier, log logger.Logger) *Service {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if classifier == nil {
		classifier = domain.DefaultClassifier()
	}

	return &Service{
		cfg:         cfg,
		classifier:  classifier,
		pageClient:  &http.Client{Timeout: cfg.PageTimeout},
		videoClient: &http.Client{Timeout: cfg.VideoTimeout},
		logger:      log,
	}
}

// get issues a GET with the configured user agent and reads at most
// MaxBodyBytes of the body. Non-2xx responses count as failures.
func (s *Service) get(ctx context.Context, client *http.Client, rawURL, accept string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
