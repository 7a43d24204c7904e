package metadata

import (
	"context"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
)

// FetchDurationText fetches a video's formatted duration ("M:SS" or
// "H:MM:SS") by scanning its watch page for the player's lengthSeconds
// field. Returns "" for non-video links and on any fetch failure.
func (s *Service) FetchDurationText(ctx context.Context, rawURL string) string {
	if !domain.IsVideoHost(rawURL) {
		return ""
	}
	videoID := domain.ExtractVideoID(rawURL)
	if videoID == "" {
		return ""
	}

	watchURL := s.cfg.WatchBaseURL + "?v=" + videoID
	body, _, err := s.get(ctx, s.videoClient, watchURL, "")
	if err != nil {
		s.logger.Debug("watch page fetch failed",
			logger.String("video_id", videoID),
			logger.Error(err))
		return ""
	}

	seconds, ok := domain.ParseLengthSeconds(string(body))
	if !ok {
		return ""
	}
	return domain.FormatDuration(seconds)
}
