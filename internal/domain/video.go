package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// IsVideoHost reports whether a URL points at a YouTube surface.
// Duration and thumbnail extraction only apply to these hosts.
func IsVideoHost(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	return strings.Contains(host, "youtube.com") ||
		strings.Contains(host, "youtu.be") ||
		strings.Contains(host, "music.youtube.com")
}

// ExtractVideoID pulls the video id out of a YouTube URL.
//
// youtu.be links carry the id as the first path segment. youtube.com
// links carry it in the "v" query parameter, or after /shorts/ or
// /embed/. Returns "" when no rule matches.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	segments := pathSegments(u.Path)

	if strings.Contains(host, "youtu.be") {
		if len(segments) > 0 {
			return segments[0]
		}
		return ""
	}

	if strings.Contains(host, "youtube.com") {
		if id := u.Query().Get("v"); id != "" {
			return id
		}
		for i, seg := range segments {
			if (seg == "shorts" || seg == "embed") && i+1 < len(segments) {
				return segments[i+1]
			}
		}
	}

	return ""
}

// ThumbnailURL builds the deterministic thumbnail location for a video
// link. No network call; returns "" for non-video URLs.
func ThumbnailURL(rawURL string) string {
	if !IsVideoHost(rawURL) {
		return ""
	}
	id := ExtractVideoID(rawURL)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id)
}

// FormatDuration renders seconds as "H:MM:SS" when at least an hour,
// "M:SS" otherwise.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// ParseLengthSeconds scans a watch-page body for the player's
// lengthSeconds field and parses the digit run following it.
// Returns 0, false when the marker is absent or unparsable.
func ParseLengthSeconds(body string) (int, bool) {
	const marker = `"lengthSeconds":"`

	idx := strings.Index(body, marker)
	if idx < 0 {
		return 0, false
	}

	rest := body[idx+len(marker):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	seconds := 0
	for _, c := range rest[:end] {
		seconds = seconds*10 + int(c-'0')
	}
	return seconds, true
}

func pathSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
