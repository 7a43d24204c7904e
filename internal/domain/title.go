package domain

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// titleSeparators are the tokens page titles are split on before cleaning.
// Spacing matters: a bare "-" inside a word is not a separator.
var titleSeparators = []string{" - ", " | ", " • ", " — ", " – ", " : ", " :: "}

// noisePhrases are generic auth/subscribe fragments that pages append to
// titles, plus localized equivalents.
var noisePhrases = []string{
	"login", "log in", "sign in", "signin", "sign up", "subscribe",
	"giriş yap", "üye ol", "abone ol",
}

// IsPlaceholderTitle reports whether a title carries no information
// beyond the URL itself: empty, the URL string, the bare host (with or
// without "www."), or a bare platform name. Placeholder titles stay
// eligible for replacement by future enrichment passes.
func IsPlaceholderTitle(title, rawURL string) bool {
	normalized := strings.ToLower(strings.TrimSpace(title))
	if normalized == "" {
		return true
	}

	if normalized == strings.ToLower(strings.TrimSpace(rawURL)) {
		return true
	}

	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
		host := strings.ToLower(u.Hostname())
		bare := strings.TrimPrefix(host, "www.")
		if host != "" && (normalized == host || normalized == bare) {
			return true
		}
	}

	switch normalized {
	case "youtube", "youtube.com", "youtu.be", "vimeo", "vimeo.com":
		return true
	}

	return false
}

// CleanTitle strips platform noise from a fetched page title.
//
// Pages commonly return titles like "Video Name - YouTube" or
// "Sign in | Example.com". The raw title is split on the separator
// tokens, segments that amount to noise (auth phrases, the site's own
// host or brand label) are dropped, and the most content-bearing
// remaining segment wins. The original title is kept when cleaning
// would produce something shorter than 3 characters.
func CleanTitle(raw, host string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	segments := splitTitle(trimmed)
	noise := noiseTokens(host)

	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if !isNoiseSegment(seg, noise) {
			kept = append(kept, seg)
		}
	}
	// Filtering must never empty the candidate set.
	if len(kept) == 0 {
		kept = segments
	}

	best := kept[0]
	bestScore := segmentScore(best)
	for _, seg := range kept[1:] {
		if s := segmentScore(seg); s > bestScore {
			best, bestScore = seg, s
		}
	}

	best = strings.TrimSpace(best)
	if len([]rune(best)) < 3 {
		return trimmed
	}
	return best
}

// splitTitle splits on every separator token, keeping non-empty segments.
func splitTitle(title string) []string {
	segments := []string{title}
	for _, sep := range titleSeparators {
		next := make([]string, 0, len(segments))
		for _, seg := range segments {
			for _, part := range strings.Split(seg, sep) {
				part = strings.TrimSpace(part)
				if part != "" {
					next = append(next, part)
				}
			}
		}
		segments = next
	}
	if len(segments) == 0 {
		return []string{strings.TrimSpace(title)}
	}
	return segments
}

// noiseTokens builds the drop-list for a given host: the generic phrases
// plus the bare host and its second-level label ("youtube" for youtube.com).
func noiseTokens(host string) []string {
	tokens := make([]string, 0, len(noisePhrases)+3)
	tokens = append(tokens, noisePhrases...)

	host = strings.ToLower(strings.TrimSpace(host))
	bare := strings.TrimPrefix(host, "www.")
	if bare != "" {
		tokens = append(tokens, bare)
		labels := strings.Split(bare, ".")
		if len(labels) >= 2 {
			tokens = append(tokens, labels[len(labels)-2])
		}
	}
	return tokens
}

// isNoiseSegment reports whether a segment is (nearly) nothing but a
// noise token. Segments that merely contain a brand substring while
// being clearly longer survive.
func isNoiseSegment(segment string, noise []string) bool {
	folded := foldTitle(segment)
	stripped := strings.ReplaceAll(folded, " ", "")

	for _, token := range noise {
		ft := foldTitle(token)
		if ft == "" {
			continue
		}
		if folded == ft {
			return true
		}
		if stripped == strings.ReplaceAll(ft, " ", "") {
			return true
		}
		if strings.Contains(folded, ft) && len([]rune(folded)) <= len([]rune(ft))+4 {
			return true
		}
	}
	return false
}

// segmentScore favors letter-heavy segments: letters*3 + digits + length.
func segmentScore(segment string) int {
	letters, digits := 0, 0
	for _, r := range segment {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	return letters*3 + digits + len([]rune(segment))
}

// foldTitle lowercases and strips diacritics for comparison.
func foldTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
