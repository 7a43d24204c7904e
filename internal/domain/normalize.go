package domain

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL string for comparison.
//
// Parsing never fails the caller: input that does not look like a URL is
// returned trimmed and lowercased. For parsable URLs the fragment is
// stripped, the absolute string reconstructed and lowercased. The result
// is deterministic and idempotent.
//
// Deliberately no trailing-slash or query-reordering canonicalization:
// exact scheme/host/path/query equality after fragment-strip and
// lowercasing is the duplicate contract.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.ToLower(trimmed)
	}

	u.Fragment = ""
	return strings.ToLower(u.String())
}

// FindDuplicate returns the first existing link whose normalized URL
// equals the candidate's, or nil. Linear scan; "first" follows the
// caller's ordering (most-recent-first from the store).
func FindDuplicate(candidateURL string, existing []*Link) *Link {
	normalized := NormalizeURL(candidateURL)
	if normalized == "" {
		return nil
	}

	for _, link := range existing {
		if NormalizeURL(link.URL) == normalized {
			return link
		}
	}
	return nil
}
