package domain

import (
	"net/url"
	"strings"
)

// DeepLinkScheme is the URL scheme used to open a link's detail view.
const DeepLinkScheme = "linkshelf"

// ParseDeepLink resolves "linkshelf://link/<id>" to a link id.
// Anything else returns ok=false.
func ParseDeepLink(raw string) (id string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	if u.Scheme != DeepLinkScheme || u.Host != "link" {
		return "", false
	}

	segments := pathSegments(u.Path)
	if len(segments) != 1 || segments[0] == "" {
		return "", false
	}
	return segments[0], true
}

// DeepLinkFor builds the deep link for a link id.
func DeepLinkFor(id string) string {
	return DeepLinkScheme + "://link/" + id
}
