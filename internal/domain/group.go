package domain

import (
	"net/url"
	"strings"
)

// CategoryGroup is the UI-facing partition used for grouped browsing.
//
// It is computed on demand from the URL (and, for shopping, the stored
// category) and is deliberately independent from Category: the two
// classifications evolve separately and serve different purposes.
type CategoryGroup string

const (
	GroupYouTube     CategoryGroup = "youtube"
	GroupDevelopment CategoryGroup = "development"
	GroupAITools     CategoryGroup = "aiTools"
	GroupShopping    CategoryGroup = "shopping"
	GroupOther       CategoryGroup = "other"
)

// GroupDisplayOrder lists the groups in display order.
func GroupDisplayOrder() []CategoryGroup {
	return []CategoryGroup{GroupYouTube, GroupDevelopment, GroupAITools, GroupShopping, GroupOther}
}

// GroupClassifier partitions links into category groups using broader
// host allow-lists than the stored-category classifier.
type GroupClassifier struct {
	devHosts      []string
	aiHosts       []string
	shoppingHosts []string
}

// DefaultGroupClassifier returns a group classifier with the built-in host lists.
func DefaultGroupClassifier() *GroupClassifier {
	return &GroupClassifier{
		devHosts: []string{
			"developer.apple.com", "github.com", "gitlab.com", "bitbucket.org",
			"stackoverflow.com", "stackexchange.com", "docs.swift.org",
			"docs.python.org", "docs.rs", "npmjs.com", "developer.android.com",
			"dev.to", "hashnode.com", "medium.com",
		},
		aiHosts: []string{
			"openai.com", "chat.openai.com", "anthropic.com", "claude.ai",
			"huggingface.co", "replicate.com", "cohere.com", "perplexity.ai",
			"midjourney.com", "runwayml.com", "stability.ai", "groq.com",
			"mistral.ai",
		},
		shoppingHosts: []string{
			"amazon", "ebay", "etsy", "shopify", "aliexpress", "temu",
			"walmart", "bestbuy", "target", "ikea", "trendyol",
			"hepsiburada", "n11",
		},
	}
}

// ExtendGroup appends extra host substrings to a group's allow-list.
func (g *GroupClassifier) ExtendGroup(group CategoryGroup, hosts []string) {
	switch group {
	case GroupDevelopment:
		g.devHosts = append(g.devHosts, hosts...)
	case GroupAITools:
		g.aiHosts = append(g.aiHosts, hosts...)
	case GroupShopping:
		g.shoppingHosts = append(g.shoppingHosts, hosts...)
	}
}

// Group returns the exclusive group for a link. "Other" means the link
// matches none of the primary groups.
func (g *GroupClassifier) Group(link *Link) CategoryGroup {
	switch {
	case g.isYouTube(link.URL):
		return GroupYouTube
	case g.isDevelopment(link.URL):
		return GroupDevelopment
	case g.isAITools(link.URL):
		return GroupAITools
	case g.isShopping(link):
		return GroupShopping
	default:
		return GroupOther
	}
}

// Matches reports whether a link belongs to the given group.
func (g *GroupClassifier) Matches(group CategoryGroup, link *Link) bool {
	return g.Group(link) == group
}

func (g *GroupClassifier) isYouTube(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	return strings.Contains(host, "youtube.com") ||
		strings.Contains(host, "youtu.be") ||
		strings.Contains(host, "music.youtube.com")
}

func (g *GroupClassifier) isDevelopment(rawURL string) bool {
	return hostContainsAny(rawURL, g.devHosts)
}

func (g *GroupClassifier) isAITools(rawURL string) bool {
	return hostContainsAny(rawURL, g.aiHosts)
}

// isShopping OR's the stored category with the broader host list.
func (g *GroupClassifier) isShopping(link *Link) bool {
	if link.EffectiveCategory() == CategoryShopping {
		return true
	}
	return hostContainsAny(link.URL, g.shoppingHosts)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func hostContainsAny(rawURL string, needles []string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	return containsAny(host, needles)
}
