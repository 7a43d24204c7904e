package domain

import (
	"net/url"
	"strings"
)

// Category is the stored, single-valued classification of a link.
type Category string

const (
	CategoryVideo    Category = "video"
	CategoryArticle  Category = "article"
	CategoryShopping Category = "shopping"
	CategorySocial   Category = "social"
	CategoryOther    Category = "other"
)

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{CategoryVideo, CategoryArticle, CategoryShopping, CategorySocial, CategoryOther}
}

// ParseCategory maps a string to a known category.
// Unknown input returns CategoryOther.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryVideo:
		return CategoryVideo
	case CategoryArticle:
		return CategoryArticle
	case CategoryShopping:
		return CategoryShopping
	case CategorySocial:
		return CategorySocial
	default:
		return CategoryOther
	}
}

// Classifier assigns a category to a URL by checking ordered rule groups.
//
// Groups are checked in fixed priority order: video > article > shopping >
// social > other. A URL matching several groups gets the first one; video
// hosts often also match social patterns, so the order matters and must
// not change.
type Classifier struct {
	videoHosts    []string
	videoPaths    []string
	videoQueries  []string
	articleHosts  []string
	articlePaths  []string
	shoppingHosts []string
	shoppingPaths []string
	socialHosts   []string
	socialPaths   []string
}

// DefaultClassifier returns a classifier with the built-in rule lists.
func DefaultClassifier() *Classifier {
	return &Classifier{
		videoHosts: []string{
			"youtube", "youtu.be", "vimeo", "netflix", "tiktok",
			"twitch", "dailymotion", "loom",
		},
		videoPaths:   []string{"/watch", "/video", "/videos", "/playlist"},
		videoQueries: []string{"list=", "v="},
		articleHosts: []string{
			"medium", "substack", "wikipedia", "nytimes", "theverge",
			"wired", "arstechnica", "dev.to", "hashnode", "blog", "news",
			"towardsdatascience",
		},
		articlePaths: []string{"/blog", "/posts", "/article", "/read", "/story"},
		shoppingHosts: []string{
			"amazon", "ebay", "etsy", "shopify", "aliexpress", "temu",
			"walmart", "bestbuy", "target", "ikea", "trendyol",
			"hepsiburada", "n11",
		},
		shoppingPaths: []string{"/product", "/products", "/shop", "/cart", "/checkout"},
		socialHosts: []string{
			"twitter", "x.com", "instagram", "linkedin", "facebook",
			"reddit", "threads", "discord", "t.me", "telegram", "pinterest",
		},
		socialPaths: []string{"/u/", "/user/", "/users/", "/profile", "/status/", "/r/"},
	}
}

// Extend appends extra host substrings to a rule group.
// The built-in lists and the group priority order are fixed.
func (c *Classifier) Extend(category Category, hosts []string) {
	switch category {
	case CategoryVideo:
		c.videoHosts = append(c.videoHosts, hosts...)
	case CategoryArticle:
		c.articleHosts = append(c.articleHosts, hosts...)
	case CategoryShopping:
		c.shoppingHosts = append(c.shoppingHosts, hosts...)
	case CategorySocial:
		c.socialHosts = append(c.socialHosts, hosts...)
	}
}

// Suggest classifies a raw URL string. It is total: malformed or empty
// input falls through to CategoryOther, never an error.
func (c *Classifier) Suggest(rawURL string) Category {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return CategoryOther
	}

	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)
	query := strings.ToLower(u.RawQuery)

	if containsAny(host, c.videoHosts) || containsAny(path, c.videoPaths) || containsAny(query, c.videoQueries) {
		return CategoryVideo
	}
	if containsAny(host, c.articleHosts) || containsAny(path, c.articlePaths) {
		return CategoryArticle
	}
	if containsAny(host, c.shoppingHosts) || containsAny(path, c.shoppingPaths) {
		return CategoryShopping
	}
	if containsAny(host, c.socialHosts) || containsAny(path, c.socialPaths) {
		return CategorySocial
	}

	return CategoryOther
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
