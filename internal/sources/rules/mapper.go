package rules

import (
	"fmt"

	"github.com/linkshelf/linkshelf/internal/domain"
)

// Mapper applies a parsed rules config onto the classifiers.
type Mapper struct{}

// NewMapper creates a new rules mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// extendable names; "other" is the fallback bucket and "youtube" is
// keyed on fixed hosts, neither takes extensions.
var (
	extendableCategories = map[string]domain.Category{
		"video":    domain.CategoryVideo,
		"article":  domain.CategoryArticle,
		"shopping": domain.CategoryShopping,
		"social":   domain.CategorySocial,
	}
	extendableGroups = map[string]domain.CategoryGroup{
		"development": domain.GroupDevelopment,
		"aiTools":     domain.GroupAITools,
		"shopping":    domain.GroupShopping,
	}
)

// Apply extends the classifiers with the configured host lists.
// Unknown category or group names are an error so a typo in the rules
// file does not silently drop hosts.
func (m *Mapper) Apply(cfg Config, classifier *domain.Classifier, groups *domain.GroupClassifier) error {
	for name, list := range cfg.Categories {
		category, ok := extendableCategories[name]
		if !ok {
			return fmt.Errorf("unknown category in rules file: %q", name)
		}
		classifier.Extend(category, list.Hosts)
	}

	for name, list := range cfg.Groups {
		group, ok := extendableGroups[name]
		if !ok {
			return fmt.Errorf("unknown group in rules file: %q", name)
		}
		groups.ExtendGroup(group, list.Hosts)
	}

	return nil
}
