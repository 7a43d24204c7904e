package domain

import (
	"math"
	"net/url"
	"sort"
	"strings"
	"unicode"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier title words are better)
	ScorePositionBonus = 10.0

	// Favorites float to the top on ties
	ScoreFavoriteBonus = 10.0
)

// LinkMatch is a link with its search score.
type LinkMatch struct {
	Link  *Link
	Score float64
}

// RankLinks scores every link against a free-text query and returns
// matches sorted best-first. Non-matching links are left out.
func RankLinks(query string, links []*Link) []*LinkMatch {
	fragments := queryFragments(query)
	if len(fragments) == 0 {
		return nil
	}

	matches := make([]*LinkMatch, 0, len(links))
	for _, link := range links {
		score := scoreLink(fragments, link)
		if score == 0.0 {
			continue
		}
		if link.IsFavorite {
			score += ScoreFavoriteBonus
		}
		matches = append(matches, &LinkMatch{Link: link, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// scoreLink sums, per query fragment, the best score across the link's
// searchable fragments (title words, host labels, note words). A query
// fragment matching nothing zeroes the whole link: every typed word
// has to land somewhere.
func scoreLink(queryFragments []string, link *Link) float64 {
	searchable := linkFragments(link)
	if len(searchable) == 0 {
		return 0.0
	}

	var total float64
	for _, qFrag := range queryFragments {
		best := 0.0
		for i, frag := range searchable {
			if score := scoreFragment(qFrag, frag, i); score > best {
				best = score
			}
		}
		if best == 0.0 {
			return 0.0
		}
		total += best
	}
	return total
}

// linkFragments lists the matchable words of a link: title words first
// (position bonus favors them), then host labels, then note words.
func linkFragments(link *Link) []string {
	fragments := strings.Fields(strings.ToLower(link.Title))

	if u, err := url.Parse(link.URL); err == nil && u.Hostname() != "" {
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		fragments = append(fragments, strings.Split(host, ".")...)
	}

	if link.UserNote != "" {
		fragments = append(fragments, strings.Fields(strings.ToLower(link.UserNote))...)
	}
	return fragments
}

func queryFragments(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// scoreFragment scores a single query fragment against a searchable fragment
func scoreFragment(queryFrag, frag string, position int) float64 {
	queryFrag = normalizeFragment(queryFrag)
	frag = normalizeFragment(frag)

	if queryFrag == "" || frag == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == frag {
		return ScoreExactMatch + positionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(frag, queryFrag) {
		return ScorePrefixMatch + positionBonus(position)
	}

	// Substring match
	if strings.Contains(frag, queryFrag) {
		index := strings.Index(frag, queryFrag)
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(frag)))
		return ScoreSubstringMatch + substringBonus
	}

	// Fuzzy match
	similarity := similarity(queryFrag, frag)
	if similarity > 0.5 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// positionBonus gives bonus for earlier positions
func positionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// similarity is a cheap character-overlap ratio, enough to forgive a
// typo without pulling in a full edit-distance pass.
func similarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	matches := 0
	for _, c := range s1 {
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}
	return float64(matches) / float64(len(s1))
}

// normalizeFragment strips everything but letters and digits.
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
