package services

import (
	"regexp"
	"sort"
	"strings"
)

// lexicon holds the word tiers, most severe first. Tier 2 is everyday
// profanity and is off by default. Read-only after init; filters compile
// their own copies.
var lexicon = map[int][]string{
	1: {
		"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
		"tranny", "retard", "retarded",
	},
	2: {
		"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
		"damn", "crap", "piss",
	},
	3: {
		"porn", "porno", "nude", "nudes", "dildo", "blowjob",
		"slut", "whore", "cock", "dick", "pussy",
	},
	4: {
		"ass", "asshole", "bastard", "bitch", "cunt", "douche",
		"douchebag", "jackass", "twat", "wanker",
	},
}

// defaultActiveTiers is used when NewContentFilter gets no tiers.
var defaultActiveTiers = []int{1, 3, 4}

type ScanResult struct {
	Detected     bool     `json:"detected"`
	MatchedTerms []string `json:"matchedTerms"`
}

// ContentFilter is immutable once built and safe for concurrent use.
type ContentFilter struct {
	active []int
	tiers  map[int]*regexp.Regexp
}

// NewContentFilter enables the given tiers. Tiers missing from the lexicon are
// ignored; an empty list falls back to tiers 1, 3 and 4.
func NewContentFilter(activeTiers ...int) *ContentFilter {
	if len(activeTiers) == 0 {
		activeTiers = defaultActiveTiers
	}

	f := &ContentFilter{tiers: make(map[int]*regexp.Regexp)}
	for _, tier := range activeTiers {
		words, ok := lexicon[tier]
		if !ok || f.tiers[tier] != nil {
			continue
		}
		f.tiers[tier] = compileTier(words)
		f.active = append(f.active, tier)
	}
	sort.Ints(f.active)
	return f
}

func compileTier(words []string) *regexp.Regexp {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ActiveTiers returns the enabled tiers in ascending order.
func (f *ContentFilter) ActiveTiers() []int {
	return append([]int(nil), f.active...)
}

// Scan reports whether text contains any active-tier term, and which ones.
func (f *ContentFilter) Scan(text string) ScanResult {
	result := ScanResult{MatchedTerms: []string{}}
	if strings.TrimSpace(text) == "" {
		return result
	}

	seen := make(map[string]struct{})
	for _, tier := range f.active {
		for _, m := range f.tiers[tier].FindAllString(text, -1) {
			seen[strings.ToLower(m)] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return result
	}

	for term := range seen {
		result.MatchedTerms = append(result.MatchedTerms, term)
	}
	sort.Strings(result.MatchedTerms)
	result.Detected = true
	return result
}
