package quizdiversity

import (
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const (
	// defaultTopKeywords is how many keywords are retained per question for
	// similarity comparison.
	defaultTopKeywords = 5

	// minKeywordLen is the shortest token admitted as a keyword.
	minKeywordLen = 3
)

// stopwords are tokens excluded from keyword ranking. Question scaffolding
// words ("what", "how", "which") dominate by frequency but carry no content.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "your": {}, "all": {}, "any": {}, "can": {}, "will": {},
	"would": {}, "should": {}, "could": {}, "has": {}, "had": {}, "have": {},
	"was": {}, "were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"who": {}, "whom": {}, "why": {}, "how": {}, "does": {}, "did": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "with": {}, "from": {},
	"into": {}, "onto": {}, "about": {}, "than": {}, "then": {}, "them": {},
	"they": {}, "their": {}, "there": {}, "its": {}, "our": {}, "out": {},
	"per": {}, "during": {}, "while": {}, "each": {}, "also": {}, "such": {},
	"some": {}, "most": {}, "more": {}, "must": {}, "may": {}, "might": {},
	"been": {}, "being": {}, "upon": {}, "over": {}, "under": {},
}

// ExtractKeywords returns the top n content keywords of text, ranked by
// frequency with ties broken by first occurrence. Tokens are split on
// non-alphanumeric boundaries and lowercased; short tokens and stopwords are
// discarded. Deterministic, no side effects.
func ExtractKeywords(text string, topN int) []string {
	if topN <= 0 {
		topN = defaultTopKeywords
	}

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	type rankedToken struct {
		token string
		count int
		first int
	}

	byToken := make(map[string]*rankedToken)
	ranked := make([]*rankedToken, 0, len(tokens))

	for pos, token := range tokens {
		if len(token) < minKeywordLen {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		if rt, ok := byToken[token]; ok {
			rt.count++
			continue
		}
		rt := &rankedToken{token: token, count: 1, first: pos}
		byToken[token] = rt
		ranked = append(ranked, rt)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].first < ranked[j].first
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return lo.Map(ranked, func(rt *rankedToken, _ int) string { return rt.token })
}

// KeywordSet converts a ranked keyword slice into a membership set.
func KeywordSet(keywords []string) map[string]struct{} {
	return lo.SliceToMap(keywords, func(k string) (string, struct{}) {
		return k, struct{}{}
	})
}
