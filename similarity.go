package quizdiversity

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

const (
	// FuzzyDuplicateThreshold is the minimum normalized edit-distance
	// similarity between two question texts for them to count as duplicates.
	FuzzyDuplicateThreshold = 0.85

	// KeywordOverlapThreshold is the minimum shared fraction of two
	// questions' top keyword sets for them to count as duplicates.
	KeywordOverlapThreshold = 0.40

	// keywordOverlapBasis records which set the overlap fraction is measured
	// against. The smaller set is the stricter basis: reused vocabulary is
	// flagged even when one question is much wordier than the other.
	keywordOverlapBasis = "smaller-set"
)

// DedupResult explains a single duplicate judgment.
type DedupResult struct {
	IsDuplicate bool   `json:"is_duplicate"`
	Reason      string `json:"reason"`
}

// FuzzyRatio returns a normalized edit-distance similarity in [0,1] between
// two strings. 1 means identical after lowercasing and trimming.
func FuzzyRatio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}

	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// KeywordOverlap returns the fraction of keywords shared by the two sets,
// relative to the smaller set (keywordOverlapBasis). Empty sets never overlap.
func KeywordOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shared := len(lo.Intersect(a, b))
	basis := len(a)
	if len(b) < basis {
		basis = len(b)
	}
	return float64(shared) / float64(basis)
}

// JudgeSimilarity decides whether two records duplicate each other, given
// their precomputed topic tags. A pair is a duplicate if any of:
//
//  1. the topics match exactly (case-insensitive) — catches
//     generator-declared duplicates,
//  2. the full texts are near-identical by fuzzy ratio — catches paraphrase,
//  3. the top keyword sets overlap heavily — catches reused vocabulary under
//     different phrasing.
func JudgeSimilarity(a, b QuestionRecord, topicA, topicB string) DedupResult {
	if topicA != "" && strings.EqualFold(topicA, topicB) {
		return DedupResult{
			IsDuplicate: true,
			Reason:      fmt.Sprintf("same topic %q", topicA),
		}
	}

	if ratio := FuzzyRatio(a.Text, b.Text); ratio >= FuzzyDuplicateThreshold {
		return DedupResult{
			IsDuplicate: true,
			Reason:      fmt.Sprintf("fuzzy text similarity %.2f", ratio),
		}
	}

	overlap := KeywordOverlap(
		ExtractKeywords(a.Text, defaultTopKeywords),
		ExtractKeywords(b.Text, defaultTopKeywords),
	)
	if overlap >= KeywordOverlapThreshold {
		return DedupResult{
			IsDuplicate: true,
			Reason:      fmt.Sprintf("keyword overlap %.2f (%s basis)", overlap, keywordOverlapBasis),
		}
	}

	return DedupResult{IsDuplicate: false, Reason: "distinct topic, text, and keywords"}
}
