package quizdiversity

import (
	"strings"
	"unicode"
)

// UnknownTopic is the sentinel tag for questions whose text yields no
// keywords. Records carrying it still flow through the pipeline.
const UnknownTopic = "unknown"

// topicKeywordCount is how many top keywords form a derived topic tag.
const topicKeywordCount = 3

// NormalizeTopic canonicalizes a topic label: lowercased, trimmed, with
// non-alphanumeric runs collapsed to single hyphens. "Engine Trim" becomes
// "engine-trim".
func NormalizeTopic(topic string) string {
	parts := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(parts, "-")
}

// ExtractTopic derives the topic tag for a record. A generator-declared topic
// is trusted and only normalized, never re-derived from the text. Otherwise
// the tag is built from the top question-text keywords joined with hyphens.
// Deterministic, no side effects.
func ExtractTopic(q QuestionRecord) string {
	if tag := NormalizeTopic(q.Topic); tag != "" {
		return tag
	}

	keywords := ExtractKeywords(q.Text, topicKeywordCount)
	if len(keywords) == 0 {
		return UnknownTopic
	}
	return strings.Join(keywords, "-")
}
