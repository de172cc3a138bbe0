package quizdiversity

// Deduplicate reduces an ordered candidate list to its unique members,
// preserving the input's relative order among survivors. It returns the
// survivors and their topic tags, index-aligned. Each candidate is compared
// against every already-accepted record; O(n²) is fine for the small batches
// the generator produces.
func Deduplicate(candidates []QuestionRecord) ([]QuestionRecord, []string) {
	unique := make([]QuestionRecord, 0, len(candidates))
	topics := make([]string, 0, len(candidates))

	for _, candidate := range candidates {
		topic := ExtractTopic(candidate)

		duplicate := false
		for i, kept := range unique {
			result := JudgeSimilarity(candidate, kept, topic, topics[i])
			if result.IsDuplicate {
				VerboseLog("Discarding duplicate question %q: %s", truncateText(candidate.Text, 60), result.Reason)
				duplicate = true
				break
			}
		}

		if !duplicate {
			unique = append(unique, candidate)
			topics = append(topics, topic)
		}
	}

	return unique, topics
}

func truncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
