package quizdiversity

import (
	"fmt"
	"strings"
)

// ValidationError describes why a raw candidate was rejected before entering
// the pipeline. Invalid candidates are dropped silently and only counted in
// diagnostics; they never abort a batch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid candidate: %s %s", e.Field, e.Reason)
}

// optionCount is the required number of answer options per question.
const optionCount = 4

// validateCandidate checks a raw candidate against the record shape rules and
// converts it into a QuestionRecord. The answer letter is trimmed and
// uppercased before membership is checked, so " a " is accepted as "A".
func validateCandidate(raw rawQuestion) (QuestionRecord, error) {
	text := strings.TrimSpace(raw.Q)
	if text == "" {
		return QuestionRecord{}, &ValidationError{Field: "q", Reason: "is empty"}
	}

	if len(raw.Options) != optionCount {
		return QuestionRecord{}, &ValidationError{
			Field:  "options",
			Reason: fmt.Sprintf("has %d entries, want %d", len(raw.Options), optionCount),
		}
	}

	answer := strings.ToUpper(strings.TrimSpace(raw.Answer))
	if len(answer) != 1 || !strings.Contains(AnswerLetters, answer) {
		return QuestionRecord{}, &ValidationError{
			Field:  "answer",
			Reason: fmt.Sprintf("%q is not one of A/B/C/D", raw.Answer),
		}
	}

	return QuestionRecord{
		Text:          text,
		Options:       raw.Options,
		CorrectAnswer: answer,
		Explanation:   raw.Explain,
		Topic:         raw.Topic,
		PageRef:       raw.Page,
	}, nil
}
