package quizdiversity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCandidateAccepts(t *testing.T) {
	record, err := validateCandidate(rawQuestion{
		Q:       "What is the fuel capacity of the main tank?",
		Options: fourOptions,
		Answer:  "A",
		Explain: "Test explanation (p.30)",
		Topic:   "fuel-capacity",
		Page:    30,
	})

	require.NoError(t, err)
	assert.Equal(t, "What is the fuel capacity of the main tank?", record.Text)
	assert.Equal(t, "A", record.CorrectAnswer)
	assert.Equal(t, "fuel-capacity", record.Topic)
	assert.Equal(t, 30, record.PageRef)
}

func TestValidateCandidateNormalizesAnswerLetter(t *testing.T) {
	record, err := validateCandidate(rawQuestion{
		Q:       "What is the maximum altitude?",
		Options: fourOptions,
		Answer:  " b ",
		Explain: "Test",
	})

	require.NoError(t, err)
	assert.Equal(t, "B", record.CorrectAnswer)
}

func TestValidateCandidateRejectsWrongOptionCount(t *testing.T) {
	_, err := validateCandidate(rawQuestion{
		Q:       "What is the maximum altitude?",
		Options: []string{"One", "Two", "Three"},
		Answer:  "A",
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "options", verr.Field)

	_, err = validateCandidate(rawQuestion{
		Q:       "What is the maximum altitude?",
		Options: []string{"One", "Two", "Three", "Four", "Five"},
		Answer:  "A",
	})
	assert.Error(t, err)
}

func TestValidateCandidateRejectsInvalidAnswer(t *testing.T) {
	for _, answer := range []string{"E", "", "AB", "1"} {
		_, err := validateCandidate(rawQuestion{
			Q:       "What is the maximum altitude?",
			Options: fourOptions,
			Answer:  answer,
		})
		assert.Errorf(t, err, "answer %q should be rejected", answer)
	}
}

func TestValidateCandidateRejectsEmptyText(t *testing.T) {
	_, err := validateCandidate(rawQuestion{
		Q:       "   ",
		Options: fourOptions,
		Answer:  "A",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "q", verr.Field)
}
