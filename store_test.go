package quizdiversity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })

	require.NoError(t, db.CreateTables())
	return db
}

func sampleResult() *QuizResult {
	return &QuizResult{
		Questions: []QuestionRecord{
			{
				Text:          "What is the fuel capacity of the main tank?",
				Options:       fourOptions,
				CorrectAnswer: "A",
				Explanation:   "Test explanation (p.30)",
				Topic:         "fuel-capacity",
				PageRef:       30,
			},
			{
				Text:          "What is the maximum altitude for combat operations?",
				Options:       fourOptions,
				CorrectAnswer: "B",
				Explanation:   "Test explanation (p.40)",
				Topic:         "altitude-limits",
				PageRef:       40,
			},
		},
		Diagnostics: Diagnostics{
			RequestedCount: 4,
			ReturnedCount:  2,
			AttemptsUsed:   3,
			InvalidDropped: 1,
			UsedTopics:     []string{"fuel-capacity", "altitude-limits"},
		},
	}
}

func TestSaveAndGetQuiz(t *testing.T) {
	db := openTestDB(t)

	quizID, err := db.SaveResult("aviation", sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, quizID)

	stored, err := db.GetQuiz(quizID)
	require.NoError(t, err)

	assert.Equal(t, "aviation", stored.TopicHint)
	assert.Equal(t, 4, stored.RequestedCount)
	assert.Equal(t, 2, stored.ReturnedCount)
	assert.Equal(t, 3, stored.AttemptsUsed)
	assert.Equal(t, 1, stored.InvalidDropped)
	assert.Equal(t, []string{"fuel-capacity", "altitude-limits"}, stored.UsedTopics)

	require.Len(t, stored.Questions, 2)
	assert.Equal(t, "What is the fuel capacity of the main tank?", stored.Questions[0].Text)
	assert.Equal(t, fourOptions, stored.Questions[0].Options)
	assert.Equal(t, "A", stored.Questions[0].CorrectAnswer)
	assert.Equal(t, 30, stored.Questions[0].PageRef)
	assert.Equal(t, "altitude-limits", stored.Questions[1].Topic)
}

func TestGetQuizNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetQuiz("missing")
	assert.Error(t, err)
}

func TestGetQuizzesLimit(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		_, err := db.SaveResult("aviation", sampleResult())
		require.NoError(t, err)
	}

	all, err := db.GetQuizzes(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := db.GetQuizzes(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestOptionsJSONRoundTrip(t *testing.T) {
	encoded, err := OptionsToJSON(fourOptions)
	require.NoError(t, err)

	decoded, err := JSONToOptions(encoded)
	require.NoError(t, err)
	assert.Equal(t, fourOptions, decoded)
}
