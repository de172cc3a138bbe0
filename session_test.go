package quizdiversity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenSessionStartsWithInitialParameters(t *testing.T) {
	session := newRegenSession(6)

	assert.Equal(t, InitialTemperature, session.temperature)
	assert.Equal(t, InitialFrequencyPenalty, session.frequencyPenalty)
	assert.Equal(t, 0, session.attemptsUsed)
	assert.Equal(t, 6, session.remaining())
}

func TestRegenSessionEscalationIsCapped(t *testing.T) {
	session := newRegenSession(6)

	for i := 0; i < 10; i++ {
		session.escalate()
	}

	assert.InDelta(t, float64(maxTemperature), float64(session.temperature), 0.001)
	assert.InDelta(t, float64(maxFrequencyPenalty), float64(session.frequencyPenalty), 0.001)
}

func TestRegenSessionEscalationStep(t *testing.T) {
	session := newRegenSession(6)
	session.escalate()

	assert.InDelta(t, float64(InitialTemperature+temperatureStep), float64(session.temperature), 0.001)
	assert.InDelta(t, float64(InitialFrequencyPenalty+frequencyPenaltyStep), float64(session.frequencyPenalty), 0.001)
}

func TestRegenSessionMergeAccumulatesTopics(t *testing.T) {
	session := newRegenSession(4)

	session.merge([]QuestionRecord{
		testQuestion("What is the fuel capacity of the main tank?", "fuel-capacity", "A"),
		testQuestion("What is the maximum altitude for combat operations?", "altitude-limits", "B"),
	})
	require.Equal(t, 2, session.remaining())
	assert.Equal(t, []string{"fuel-capacity", "altitude-limits"}, session.usedTopics)

	// A later batch repeating a topic adds nothing.
	session.merge([]QuestionRecord{
		testQuestion("How much fuel does the main tank hold in total?", "fuel-capacity", "C"),
		testQuestion("What is the engine startup sequence before taxi?", "engine-startup", "D"),
	})
	assert.Equal(t, 1, session.remaining())
	assert.Equal(t, []string{"fuel-capacity", "altitude-limits", "engine-startup"}, session.usedTopics)
}
