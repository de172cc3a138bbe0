package quizdiversity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAIGeneratorBuildPrompt(t *testing.T) {
	generator := NewOpenAIGenerator("test-key")

	prompt := generator.buildPrompt(GeneratorRequest{
		RemainingCount:   4,
		TopicHint:        "air control communication",
		ExcludedTopics:   []string{"throttle-pushing", "fumble-recovery"},
		Temperature:      0.8,
		FrequencyPenalty: 0.45,
	})

	assert.Contains(t, prompt, "Generate 4 multiple-choice questions")
	assert.Contains(t, prompt, "Topic focus: air control communication")
	assert.Contains(t, prompt, "- throttle-pushing")
	assert.Contains(t, prompt, "- fumble-recovery")
	assert.Contains(t, prompt, "JSON array")
}

func TestOpenAIGeneratorBuildPromptWithoutExclusions(t *testing.T) {
	generator := NewOpenAIGenerator("test-key")

	prompt := generator.buildPrompt(GeneratorRequest{RemainingCount: 6})

	assert.NotContains(t, prompt, "already-covered")
	assert.Contains(t, prompt, "varied spread of topics")
}
