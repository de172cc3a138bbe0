package quizdiversity

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator satisfies the Generator contract with an OpenAI chat
// completion. The reply is returned as raw text; the controller owns parsing.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator backed by the OpenAI API.
func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

// SetModel overrides the model used for generation.
func (g *OpenAIGenerator) SetModel(model string) {
	g.model = model
}

// Generate requests a batch of questions as a JSON array, applying the
// request's diversity parameters directly to the completion call.
func (g *OpenAIGenerator) Generate(ctx context.Context, req GeneratorRequest) (string, error) {
	VerboseLog("Generating %d questions (temperature=%.2f, frequency_penalty=%.2f, excluded=%d)",
		req.RemainingCount, req.Temperature, req.FrequencyPenalty, len(req.ExcludedTopics))

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:            g.model,
			Temperature:      req.Temperature,
			FrequencyPenalty: req.FrequencyPenalty,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert quiz question generator. Generate high-quality multiple choice questions with exactly 4 options each, and return them strictly as JSON.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: g.buildPrompt(req),
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate questions: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", g.model)
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) buildPrompt(req GeneratorRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple-choice questions.\n\n", req.RemainingCount))

	if req.TopicHint != "" {
		sb.WriteString(fmt.Sprintf("Topic focus: %s\n\n", req.TopicHint))
	} else {
		sb.WriteString("Cover a varied spread of topics.\n\n")
	}

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Each question must have exactly 4 multiple choice options\n")
	sb.WriteString("- Include the correct answer letter (A, B, C, or D)\n")
	sb.WriteString("- Provide a brief explanation with a page reference where possible\n")
	sb.WriteString("- Include a short hyphenated topic tag identifying the concept tested\n")
	sb.WriteString("- Every question must cover a distinct concept\n")

	if len(req.ExcludedTopics) > 0 {
		sb.WriteString("\nDo NOT generate questions on these already-covered topics:\n")
		for _, topic := range req.ExcludedTopics {
			sb.WriteString(fmt.Sprintf("- %s\n", topic))
		}
	}

	sb.WriteString("\nReturn ONLY a valid JSON array with this exact structure:\n")
	sb.WriteString(`[
  {
    "q": "Question text here?",
    "options": ["Option A text", "Option B text", "Option C text", "Option D text"],
    "answer": "A",
    "explain": "Brief explanation with page reference (p.XX)",
    "topic": "short-hyphenated-tag",
    "page": 12
  }
]
`)
	sb.WriteString("\nIMPORTANT: Return ONLY the JSON array, no other text.\n")

	return sb.String()
}
