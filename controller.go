package quizdiversity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Generator is the external generation collaborator. Implementations return
// the raw reply text; the controller owns deserialization, so a malformed
// reply is handled as zero candidates rather than as an error.
type Generator interface {
	Generate(ctx context.Context, req GeneratorRequest) (string, error)
}

// ErrGeneratorUnavailable reports an absent or misconfigured Generator. It is
// the only condition that surfaces as a hard failure to the caller; per-item
// and per-attempt failures are absorbed inside the pipeline.
var ErrGeneratorUnavailable = errors.New("quizdiversity: generator unavailable")

// defaultCallTimeout bounds each individual generator call. Expiry is treated
// the same as an explicit generation failure.
const defaultCallTimeout = 45 * time.Second

// pipelineState is one state of the regeneration state machine.
type pipelineState int

const (
	stateInit pipelineState = iota
	stateGenerating
	stateDeduplicating
	stateSufficient
	stateRetry
	stateExhausted
	stateDone
)

// Controller runs the bounded generate-dedup-retry pipeline for quiz
// requests. A Controller is safe to reuse across requests; all per-request
// state lives in an isolated session.
type Controller struct {
	generator Generator
	events    EventSink
	timeout   time.Duration
}

// NewController creates a controller around the given generator.
func NewController(generator Generator) *Controller {
	return &Controller{
		generator: generator,
		events:    NopSink{},
		timeout:   defaultCallTimeout,
	}
}

// SetEventSink routes pipeline diagnostics events to sink.
func (c *Controller) SetEventSink(sink EventSink) {
	if sink == nil {
		sink = NopSink{}
	}
	c.events = sink
}

// SetCallTimeout overrides the per-generator-call timeout.
func (c *Controller) SetCallTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.timeout = timeout
	}
}

// GenerateQuiz runs the state machine until DONE and returns the final
// deduplicated list plus diagnostics. The result may hold fewer questions
// than requested once the retry budget is exhausted; it is never padded with
// near-duplicates. One generator call must complete before the next is
// issued, because each retry's exclusion list depends on all prior results.
func (c *Controller) GenerateQuiz(ctx context.Context, req QuizRequest) (*QuizResult, error) {
	if c.generator == nil {
		return nil, ErrGeneratorUnavailable
	}
	if req.NumQuestions < 1 {
		return nil, fmt.Errorf("quizdiversity: invalid question count %d", req.NumQuestions)
	}

	session := newRegenSession(req.NumQuestions)
	state := stateInit
	requestCount := req.NumQuestions

	var batch []QuestionRecord

	for state != stateDone {
		switch state {
		case stateInit:
			c.events.Emit(PipelineEvent{
				Type:      EventStarted,
				Requested: req.NumQuestions,
				TopicHint: req.TopicHint,
			})
			state = stateGenerating

		case stateGenerating:
			batch = c.generate(ctx, session, req.TopicHint, requestCount)
			c.events.Emit(PipelineEvent{
				Type:      EventBatchReceived,
				Attempt:   session.attemptsUsed,
				BatchSize: len(batch),
			})
			state = stateDeduplicating

		case stateDeduplicating:
			session.merge(batch)
			batch = nil
			c.events.Emit(PipelineEvent{
				Type:        EventDedupComplete,
				Attempt:     session.attemptsUsed,
				UniqueCount: len(session.accepted),
				Remaining:   session.remaining(),
			})

			switch {
			case session.remaining() <= 0:
				state = stateSufficient
			case session.attemptsUsed < MaxRetryAttempts:
				state = stateRetry
			default:
				state = stateExhausted
			}

		case stateRetry:
			session.attemptsUsed++
			session.escalate()
			requestCount = session.remaining() + RetryBuffer
			c.events.Emit(PipelineEvent{
				Type:             EventRetryScheduled,
				Attempt:          session.attemptsUsed,
				Remaining:        session.remaining(),
				Temperature:      session.temperature,
				FrequencyPenalty: session.frequencyPenalty,
			})
			state = stateGenerating

		case stateSufficient:
			session.accepted = session.accepted[:session.target]
			state = stateDone

		case stateExhausted:
			VerboseLog("Retry budget exhausted with %d of %d questions", len(session.accepted), session.target)
			state = stateDone
		}
	}

	result := &QuizResult{
		Questions: session.accepted,
		Diagnostics: Diagnostics{
			RequestedCount: req.NumQuestions,
			ReturnedCount:  len(session.accepted),
			AttemptsUsed:   session.attemptsUsed,
			InvalidDropped: session.invalidDropped,
			UsedTopics:     append([]string(nil), session.usedTopics...),
		},
	}

	c.events.Emit(PipelineEvent{
		Type:      EventFinished,
		Attempt:   session.attemptsUsed,
		Requested: req.NumQuestions,
		Returned:  len(result.Questions),
	})

	return result, nil
}

// generate issues one bounded generator call and returns the validated
// candidates. Errors, timeouts, and unparsable payloads all yield an empty
// batch; the shortfall is handled by the retry states.
func (c *Controller) generate(ctx context.Context, session *regenSession, topicHint string, count int) []QuestionRecord {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.generator.Generate(callCtx, GeneratorRequest{
		RemainingCount:   count,
		TopicHint:        topicHint,
		ExcludedTopics:   append([]string(nil), session.usedTopics...),
		Temperature:      session.temperature,
		FrequencyPenalty: session.frequencyPenalty,
	})
	if err != nil {
		VerboseLog("Generation attempt %d failed: %v", session.attemptsUsed, err)
		c.events.Emit(PipelineEvent{
			Type:    EventGenerationFailed,
			Attempt: session.attemptsUsed,
			Err:     err.Error(),
		})
		return nil
	}

	records, dropped := parsePayload(reply)
	session.invalidDropped += dropped
	return records
}

// parsePayload deserializes a raw generator reply into validated records.
// Markdown code fences around the JSON are tolerated. An unparsable payload
// yields zero candidates, not an error. The second return value counts
// shape-invalid candidates that were dropped.
func parsePayload(reply string) ([]QuestionRecord, int) {
	cleaned := stripCodeFence(reply)

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		VerboseLog("Unparsable generator payload: %v", err)
		return nil, 0
	}

	records := make([]QuestionRecord, 0, len(raw))
	dropped := 0
	for _, candidate := range raw {
		record, err := validateCandidate(candidate)
		if err != nil {
			dropped++
			VerboseLog("Dropping candidate: %v", err)
			continue
		}
		records = append(records, record)
	}
	return records, dropped
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
