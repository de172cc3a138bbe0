package quizdiversity

// Retry budget and diversity-parameter escalation for one generation request.
const (
	// MaxRetryAttempts bounds the regeneration loop; the initial generation
	// pass is not counted as an attempt.
	MaxRetryAttempts = 3

	// RetryBuffer is added to the remaining count on each retry to absorb
	// expected duplicates.
	RetryBuffer = 2

	// InitialTemperature and InitialFrequencyPenalty are the starting
	// diversity parameters for the first generation pass.
	InitialTemperature      float32 = 0.7
	InitialFrequencyPenalty float32 = 0.3

	temperatureStep      float32 = 0.1
	maxTemperature       float32 = 1.0
	frequencyPenaltyStep float32 = 0.15
	maxFrequencyPenalty  float32 = 0.9
)

// regenSession holds all mutable state for one quiz-generation request: the
// accepted questions in order, the topics consumed so far, the retry count,
// and the current diversity parameters. A session is created per request and
// must never be shared across concurrent requests.
type regenSession struct {
	target           int
	attemptsUsed     int
	temperature      float32
	frequencyPenalty float32

	accepted       []QuestionRecord
	usedTopics     []string // insertion order
	topicSeen      map[string]struct{}
	invalidDropped int
}

func newRegenSession(target int) *regenSession {
	return &regenSession{
		target:           target,
		temperature:      InitialTemperature,
		frequencyPenalty: InitialFrequencyPenalty,
		topicSeen:        make(map[string]struct{}),
	}
}

func (s *regenSession) remaining() int {
	return s.target - len(s.accepted)
}

// escalate bumps both diversity parameters by one fixed step, capped.
func (s *regenSession) escalate() {
	s.temperature = min(s.temperature+temperatureStep, maxTemperature)
	s.frequencyPenalty = min(s.frequencyPenalty+frequencyPenaltyStep, maxFrequencyPenalty)
}

// merge appends a validated batch to the accepted set and re-runs
// deduplication over the combined list, so new candidates are checked against
// everything accepted on earlier passes. Accepted order is preserved.
func (s *regenSession) merge(batch []QuestionRecord) {
	combined := make([]QuestionRecord, 0, len(s.accepted)+len(batch))
	combined = append(combined, s.accepted...)
	combined = append(combined, batch...)

	unique, topics := Deduplicate(combined)
	s.accepted = unique

	for _, topic := range topics {
		if _, ok := s.topicSeen[topic]; ok {
			continue
		}
		s.topicSeen[topic] = struct{}{}
		s.usedTopics = append(s.usedTopics, topic)
	}
}
