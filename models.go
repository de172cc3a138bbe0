package quizdiversity

// AnswerLetters are the only valid correct-answer values for a question.
const AnswerLetters = "ABCD"

// QuestionRecord represents a single validated quiz question with multiple
// choice answers. Records that fail shape validation never enter the pipeline.
type QuestionRecord struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`        // exactly 4
	CorrectAnswer string   `json:"correct_answer"` // one of A/B/C/D
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic,omitempty"`
	PageRef       int      `json:"page_ref,omitempty"`
}

// rawQuestion is the wire shape the generator is expected to produce.
type rawQuestion struct {
	Q       string   `json:"q"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
	Explain string   `json:"explain"`
	Topic   string   `json:"topic,omitempty"`
	Page    int      `json:"page,omitempty"`
}

// QuizRequest represents a caller's request for a deduplicated quiz.
type QuizRequest struct {
	TopicHint    string `json:"topic_hint,omitempty"`
	NumQuestions int    `json:"num_questions"`
}

// GeneratorRequest is the request half of the external Generator contract.
type GeneratorRequest struct {
	RemainingCount   int      `json:"remaining_count"`
	TopicHint        string   `json:"topic_hint,omitempty"`
	ExcludedTopics   []string `json:"excluded_topics,omitempty"`
	Temperature      float32  `json:"temperature"`
	FrequencyPenalty float32  `json:"frequency_penalty"`
}

// Diagnostics summarizes one pipeline run for the caller.
type Diagnostics struct {
	RequestedCount int      `json:"requested_count"`
	ReturnedCount  int      `json:"returned_count"`
	AttemptsUsed   int      `json:"attempts_used"`
	InvalidDropped int      `json:"invalid_dropped"`
	UsedTopics     []string `json:"used_topics"`
}

// QuizResult is the pipeline output: an ordered, deduplicated question list
// (possibly shorter than requested) plus run diagnostics.
type QuizResult struct {
	Questions   []QuestionRecord `json:"questions"`
	Diagnostics Diagnostics      `json:"diagnostics"`
}
