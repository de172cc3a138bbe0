package quizdiversity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType identifies a pipeline diagnostics event.
type EventType string

const (
	EventStarted          EventType = "started"
	EventBatchReceived    EventType = "batch_received"
	EventGenerationFailed EventType = "generation_failed"
	EventDedupComplete    EventType = "dedup_complete"
	EventRetryScheduled   EventType = "retry_scheduled"
	EventFinished         EventType = "finished"
)

// PipelineEvent is one structured diagnostics record emitted by the
// controller. Events are data; persistence and formatting belong to the
// caller's sink.
type PipelineEvent struct {
	Type             EventType `json:"type"`
	Attempt          int       `json:"attempt"`
	TopicHint        string    `json:"topic_hint,omitempty"`
	Requested        int       `json:"requested,omitempty"`
	BatchSize        int       `json:"batch_size,omitempty"`
	UniqueCount      int       `json:"unique_count,omitempty"`
	Remaining        int       `json:"remaining,omitempty"`
	Temperature      float32   `json:"temperature,omitempty"`
	FrequencyPenalty float32   `json:"frequency_penalty,omitempty"`
	Returned         int       `json:"returned,omitempty"`
	Err              string    `json:"error,omitempty"`
}

// EventSink receives pipeline events.
type EventSink interface {
	Emit(event PipelineEvent)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(PipelineEvent) {}

// FileEventLog appends pipeline events to a per-run log file, one JSON line
// per event.
type FileEventLog struct {
	mu    sync.Mutex
	file  *os.File
	runID string
}

// NewFileEventLog creates an event log for a specific run under dir.
func NewFileEventLog(dir, runID string) (*FileEventLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s.log", runID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &FileEventLog{file: file, runID: runID}
	logger.logf("=== Quiz Generation Events ===\n")
	logger.logf("Run ID: %s\n", runID)
	logger.logf("Started: %s\n", time.Now().Format(time.RFC3339))
	return logger, nil
}

// Emit writes the event as a timestamped JSON line.
func (fl *FileEventLog) Emit(event PipelineEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	fl.logf("%s\n", data)
}

func (fl *FileEventLog) logf(format string, args ...interface{}) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(fl.file, "[%s] ", timestamp)
	fmt.Fprintf(fl.file, format, args...)
	fl.file.Sync()
}

// Close writes a footer and closes the log file.
func (fl *FileEventLog) Close() error {
	fl.logf("Completed: %s\n", time.Now().Format(time.RFC3339))

	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.file == nil {
		return nil
	}
	err := fl.file.Close()
	fl.file = nil
	return err
}
