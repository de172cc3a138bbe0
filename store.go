package quizdiversity

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DB persists finished quizzes and their run diagnostics.
type DB struct {
	db *sql.DB
}

// StoredQuiz is a persisted pipeline result.
type StoredQuiz struct {
	ID             string           `json:"id"`
	TopicHint      string           `json:"topic_hint"`
	RequestedCount int              `json:"requested_count"`
	ReturnedCount  int              `json:"returned_count"`
	AttemptsUsed   int              `json:"attempts_used"`
	InvalidDropped int              `json:"invalid_dropped"`
	UsedTopics     []string         `json:"used_topics"`
	CreatedAt      time.Time        `json:"created_at"`
	Questions      []QuestionRecord `json:"questions"`
}

// OpenDB opens a quiz database at dbPath.
func OpenDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db: db}, nil
}

// CloseDB closes the database connection.
func (db *DB) CloseDB() error {
	return db.db.Close()
}

// CreateTables creates the necessary tables if they don't exist.
func (db *DB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			topic_hint TEXT,
			requested_count INTEGER NOT NULL,
			returned_count INTEGER NOT NULL,
			attempts_used INTEGER NOT NULL,
			invalid_dropped INTEGER NOT NULL,
			used_topics TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			quiz_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			text TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			explanation TEXT,
			topic TEXT,
			page_ref INTEGER,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveResult stores a pipeline result and returns the new quiz ID.
func (db *DB) SaveResult(topicHint string, result *QuizResult) (string, error) {
	quizID := uuid.NewString()

	topicsJSON, err := json.Marshal(result.Diagnostics.UsedTopics)
	if err != nil {
		return "", fmt.Errorf("failed to marshal used topics: %w", err)
	}

	_, err = db.db.Exec(
		"INSERT INTO quizzes (id, topic_hint, requested_count, returned_count, attempts_used, invalid_dropped, used_topics, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		quizID, topicHint,
		result.Diagnostics.RequestedCount, result.Diagnostics.ReturnedCount,
		result.Diagnostics.AttemptsUsed, result.Diagnostics.InvalidDropped,
		string(topicsJSON), time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create quiz: %w", err)
	}

	for num, question := range result.Questions {
		optionsJSON, err := OptionsToJSON(question.Options)
		if err != nil {
			return "", err
		}

		_, err = db.db.Exec(
			"INSERT INTO questions (id, quiz_id, question_num, text, options, correct_answer, explanation, topic, page_ref) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			uuid.NewString(), quizID, num+1,
			question.Text, optionsJSON, question.CorrectAnswer,
			question.Explanation, question.Topic, question.PageRef,
		)
		if err != nil {
			return "", fmt.Errorf("failed to create question %d: %w", num+1, err)
		}
	}

	return quizID, nil
}

// GetQuiz retrieves a stored quiz and its questions by ID.
func (db *DB) GetQuiz(id string) (*StoredQuiz, error) {
	var quiz StoredQuiz
	var topicsJSON string

	err := db.db.QueryRow(
		"SELECT id, topic_hint, requested_count, returned_count, attempts_used, invalid_dropped, used_topics, created_at FROM quizzes WHERE id = ?",
		id,
	).Scan(&quiz.ID, &quiz.TopicHint, &quiz.RequestedCount, &quiz.ReturnedCount,
		&quiz.AttemptsUsed, &quiz.InvalidDropped, &topicsJSON, &quiz.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quiz not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := json.Unmarshal([]byte(topicsJSON), &quiz.UsedTopics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal used topics: %w", err)
	}

	rows, err := db.db.Query(
		"SELECT text, options, correct_answer, explanation, topic, page_ref FROM questions WHERE quiz_id = ? ORDER BY question_num",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var question QuestionRecord
		var optionsJSON string
		err := rows.Scan(&question.Text, &optionsJSON, &question.CorrectAnswer,
			&question.Explanation, &question.Topic, &question.PageRef)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		question.Options, err = JSONToOptions(optionsJSON)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return &quiz, nil
}

// GetQuizzes retrieves stored quizzes without their questions, newest first,
// optionally limited by count.
func (db *DB) GetQuizzes(limit int) ([]StoredQuiz, error) {
	query := "SELECT id, topic_hint, requested_count, returned_count, attempts_used, invalid_dropped, used_topics, created_at FROM quizzes ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []StoredQuiz
	for rows.Next() {
		var quiz StoredQuiz
		var topicsJSON string
		err := rows.Scan(&quiz.ID, &quiz.TopicHint, &quiz.RequestedCount, &quiz.ReturnedCount,
			&quiz.AttemptsUsed, &quiz.InvalidDropped, &topicsJSON, &quiz.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		if err := json.Unmarshal([]byte(topicsJSON), &quiz.UsedTopics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal used topics: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizzes: %w", err)
	}

	return quizzes, nil
}

// OptionsToJSON converts an options slice to its JSON column representation.
func OptionsToJSON(options []string) (string, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}
	return string(data), nil
}

// JSONToOptions converts a JSON options column back to a slice.
func JSONToOptions(optionsJSON string) ([]string, error) {
	var options []string
	err := json.Unmarshal([]byte(optionsJSON), &options)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return options, nil
}
