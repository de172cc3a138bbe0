package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"quizdiversity"
)

func main() {
	// Missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	var (
		topic      = flag.String("topic", "", "Topic hint for the quiz (optional)")
		questions  = flag.Int("questions", 6, "Number of questions to generate")
		outputFile = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		dbPath     = flag.String("db", "", "SQLite database to store the quiz in (optional)")
		apiKey     = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		model      = flag.String("model", "", "Override the OpenAI model")
		timeout    = flag.Duration("call-timeout", 45*time.Second, "Timeout per generation call")
		eventDir   = flag.String("event-log", "", "Directory for per-run event logs (optional)")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	quizdiversity.SetVerbose(*verbose)

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	generator := quizdiversity.NewOpenAIGenerator(*apiKey)
	if *model != "" {
		generator.SetModel(*model)
	}

	controller := quizdiversity.NewController(generator)
	controller.SetCallTimeout(*timeout)

	if *eventDir != "" {
		eventLog, err := quizdiversity.NewFileEventLog(*eventDir, uuid.NewString())
		if err != nil {
			log.Fatalf("Failed to create event log: %v", err)
		}
		defer eventLog.Close()
		controller.SetEventSink(eventLog)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := controller.GenerateQuiz(ctx, quizdiversity.QuizRequest{
		TopicHint:    *topic,
		NumQuestions: *questions,
	})
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}

	if result.Diagnostics.ReturnedCount < *questions {
		log.Printf("Returned %d of %d requested questions after %d retries",
			result.Diagnostics.ReturnedCount, *questions, result.Diagnostics.AttemptsUsed)
	}

	if *dbPath != "" {
		db, err := quizdiversity.OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.CloseDB()

		if err := db.CreateTables(); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}

		quizID, err := db.SaveResult(*topic, result)
		if err != nil {
			log.Fatalf("Failed to store quiz: %v", err)
		}
		log.Printf("Quiz stored with ID: %s", quizID)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}
