package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"hireflow/ats-engine/internal/config"
	"hireflow/ats-engine/internal/models"
	"hireflow/ats-engine/internal/services"
)

// Scores a single resume file against a job description JSON without the
// server or a database. Useful for tuning job requirements before publishing.
//
//	go run scripts/score_resume.go -resume cv.pdf -job job.json
func main() {
	resumePath := flag.String("resume", "", "path to the resume file (pdf, docx or txt)")
	jobPath := flag.String("job", "", "path to a JSON file with the job description")
	flag.Parse()

	if *resumePath == "" || *jobPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	data, err := os.ReadFile(*resumePath)
	if err != nil {
		log.Fatalf("❌ Failed to read resume file: %v", err)
	}

	jobData, err := os.ReadFile(*jobPath)
	if err != nil {
		log.Fatalf("❌ Failed to read job file: %v", err)
	}

	var job models.Job
	if err := json.Unmarshal(jobData, &job); err != nil {
		log.Fatalf("❌ Failed to parse job JSON: %v", err)
	}

	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini: %v", err)
		}
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, generative extraction disabled")
	}

	extractor := services.NewDocumentExtractorService()
	tagger := services.NewProseTagger(cfg.NLP.TaggerEnabled)
	generative := services.NewGeminiEntityExtractor(geminiService, cfg.Worker.RetryMaxAttempts)
	entityExtractor := services.NewEntityExtractorService(tagger, generative)
	scoringService := services.NewScoringService(services.NewTFIDFSimilarity())
	atsService := services.NewATSService(extractor, entityExtractor, scoringService)

	log.Printf("📄 Scoring %s against %q...\n", *resumePath, job.Title)
	result := atsService.ScoreResume(context.Background(), *resumePath, data, &job)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to render result: %v", err)
	}

	os.Stdout.Write(output)
	os.Stdout.Write([]byte("\n"))

	log.Printf("✅ Total score: %.2f\n", result.TotalScore)
}
