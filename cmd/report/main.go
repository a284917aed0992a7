package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"binakata/internal/config"
	"binakata/internal/database"
	"binakata/internal/report"
	"binakata/internal/repository"
)

func main() {
	output := flag.String("output", "", "Output file path (default: binakata_report_YYYYMMDD_HHMMSS.xlsx)")
	parentEmail := flag.String("parent", "", "Only export this parent's children (default: all parents)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var parentID int64
	if *parentEmail != "" {
		user, err := repository.NewUserRepository(db).GetUserByEmail(ctx, *parentEmail)
		if err != nil {
			log.Fatalf("Failed to look up parent: %v", err)
		}
		if user == nil {
			log.Fatalf("No parent with email %s", *parentEmail)
		}
		parentID = user.ID
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = fmt.Sprintf("binakata_report_%s.xlsx", time.Now().Format("20060102_150405"))
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}

	log.Printf("Exporting report to: %s", outputPath)
	summary, err := report.Write(ctx, file, repository.NewAssessmentRepository(db), repository.NewProgressRepository(db), parentID, cfg.Location)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outputPath)
		log.Fatalf("Export failed: %v", err)
	}

	log.Printf("Export complete! %d assessments, %d progress rows", summary.Assessments, summary.Progress)
}
