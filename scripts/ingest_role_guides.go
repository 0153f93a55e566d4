package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"skillbridge/readiness-api/internal/config"
	"skillbridge/readiness-api/internal/services"
	"skillbridge/readiness-api/pkg/logger"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

type roleGuide struct {
	Path  string
	DocID string
	Role  string
}

var guides = []roleGuide{
	{Path: "./reference_docs/roles/software_engineer.pdf", DocID: "guide_software_engineer", Role: "Software Engineer"},
	{Path: "./reference_docs/roles/data_analyst.pdf", DocID: "guide_data_analyst", Role: "Data Analyst"},
	{Path: "./reference_docs/roles/data_scientist.pdf", DocID: "guide_data_scientist", Role: "Data Scientist"},
	{Path: "./reference_docs/roles/frontend_developer.pdf", DocID: "guide_frontend_developer", Role: "Frontend Developer"},
	{Path: "./reference_docs/roles/backend_developer.pdf", DocID: "guide_backend_developer", Role: "Backend Developer"},
	{Path: "./reference_docs/roles/devops_engineer.pdf", DocID: "guide_devops_engineer", Role: "DevOps Engineer"},
}

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.Env, cfg.Server.LogLevel)

	slog.Info("🚀 Starting role guide ingestion...")

	if cfg.Gemini.APIKey == "" || cfg.Qdrant.URL == "" {
		slog.Error("❌ GEMINI_API_KEY and QDRANT_URL must both be set")
		os.Exit(1)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		slog.Error("❌ Failed to initialize Gemini", "error", err)
		os.Exit(1)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		slog.Error("❌ Failed to initialize Qdrant", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := qdrantService.InitCollection(ctx); err != nil {
		slog.Error("❌ Failed to initialize collection", "error", err)
		os.Exit(1)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	successCount := 0
	failCount := 0

	for _, guide := range guides {
		log := slog.With("role", guide.Role, "path", guide.Path)
		log.Info("📄 Processing role guide")

		if _, err := os.Stat(guide.Path); os.IsNotExist(err) {
			log.Warn("⚠️  File not found, skipping")
			failCount++
			continue
		}

		if err := ingest(ctx, log, guide, pdfParser, chunker, geminiService, qdrantService); err != nil {
			log.Error("❌ Ingestion failed", "error", err)
			failCount++
			continue
		}

		successCount++
	}

	slog.Info(strings.Repeat("=", 60))
	slog.Info("📊 Ingestion summary", "successful", successCount, "failed", failCount)

	if failCount > 0 {
		slog.Warn("⚠️  Some role guides failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	slog.Info("✅ All role guides ingested successfully!")
}

// ingest replaces every chunk stored under guide.DocID.
func ingest(
	ctx context.Context,
	log *slog.Logger,
	guide roleGuide,
	parser services.PDFParserService,
	chunker services.TextChunker,
	gemini services.GeminiService,
	qdrant services.QdrantService,
) error {
	content, err := parser.ExtractTextWithMetaData(guide.Path)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}
	log.Info("✅ Extracted text", "pages", content.PageCount, "chars", len(content.Text))

	chunks := chunker.ChunkText(services.CleanText(content.Text), chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("no text found in %s", guide.Path)
	}
	log.Info("✂️  Chunked text", "chunks", len(chunks))

	if err := qdrant.DeleteDocument(ctx, guide.DocID); err != nil {
		return fmt.Errorf("failed to clear previous chunks: %w", err)
	}

	stored := 0
	for i, chunk := range chunks {
		embedding, err := gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Error("❌ Failed to generate embedding", "chunk", i+1, "error", err)
			continue
		}

		doc := services.RoleGuideDocument{
			DocID:   guide.DocID,
			DocType: services.DocTypeRoleGuide,
			Role:    guide.Role,
			Text:    chunk,
		}
		if err := qdrant.UpsertDocument(ctx, doc, embedding); err != nil {
			log.Error("❌ Failed to store chunk", "chunk", i+1, "error", err)
			continue
		}
		stored++

		if (i+1)%5 == 0 || i == len(chunks)-1 {
			log.Info("📊 Progress", "stored", stored, "total", len(chunks))
		}
	}

	if stored == 0 {
		return fmt.Errorf("no chunks stored")
	}
	return nil
}
