package services

import (
	"context"
	"fmt"
	"log/slog"
)

const defaultRoleContextLimit = 3

// RoleContextRetriever looks up reference material for a target role from
// the ingested role guides.
type RoleContextRetriever interface {
	Retrieve(ctx context.Context, role string) (string, error)
}

type roleContextRetriever struct {
	gemini  GeminiService
	qdrant  QdrantService
	prompts *PromptBuilder
	limit   int
	log     *slog.Logger
}

func NewRoleContextRetriever(gemini GeminiService, qdrant QdrantService, limit int) RoleContextRetriever {
	if limit <= 0 {
		limit = defaultRoleContextLimit
	}
	return &roleContextRetriever{
		gemini:  gemini,
		qdrant:  qdrant,
		prompts: NewPromptBuilder(),
		limit:   limit,
		log:     slog.With("component", "role_context"),
	}
}

// Retrieve returns "" when nothing relevant was ingested.
func (r *roleContextRetriever) Retrieve(ctx context.Context, role string) (string, error) {
	query := r.prompts.BuildRetrievalQuery(role)

	embedding, err := r.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to embed role query: %w", err)
	}

	results, err := r.qdrant.SearchSimilar(ctx, embedding, DocTypeRoleGuide, r.limit)
	if err != nil {
		return "", fmt.Errorf("failed to search role guides: %w", err)
	}

	r.log.Debug("Role guide chunks retrieved", "role", role, "count", len(results))
	return FormatRAGContext(results), nil
}
