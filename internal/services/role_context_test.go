package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoleContextRetrieve(t *testing.T) {
	ctx := context.Background()
	embedding := []float32{0.1, 0.2}

	t.Run("formats matching chunks", func(t *testing.T) {
		gemini := new(MockGemini)
		qdrant := new(MockQdrant)
		gemini.On("GenerateEmbedding", ctx, "Skills, expectations and interview topics for a Data Engineer").Return(embedding, nil)
		qdrant.On("SearchSimilar", ctx, embedding, DocTypeRoleGuide, 2).Return([]SearchResult{
			{Text: "Know Spark.", Score: 0.8},
		}, nil)

		out, err := NewRoleContextRetriever(gemini, qdrant, 2).Retrieve(ctx, "Data Engineer")

		require.NoError(t, err)
		assert.Equal(t, "--- Reference 1 (Score: 0.80) ---\nKnow Spark.", out)
	})

	t.Run("default limit and empty result", func(t *testing.T) {
		gemini := new(MockGemini)
		qdrant := new(MockQdrant)
		gemini.On("GenerateEmbedding", ctx, "Skills, expectations and interview topics for a Software Engineer").Return(embedding, nil)
		qdrant.On("SearchSimilar", ctx, embedding, DocTypeRoleGuide, defaultRoleContextLimit).Return([]SearchResult{}, nil)

		out, err := NewRoleContextRetriever(gemini, qdrant, 0).Retrieve(ctx, "")

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("embedding failure", func(t *testing.T) {
		gemini := new(MockGemini)
		qdrant := new(MockQdrant)
		gemini.On("GenerateEmbedding", ctx, "Skills, expectations and interview topics for a SRE").Return(nil, errors.New("quota"))

		_, err := NewRoleContextRetriever(gemini, qdrant, 1).Retrieve(ctx, "SRE")

		assert.Error(t, err)
		qdrant.AssertNotCalled(t, "SearchSimilar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
