package grading

import (
	"testing"

	"github.com/lingodrill/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentenceBuildingScorer_Score(t *testing.T) {
	scorer := &sentenceBuildingScorer{}
	question := &models.Question{ID: 7, Type: models.SentenceBuilding, Text: "Build a sentence.", Points: 5}
	meta := &models.SentenceBuildingMetadata{
		Words:           []string{"always", "she", "early", "arrives"},
		CorrectSentence: "She always arrives early.",
	}

	t.Run("exact sentence", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`"She always arrives early."`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
		assert.Equal(t, 5, result.Points)
	})

	t.Run("punctuation and casing ignored", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`"she always arrives early"`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
	})

	t.Run("wrong order", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`"She arrives always early."`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, 0, result.Points)
	})

	t.Run("falls back to joined words when sentence missing", func(t *testing.T) {
		legacy := &models.SentenceBuildingMetadata{Words: []string{"I", "like", "tea"}}
		result, err := scorer.Score(question, legacy, []byte(`"I like tea"`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
	})
}

func TestSentenceTransformationScorer_Score(t *testing.T) {
	scorer := &sentenceTransformationScorer{}
	question := &models.Question{ID: 8, Type: models.SentenceTransformation, Text: "Rewrite the sentence.", Points: 5}
	meta := &models.SentenceTransformationMetadata{
		OriginalSentence: "I regret not seeing him.",
		BeginningPhrase:  "I wish",
		CorrectAnswers:   []string{"I wish I had seen him", "I wish that I had seen him"},
	}

	t.Run("full rewritten sentence", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`"I wish I had seen him."`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
		assert.Equal(t, 5, result.Points)
	})

	t.Run("continuation after beginning phrase", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`"I had seen him"`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
		assert.Equal(t, 5, result.Points)
	})

	t.Run("alternative accepted answer", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`"that I had seen him"`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
	})

	t.Run("wrong transformation", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`"I saw him"`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, 0, result.Points)
	})

	t.Run("empty answer", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`""`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, feedbackNoAnswer, result.Feedback)
	})
}

func TestReadingComprehensionScorer_Score(t *testing.T) {
	scorer := &readingComprehensionScorer{}
	question := &models.Question{ID: 9, Type: models.ReadingComprehension, Text: "Complete the passage.", Points: 8}
	meta := &models.ReadingComprehensionMetadata{
		Passage: "Tom ___ to school every day. He ___ the bus.",
		Blanks: []models.ReadingBlank{
			{Position: 1, Options: []string{"goes", "go"}, CorrectAnswer: "goes"},
			{Position: 2, Options: []string{"take", "takes"}, CorrectAnswer: "takes"},
		},
	}

	t.Run("all gaps correct", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`{"1":"goes","2":"takes"}`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
		assert.Equal(t, 8, result.Points)
	})

	t.Run("one gap wrong earns half", func(t *testing.T) {
		result, err := scorer.Score(question, meta, []byte(`{"1":"goes","2":"take"}`))
		require.NoError(t, err)
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, 4, result.Points)
	})
}
