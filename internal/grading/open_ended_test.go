package grading

import (
	"strings"
	"testing"

	"github.com/lingodrill/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestOpenEndedScorer_PassesChecksAndStaysPending(t *testing.T) {
	scorer := &openEndedScorer{}
	question := &models.Question{ID: 10, Type: models.OpenEnded, Text: "Describe your weekend.", Points: 20}
	meta := &models.OpenEndedMetadata{MinWords: intPtr(10), MaxWords: intPtr(100)}

	answer := strings.Repeat("on saturday i visited my grandmother ", 7)
	result, err := scorer.Score(question, meta, []byte(`"`+strings.TrimSpace(answer)+`"`))
	require.NoError(t, err)

	// No automatic verdict: points stay zero until a reviewer grades it.
	assert.Nil(t, result.IsCorrect)
	assert.Equal(t, 0, result.Points)
	assert.Equal(t, feedbackPendingReview, result.Feedback)
}

func TestOpenEndedScorer_RejectsFailingChecks(t *testing.T) {
	scorer := &openEndedScorer{}
	question := &models.Question{ID: 10, Type: models.OpenEnded, Text: "Describe your weekend.", Points: 20}

	tests := []struct {
		name         string
		meta         *models.OpenEndedMetadata
		answer       string
		wantFeedback string
	}{
		{
			name:         "empty answer",
			meta:         &models.OpenEndedMetadata{},
			answer:       `""`,
			wantFeedback: feedbackNoAnswer,
		},
		{
			name:         "too short",
			meta:         &models.OpenEndedMetadata{},
			answer:       `"nice"`,
			wantFeedback: "Your answer is too short. Please write a more complete response.",
		},
		{
			name:         "below minimum words",
			meta:         &models.OpenEndedMetadata{MinWords: intPtr(10)},
			answer:       `"it was a good weekend"`,
			wantFeedback: "Your answer needs at least 10 words (you wrote 5).",
		},
		{
			name:         "above maximum words",
			meta:         &models.OpenEndedMetadata{MaxWords: intPtr(3)},
			answer:       `"it was a good weekend"`,
			wantFeedback: "Your answer must not exceed 3 words (you wrote 5).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(question, tt.meta, []byte(tt.answer))
			require.NoError(t, err)
			require.NotNil(t, result.IsCorrect)
			assert.False(t, *result.IsCorrect)
			assert.Equal(t, 0, result.Points)
			assert.Equal(t, tt.wantFeedback, result.Feedback)
		})
	}
}
