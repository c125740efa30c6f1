package grading

import (
	"testing"

	"github.com/lingodrill/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillBlankMeta() *models.FillBlankMetadata {
	return &models.FillBlankMetadata{
		Blanks: []models.BlankDefinition{
			{Position: 1, CorrectAnswers: []string{"went"}},
			{Position: 2, CorrectAnswers: []string{"has gone", "had gone"}},
			{Position: 3, CorrectAnswers: []string{"is going"}},
		},
	}
}

func TestFillBlankScorer_AllCorrect(t *testing.T) {
	scorer := &fillBlankScorer{}
	question := &models.Question{ID: 2, Type: models.FillBlank, Text: "Conjugate.", Points: 9}

	result, err := scorer.Score(question, fillBlankMeta(), []byte(`{"1":"went","2":"had gone","3":"is going"}`))
	require.NoError(t, err)
	require.NotNil(t, result.IsCorrect)
	assert.True(t, *result.IsCorrect)
	assert.Equal(t, 9, result.Points)
	assert.Equal(t, feedbackCorrect, result.Feedback)
}

func TestFillBlankScorer_PartialCredit(t *testing.T) {
	scorer := &fillBlankScorer{}
	question := &models.Question{ID: 2, Type: models.FillBlank, Text: "Conjugate.", Points: 9}

	// 2 of 3 blanks correct on a 9-point question: round(2/3*9) = 6.
	result, err := scorer.Score(question, fillBlankMeta(), []byte(`{"1":"went","2":"has gone","3":"goes"}`))
	require.NoError(t, err)
	require.NotNil(t, result.IsCorrect)
	assert.False(t, *result.IsCorrect)
	assert.Equal(t, 6, result.Points)
	assert.Contains(t, result.Feedback, feedbackPartial)
	assert.Contains(t, result.Feedback, "2 of 3")
}

func TestFillBlankScorer_ZeroBasedKeyAccepted(t *testing.T) {
	scorer := &fillBlankScorer{}
	question := &models.Question{ID: 2, Type: models.FillBlank, Text: "Conjugate.", Points: 9}
	meta := &models.FillBlankMetadata{
		Blanks: []models.BlankDefinition{
			{Position: 1, CorrectAnswers: []string{"went"}},
		},
	}

	// A key shifted down by one still resolves through the position-1 lookup.
	result, err := scorer.Score(question, meta, []byte(`{"0":"went"}`))
	require.NoError(t, err)
	require.NotNil(t, result.IsCorrect)
	assert.True(t, *result.IsCorrect)
	assert.Equal(t, 9, result.Points)
}

func TestFillBlankScorer_NonMapAnswerIsFormatError(t *testing.T) {
	scorer := &fillBlankScorer{}
	question := &models.Question{ID: 2, Type: models.FillBlank, Text: "Conjugate.", Points: 9}

	result, err := scorer.Score(question, fillBlankMeta(), []byte(`"went"`))
	require.NoError(t, err)
	require.NotNil(t, result.IsCorrect)
	assert.False(t, *result.IsCorrect)
	assert.Equal(t, 0, result.Points)
	assert.Equal(t, feedbackInvalidFormat, result.Feedback)
}

func TestTextAnswerScorer_Score(t *testing.T) {
	scorer := &textAnswerScorer{}
	question := &models.Question{ID: 3, Type: models.TextAnswer, Text: "Past tense of go?", Points: 4}
	meta := &models.TextAnswerMetadata{
		CorrectAnswer:      "went",
		AlternativeAnswers: []string{"he went"},
	}

	tests := []struct {
		name         string
		answer       string
		wantCorrect  bool
		wantPoints   int
		wantFeedback string
	}{
		{"primary answer", `"went"`, true, 4, feedbackCorrect},
		{"alternative answer", `"He went"`, true, 4, feedbackCorrect},
		{"wrong answer", `"goed"`, false, 0, "Incorrect. The correct answer is: went"},
		{"empty answer", `""`, false, 0, feedbackNoAnswer},
		{"whitespace only answer", `"   "`, false, 0, feedbackNoAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(question, meta, []byte(tt.answer))
			require.NoError(t, err)
			require.NotNil(t, result.IsCorrect)
			assert.Equal(t, tt.wantCorrect, *result.IsCorrect)
			assert.Equal(t, tt.wantPoints, result.Points)
			assert.Equal(t, tt.wantFeedback, result.Feedback)
		})
	}
}

func TestTextAnswerScorer_NoAcceptedAnswersIsFault(t *testing.T) {
	scorer := &textAnswerScorer{}
	question := &models.Question{ID: 3, Type: models.TextAnswer, Text: "?", Points: 4}

	result, err := scorer.Score(question, &models.TextAnswerMetadata{}, []byte(`"went"`))
	assert.Error(t, err)
	assert.Nil(t, result)
}
