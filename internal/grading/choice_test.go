package grading

import (
	"testing"

	"github.com/lingodrill/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceQuestion(points int) *models.Question {
	return &models.Question{
		ID:     1,
		Type:   models.MultipleChoice,
		Text:   "Which word is a verb?",
		Points: points,
	}
}

func choiceMeta() *models.MultipleChoiceMetadata {
	return &models.MultipleChoiceMetadata{
		Options: []models.ChoiceOption{
			{Text: "Quickly", IsCorrect: false, Order: 1},
			{Text: "Run", IsCorrect: true, Order: 2},
			{Text: "Blue", IsCorrect: false, Order: 3},
		},
	}
}

func TestChoiceScorer_Score(t *testing.T) {
	scorer := &choiceScorer{}

	tests := []struct {
		name         string
		answer       string
		wantCorrect  bool
		wantPoints   int
		wantFeedback string
	}{
		{"matching text", `"Run"`, true, 5, feedbackCorrect},
		{"matching text case insensitive", `"run"`, true, 5, feedbackCorrect},
		{"wrong text", `"Blue"`, false, 0, "Incorrect. The correct answer is: Run"},
		{"index matching display order", `"2"`, true, 5, feedbackCorrect},
		{"index matching slice position", `"1"`, true, 5, feedbackCorrect},
		{"index of wrong option", `"3"`, false, 0, "Incorrect. The correct answer is: Run"},
		{"empty answer", `""`, false, 0, feedbackNoAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(choiceQuestion(5), choiceMeta(), []byte(tt.answer))
			require.NoError(t, err)
			require.NotNil(t, result.IsCorrect)
			assert.Equal(t, tt.wantCorrect, *result.IsCorrect)
			assert.Equal(t, tt.wantPoints, result.Points)
			assert.Equal(t, tt.wantFeedback, result.Feedback)
			require.NotNil(t, result.CorrectAnswer)
			assert.Equal(t, "Run", *result.CorrectAnswer)
		})
	}
}

func TestChoiceScorer_ObjectAnswerIsFormatError(t *testing.T) {
	scorer := &choiceScorer{}
	result, err := scorer.Score(choiceQuestion(5), choiceMeta(), []byte(`{"selected":"Run"}`))
	require.NoError(t, err)
	require.NotNil(t, result.IsCorrect)
	assert.False(t, *result.IsCorrect)
	assert.Equal(t, 0, result.Points)
	assert.Equal(t, feedbackInvalidFormat, result.Feedback)
}

func TestChoiceScorer_NoSingleCorrectOptionIsFault(t *testing.T) {
	scorer := &choiceScorer{}
	meta := &models.MultipleChoiceMetadata{
		Options: []models.ChoiceOption{
			{Text: "A", IsCorrect: true, Order: 1},
			{Text: "B", IsCorrect: true, Order: 2},
		},
	}
	result, err := scorer.Score(choiceQuestion(5), meta, []byte(`"A"`))
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestChoiceScorer_WrongMetadataTypeIsFault(t *testing.T) {
	scorer := &choiceScorer{}
	result, err := scorer.Score(choiceQuestion(5), &models.MatchingMetadata{}, []byte(`"A"`))
	assert.Error(t, err)
	assert.Nil(t, result)
}
