package grading

import (
	"fmt"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// Minimum characters a free-text response must contain before it is accepted
// for manual review.
const openEndedMinLength = 10

// openEndedScorer performs mechanical checks on free-text responses. It never
// judges content: a response that passes the checks is left pending with no
// verdict and zero points, and a reviewer assigns the grade later. A response
// that fails a check is rejected outright.
type openEndedScorer struct{}

func (s *openEndedScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.OpenEndedMetadata)
	if !ok {
		return nil, fmt.Errorf("open ended scorer: unexpected metadata type %T", metadata)
	}

	submitted, ok := answerAsString(answer)
	if !ok {
		return invalidFormatResult(question, answer), nil
	}

	result := baseResult(question, submitted)
	if meta.SuggestedAnswer != "" {
		result.CorrectAnswer = strPtr(meta.SuggestedAnswer)
	}

	trimmed := strings.TrimSpace(submitted)
	if trimmed == "" {
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackNoAnswer
		return result, nil
	}
	if len(trimmed) < openEndedMinLength {
		result.IsCorrect = boolPtr(false)
		result.Feedback = "Your answer is too short. Please write a more complete response."
		return result, nil
	}

	wordCount := len(strings.Fields(trimmed))
	if meta.MinWords != nil && wordCount < *meta.MinWords {
		result.IsCorrect = boolPtr(false)
		result.Feedback = fmt.Sprintf("Your answer needs at least %d words (you wrote %d).", *meta.MinWords, wordCount)
		return result, nil
	}
	if meta.MaxWords != nil && wordCount > *meta.MaxWords {
		result.IsCorrect = boolPtr(false)
		result.Feedback = fmt.Sprintf("Your answer must not exceed %d words (you wrote %d).", *meta.MaxWords, wordCount)
		return result, nil
	}

	// Checks passed: no automatic verdict, no automatic points.
	result.IsCorrect = nil
	result.Points = 0
	result.Feedback = feedbackPendingReview
	return result, nil
}
