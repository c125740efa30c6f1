package grading

import (
	"encoding/json"
	"fmt"

	"github.com/lingodrill/grading-service/internal/models"
)

// errorCorrectionScorer grades find-and-fix questions. The submission names
// the erroneous fragment and its correction; grading is binary, both halves
// must match to earn the points.
type errorCorrectionScorer struct{}

func (s *errorCorrectionScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.ErrorCorrectionMetadata)
	if !ok {
		return nil, fmt.Errorf("error correction scorer: unexpected metadata type %T", metadata)
	}

	var submitted models.ErrorCorrectionAnswer
	if len(answer) == 0 {
		return invalidFormatResult(question, answer), nil
	}
	if err := json.Unmarshal(answer, &submitted); err != nil {
		return invalidFormatResult(question, answer), nil
	}

	correctCount := 0
	if sameAnswer(submitted.Error, meta.ErrorText) {
		correctCount++
	}
	if sameAnswer(submitted.Correction, meta.Correction) {
		correctCount++
	}

	result := baseResult(question, fmt.Sprintf("error: %s; correction: %s", submitted.Error, submitted.Correction))
	result.CorrectAnswer = strPtr(fmt.Sprintf("error: %s; correction: %s", meta.ErrorText, meta.Correction))
	result.IsCorrect = boolPtr(correctCount == 2)

	switch correctCount {
	case 2:
		result.Points = question.Points
		result.Feedback = feedbackCorrect
	case 1:
		result.Feedback = "Not quite. You found the error or the fix, but not both."
	default:
		result.Feedback = feedbackIncorrect
	}

	return result, nil
}
