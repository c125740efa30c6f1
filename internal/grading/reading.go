package grading

import (
	"fmt"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// readingComprehensionScorer grades passage-with-gaps questions. The
// submission maps gap positions to the chosen option; each gap earns credit
// independently.
type readingComprehensionScorer struct{}

func (s *readingComprehensionScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.ReadingComprehensionMetadata)
	if !ok {
		return nil, fmt.Errorf("reading comprehension scorer: unexpected metadata type %T", metadata)
	}
	if len(meta.Blanks) == 0 {
		return nil, fmt.Errorf("reading comprehension scorer: metadata has no blanks")
	}

	answers, ok := answerAsStringMap(answer)
	if !ok {
		return invalidFormatResult(question, answer), nil
	}

	correctCount := 0
	userParts := make([]string, 0, len(meta.Blanks))
	correctParts := make([]string, 0, len(meta.Blanks))

	for _, blank := range meta.Blanks {
		submitted, found := lookupByPosition(answers, blank.Position)
		if found && sameAnswer(submitted, blank.CorrectAnswer) {
			correctCount++
		}
		userParts = append(userParts, fmt.Sprintf("%d: %s", blank.Position, submitted))
		correctParts = append(correctParts, fmt.Sprintf("%d: %s", blank.Position, blank.CorrectAnswer))
	}

	total := len(meta.Blanks)
	result := baseResult(question, strings.Join(userParts, "; "))
	result.CorrectAnswer = strPtr(strings.Join(correctParts, "; "))
	result.Points = proportionalScore(correctCount, total, question.Points)
	result.IsCorrect = boolPtr(correctCount == total)

	switch {
	case correctCount == total:
		result.Feedback = feedbackCorrect
	case correctCount > 0:
		result.Feedback = fmt.Sprintf("%s %d of %d gaps correct.", feedbackPartial, correctCount, total)
	default:
		result.Feedback = feedbackIncorrect
	}

	return result, nil
}
