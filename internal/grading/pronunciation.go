package grading

import (
	"fmt"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// pronunciationScorer grades sound-classification questions. The submission
// maps each word to the sound category the learner picked; credit is
// proportional across the words listed in the answer key.
type pronunciationScorer struct{}

func (s *pronunciationScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.PronunciationMetadata)
	if !ok {
		return nil, fmt.Errorf("pronunciation scorer: unexpected metadata type %T", metadata)
	}
	if len(meta.Classifications) == 0 {
		return nil, fmt.Errorf("pronunciation scorer: metadata has no classifications")
	}

	answers, ok := answerAsStringMap(answer)
	if !ok {
		return invalidFormatResult(question, answer), nil
	}

	correctCount := 0
	userParts := make([]string, 0, len(meta.Classifications))
	correctParts := make([]string, 0, len(meta.Classifications))

	for _, classification := range meta.Classifications {
		submitted := lookupPair(answers, classification.Word)
		if submitted != "" && sameAnswer(submitted, classification.Category) {
			correctCount++
		}
		userParts = append(userParts, fmt.Sprintf("%s: %s", classification.Word, submitted))
		correctParts = append(correctParts, fmt.Sprintf("%s: %s", classification.Word, classification.Category))
	}

	total := len(meta.Classifications)
	result := baseResult(question, strings.Join(userParts, "; "))
	result.CorrectAnswer = strPtr(strings.Join(correctParts, "; "))
	result.Points = proportionalScore(correctCount, total, question.Points)
	result.IsCorrect = boolPtr(correctCount == total)

	switch {
	case correctCount == total:
		result.Feedback = feedbackCorrect
	case correctCount > 0:
		result.Feedback = fmt.Sprintf("%s %d of %d words classified correctly.", feedbackPartial, correctCount, total)
	default:
		result.Feedback = feedbackIncorrect
	}

	return result, nil
}
