package grading

import (
	"fmt"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// matchingScorer grades pair-matching questions. The submission maps each
// left-hand item to the right-hand item the learner chose; each pair earns
// credit independently.
type matchingScorer struct{}

func (s *matchingScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.MatchingMetadata)
	if !ok {
		return nil, fmt.Errorf("matching scorer: unexpected metadata type %T", metadata)
	}
	if len(meta.Pairs) == 0 {
		return nil, fmt.Errorf("matching scorer: metadata has no pairs")
	}

	answers, ok := answerAsStringMap(answer)
	if !ok {
		return invalidFormatResult(question, answer), nil
	}

	correctCount := 0
	userParts := make([]string, 0, len(meta.Pairs))
	correctParts := make([]string, 0, len(meta.Pairs))

	for _, pair := range meta.Pairs {
		submitted := lookupPair(answers, pair.Left)
		if submitted != "" && sameAnswer(submitted, pair.Right) {
			correctCount++
		}
		userParts = append(userParts, fmt.Sprintf("%s -> %s", pair.Left, submitted))
		correctParts = append(correctParts, fmt.Sprintf("%s -> %s", pair.Left, pair.Right))
	}

	total := len(meta.Pairs)
	result := baseResult(question, strings.Join(userParts, "; "))
	result.CorrectAnswer = strPtr(strings.Join(correctParts, "; "))
	result.Points = proportionalScore(correctCount, total, question.Points)
	result.IsCorrect = boolPtr(correctCount == total)

	switch {
	case correctCount == total:
		result.Feedback = feedbackCorrect
	case correctCount > 0:
		result.Feedback = fmt.Sprintf("%s %d of %d pairs matched.", feedbackPartial, correctCount, total)
	default:
		result.Feedback = feedbackIncorrect
	}

	return result, nil
}

// lookupPair resolves the submitted right-hand value for a left-hand item,
// first by exact key then by normalized comparison so minor casing or
// punctuation differences in the key do not void the pair.
func lookupPair(answers map[string]string, left string) string {
	if v, ok := answers[left]; ok {
		return v
	}
	for key, v := range answers {
		if sameAnswer(key, left) {
			return v
		}
	}
	return ""
}
