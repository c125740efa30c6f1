package grading

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// fillBlankScorer grades fill-in-blank questions and the verb-form alias.
// The submission is a map of blank position to answer text; each blank earns
// credit independently and the score is proportional.
type fillBlankScorer struct{}

func (s *fillBlankScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.FillBlankMetadata)
	if !ok {
		return nil, fmt.Errorf("fill blank scorer: unexpected metadata type %T", metadata)
	}
	if len(meta.Blanks) == 0 {
		return nil, fmt.Errorf("fill blank scorer: metadata has no blanks")
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
		if found && matchesAny(submitted, blank.CorrectAnswers) {
			correctCount++
		}
		userParts = append(userParts, fmt.Sprintf("%d: %s", blank.Position, submitted))
		correctParts = append(correctParts, fmt.Sprintf("%d: %s", blank.Position, strings.Join(blank.CorrectAnswers, " / ")))
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
		result.Feedback = fmt.Sprintf("%s %d of %d blanks correct.", feedbackPartial, correctCount, total)
	default:
		result.Feedback = feedbackIncorrect
	}

	return result, nil
}

// lookupByPosition resolves a blank's submitted answer, tolerating 0- vs
// 1-based indexing drift between callers by trying both position and
// position-1 as keys. This is a migration shim for an upstream
// inconsistency, not a contract; stored positions are canonically 1-based.
func lookupByPosition(answers map[string]string, position int) (string, bool) {
	if v, ok := answers[strconv.Itoa(position)]; ok {
		return v, true
	}
	if v, ok := answers[strconv.Itoa(position-1)]; ok {
		return v, true
	}
	return "", false
}

// textAnswerScorer grades the flattened single-answer variant. The
// submission is a plain string; an empty submission is "no answer entered",
// never a format error.
type textAnswerScorer struct{}

func (s *textAnswerScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.TextAnswerMetadata)
	if !ok {
		return nil, fmt.Errorf("text answer scorer: unexpected metadata type %T", metadata)
	}

	accepted := meta.AcceptedAnswers()
	if len(accepted) == 0 {
		return nil, fmt.Errorf("text answer scorer: metadata has no accepted answers")
	}

	submitted, _ := answerAsString(answer)
	result := baseResult(question, submitted)
	result.CorrectAnswer = strPtr(meta.CorrectAnswer)

	if strings.TrimSpace(submitted) == "" {
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackNoAnswer
		return result, nil
	}

	if matchesAny(submitted, accepted) {
		result.IsCorrect = boolPtr(true)
		result.Points = question.Points
		result.Feedback = feedbackCorrect
	} else {
		result.IsCorrect = boolPtr(false)
		result.Feedback = fmt.Sprintf("%s The correct answer is: %s", feedbackIncorrect, meta.CorrectAnswer)
	}

	return result, nil
}
