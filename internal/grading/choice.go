package grading

import (
	"fmt"
	"strconv"

	"github.com/lingodrill/grading-service/internal/models"
)

// choiceScorer grades multiple-choice questions and the types that alias it
// (true/false, complete-conversation). The submission may be the selected
// option's text or its numeric index; grading is binary.
type choiceScorer struct{}

func (s *choiceScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.MultipleChoiceMetadata)
	if !ok {
		return nil, fmt.Errorf("choice scorer: unexpected metadata type %T", metadata)
	}

	correct := meta.CorrectOption()
	if correct == nil {
		return nil, fmt.Errorf("choice scorer: metadata has no single correct option")
	}

	submitted, ok := answerAsString(answer)
	if !ok {
		result := invalidFormatResult(question, answer)
		result.CorrectAnswer = strPtr(correct.Text)
		return result, nil
	}

	result := baseResult(question, submitted)
	result.CorrectAnswer = strPtr(correct.Text)

	if submitted == "" {
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackNoAnswer
		return result, nil
	}

	isCorrect := sameAnswer(submitted, correct.Text)
	if !isCorrect {
		if index, err := strconv.Atoi(submitted); err == nil {
			isCorrect = s.matchesByIndex(meta, correct, index)
		}
	}

	if isCorrect {
		result.IsCorrect = boolPtr(true)
		result.Points = question.Points
		result.Feedback = feedbackCorrect
	} else {
		result.IsCorrect = boolPtr(false)
		result.Feedback = fmt.Sprintf("%s The correct answer is: %s", feedbackIncorrect, correct.Text)
	}

	return result, nil
}

// matchesByIndex accepts a numeric submission against the correct option's
// display order, falling back to its 0-based slice position for callers that
// send raw positions.
func (s *choiceScorer) matchesByIndex(meta *models.MultipleChoiceMetadata, correct *models.ChoiceOption, index int) bool {
	if index == correct.Order {
		return true
	}
	for i := range meta.Options {
		if &meta.Options[i] == correct {
			return index == i
		}
	}
	return false
}
