package grading

import (
	"fmt"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// sentenceBuildingScorer grades word-reordering questions. The submission is
// the assembled sentence as a single string; grading is binary against the
// expected sentence.
type sentenceBuildingScorer struct{}

func (s *sentenceBuildingScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.SentenceBuildingMetadata)
	if !ok {
		return nil, fmt.Errorf("sentence building scorer: unexpected metadata type %T", metadata)
	}

	expected := meta.CorrectSentence
	if strings.TrimSpace(expected) == "" {
		// Legacy rows stored only the word list; the expected sentence is
		// the words joined in order.
		expected = strings.Join(meta.Words, " ")
	}
	if strings.TrimSpace(expected) == "" {
		return nil, fmt.Errorf("sentence building scorer: metadata has no correct sentence")
	}

	submitted, ok := answerAsString(answer)
	if !ok {
		result := invalidFormatResult(question, answer)
		result.CorrectAnswer = strPtr(expected)
		return result, nil
	}

	result := baseResult(question, submitted)
	result.CorrectAnswer = strPtr(expected)

	if strings.TrimSpace(submitted) == "" {
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackNoAnswer
		return result, nil
	}

	if sameAnswer(submitted, expected) {
		result.IsCorrect = boolPtr(true)
		result.Points = question.Points
		result.Feedback = feedbackCorrect
	} else {
		result.IsCorrect = boolPtr(false)
		result.Feedback = fmt.Sprintf("%s The correct answer is: %s", feedbackIncorrect, expected)
	}

	return result, nil
}

// sentenceTransformationScorer grades rewrite-the-sentence questions. The
// learner may submit either the full rewritten sentence or only the part
// after the given beginning phrase, so both readings are checked against
// every accepted answer.
type sentenceTransformationScorer struct{}

func (s *sentenceTransformationScorer) Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error) {
	meta, ok := metadata.(*models.SentenceTransformationMetadata)
	if !ok {
		return nil, fmt.Errorf("sentence transformation scorer: unexpected metadata type %T", metadata)
	}
	if len(meta.CorrectAnswers) == 0 {
		return nil, fmt.Errorf("sentence transformation scorer: metadata has no correct answers")
	}

	submitted, ok := answerAsString(answer)
	if !ok {
		result := invalidFormatResult(question, answer)
		result.CorrectAnswer = strPtr(meta.CorrectAnswers[0])
		return result, nil
	}

	result := baseResult(question, submitted)
	result.CorrectAnswer = strPtr(meta.CorrectAnswers[0])

	if strings.TrimSpace(submitted) == "" {
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackNoAnswer
		return result, nil
	}

	isCorrect := matchesAny(submitted, meta.CorrectAnswers)
	if !isCorrect && strings.TrimSpace(meta.BeginningPhrase) != "" {
		full := meta.BeginningPhrase + " " + submitted
		isCorrect = matchesAny(full, meta.CorrectAnswers)
	}

	if isCorrect {
		result.IsCorrect = boolPtr(true)
		result.Points = question.Points
		result.Feedback = feedbackCorrect
	} else {
		result.IsCorrect = boolPtr(false)
		result.Feedback = fmt.Sprintf("%s The correct answer is: %s", feedbackIncorrect, meta.CorrectAnswers[0])
	}

	return result, nil
}
