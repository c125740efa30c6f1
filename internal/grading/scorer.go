package grading

import (
	"encoding/json"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// Feedback strings shared by every scorer. These are learner-facing and part
// of the engine's contract with the front end.
const (
	feedbackCorrect         = "Correct! Well done."
	feedbackIncorrect       = "Incorrect."
	feedbackPartial         = "Partially correct."
	feedbackInvalidFormat   = "Invalid answer format for this question."
	feedbackNoAnswer        = "No answer entered."
	feedbackDataMissing     = "Question data is missing or invalid."
	feedbackSystemError     = "A system error occurred while grading this question."
	feedbackNotAutoGradable = "This question type is not supported for automatic grading."
	feedbackPendingReview   = "Your answer has been submitted for manual review."
)

// Scorer grades one submitted answer against decoded question metadata.
//
// metadata is the typed struct produced by models.DecodeMetadata for the
// question's type. A scorer must handle any malformed answer payload by
// returning an incorrect result, never by panicking; a returned error is a
// grading fault that the processor downgrades to a safe system-error result.
type Scorer interface {
	Score(question *models.Question, metadata interface{}, answer models.AnswerPayload) (*models.QuestionResult, error)
}

// newRegistry builds the scorer lookup table once. Aliased types point at
// the same scorer instance: TRUE_FALSE and COMPLETE_CONVERSATION reuse the
// multiple-choice scorer, VERB_FORM reuses the fill-blank scorer.
func newRegistry() map[models.QuestionType]Scorer {
	choice := &choiceScorer{}
	fillBlank := &fillBlankScorer{}

	return map[models.QuestionType]Scorer{
		models.MultipleChoice:         choice,
		models.TrueFalse:              choice,
		models.CompleteConversation:   choice,
		models.FillBlank:              fillBlank,
		models.VerbForm:               fillBlank,
		models.TextAnswer:             &textAnswerScorer{},
		models.Matching:               &matchingScorer{},
		models.SentenceBuilding:       &sentenceBuildingScorer{},
		models.SentenceTransformation: &sentenceTransformationScorer{},
		models.ErrorCorrection:        &errorCorrectionScorer{},
		models.Pronunciation:          &pronunciationScorer{},
		models.ReadingComprehension:   &readingComprehensionScorer{},
		models.OpenEnded:              &openEndedScorer{},
	}
}

// Payload parsing helpers shared by scorers.

// answerAsString extracts a plain string submission. Accepts a JSON string
// or a bare unquoted value; returns ok=false for objects and arrays.
func answerAsString(answer models.AnswerPayload) (string, bool) {
	if len(answer) == 0 {
		return "", true
	}
	var s string
	if err := json.Unmarshal(answer, &s); err == nil {
		return s, true
	}
	trimmed := strings.TrimSpace(string(answer))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "", false
	}
	return trimmed, true
}

// answerAsStringMap extracts a string-keyed object submission.
func answerAsStringMap(answer models.AnswerPayload) (map[string]string, bool) {
	if len(answer) == 0 {
		return nil, false
	}
	var m map[string]string
	if err := json.Unmarshal(answer, &m); err != nil {
		return nil, false
	}
	return m, true
}

// Result construction helpers.

func boolPtr(v bool) *bool    { return &v }
func strPtr(s string) *string { return &s }

func baseResult(question *models.Question, userAnswer string) *models.QuestionResult {
	return &models.QuestionResult{
		QuestionID:   question.ID,
		QuestionText: question.Text,
		UserAnswer:   userAnswer,
	}
}

func invalidFormatResult(question *models.Question, answer models.AnswerPayload) *models.QuestionResult {
	result := baseResult(question, string(answer))
	result.IsCorrect = boolPtr(false)
	result.Points = 0
	result.Feedback = feedbackInvalidFormat
	return result
}
