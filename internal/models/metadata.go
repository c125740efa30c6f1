package models

import (
	"encoding/json"
	"fmt"
)

// Typed metadata structs, one per question type. Each is the decoded form of
// the Metadata JSON column for that type; the discriminant is Question.Type.
// Wire field names are camelCase because the authoring UI and the content
// importer both produce that shape.

type ChoiceOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

// MultipleChoiceMetadata also backs TRUE_FALSE and COMPLETE_CONVERSATION,
// which reuse the multiple-choice scorer.
type MultipleChoiceMetadata struct {
	Options []ChoiceOption `json:"options"`
}

// CorrectOption returns the single option flagged correct, or nil when the
// metadata is malformed (zero or several flagged options).
func (m *MultipleChoiceMetadata) CorrectOption() *ChoiceOption {
	var found *ChoiceOption
	for i := range m.Options {
		if m.Options[i].IsCorrect {
			if found != nil {
				return nil
			}
			found = &m.Options[i]
		}
	}
	return found
}

type BlankDefinition struct {
	Position       int      `json:"position"`
	CorrectAnswers []string `json:"correctAnswers"`
}

// FillBlankMetadata also backs VERB_FORM.
type FillBlankMetadata struct {
	Blanks []BlankDefinition `json:"blanks"`
}

// TextAnswerMetadata is the flattened single-answer variant. CorrectAnswer is
// the primary accepted answer; AlternativeAnswers widens the accepted set.
type TextAnswerMetadata struct {
	CorrectAnswer      string   `json:"correctAnswer"`
	AlternativeAnswers []string `json:"alternativeAnswers,omitempty"`
}

// AcceptedAnswers returns every accepted answer for the question.
func (m *TextAnswerMetadata) AcceptedAnswers() []string {
	answers := make([]string, 0, 1+len(m.AlternativeAnswers))
	if m.CorrectAnswer != "" {
		answers = append(answers, m.CorrectAnswer)
	}
	answers = append(answers, m.AlternativeAnswers...)
	return answers
}

type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Order int    `json:"order"`
}

type MatchingMetadata struct {
	Pairs []MatchPair `json:"pairs"`
}

type SentenceBuildingMetadata struct {
	Words           []string `json:"words"`
	CorrectSentence string   `json:"correctSentence"`
}

type SentenceTransformationMetadata struct {
	OriginalSentence string   `json:"originalSentence"`
	BeginningPhrase  string   `json:"beginningPhrase"`
	CorrectAnswers   []string `json:"correctAnswers"`
}

type ErrorCorrectionMetadata struct {
	ErrorText  string `json:"errorText"`
	Correction string `json:"correction"`
}

type WordClassification struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

type PronunciationMetadata struct {
	Words           []string             `json:"words"`
	Categories      []string             `json:"categories"`
	Classifications []WordClassification `json:"classifications"`
}

type ReadingBlank struct {
	Position      int      `json:"position"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type ReadingComprehensionMetadata struct {
	Passage string         `json:"passage"`
	Blanks  []ReadingBlank `json:"blanks"`
}

type OpenEndedMetadata struct {
	SuggestedAnswer  string `json:"suggestedAnswer,omitempty"`
	MinWords         *int   `json:"minWords,omitempty"`
	MaxWords         *int   `json:"maxWords,omitempty"`
	TimeLimitSeconds *int   `json:"timeLimitSeconds,omitempty"`
}

// DecodeMetadata unmarshals raw metadata JSON into the typed struct for the
// given question type. Types that share a scorer share a metadata shape
// (TRUE_FALSE and COMPLETE_CONVERSATION decode as multiple choice, VERB_FORM
// as fill blank).
func DecodeMetadata(questionType QuestionType, raw []byte) (interface{}, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("metadata is empty")
	}

	decode := func(dest interface{}) (interface{}, error) {
		if err := json.Unmarshal(raw, dest); err != nil {
			return nil, fmt.Errorf("invalid %s metadata: %w", questionType, err)
		}
		return dest, nil
	}

	switch questionType {
	case MultipleChoice, TrueFalse, CompleteConversation:
		return decode(&MultipleChoiceMetadata{})
	case FillBlank, VerbForm:
		return decode(&FillBlankMetadata{})
	case TextAnswer:
		return decode(&TextAnswerMetadata{})
	case Matching:
		return decode(&MatchingMetadata{})
	case SentenceBuilding:
		return decode(&SentenceBuildingMetadata{})
	case SentenceTransformation:
		return decode(&SentenceTransformationMetadata{})
	case ErrorCorrection:
		return decode(&ErrorCorrectionMetadata{})
	case Pronunciation:
		return decode(&PronunciationMetadata{})
	case ReadingComprehension:
		return decode(&ReadingComprehensionMetadata{})
	case OpenEnded:
		return decode(&OpenEndedMetadata{})
	default:
		return nil, fmt.Errorf("unsupported question type: %s", questionType)
	}
}
