package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice         QuestionType = "MULTIPLE_CHOICE"
	TrueFalse              QuestionType = "TRUE_FALSE"
	FillBlank              QuestionType = "FILL_BLANK"
	VerbForm               QuestionType = "VERB_FORM"
	TextAnswer             QuestionType = "TEXT_ANSWER"
	Matching               QuestionType = "MATCHING"
	SentenceBuilding       QuestionType = "SENTENCE_BUILDING"
	SentenceTransformation QuestionType = "SENTENCE_TRANSFORMATION"
	ErrorCorrection        QuestionType = "ERROR_CORRECTION"
	CompleteConversation   QuestionType = "COMPLETE_CONVERSATION"
	Pronunciation          QuestionType = "PRONUNCIATION"
	ReadingComprehension   QuestionType = "READING_COMPREHENSION"
	OpenEnded              QuestionType = "OPEN_ENDED"
)

// AllQuestionTypes returns every supported question type.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		MultipleChoice,
		TrueFalse,
		FillBlank,
		VerbForm,
		TextAnswer,
		Matching,
		SentenceBuilding,
		SentenceTransformation,
		ErrorCorrection,
		CompleteConversation,
		Pronunciation,
		ReadingComprehension,
		OpenEnded,
	}
}

func (t QuestionType) IsValid() bool {
	for _, valid := range AllQuestionTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// Question is the stored definition of a single question. Metadata holds the
// type-specific correct-answer data as JSON; its shape is enforced at
// authoring time by the structural validator and decoded into one of the
// typed metadata structs before scoring.
type Question struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Type      QuestionType   `json:"type" gorm:"not null;size:40;index" validate:"required,question_type"`
	Text      string         `json:"text" gorm:"not null;type:text" validate:"required"`
	Points    int            `json:"points" gorm:"not null;default:1" validate:"min=1,max=100"`
	Metadata  datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	CreatedBy string         `json:"created_by" gorm:"size:64;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Submission records one graded lesson submission: the per-question results
// as produced by the grading engine, plus the aggregate outcome.
type Submission struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	LessonID    uint           `json:"lesson_id" gorm:"not null;index"`
	LearnerID   string         `json:"learner_id" gorm:"not null;size:64;index"`
	Results     datatypes.JSON `json:"results" gorm:"type:jsonb"` // []QuestionResult
	EarnedScore int            `json:"earned_score"`
	TotalScore  int            `json:"total_score"`
	Passed      bool           `json:"passed"`
	SubmittedAt time.Time      `json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
}
