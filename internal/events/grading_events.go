package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of grading events
type EventType string

const (
	// Submission events
	EventSubmissionGraded EventType = "submission.graded"

	// Grading events
	EventManualGradingRequired EventType = "grading.manual_required"

	// Content events
	EventQuestionsImported EventType = "questions.imported"
)

// GradingEvent is the base event structure for all grading events
type GradingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type SubmissionGradedEvent struct {
	SubmissionID uint      `json:"submission_id"`
	LessonID     uint      `json:"lesson_id"`
	LearnerID    string    `json:"learner_id"`
	EarnedScore  int       `json:"earned_score"`
	TotalScore   int       `json:"total_score"`
	Percentage   float64   `json:"percentage"`
	Passed       bool      `json:"passed"`
	PendingCount int       `json:"pending_count"`
	GradedAt     time.Time `json:"graded_at"`
}

type ManualGradingRequiredEvent struct {
	SubmissionID uint      `json:"submission_id"`
	LessonID     uint      `json:"lesson_id"`
	LearnerID    string    `json:"learner_id"`
	QuestionIDs  []uint    `json:"question_ids"`
	RequiredAt   time.Time `json:"required_at"`
}

type QuestionsImportedEvent struct {
	CreatedBy    string    `json:"created_by"`
	SuccessCount int       `json:"success_count"`
	ErrorCount   int       `json:"error_count"`
	ImportedAt   time.Time `json:"imported_at"`
}

// Event factory functions

func NewSubmissionGradedEvent(submissionID, lessonID uint, learnerID string, earned, total int, percentage float64, passed bool, pendingCount int) *GradingEvent {
	return &GradingEvent{
		ID:        generateEventID(),
		Type:      EventSubmissionGraded,
		Timestamp: time.Now(),
		Source:    "grading-service",
		Version:   "1.0",
		Data: SubmissionGradedEvent{
			SubmissionID: submissionID,
			LessonID:     lessonID,
			LearnerID:    learnerID,
			EarnedScore:  earned,
			TotalScore:   total,
			Percentage:   percentage,
			Passed:       passed,
			PendingCount: pendingCount,
			GradedAt:     time.Now(),
		},
	}
}

func NewManualGradingRequiredEvent(submissionID, lessonID uint, learnerID string, questionIDs []uint) *GradingEvent {
	return &GradingEvent{
		ID:        generateEventID(),
		Type:      EventManualGradingRequired,
		Timestamp: time.Now(),
		Source:    "grading-service",
		Version:   "1.0",
		Data: ManualGradingRequiredEvent{
			SubmissionID: submissionID,
			LessonID:     lessonID,
			LearnerID:    learnerID,
			QuestionIDs:  questionIDs,
			RequiredAt:   time.Now(),
		},
	}
}

func NewQuestionsImportedEvent(createdBy string, successCount, errorCount int) *GradingEvent {
	return &GradingEvent{
		ID:        generateEventID(),
		Type:      EventQuestionsImported,
		Timestamp: time.Now(),
		Source:    "grading-service",
		Version:   "1.0",
		Data: QuestionsImportedEvent{
			CreatedBy:    createdBy,
			SuccessCount: successCount,
			ErrorCount:   errorCount,
			ImportedAt:   time.Now(),
		},
	}
}

func generateEventID() string {
	return watermill.NewUUID()
}
