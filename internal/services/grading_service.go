package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lingodrill/grading-service/internal/events"
	"github.com/lingodrill/grading-service/internal/grading"
	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/repositories"
	"github.com/lingodrill/grading-service/internal/utils"
	"gorm.io/datatypes"
)

// SubmitLessonRequest carries one learner's answers for a lesson.
type SubmitLessonRequest struct {
	LessonID  uint                     `json:"lesson_id" validate:"required"`
	LearnerID string                   `json:"learner_id" validate:"required"`
	Answers   []models.SubmittedAnswer `json:"answers" validate:"required,min=1"`
}

// SubmissionResult is the graded outcome returned to the caller.
type SubmissionResult struct {
	SubmissionID uint                     `json:"submission_id"`
	Results      []*models.QuestionResult `json:"results"`
	EarnedScore  int                      `json:"earned_score"`
	TotalScore   int                      `json:"total_score"`
	Percentage   float64                  `json:"percentage"`
	Passed       bool                     `json:"passed"`
	PendingCount int                      `json:"pending_count"`
}

// GradingService grades single answers and whole lesson submissions.
type GradingService interface {
	ScoreQuestion(ctx context.Context, questionID uint, answer models.AnswerPayload) (*models.QuestionResult, error)
	SubmitLesson(ctx context.Context, req *SubmitLessonRequest) (*SubmissionResult, error)
	GetSubmission(ctx context.Context, id uint) (*models.Submission, error)
	ListSubmissions(ctx context.Context, learnerID string, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error)
}

type gradingService struct {
	repo         repositories.Repository
	questions    QuestionService
	processor    *grading.Processor
	publisher    events.EventPublisher
	logger       utils.Logger
	passingScore float64
}

func NewGradingService(repo repositories.Repository, questions QuestionService, processor *grading.Processor, publisher events.EventPublisher, logger utils.Logger, passingScore float64) GradingService {
	return &gradingService{
		repo:         repo,
		questions:    questions,
		processor:    processor,
		publisher:    publisher,
		logger:       logger,
		passingScore: passingScore,
	}
}

// ScoreQuestion grades one answer without persisting anything.
func (s *gradingService) ScoreQuestion(ctx context.Context, questionID uint, answer models.AnswerPayload) (*models.QuestionResult, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return s.processor.Process(question, answer), nil
}

// SubmitLesson grades every answer in the submission, persists the graded
// submission and publishes the outcome. Individual broken questions never
// abort the submission; they surface as zero-point results.
func (s *gradingService) SubmitLesson(ctx context.Context, req *SubmitLessonRequest) (*SubmissionResult, error) {
	if len(req.Answers) == 0 {
		return nil, ErrSubmissionEmpty
	}

	ids := make([]uint, 0, len(req.Answers))
	for _, answer := range req.Answers {
		ids = append(ids, answer.QuestionID)
	}

	questions, err := s.questions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := s.processor.ProcessBatch(questions, req.Answers)

	earned := 0
	total := 0
	pendingCount := 0
	var pendingIDs []uint
	for i, result := range results {
		earned += result.Points
		if question, ok := questions[req.Answers[i].QuestionID]; ok {
			total += question.Points
		}
		if result.Pending() {
			pendingCount++
			pendingIDs = append(pendingIDs, result.QuestionID)
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(earned) / float64(total) * 100
	}
	passed := percentage >= s.passingScore

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}

	submission := &models.Submission{
		LessonID:    req.LessonID,
		LearnerID:   req.LearnerID,
		Results:     datatypes.JSON(resultsJSON),
		EarnedScore: earned,
		TotalScore:  total,
		Passed:      passed,
		SubmittedAt: time.Now(),
	}

	if err := s.repo.Submission().Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	s.publishGraded(ctx, submission, percentage, pendingCount, pendingIDs)

	s.logger.InfoContext(ctx, "lesson submission graded",
		"submission_id", submission.ID,
		"lesson_id", req.LessonID,
		"learner_id", req.LearnerID,
		"earned", earned,
		"total", total,
		"passed", passed,
		"pending", pendingCount)

	return &SubmissionResult{
		SubmissionID: submission.ID,
		Results:      results,
		EarnedScore:  earned,
		TotalScore:   total,
		Percentage:   percentage,
		Passed:       passed,
		PendingCount: pendingCount,
	}, nil
}

// publishGraded emits the submission outcome. Publishing failures are logged
// and swallowed: the submission is already persisted and grading must not
// fail because the broker is down.
func (s *gradingService) publishGraded(ctx context.Context, submission *models.Submission, percentage float64, pendingCount int, pendingIDs []uint) {
	event := events.NewSubmissionGradedEvent(
		submission.ID, submission.LessonID, submission.LearnerID,
		submission.EarnedScore, submission.TotalScore, percentage, submission.Passed, pendingCount)
	if err := s.publisher.PublishGradingEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish submission graded event",
			"submission_id", submission.ID, "error", err)
	}

	if pendingCount > 0 {
		manual := events.NewManualGradingRequiredEvent(submission.ID, submission.LessonID, submission.LearnerID, pendingIDs)
		if err := s.publisher.PublishGradingEvent(ctx, manual); err != nil {
			s.logger.WarnContext(ctx, "failed to publish manual grading event",
				"submission_id", submission.ID, "error", err)
		}
	}
}

func (s *gradingService) GetSubmission(ctx context.Context, id uint) (*models.Submission, error) {
	submission, err := s.repo.Submission().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission %d: %w", id, err)
	}
	return submission, nil
}

func (s *gradingService) ListSubmissions(ctx context.Context, learnerID string, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	return s.repo.Submission().GetByLearner(ctx, learnerID, filters)
}
