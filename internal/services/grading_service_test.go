package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lingodrill/grading-service/internal/cache"
	"github.com/lingodrill/grading-service/internal/events"
	"github.com/lingodrill/grading-service/internal/grading"
	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/repositories"
	"github.com/lingodrill/grading-service/internal/utils"
	"github.com/lingodrill/grading-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByLearner(ctx context.Context, learnerID string, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	args := m.Called(ctx, learnerID, filters)
	return args.Get(0).([]*models.Submission), args.Get(1).(int64), args.Error(2)
}

// MockRepository aggregates the entity mocks
type MockRepository struct {
	question   *MockQuestionRepository
	submission *MockSubmissionRepository
}

func (m *MockRepository) Question() repositories.QuestionRepository     { return m.question }
func (m *MockRepository) Submission() repositories.SubmissionRepository { return m.submission }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repo repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

// nopCache always misses; writes are discarded.
type nopCache struct{}

func (nopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (nopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}
func (nopCache) Delete(ctx context.Context, key string) error            { return nil }
func (nopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func newTestGradingService(t *testing.T) (GradingService, *MockRepository, *events.MockEventPublisher) {
	t.Helper()

	repo := &MockRepository{
		question:   &MockQuestionRepository{},
		submission: &MockSubmissionRepository{},
	}
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogger)
	publisher := events.NewMockEventPublisher(slogger)

	questions := NewQuestionService(repo, nopCache{}, validator.New(), logger)
	processor := grading.NewProcessor(logger)
	service := NewGradingService(repo, questions, processor, publisher, logger, 70)

	return service, repo, publisher
}

func TestGradingService_SubmitLesson(t *testing.T) {
	service, repo, publisher := newTestGradingService(t)

	stored := []*models.Question{
		{
			ID: 1, Type: models.MultipleChoice, Text: "Pick the verb.", Points: 5,
			Metadata: datatypes.JSON([]byte(`{"options":[{"text":"Run","isCorrect":true,"order":1},{"text":"Blue","isCorrect":false,"order":2}]}`)),
		},
		{
			ID: 2, Type: models.TextAnswer, Text: "Past tense of go?", Points: 5,
			Metadata: datatypes.JSON([]byte(`{"correctAnswer":"went"}`)),
		},
		{
			ID: 3, Type: models.OpenEnded, Text: "Describe your weekend.", Points: 10,
			Metadata: datatypes.JSON([]byte(`{"minWords":3}`)),
		},
	}

	repo.question.On("GetByIDs", mock.Anything, []uint{1, 2, 3}).Return(stored, nil)
	repo.submission.On("Create", mock.Anything, mock.AnythingOfType("*models.Submission")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Submission).ID = 42
		}).Return(nil)

	result, err := service.SubmitLesson(context.Background(), &SubmitLessonRequest{
		LessonID:  7,
		LearnerID: "learner-1",
		Answers: []models.SubmittedAnswer{
			{QuestionID: 1, Answer: []byte(`"Run"`)},
			{QuestionID: 2, Answer: []byte(`"goed"`)},
			{QuestionID: 3, Answer: []byte(`"we went to the mountains and hiked all day"`)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(42), result.SubmissionID)
	require.Len(t, result.Results, 3)
	assert.True(t, result.Results[0].Correct())
	assert.False(t, result.Results[1].Correct())
	assert.True(t, result.Results[2].Pending())

	// 5 of 20 points: the pending open-ended answer counts toward the total
	// but earns nothing until reviewed.
	assert.Equal(t, 5, result.EarnedScore)
	assert.Equal(t, 20, result.TotalScore)
	assert.Equal(t, 1, result.PendingCount)
	assert.False(t, result.Passed)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventSubmissionGraded, published[0].Type)
	assert.Equal(t, events.EventManualGradingRequired, published[1].Type)

	repo.submission.AssertExpectations(t)
}

func TestGradingService_SubmitLesson_MissingQuestionDoesNotAbort(t *testing.T) {
	service, repo, _ := newTestGradingService(t)

	stored := []*models.Question{
		{
			ID: 1, Type: models.TextAnswer, Text: "Past tense of go?", Points: 5,
			Metadata: datatypes.JSON([]byte(`{"correctAnswer":"went"}`)),
		},
	}

	repo.question.On("GetByIDs", mock.Anything, []uint{1, 99}).Return(stored, nil)
	repo.submission.On("Create", mock.Anything, mock.AnythingOfType("*models.Submission")).Return(nil)

	result, err := service.SubmitLesson(context.Background(), &SubmitLessonRequest{
		LessonID:  7,
		LearnerID: "learner-1",
		Answers: []models.SubmittedAnswer{
			{QuestionID: 1, Answer: []byte(`"went"`)},
			{QuestionID: 99, Answer: []byte(`"anything"`)},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Correct())
	assert.False(t, result.Results[1].Correct())
	assert.Equal(t, 5, result.EarnedScore)
	assert.Equal(t, 5, result.TotalScore)
	assert.True(t, result.Passed)
}

func TestGradingService_SubmitLesson_EmptySubmission(t *testing.T) {
	service, _, _ := newTestGradingService(t)

	_, err := service.SubmitLesson(context.Background(), &SubmitLessonRequest{
		LessonID:  7,
		LearnerID: "learner-1",
	})
	assert.ErrorIs(t, err, ErrSubmissionEmpty)
}

func TestGradingService_ScoreQuestion(t *testing.T) {
	service, repo, _ := newTestGradingService(t)

	question := &models.Question{
		ID: 1, Type: models.TextAnswer, Text: "Past tense of go?", Points: 4,
		Metadata: datatypes.JSON([]byte(`{"correctAnswer":"went"}`)),
	}
	repo.question.On("GetByID", mock.Anything, uint(1)).Return(question, nil)

	result, err := service.ScoreQuestion(context.Background(), 1, []byte(`"went"`))
	require.NoError(t, err)
	assert.True(t, result.Correct())
	assert.Equal(t, 4, result.Points)
}
