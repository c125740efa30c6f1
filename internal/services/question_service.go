package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lingodrill/grading-service/internal/cache"
	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/repositories"
	"github.com/lingodrill/grading-service/internal/utils"
	"github.com/lingodrill/grading-service/internal/validator"
)

const questionCacheTTL = 15 * time.Minute

// QuestionService manages question authoring: structural validation before
// persistence, CRUD, and the read-through cache used by the grading path.
type QuestionService interface {
	Create(ctx context.Context, question *models.Question) error
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error)
	Validate(question *models.Question) error
}

type questionService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	validator *validator.Validator
	logger    utils.Logger
}

func NewQuestionService(repo repositories.Repository, cacheService cache.CacheService, v *validator.Validator, logger utils.Logger) QuestionService {
	return &questionService{
		repo:      repo,
		cache:     cacheService,
		validator: v,
		logger:    logger,
	}
}

// Validate runs struct-tag validation plus the per-type metadata rules. It
// does not touch storage.
func (s *questionService) Validate(question *models.Question) error {
	if err := s.validator.ValidateStruct(question); err != nil {
		return validator.ToValidationErrors(err)
	}
	return s.validator.Metadata().ValidateQuestion(question)
}

func (s *questionService) Create(ctx context.Context, question *models.Question) error {
	if err := s.Validate(question); err != nil {
		return err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.InfoContext(ctx, "question created",
		"question_id", question.ID,
		"question_type", question.Type,
		"created_by", question.CreatedBy)
	return nil
}

func (s *questionService) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if err := s.validator.Metadata().ValidateBatch(questions); err != nil {
		return err
	}

	err := s.repo.WithTransaction(ctx, func(repo repositories.Repository) error {
		return repo.Question().CreateBatch(ctx, questions)
	})
	if err != nil {
		return fmt.Errorf("failed to create question batch: %w", err)
	}

	s.logger.InfoContext(ctx, "question batch created", "count", len(questions))
	return nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	cacheKey := questionCacheKey(id)

	var cached models.Question
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}

	if err := s.cache.Set(ctx, cacheKey, question, questionCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache question", "question_id", id, "error", err)
	}

	return question, nil
}

// GetByIDs loads a set of questions keyed by ID. Missing IDs are simply
// absent from the map; the grading path reports those per answer instead of
// failing the whole lookup.
func (s *questionService) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Question, error) {
	questions, err := s.repo.Question().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	byID := make(map[uint]*models.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}
	return byID, nil
}

func (s *questionService) Update(ctx context.Context, question *models.Question) error {
	if err := s.Validate(question); err != nil {
		return err
	}

	if _, err := s.repo.Question().GetByID(ctx, question.ID); err != nil {
		if repositories.IsNotFound(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to load question %d: %w", question.ID, err)
	}

	if err := s.repo.Question().Update(ctx, question); err != nil {
		return fmt.Errorf("failed to update question %d: %w", question.ID, err)
	}

	if err := s.cache.Delete(ctx, questionCacheKey(question.ID)); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate question cache", "question_id", question.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "question updated", "question_id", question.ID)
	return nil
}

func (s *questionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Question().GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to load question %d: %w", id, err)
	}

	if err := s.repo.Question().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}

	if err := s.cache.Delete(ctx, questionCacheKey(id)); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate question cache", "question_id", id, "error", err)
	}

	s.logger.InfoContext(ctx, "question deleted", "question_id", id)
	return nil
}

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	return s.repo.Question().List(ctx, filters)
}

func questionCacheKey(id uint) string {
	return fmt.Sprintf("question:%d", id)
}
