package postgres

import (
	"context"

	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: db}
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Create(submission).Error
}

func (s *SubmissionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) GetByLearner(ctx context.Context, learnerID string, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	var submissions []*models.Submission
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Submission{}).Where("learner_id = ?", learnerID)
	if filters.LessonID != nil {
		query = query.Where("lesson_id = ?", *filters.LessonID)
	}
	if filters.Passed != nil {
		query = query.Where("passed = ?", *filters.Passed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("submitted_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}
