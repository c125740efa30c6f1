package repositories

import (
	"context"
	"errors"

	"github.com/lingodrill/grading-service/internal/models"
	"gorm.io/gorm"
)

// QuestionFilters narrows question listings.
type QuestionFilters struct {
	Type      *models.QuestionType
	CreatedBy *string
	Search    *string

	Limit  int
	Offset int
	SortBy string
}

// SubmissionFilters narrows submission listings.
type SubmissionFilters struct {
	LessonID  *uint
	LearnerID *string
	Passed    *bool

	Limit  int
	Offset int
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	GetByLearner(ctx context.Context, learnerID string, filters SubmissionFilters) ([]*models.Submission, int64, error)
}

// Repository aggregates entity repositories behind one handle.
type Repository interface {
	Question() QuestionRepository
	Submission() SubmissionRepository

	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

// IsNotFound reports whether a repository error means the record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
