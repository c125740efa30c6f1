package postgres

import (
	"context"

	"github.com/lingodrill/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db         *gorm.DB
	question   repositories.QuestionRepository
	submission repositories.SubmissionRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:         db,
		question:   NewQuestionPostgreSQL(db),
		submission: NewSubmissionPostgreSQL(db),
	}
}

func (r *Repository) Question() repositories.QuestionRepository {
	return r.question
}

func (r *Repository) Submission() repositories.SubmissionRepository {
	return r.submission
}

// WithTransaction runs fn against a transactional copy of the repository;
// a returned error rolls everything back.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
