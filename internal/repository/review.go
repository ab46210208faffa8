package repository

import (
	"context"

	"foodmate-server/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindAll(ctx context.Context) ([]*domain.Review, error)
	FindByEmail(ctx context.Context, email string) ([]*domain.Review, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *domain.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	return wrapStore(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepoImpl) FindAll(ctx context.Context) ([]*domain.Review, error) {
	var reviews []*domain.Review
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reviews).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return reviews, nil
}

func (r *reviewRepoImpl) FindByEmail(ctx context.Context, email string) ([]*domain.Review, error) {
	var reviews []*domain.Review
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&reviews).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return reviews, nil
}
