package service

import (
	"context"
	"fmt"
	"time"

	"foodmate-server/internal/domain"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/repository"
)

type ReviewService interface {
	CreateReview(ctx context.Context, session *domain.Session, req *dto.CreateReviewRequest) (*domain.Review, error)
	GetReviews(ctx context.Context, email string) ([]*domain.Review, error)
}

type reviewServiceImpl struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) ReviewService {
	return &reviewServiceImpl{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

func (s *reviewServiceImpl) CreateReview(ctx context.Context, session *domain.Session, req *dto.CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 1-5", domain.ErrInvalid)
	}

	review := &domain.Review{
		MealID:    req.MealID,
		Email:     session.Email,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if user, err := s.userRepo.FindByEmail(ctx, session.Email); err == nil {
		review.Name = user.Name
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("store review: %w", err)
	}

	return review, nil
}

func (s *reviewServiceImpl) GetReviews(ctx context.Context, email string) ([]*domain.Review, error) {
	if email == "" {
		return s.reviewRepo.FindAll(ctx)
	}
	return s.reviewRepo.FindByEmail(ctx, email)
}
