package service

import (
	"context"
	"fmt"
	"time"

	"foodmate-server/internal/domain"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/repository"
)

type MealService interface {
	CreateMeal(ctx context.Context, session *domain.Session, req *dto.CreateMealRequest) (*domain.Meal, error)
	GetMeal(ctx context.Context, mealID string) (*domain.Meal, error)
	GetMeals(ctx context.Context, page, limit int, search string) ([]*domain.Meal, error)
	CountMeals(ctx context.Context, search string) (int64, error)
	GetChefMeals(ctx context.Context, session *domain.Session, chefEmail string) ([]*domain.Meal, error)
	UpdateMeal(ctx context.Context, session *domain.Session, mealID string, req *dto.UpdateMealRequest) (int64, error)
	DeleteMeal(ctx context.Context, session *domain.Session, mealID string) (int64, error)
}

type mealServiceImpl struct {
	mealRepo repository.MealRepository
}

func NewMealService(mealRepo repository.MealRepository) MealService {
	return &mealServiceImpl{
		mealRepo: mealRepo,
	}
}

func (s *mealServiceImpl) CreateMeal(ctx context.Context, session *domain.Session, req *dto.CreateMealRequest) (*domain.Meal, error) {
	if !session.IsChef() && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if req.Title == "" || req.Price.IsNegative() || req.Price.IsZero() {
		return nil, fmt.Errorf("%w: meal needs a title and a positive price", domain.ErrInvalid)
	}

	meal := &domain.Meal{
		Title:       req.Title,
		Image:       req.Image,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		ChefEmail:   session.Email,
		CreatedAt:   time.Now(),
	}

	if err := s.mealRepo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("store meal: %w", err)
	}

	return meal, nil
}

func (s *mealServiceImpl) GetMeal(ctx context.Context, mealID string) (*domain.Meal, error) {
	meal, err := s.mealRepo.FindByID(ctx, mealID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return meal, nil
}

func (s *mealServiceImpl) GetMeals(ctx context.Context, page, limit int, search string) ([]*domain.Meal, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	return s.mealRepo.FindPage(ctx, page, limit, search)
}

func (s *mealServiceImpl) CountMeals(ctx context.Context, search string) (int64, error) {
	return s.mealRepo.Count(ctx, search)
}

func (s *mealServiceImpl) GetChefMeals(ctx context.Context, session *domain.Session, chefEmail string) ([]*domain.Meal, error) {
	if session.Email != chefEmail && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.mealRepo.FindByChefEmail(ctx, chefEmail)
}

// UpdateMeal edits the catalog entry only. Orders carry their own snapshot
// of name and price, so existing order totals are never affected.
func (s *mealServiceImpl) UpdateMeal(ctx context.Context, session *domain.Session, mealID string, req *dto.UpdateMealRequest) (int64, error) {
	meal, err := s.mealRepo.FindByID(ctx, mealID)
	if err != nil {
		return 0, mapNotFound(err)
	}
	if session.Email != meal.ChefEmail && !session.IsAdmin() {
		return 0, domain.ErrForbidden
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Price != nil {
		if req.Price.IsNegative() || req.Price.IsZero() {
			return 0, fmt.Errorf("%w: price must be positive", domain.ErrInvalid)
		}
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	return s.mealRepo.Update(ctx, mealID, fields)
}

func (s *mealServiceImpl) DeleteMeal(ctx context.Context, session *domain.Session, mealID string) (int64, error) {
	meal, err := s.mealRepo.FindByID(ctx, mealID)
	if err != nil {
		return 0, mapNotFound(err)
	}
	if session.Email != meal.ChefEmail && !session.IsAdmin() {
		return 0, domain.ErrForbidden
	}

	return s.mealRepo.Delete(ctx, mealID)
}
