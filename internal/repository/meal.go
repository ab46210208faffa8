package repository

import (
	"context"

	"foodmate-server/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	FindByID(ctx context.Context, mealID string) (*domain.Meal, error)
	FindPage(ctx context.Context, page, limit int, search string) ([]*domain.Meal, error)
	Count(ctx context.Context, search string) (int64, error)
	FindByChefEmail(ctx context.Context, email string) ([]*domain.Meal, error)
	Update(ctx context.Context, mealID string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, mealID string) (int64, error)
}

type mealRepoImpl struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepoImpl{
		db: db,
	}
}

func (r *mealRepoImpl) Create(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	return wrapStore(r.db.WithContext(ctx).Create(meal).Error)
}

func (r *mealRepoImpl) FindByID(ctx context.Context, mealID string) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.db.WithContext(ctx).
		Where("id = ?", mealID).
		First(&meal).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return &meal, nil
}

func (r *mealRepoImpl) searchQuery(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Meal{})
	if search != "" {
		q = q.Where("title LIKE ?", "%"+search+"%")
	}
	return q
}

func (r *mealRepoImpl) FindPage(ctx context.Context, page, limit int, search string) ([]*domain.Meal, error) {
	var meals []*domain.Meal
	err := r.searchQuery(ctx, search).
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&meals).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return meals, nil
}

func (r *mealRepoImpl) Count(ctx context.Context, search string) (int64, error) {
	var count int64
	err := r.searchQuery(ctx, search).Count(&count).Error
	return count, wrapStore(err)
}

func (r *mealRepoImpl) FindByChefEmail(ctx context.Context, email string) ([]*domain.Meal, error) {
	var meals []*domain.Meal
	err := r.db.WithContext(ctx).
		Where("chef_email = ?", email).
		Order("created_at DESC").
		Find(&meals).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return meals, nil
}

func (r *mealRepoImpl) Update(ctx context.Context, mealID string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Meal{}).
		Where("id = ?", mealID).
		Updates(fields)

	if result.Error != nil {
		return 0, wrapStore(result.Error)
	}

	return result.RowsAffected, nil
}

func (r *mealRepoImpl) Delete(ctx context.Context, mealID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", mealID).
		Delete(&domain.Meal{})

	if result.Error != nil {
		return 0, wrapStore(result.Error)
	}

	return result.RowsAffected, nil
}
