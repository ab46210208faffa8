package repository

import (
	"context"
	"time"

	"foodmate-server/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, userID string, fields map[string]interface{}) (int64, error)
	UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

// Upsert keeps registration idempotent: signing in again with the same email
// refreshes name/photo but never resets the role.
func (r *userRepoImpl) Upsert(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return wrapStore(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":       user.Name,
			"photo":      user.Photo,
			"updated_at": time.Now(),
		}),
	}).Create(user).Error)
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return &user, nil
}

func (r *userRepoImpl) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return &user, nil
}

func (r *userRepoImpl) FindAll(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return users, nil
}

func (r *userRepoImpl) Update(ctx context.Context, userID string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(fields)

	if result.Error != nil {
		return 0, wrapStore(result.Error)
	}

	return result.RowsAffected, nil
}

func (r *userRepoImpl) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Updates(fields)

	if result.Error != nil {
		return 0, wrapStore(result.Error)
	}

	return result.RowsAffected, nil
}
