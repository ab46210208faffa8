package repository

import (
	"context"

	"foodmate-server/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *domain.Payment) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	CountByOrderID(ctx context.Context, orderID string) (int64, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	return wrapStore(tx.WithContext(ctx).Create(payment).Error)
}

func (r *paymentRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&payment).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return &payment, nil
}

func (r *paymentRepoImpl) CountByOrderID(ctx context.Context, orderID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count, wrapStore(err)
}
