package repository

import (
	"context"
	"time"

	"foodmate-server/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	FindByUserEmail(ctx context.Context, email string) ([]*domain.Order, error)
	FindByChefEmail(ctx context.Context, email string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (int64, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID string) (int64, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	return wrapStore(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByUserEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("order_time DESC").
		Find(&orders).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return orders, nil
}

func (r *orderRepoImpl) FindByChefEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).
		Where("chef_email = ?", email).
		Order("order_time DESC").
		Find(&orders).Error

	if err != nil {
		return nil, wrapStore(err)
	}

	return orders, nil
}

// UpdateStatus applies a compare-and-set on order_status so two racing
// transitions cannot both succeed. Returns the number of rows changed:
// 0 means the order is missing or no longer in the expected state.
func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND order_status = ?", orderID, from).
		Updates(map[string]interface{}{
			"order_status": to,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return 0, wrapStore(result.Error)
	}

	return result.RowsAffected, nil
}

// MarkPaid flips a delivered, unpaid order to paid/paid in one conditional
// update. Runs on the caller's transaction so the Payment insert can be
// rolled back together with it.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID string) (int64, error) {
	result := tx.WithContext(ctx).Model(&domain.Order{}).
		Where(`
			id = ?
			AND order_status = ?
			AND payment_status = ?
		`,
			orderID,
			domain.OrderStatusDelivered,
			domain.PaymentStatusUnpaid,
		).
		Updates(map[string]interface{}{
			"order_status":   domain.OrderStatusPaid,
			"payment_status": domain.PaymentStatusPaid,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return 0, wrapStore(result.Error)
	}

	return result.RowsAffected, nil
}
