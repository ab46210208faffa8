package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"foodmate-server/internal/domain"
	"foodmate-server/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// named in-memory db so every pooled connection sees the same data
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// sqlite has a single writer anyway; with more connections a concurrent
	// write surfaces as "table is locked" instead of waiting its turn
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Meal{},
		&domain.Order{},
		&domain.Payment{},
		&domain.Review{},
	))

	return db
}

func seedMeal(t *testing.T, db *gorm.DB, price string, chefEmail string) *domain.Meal {
	t.Helper()

	meal := &domain.Meal{
		ID:        uuid.New().String(),
		Title:     "Chicken Biryani",
		Price:     decimal.RequireFromString(price),
		ChefEmail: chefEmail,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(meal).Error)
	return meal
}

func seedOrder(t *testing.T, db *gorm.DB, status domain.OrderStatus, userEmail, chefEmail string) *domain.Order {
	t.Helper()

	price := decimal.RequireFromString("12.50")
	order := &domain.Order{
		ID:            uuid.New().String(),
		MealID:        uuid.New().String(),
		MealName:      "Chicken Biryani",
		Price:         price,
		Quantity:      2,
		TotalPrice:    price.Mul(decimal.NewFromInt(2)),
		UserEmail:     userEmail,
		ChefEmail:     chefEmail,
		OrderStatus:   status,
		PaymentStatus: domain.PaymentStatusUnpaid,
		OrderTime:     time.Now(),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func reloadOrder(t *testing.T, db *gorm.DB, orderID string) *domain.Order {
	t.Helper()

	order, err := repository.NewOrderRepository(db).FindByID(context.Background(), orderID)
	require.NoError(t, err)
	return order
}
