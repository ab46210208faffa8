package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Order is a purchaser's request for a meal, tracked from pending through
// payment. Meal name, image and unit price are snapshotted at order time;
// later edits to the meal never touch existing orders.
type Order struct {
	ID            string          `gorm:"primaryKey;size:64" json:"_id"`
	MealID        string          `gorm:"size:64;index;not null" json:"mealId"`
	MealName      string          `gorm:"not null" json:"mealName"`
	Image         string          `json:"image"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	UserEmail     string          `gorm:"size:128;index;not null" json:"userEmail"`
	UserName      string          `json:"userName"`
	UserAddress   string          `json:"userAddress"`
	UserPhone     string          `json:"userPhone"`
	ChefEmail     string          `gorm:"size:128;index;not null" json:"chefId"`
	OrderStatus   OrderStatus     `gorm:"size:32;index;not null" json:"orderStatus"`
	PaymentStatus PaymentStatus   `gorm:"size:32;not null" json:"paymentStatus"`
	OrderTime     time.Time       `json:"orderTime"`
	UpdatedAt     time.Time       `json:"-"`
}

// transitions holds the only legal orderStatus edges. paid and cancelled
// are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:  {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusPaid},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusDelivered,
		OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentBlockedReason explains why payment is not allowed for an order in
// the given state. Only delivered orders are payable.
func PaymentBlockedReason(s OrderStatus) string {
	switch s {
	case OrderStatusPending:
		return "order is not yet accepted by the chef"
	case OrderStatusAccepted:
		return "order is accepted but not delivered yet"
	case OrderStatusCancelled:
		return "order is cancelled, payment not allowed"
	case OrderStatusPaid:
		return "order is already paid"
	default:
		return "payment not allowed for this order"
	}
}
