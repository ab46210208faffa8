package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleChef  = "chef"
	RoleAdmin = "admin"
)

// StatusRequested marks a user with a pending role-upgrade request.
const StatusRequested = "requested"

type User struct {
	ID            string    `gorm:"primaryKey;size:64" json:"_id"`
	Name          string    `json:"name"`
	Email         string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Role          string    `gorm:"size:32;not null" json:"role"`
	Status        string    `gorm:"size:32" json:"status,omitempty"`
	RequestedRole string    `gorm:"size:32" json:"requestedRole,omitempty"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Photo         string    `json:"photo,omitempty"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

type Meal struct {
	ID          string          `gorm:"primaryKey;size:64" json:"_id"`
	Title       string          `gorm:"not null" json:"title"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"size:64;index" json:"category"`
	Description string          `json:"description"`
	ChefEmail   string          `gorm:"size:128;index;not null" json:"chefEmail"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"-"`
}

// Payment is one successful capture. OrderID is unique: at most one payment
// per order, enforced by the store.
type Payment struct {
	ID            string          `gorm:"primaryKey;size:64" json:"_id"`
	Email         string          `gorm:"size:128;index;not null" json:"email"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	TransactionID string          `gorm:"size:128;uniqueIndex;not null" json:"transactionId"`
	OrderID       string          `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	Status        string          `gorm:"size:32;not null" json:"status"`
	Date          time.Time       `json:"date"`
}

type Review struct {
	ID        string    `gorm:"primaryKey;size:64" json:"_id"`
	MealID    string    `gorm:"size:64;index" json:"mealId"`
	Email     string    `gorm:"size:128;index;not null" json:"email"`
	Name      string    `json:"name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
