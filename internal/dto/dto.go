package dto

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	MealID      string `json:"mealId"`
	Quantity    int    `json:"quantity"`
	UserName    string `json:"userName"`
	UserAddress string `json:"userAddress"`
	UserPhone   string `json:"userPhone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreatePaymentIntentRequest struct {
	Price   decimal.Decimal `json:"price"`
	OrderID string          `json:"orderId"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type RecordPaymentRequest struct {
	Email         string          `json:"email"`
	Price         decimal.Decimal `json:"price"`
	TransactionID string          `json:"transactionId"`
	OrderID       string          `json:"orderId"`
}

type CreateMealRequest struct {
	Title       string          `json:"title"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

type UpdateMealRequest struct {
	Title       *string          `json:"title"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
}

type RegisterUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

type RequestRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ApproveRoleRequest struct {
	Role string `json:"role"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Photo   *string `json:"photo"`
}

type CreateReviewRequest struct {
	MealID  string `json:"mealId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type TokenRequest struct {
	Email string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Mongo-style mutation indicators the storefront client keys on.

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type ModifyResult struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type PaymentResult struct {
	PaymentResult InsertResult `json:"paymentResult"`
}
