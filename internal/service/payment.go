package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodmate-server/internal/client"
	"foodmate-server/internal/domain"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const intentStatusSucceeded = "succeeded"

// PaymentService is the payment capture flow. An intent is only issued for a
// delivered order, and recording a capture flips the order to paid and
// inserts the Payment row in one transaction, keyed on the order still being
// unpaid. Two concurrent captures yield exactly one Payment; the loser gets
// AlreadyPaid.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, session *domain.Session, req *dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error)
	RecordPayment(ctx context.Context, session *domain.Session, req *dto.RecordPaymentRequest) (*domain.Payment, error)
}

type paymentServiceImpl struct {
	db           *gorm.DB
	stripeClient client.StripeClient
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
}

func NewPaymentService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:           db,
		stripeClient: stripeClient,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
	}
}

func (s *paymentServiceImpl) CreatePaymentIntent(ctx context.Context, session *domain.Session, req *dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if session.Email != order.UserEmail && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if order.OrderStatus != domain.OrderStatusDelivered {
		return nil, domain.NewPaymentNotAllowed(order.OrderStatus)
	}

	if !req.Price.IsZero() && !req.Price.Equal(order.TotalPrice) {
		return nil, fmt.Errorf("%w: price %s does not match order total %s",
			domain.ErrInvalid, req.Price, order.TotalPrice)
	}

	// the intent is always scoped to the stored total, never client input
	intent, err := s.stripeClient.CreatePaymentIntent(ctx, order.TotalPrice, order.ID)
	if err != nil {
		return nil, errors.Join(domain.ErrProcessor, err)
	}

	return &dto.CreatePaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (s *paymentServiceImpl) RecordPayment(ctx context.Context, session *domain.Session, req *dto.RecordPaymentRequest) (*domain.Payment, error) {
	if req.TransactionID == "" {
		return nil, fmt.Errorf("%w: missing transaction id", domain.ErrInvalid)
	}

	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if session.Email != order.UserEmail {
		return nil, domain.ErrForbidden
	}

	if !req.Price.IsZero() && !req.Price.Equal(order.TotalPrice) {
		return nil, fmt.Errorf("%w: price %s does not match order total %s",
			domain.ErrInvalid, req.Price, order.TotalPrice)
	}

	// never trust the client's word for the charge; ask the processor
	intent, err := s.stripeClient.GetPaymentIntent(ctx, req.TransactionID)
	if err != nil {
		return nil, errors.Join(domain.ErrProcessor, err)
	}
	if intent.Status != intentStatusSucceeded {
		return nil, fmt.Errorf("%w: payment intent %s is %s",
			domain.ErrProcessor, req.TransactionID, intent.Status)
	}

	// a succeeded intent is only good for the order it was issued for
	cents := order.TotalPrice.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if intent.Amount != cents {
		return nil, fmt.Errorf("%w: intent %s charged %d cents, order total is %d",
			domain.ErrInvalid, req.TransactionID, intent.Amount, cents)
	}
	if id := intent.Metadata["order_id"]; id != "" && id != order.ID {
		return nil, fmt.Errorf("%w: intent %s belongs to another order",
			domain.ErrInvalid, req.TransactionID)
	}

	payment := &domain.Payment{
		Email:         order.UserEmail,
		Price:         order.TotalPrice,
		TransactionID: req.TransactionID,
		OrderID:       order.ID,
		Status:        string(domain.PaymentStatusPaid),
		Date:          time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.orderRepo.MarkPaid(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if rows == 0 {
			return classifyCaptureConflict(ctx, tx, order.ID)
		}

		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// classifyCaptureConflict explains a failed conditional mark-paid: the order
// vanished, was already captured, or never reached delivered. Reads through
// the capture transaction to see the same snapshot the update saw.
func classifyCaptureConflict(ctx context.Context, tx *gorm.DB, orderID string) error {
	var current domain.Order
	if err := tx.WithContext(ctx).Where("id = ?", orderID).First(&current).Error; err != nil {
		return mapNotFound(err)
	}
	if current.PaymentStatus == domain.PaymentStatusPaid || current.OrderStatus == domain.OrderStatusPaid {
		return domain.ErrAlreadyPaid
	}
	return domain.NewPaymentNotAllowed(current.OrderStatus)
}
