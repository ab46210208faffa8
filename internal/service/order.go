package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodmate-server/internal/domain"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService is the order lifecycle engine. Every status change goes
// through Transition, which enforces the transition table and the actor
// guards regardless of what the UI allowed the user to click.
type OrderService interface {
	PlaceOrder(ctx context.Context, session *domain.Session, req *dto.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, session *domain.Session, orderID string) (*domain.Order, error)
	GetUserOrders(ctx context.Context, session *domain.Session, email string) ([]*domain.Order, error)
	GetChefOrders(ctx context.Context, session *domain.Session, chefEmail string) ([]*domain.Order, error)
	Transition(ctx context.Context, session *domain.Session, orderID string, next domain.OrderStatus) (int64, error)
	Cancel(ctx context.Context, session *domain.Session, orderID string) (int64, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	mealRepo  repository.MealRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	mealRepo repository.MealRepository,
) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
		mealRepo:  mealRepo,
	}
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, session *domain.Session, req *dto.CreateOrderRequest) (*domain.Order, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalid)
	}

	meal, err := s.mealRepo.FindByID(ctx, req.MealID)
	if err != nil {
		return nil, mapNotFound(fmt.Errorf("load meal: %w", err))
	}

	// snapshot the meal at order time: later price edits never touch this order
	order := &domain.Order{
		MealID:        meal.ID,
		MealName:      meal.Title,
		Image:         meal.Image,
		Price:         meal.Price,
		Quantity:      req.Quantity,
		TotalPrice:    meal.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		UserEmail:     session.Email,
		UserName:      req.UserName,
		UserAddress:   req.UserAddress,
		UserPhone:     req.UserPhone,
		ChefEmail:     meal.ChefEmail,
		OrderStatus:   domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		OrderTime:     time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, session *domain.Session, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if session.Email != order.UserEmail && session.Email != order.ChefEmail && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return order, nil
}

func (s *orderServiceImpl) GetUserOrders(ctx context.Context, session *domain.Session, email string) ([]*domain.Order, error) {
	if session.Email != email && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.orderRepo.FindByUserEmail(ctx, email)
}

func (s *orderServiceImpl) GetChefOrders(ctx context.Context, session *domain.Session, chefEmail string) ([]*domain.Order, error) {
	if session.Email != chefEmail && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.orderRepo.FindByChefEmail(ctx, chefEmail)
}

// Transition applies one edge of the lifecycle:
//
//	pending → accepted → delivered → paid
//	pending → cancelled
//
// The final write is a compare-and-set on the status read here, so a racing
// transition makes this one fail with a state conflict instead of silently
// overwriting it.
func (s *orderServiceImpl) Transition(ctx context.Context, session *domain.Session, orderID string, next domain.OrderStatus) (int64, error) {
	if !next.Valid() {
		return 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalid, next)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return 0, mapNotFound(err)
	}

	if err := s.checkActor(session, order, next); err != nil {
		return 0, err
	}

	if !order.OrderStatus.CanTransitionTo(next) {
		return 0, domain.NewStateConflict(order.OrderStatus)
	}

	rows, err := s.orderRepo.UpdateStatus(ctx, orderID, order.OrderStatus, next)
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}
	if rows == 0 {
		// lost a race; report the state we lost it to
		current, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return 0, mapNotFound(err)
		}
		return 0, domain.NewStateConflict(current.OrderStatus)
	}

	return rows, nil
}

// Cancel is the purchaser-facing escape hatch: a guarded pending → cancelled
// transition, not a physical delete.
func (s *orderServiceImpl) Cancel(ctx context.Context, session *domain.Session, orderID string) (int64, error) {
	return s.Transition(ctx, session, orderID, domain.OrderStatusCancelled)
}

func (s *orderServiceImpl) checkActor(session *domain.Session, order *domain.Order, next domain.OrderStatus) error {
	switch next {
	case domain.OrderStatusAccepted, domain.OrderStatusDelivered:
		if session.Email != order.ChefEmail {
			return domain.ErrForbidden
		}
	case domain.OrderStatusCancelled:
		if session.Email != order.UserEmail && session.Email != order.ChefEmail {
			return domain.ErrForbidden
		}
	case domain.OrderStatusPaid:
		// only the payment capture flow may mark an order paid
		return domain.ErrForbidden
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
