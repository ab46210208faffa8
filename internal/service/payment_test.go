package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"foodmate-server/internal/client"
	"foodmate-server/internal/domain"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStripe stands in for the hosted processor: looked-up intents succeed
// and cover 2500 cents unless told otherwise.
type fakeStripe struct {
	intentStatus string
	intentAmount int64
	intentOrder  string
	createErr    error
	created      int
}

func (f *fakeStripe) CreatePaymentIntent(_ context.Context, amount decimal.Decimal, orderID string) (*client.PaymentIntent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &client.PaymentIntent{
		ID:           "pi_" + orderID,
		ClientSecret: "pi_" + orderID + "_secret",
		Status:       "requires_payment_method",
		Amount:       amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:     "usd",
	}, nil
}

func (f *fakeStripe) GetPaymentIntent(_ context.Context, intentID string) (*client.PaymentIntent, error) {
	status := f.intentStatus
	if status == "" {
		status = "succeeded"
	}
	amount := f.intentAmount
	if amount == 0 {
		amount = 2500
	}
	intent := &client.PaymentIntent{ID: intentID, Status: status, Amount: amount, Currency: "usd"}
	if f.intentOrder != "" {
		intent.Metadata = map[string]string{"order_id": f.intentOrder}
	}
	return intent, nil
}

func newPaymentService(db *gorm.DB, stripe client.StripeClient) PaymentService {
	return NewPaymentService(db, stripe,
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db))
}

func TestCreatePaymentIntentGatedOnDelivered(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripe{}
	svc := newPaymentService(db, stripe)
	ctx := context.Background()
	customer := &domain.Session{Email: customerEmail, Role: domain.RoleUser}

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusAccepted,
		domain.OrderStatusCancelled, domain.OrderStatusPaid,
	} {
		t.Run(string(status), func(t *testing.T) {
			order := seedOrder(t, db, status, customerEmail, chefEmail)

			_, err := svc.CreatePaymentIntent(ctx, customer, &dto.CreatePaymentIntentRequest{OrderID: order.ID})
			assert.ErrorIs(t, err, domain.ErrPaymentNotAllowed)

			var stateErr *domain.StateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, status, stateErr.Current)
		})
	}

	assert.Zero(t, stripe.created, "no intent may be issued for a non-delivered order")

	order := seedOrder(t, db, domain.OrderStatusDelivered, customerEmail, chefEmail)
	resp, err := svc.CreatePaymentIntent(ctx, customer, &dto.CreatePaymentIntentRequest{OrderID: order.ID})
	require.NoError(t, err)
	assert.Equal(t, "pi_"+order.ID+"_secret", resp.ClientSecret)
	assert.Equal(t, 1, stripe.created)
}

func TestCreatePaymentIntentGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, &fakeStripe{})
	ctx := context.Background()

	order := seedOrder(t, db, domain.OrderStatusDelivered, customerEmail, chefEmail)

	_, err := svc.CreatePaymentIntent(ctx,
		&domain.Session{Email: strangerEmail, Role: domain.RoleUser},
		&dto.CreatePaymentIntentRequest{OrderID: order.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.CreatePaymentIntent(ctx,
		&domain.Session{Email: customerEmail, Role: domain.RoleUser},
		&dto.CreatePaymentIntentRequest{OrderID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// client-announced amount must match the stored total
	_, err = svc.CreatePaymentIntent(ctx,
		&domain.Session{Email: customerEmail, Role: domain.RoleUser},
		&dto.CreatePaymentIntentRequest{
			OrderID: order.ID,
			Price:   decimal.RequireFromString("1.00"),
		})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.CreatePaymentIntent(ctx,
		&domain.Session{Email: customerEmail, Role: domain.RoleUser},
		&dto.CreatePaymentIntentRequest{OrderID: order.ID, Price: decimal.RequireFromString("25.00")})
	assert.NoError(t, err)
}

func TestRecordPaymentExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, &fakeStripe{})
	paymentRepo := repository.NewPaymentRepository(db)
	ctx := context.Background()
	customer := &domain.Session{Email: customerEmail, Role: domain.RoleUser}

	order := seedOrder(t, db, domain.OrderStatusDelivered, customerEmail, chefEmail)

	payment, err := svc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
		OrderID:       order.ID,
		TransactionID: "pi_test_123",
		Price:         decimal.RequireFromString("25.00"),
	})
	require.NoError(t, err)
	assert.True(t, payment.Price.Equal(decimal.RequireFromString("25.00")))

	stored := reloadOrder(t, db, order.ID)
	assert.Equal(t, domain.OrderStatusPaid, stored.OrderStatus)
	assert.Equal(t, domain.PaymentStatusPaid, stored.PaymentStatus)

	// the second capture completes as a no-op, not a duplicate charge record
	_, err = svc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
		OrderID:       order.ID,
		TransactionID: "pi_test_456",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	count, err := paymentRepo.CountByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRecordPaymentConcurrentCaptures(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, &fakeStripe{})
	ctx := context.Background()
	customer := &domain.Session{Email: customerEmail, Role: domain.RoleUser}

	order := seedOrder(t, db, domain.OrderStatusDelivered, customerEmail, chefEmail)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, txID := range []string{"pi_racer_a", "pi_racer_b"} {
		wg.Add(1)
		go func(txID string) {
			defer wg.Done()
			_, err := svc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
				OrderID:       order.ID,
				TransactionID: txID,
			})
			errs <- err
		}(txID)
	}
	wg.Wait()
	close(errs)

	var captured, refused int
	for err := range errs {
		switch {
		case err == nil:
			captured++
		case errors.Is(err, domain.ErrAlreadyPaid):
			refused++
		default:
			t.Fatalf("unexpected capture error: %v", err)
		}
	}
	assert.Equal(t, 1, captured, "exactly one racer may capture")
	assert.Equal(t, 1, refused, "the loser must see the order as already paid")

	stored := reloadOrder(t, db, order.ID)
	assert.Equal(t, domain.OrderStatusPaid, stored.OrderStatus)
	assert.Equal(t, domain.PaymentStatusPaid, stored.PaymentStatus)

	count, err := repository.NewPaymentRepository(db).CountByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRecordPaymentRefusedOutsideDelivered(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, &fakeStripe{})
	ctx := context.Background()
	customer := &domain.Session{Email: customerEmail, Role: domain.RoleUser}

	order := seedOrder(t, db, domain.OrderStatusAccepted, customerEmail, chefEmail)

	_, err := svc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
		OrderID:       order.ID,
		TransactionID: "pi_test_123",
	})
	assert.ErrorIs(t, err, domain.ErrPaymentNotAllowed)

	stored := reloadOrder(t, db, order.ID)
	assert.Equal(t, domain.OrderStatusAccepted, stored.OrderStatus)
	assert.Equal(t, domain.PaymentStatusUnpaid, stored.PaymentStatus)

	count, err := repository.NewPaymentRepository(db).CountByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordPaymentRejectsForeignIntent(t *testing.T) {
	ctx := context.Background()
	customer := &domain.Session{Email: customerEmail, Role: domain.RoleUser}

	t.Run("amount covers another, cheaper order", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db, &fakeStripe{intentAmount: 800})

		order := seedOrder(t, db, domain.OrderStatusDelivered, customerEmail, chefEmail)

		_, err := svc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
			OrderID:       order.ID,
			TransactionID: "pi_cheap",
		})
		assert.ErrorIs(t, err, domain.ErrInvalid)

		stored := reloadOrder(t, db, order.ID)
		assert.Equal(t, domain.OrderStatusDelivered, stored.OrderStatus)
		assert.Equal(t, domain.PaymentStatusUnpaid, stored.PaymentStatus)

		count, err := repository.NewPaymentRepository(db).CountByOrderID(ctx, order.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("intent issued for another order", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPaymentService(db, &fakeStripe{intentOrder: "some-other-order"})

		order := seedOrder(t, db, domain.OrderStatusDelivered, customerEmail, chefEmail)

		_, err := svc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
			OrderID:       order.ID,
			TransactionID: "pi_replayed",
		})
		assert.ErrorIs(t, err, domain.ErrInvalid)
		assert.Equal(t, domain.PaymentStatusUnpaid, reloadOrder(t, db, order.ID).PaymentStatus)
	})
}

func TestRecordPaymentVerifiesProcessor(t *testing.T) {
	db := newTestDB(t)
	stripe := &fakeStripe{intentStatus: "requires_payment_method"}
	svc := newPaymentService(db, stripe)
	ctx := context.Background()
	customer := &domain.Session{Email: customerEmail, Role: domain.RoleUser}

	order := seedOrder(t, db, domain.OrderStatusDelivered, customerEmail, chefEmail)

	_, err := svc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
		OrderID:       order.ID,
		TransactionID: "pi_not_confirmed",
	})
	assert.ErrorIs(t, err, domain.ErrProcessor)

	// nothing changed
	stored := reloadOrder(t, db, order.ID)
	assert.Equal(t, domain.OrderStatusDelivered, stored.OrderStatus)
	assert.Equal(t, domain.PaymentStatusUnpaid, stored.PaymentStatus)
}

func TestEndToEndLifecycleScenario(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	mealRepo := repository.NewMealRepository(db)
	orderSvc := NewOrderService(orderRepo, mealRepo)
	paySvc := newPaymentService(db, &fakeStripe{})
	ctx := context.Background()

	customer := &domain.Session{Email: customerEmail, Role: domain.RoleUser}
	chef := &domain.Session{Email: chefEmail, Role: domain.RoleChef}

	meal := seedMeal(t, db, "12.50", chefEmail)

	order, err := orderSvc.PlaceOrder(ctx, customer, &dto.CreateOrderRequest{
		MealID: meal.ID, Quantity: 2,
	})
	require.NoError(t, err)
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("25.00")))

	_, err = orderSvc.Transition(ctx, chef, order.ID, domain.OrderStatusAccepted)
	require.NoError(t, err)

	// premature payment while still accepted
	_, err = paySvc.CreatePaymentIntent(ctx, customer, &dto.CreatePaymentIntentRequest{OrderID: order.ID})
	require.ErrorIs(t, err, domain.ErrPaymentNotAllowed)

	_, err = orderSvc.Transition(ctx, chef, order.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)

	resp, err := paySvc.CreatePaymentIntent(ctx, customer, &dto.CreatePaymentIntentRequest{OrderID: order.ID})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ClientSecret)

	payment, err := paySvc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
		OrderID:       order.ID,
		TransactionID: fmt.Sprintf("pi_%s", order.ID),
	})
	require.NoError(t, err)
	require.True(t, payment.Price.Equal(decimal.RequireFromString("25.00")))

	_, err = paySvc.RecordPayment(ctx, customer, &dto.RecordPaymentRequest{
		OrderID:       order.ID,
		TransactionID: "pi_retry",
	})
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)

	count, err := repository.NewPaymentRepository(db).CountByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
