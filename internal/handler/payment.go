package handler

import (
	"log/slog"
	"net/http"

	"foodmate-server/internal/dto"
	"foodmate-server/internal/middleware"
	"foodmate-server/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing orderId")
	}

	resp, err := h.paymentService.CreatePaymentIntent(ctx, session, &req)
	if err != nil {
		return httpError(err)
	}

	h.logger.Info("payment intent created", "order_id", req.OrderID, "user", session.Email)

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing orderId")
	}

	payment, err := h.paymentService.RecordPayment(ctx, session, &req)
	if err != nil {
		return httpError(err)
	}

	h.logger.Info("payment recorded",
		"order_id", payment.OrderID, "transaction_id", payment.TransactionID,
		"amount", payment.Price)

	return c.JSON(http.StatusOK, &dto.PaymentResult{
		PaymentResult: dto.InsertResult{InsertedID: payment.ID},
	})
}
