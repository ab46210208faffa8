package handler

import (
	"log/slog"
	"net/http"

	"foodmate-server/internal/domain"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/middleware"
	"foodmate-server/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
	logger       *slog.Logger
}

func NewOrderHandler(orderService service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.PlaceOrder(ctx, session, &req)
	if err != nil {
		return httpError(err)
	}

	h.logger.Info("order placed",
		"order_id", order.ID, "meal_id", order.MealID, "user", order.UserEmail)

	return c.JSON(http.StatusCreated, &dto.InsertResult{InsertedID: order.ID})
}

func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	email := c.QueryParam("email")
	if email == "" {
		email = session.Email
	}

	orders, err := h.orderService.GetUserOrders(ctx, session, email)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetChefOrders(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	orders, err := h.orderService.GetChefOrders(ctx, session, c.Param("email"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)
	orderID := c.Param("id")

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	rows, err := h.orderService.Transition(ctx, session, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		return httpError(err)
	}

	h.logger.Info("order status updated",
		"order_id", orderID, "status", req.Status, "actor", session.Email)

	return c.JSON(http.StatusOK, &dto.ModifyResult{ModifiedCount: rows})
}

// CancelOrder backs the storefront's DELETE: a guarded pending → cancelled
// transition reported in the delete-shaped response the client expects.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)
	orderID := c.Param("id")

	rows, err := h.orderService.Cancel(ctx, session, orderID)
	if err != nil {
		return httpError(err)
	}

	h.logger.Info("order cancelled", "order_id", orderID, "actor", session.Email)

	return c.JSON(http.StatusOK, &dto.DeleteResult{DeletedCount: rows})
}
