package handler

import (
	"errors"
	"net/http"

	"foodmate-server/internal/domain"

	"github.com/labstack/echo/v4"
)

// httpError maps the domain error taxonomy onto HTTP. Guard failures keep
// the order's current status in the payload so the client can render a
// specific message.
func httpError(err error) error {
	var stateErr *domain.StateError

	switch {
	case errors.Is(err, domain.ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"error":   "invalid",
			"message": err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, echo.Map{
			"error":   "not_found",
			"message": "order or record not found",
		})
	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, echo.Map{
			"error":   "forbidden",
			"message": "you are not allowed to act on this record",
		})
	case errors.Is(err, domain.ErrPaymentNotAllowed):
		payload := echo.Map{"error": "payment_not_allowed"}
		if errors.As(err, &stateErr) {
			payload["message"] = domain.PaymentBlockedReason(stateErr.Current)
			payload["orderStatus"] = stateErr.Current
		} else {
			payload["message"] = domain.PaymentBlockedReason("")
		}
		return echo.NewHTTPError(http.StatusConflict, payload)
	case errors.Is(err, domain.ErrAlreadyPaid):
		return echo.NewHTTPError(http.StatusConflict, echo.Map{
			"error":   "already_paid",
			"message": "order is already paid",
		})
	case errors.Is(err, domain.ErrStateConflict):
		payload := echo.Map{
			"error":   "state_conflict",
			"message": "transition not allowed from current order status",
		}
		if errors.As(err, &stateErr) {
			payload["orderStatus"] = stateErr.Current
		}
		return echo.NewHTTPError(http.StatusConflict, payload)
	case errors.Is(err, domain.ErrProcessor):
		return echo.NewHTTPError(http.StatusBadGateway, echo.Map{
			"error":   "processor_error",
			"message": err.Error(),
		})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, echo.Map{
			"error":   "store_unavailable",
			"message": "store unreachable, retry later",
		})
	}

	return err
}
