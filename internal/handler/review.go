package handler

import (
	"net/http"

	"foodmate-server/internal/dto"
	"foodmate-server/internal/middleware"
	"foodmate-server/internal/service"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	review, err := h.reviewService.CreateReview(ctx, session, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, &dto.InsertResult{InsertedID: review.ID})
}

func (h *ReviewHandler) GetReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.reviewService.GetReviews(ctx, c.QueryParam("email"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, reviews)
}
