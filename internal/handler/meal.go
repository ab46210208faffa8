package handler

import (
	"net/http"
	"strconv"

	"foodmate-server/internal/dto"
	"foodmate-server/internal/middleware"
	"foodmate-server/internal/service"

	"github.com/labstack/echo/v4"
)

type MealHandler struct {
	mealService service.MealService
}

func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
	}
}

func (h *MealHandler) CreateMeal(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.CreateMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	meal, err := h.mealService.CreateMeal(ctx, session, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, &dto.InsertResult{InsertedID: meal.ID})
}

func (h *MealHandler) GetMeals(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	meals, err := h.mealService.GetMeals(ctx, page, limit, c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) CountMeals(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.mealService.CountMeals(ctx, c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

func (h *MealHandler) GetMeal(c echo.Context) error {
	ctx := c.Request().Context()

	meal, err := h.mealService.GetMeal(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) GetChefMeals(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	meals, err := h.mealService.GetChefMeals(ctx, session, c.Param("email"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) UpdateMeal(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.UpdateMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	rows, err := h.mealService.UpdateMeal(ctx, session, c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.ModifyResult{ModifiedCount: rows})
}

func (h *MealHandler) DeleteMeal(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	rows, err := h.mealService.DeleteMeal(ctx, session, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.DeleteResult{DeletedCount: rows})
}
