package handler

import (
	"net/http"

	"foodmate-server/internal/config"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/middleware"
	"foodmate-server/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
	jwtCfg      *config.JWT
}

func NewUserHandler(userService service.UserService, jwtCfg *config.JWT) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtCfg:      jwtCfg,
	}
}

// IssueToken exchanges an identity-provider-verified email for an API token.
func (h *UserHandler) IssueToken(c echo.Context) error {
	var req dto.TokenRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing email")
	}

	token, err := middleware.IssueToken(h.jwtCfg, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.TokenResponse{Token: token})
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, &dto.InsertResult{InsertedID: user.ID})
}

func (h *UserHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	users, err := h.userService.GetAll(ctx, session)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CheckAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	isAdmin, err := h.userService.IsAdmin(ctx, c.Param("email"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"isAdmin": isAdmin})
}

func (h *UserHandler) CheckChef(c echo.Context) error {
	ctx := c.Request().Context()

	isChef, err := h.userService.IsChef(ctx, c.Param("email"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"chef": isChef})
}

func (h *UserHandler) RequestRole(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.RequestRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	rows, err := h.userService.RequestRole(ctx, session, req.Role)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.ModifyResult{ModifiedCount: rows})
}

func (h *UserHandler) ApproveRole(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.ApproveRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	rows, err := h.userService.ApproveRole(ctx, session, c.Param("id"), req.Role)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.ModifyResult{ModifiedCount: rows})
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	user, err := h.userService.GetProfile(ctx, session, c.Param("email"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionFromContext(c)

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	rows, err := h.userService.UpdateProfile(ctx, session, c.Param("email"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.ModifyResult{ModifiedCount: rows})
}
