package server

import (
	"net/http"

	"foodmate-server/internal/config"
	"foodmate-server/internal/handler"
	authmw "foodmate-server/internal/middleware"
	"foodmate-server/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	auth           echo.MiddlewareFunc
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	mealHandler    *handler.MealHandler
	userHandler    *handler.UserHandler
	reviewHandler  *handler.ReviewHandler
}

func NewServer(
	jwtCfg *config.JWT,
	userRepo repository.UserRepository,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	mealHandler *handler.MealHandler,
	userHandler *handler.UserHandler,
	reviewHandler *handler.ReviewHandler,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		auth:           authmw.AuthMiddleware(jwtCfg, userRepo),
		orderHandler:   orderHandler,
		paymentHandler: paymentHandler,
		mealHandler:    mealHandler,
		userHandler:    userHandler,
		reviewHandler:  reviewHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	e := s.echo

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// public storefront surface
	e.POST("/jwt", s.userHandler.IssueToken)
	e.POST("/users", s.userHandler.Register)
	e.GET("/users/chef/:email", s.userHandler.CheckChef)
	e.GET("/meals", s.mealHandler.GetMeals)
	e.GET("/mealsCount", s.mealHandler.CountMeals)
	e.GET("/meals/:id", s.mealHandler.GetMeal)
	e.GET("/reviews", s.reviewHandler.GetReviews)

	// -------- orders --------
	orders := e.Group("/orders", s.auth)
	orders.POST("", s.orderHandler.CreateOrder)
	orders.GET("", s.orderHandler.GetUserOrders)
	orders.GET("/chef/:email", s.orderHandler.GetChefOrders)
	orders.PATCH("/status/:id", s.orderHandler.UpdateStatus)
	orders.DELETE("/:id", s.orderHandler.CancelOrder)

	// -------- payments --------
	e.POST("/create-payment-intent", s.paymentHandler.CreatePaymentIntent, s.auth)
	e.POST("/payments", s.paymentHandler.RecordPayment, s.auth)

	// -------- meals (chef/admin mutations) --------
	e.POST("/meals", s.mealHandler.CreateMeal, s.auth)
	e.PATCH("/meals/:id", s.mealHandler.UpdateMeal, s.auth)
	e.DELETE("/meals/:id", s.mealHandler.DeleteMeal, s.auth)
	e.GET("/meals/chef/:email", s.mealHandler.GetChefMeals, s.auth)

	// -------- users / roles --------
	users := e.Group("/users", s.auth)
	users.GET("", s.userHandler.GetAll)
	users.GET("/admin/:email", s.userHandler.CheckAdmin)
	users.PATCH("/admin/:id", s.userHandler.ApproveRole)
	users.POST("/request-role", s.userHandler.RequestRole)
	users.GET("/profile/:email", s.userHandler.GetProfile)
	users.PATCH("/profile/:email", s.userHandler.UpdateProfile)

	e.POST("/reviews", s.reviewHandler.CreateReview, s.auth)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
