// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	walletController      *controller.WalletController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	goalController        *controller.GoalController
	recurringController   *controller.RecurringController
	scenarioController    *controller.ScenarioController
	processNowRateLimiter *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
	corsOrigins           []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	walletController *controller.WalletController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	goalController *controller.GoalController,
	recurringController *controller.RecurringController,
	scenarioController *controller.ScenarioController,
	processNowRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	corsOrigins []string,
) *Router {
	return &Router{
		healthController:      healthController,
		walletController:      walletController,
		categoryController:    categoryController,
		transactionController: transactionController,
		goalController:        goalController,
		recurringController:   recurringController,
		scenarioController:    scenarioController,
		processNowRateLimiter: processNowRateLimiter,
		authMiddleware:        authMiddleware,
		corsOrigins:           corsOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(r.corsConfig()))

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if len(r.corsOrigins) == 0 || (len(r.corsOrigins) == 1 && r.corsOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = r.corsOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return config
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every group requires authentication.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		wallets := v1.Group("/wallets")
		{
			wallets.GET("", r.walletController.List)
			wallets.POST("", r.walletController.Create)
			wallets.GET("/:id", r.walletController.Get)
			wallets.PATCH("/:id", r.walletController.Update)
			wallets.DELETE("/:id", r.walletController.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.PATCH("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		goals := v1.Group("/goals")
		{
			goals.GET("", r.goalController.List)
			goals.POST("", r.goalController.Create)
			goals.GET("/:id", r.goalController.Get)
			goals.PATCH("/:id", r.goalController.Update)
			goals.DELETE("/:id", r.goalController.Delete)
			goals.POST("/:id/add", r.goalController.AddAmount)
			goals.POST("/:id/remove", r.goalController.RemoveAmount)
			goals.GET("/:id/transactions", r.goalController.TransactionHistory)
			goals.POST("/:id/milestones/regenerate", r.goalController.RegenerateMilestones)
			goals.PATCH("/:id/milestones/:milestoneId", r.goalController.UpdateMilestone)
		}

		recurring := v1.Group("/recurring")
		{
			recurring.POST("/process", r.processNowRateLimiter.Middleware(), r.recurringController.ProcessNow)
		}

		scenarios := v1.Group("/scenarios")
		{
			scenarios.POST("/calculate", r.scenarioController.Calculate)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
