// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/payment-mindmap/backend/internal/integration/entrypoint/controller"
	"github.com/payment-mindmap/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	budgetController  *controller.BudgetController
	mindmapController *controller.MindmapController
	corsOrigin        string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	budgetController *controller.BudgetController,
	mindmapController *controller.MindmapController,
	corsOrigin string,
) *Router {
	return &Router{
		healthController:  healthController,
		budgetController:  budgetController,
		mindmapController: mindmapController,
		corsOrigin:        corsOrigin,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.CORS(r.corsOrigin))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.budgetController != nil {
			budgets := v1.Group("/budgets")
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.GET("/active", r.budgetController.GetActive)
				budgets.PUT("/active", r.budgetController.SetActive)
				budgets.PUT("/initial-payment", r.budgetController.UpdateInitialPayment)
				budgets.DELETE("/:id", r.budgetController.Delete)
			}
		}

		if r.mindmapController != nil {
			mindmap := v1.Group("/mindmap")
			{
				mindmap.GET("", r.mindmapController.Load)
				mindmap.GET("/export", r.mindmapController.Export)
				mindmap.POST("/restore", r.mindmapController.Restore)
				mindmap.POST("/reset", r.mindmapController.Reset)
			}

			recipients := v1.Group("/recipients")
			{
				recipients.POST("", r.mindmapController.AddRecipient)
				recipients.DELETE("/:id", r.mindmapController.RemoveRecipient)
				recipients.POST("/:id/transactions", r.mindmapController.AddTransaction)
				recipients.POST("/:id/consolidate", r.mindmapController.Consolidate)
			}

			v1.DELETE("/transactions/:id", r.mindmapController.RemoveTransaction)
			v1.POST("/transfers", r.mindmapController.Transfer)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
