package routes

import (
	"net/http"
	"time"

	"clubsync/handlers"
	"clubsync/middleware"
	"clubsync/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAgentRoutes registers the scheduler agent endpoints.
func RegisterAgentRoutes(r *gin.Engine, agent *handlers.AgentHandler, health *handlers.HealthHandler) {
	api := r.Group("/api/agent")
	{
		api.GET("/health", health.Check)

		// Recommendation endpoints require authentication.
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/suggest-slots", agent.SuggestSlots)
		api.POST("/create-poll", agent.CreatePoll)
		api.GET("/poll/:id", agent.GetPoll)
		api.GET("/user-patterns/:id", agent.UserPatterns)
		api.POST("/attendance-probability", agent.AttendanceProbability)
		api.POST("/analyze-constraints", agent.AnalyzeConstraints)
		api.POST("/slot-occupancy", agent.SlotOccupancy)
	}
}

// RegisterAuthRoutes registers token issuance.
func RegisterAuthRoutes(r *gin.Engine, auth *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", auth.Login)
	}
}

// RegisterAvailabilityRoutes registers rule management endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, availability *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/rules", availability.ListMine)
		api.POST("/rules", availability.Create)
		api.DELETE("/rules/:id", availability.Delete)
	}
}

// SetupRouter assembles the Gin engine with shared middleware.
func SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	return router
}
