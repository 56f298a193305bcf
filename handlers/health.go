package handlers

import (
	"net/http"

	userRepo "clubsync/database/repository/user"
	"clubsync/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports agent and dependency health.
type HealthHandler struct {
	Users userRepo.UserRepository
}

// Check is the liveness endpoint; it includes the directory size so
// operators can spot an empty or unreachable user store at a glance.
func (h *HealthHandler) Check(c *gin.Context) {
	users, err := h.Users.GetAll("")
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"agent":        "MeetingSchedulerAgent",
		"total_users":  len(users),
		"dependencies": utils.GetHealthStatus(),
		"version":      "1.0.0",
	})
}
