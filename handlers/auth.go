package handlers

import (
	"net/http"
	"time"

	userRepo "clubsync/database/repository/user"
	"clubsync/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues API tokens for directory members. Identity lives in
// the external directory; this only mints a bearer token for a known user.
type AuthHandler struct {
	Users userRepo.UserRepository
}

// Login exchanges a user ID and matching email for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.Users.GetByID(req.UserID)
	if err != nil || user.Email != req.Email {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unknown user or email mismatch"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.IsMentor, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}
