package handlers

import (
	"net/http"

	availabilityRepo "clubsync/database/repository/availability"
	"clubsync/models"
	"clubsync/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AvailabilityHandler manages a user's recurring busy/available rules.
type AvailabilityHandler struct {
	Rules availabilityRepo.AvailabilityRepository
}

// ListMine lists the caller's rules.
func (h *AvailabilityHandler) ListMine(c *gin.Context) {
	rules, err := h.Rules.ListRulesForUser(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rules": rules})
}

// Create adds a recurring rule for the caller.
func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req struct {
		DayOfWeek int  `json:"day_of_week"`
		StartHour int  `json:"start_hour"`
		EndHour   int  `json:"end_hour"`
		Busy      bool `json:"is_busy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		utils.JSONError(c, http.StatusBadRequest, "invalid rule", "day_of_week must be in [0,6]")
		return
	}
	if req.StartHour < 0 || req.StartHour > 23 || req.EndHour <= req.StartHour || req.EndHour > 24 {
		utils.JSONError(c, http.StatusBadRequest, "invalid rule", "hours must satisfy 0 <= start < end <= 24")
		return
	}

	rule := &models.AvailabilityRule{
		ID:        uuid.New().String(),
		UserID:    c.GetString("user_id"),
		DayOfWeek: req.DayOfWeek,
		StartHour: req.StartHour,
		EndHour:   req.EndHour,
		Busy:      req.Busy,
		Recurring: true,
	}
	if err := h.Rules.Create(rule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "rule": rule})
}

// Delete removes one of the caller's rules.
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	rules, err := h.Rules.ListRulesForUser(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	owned := false
	for _, r := range rules {
		if r.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "rule not found"})
		return
	}

	if err := h.Rules.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
