package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clubsync/models"
	"clubsync/services/scheduler"
	"clubsync/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// pollTTL bounds how long a composed poll stays retrievable. Polls are
// ephemeral by design; the cache is the only place they live.
const pollTTL = 24 * time.Hour

// AgentHandler exposes the scheduler engine over HTTP.
type AgentHandler struct {
	Svc   scheduler.SchedulerService
	Cache *redis.Client
}

// NewAgentHandler builds the handler set.
func NewAgentHandler(svc scheduler.SchedulerService, cache *redis.Client) *AgentHandler {
	return &AgentHandler{Svc: svc, Cache: cache}
}

// respondError maps engine errors to HTTP statuses: validation failures are
// the caller's fault, everything else is a 500.
func respondError(c *gin.Context, err error) {
	var ve *scheduler.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ve.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}

// SuggestSlots finds and ranks optimal meeting slots.
func (h *AgentHandler) SuggestSlots(c *gin.Context) {
	var req scheduler.SlotSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	slots, err := h.Svc.FindOptimalSlots(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"slots":   slots,
		"message": fmt.Sprintf("Found %d optimal slots", len(slots)),
	})
}

// CreatePoll composes a smart poll and stashes it in the cache.
func (h *AgentHandler) CreatePoll(c *gin.Context) {
	var req scheduler.PollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	poll, err := h.Svc.CreatePoll(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.Cache != nil {
		if data, err := json.Marshal(poll); err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := h.Cache.Set(ctx, pollCacheKey(poll.ID), data, pollTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache poll",
					zap.String("poll_id", poll.ID), zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"poll":    poll,
		"message": "Poll created successfully",
	})
}

// GetPoll retrieves a previously composed poll from the cache.
func (h *AgentHandler) GetPoll(c *gin.Context) {
	id := c.Param("id")
	if h.Cache == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "poll not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	data, err := h.Cache.Get(ctx, pollCacheKey(id)).Bytes()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "poll not found"})
		return
	}

	var poll models.SmartPoll
	if err := json.Unmarshal(data, &poll); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "corrupt poll data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "poll": poll})
}

func pollCacheKey(id string) string {
	return "poll:" + id
}

// UserPatterns returns the learned pattern for one user. Only mentors or the
// user themselves may view it.
func (h *AgentHandler) UserPatterns(c *gin.Context) {
	targetID := c.Param("id")
	callerID := c.GetString("user_id")
	isMentor := c.GetBool("is_mentor")
	if !isMentor && callerID != targetID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "permission denied"})
		return
	}

	pattern, err := h.Svc.LearnPattern(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "patterns": pattern})
}

// AttendanceProbability computes per-user attendance probabilities for a slot.
func (h *AgentHandler) AttendanceProbability(c *gin.Context) {
	var req struct {
		UserIDs      []string  `json:"user_ids"`
		SlotDatetime time.Time `json:"slot_datetime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.UserIDs) == 0 || req.SlotDatetime.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", "missing user_ids or slot_datetime")
		return
	}

	probabilities := make(map[string]float64, len(req.UserIDs))
	var expected float64
	for _, id := range req.UserIDs {
		p, err := h.Svc.EstimateProbability(c.Request.Context(), id, req.SlotDatetime)
		if err != nil {
			respondError(c, err)
			return
		}
		probabilities[id] = p
		expected += p
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"probabilities":  probabilities,
		"expected_count": expected,
	})
}

// AnalyzeConstraints reports whether a constraint spec is satisfiable.
func (h *AgentHandler) AnalyzeConstraints(c *gin.Context) {
	var req struct {
		Constraints models.ConstraintSpec `json:"constraints"`
		DaysAhead   int                   `json:"days_ahead"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	analysis, err := h.Svc.AnalyzeConstraints(c.Request.Context(), req.Constraints, req.DaysAhead)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"feasible": analysis.Feasible,
		"analysis": analysis,
	})
}

// SlotOccupancy explains per-user availability for one concrete slot.
func (h *AgentHandler) SlotOccupancy(c *gin.Context) {
	var req struct {
		SlotDatetime    time.Time `json:"slot_datetime"`
		DurationMinutes int       `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.SlotDatetime.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", "missing slot_datetime")
		return
	}

	occupancy, err := h.Svc.GetBusyUsersForSlot(c.Request.Context(), req.SlotDatetime, req.DurationMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "occupancy": occupancy})
}
