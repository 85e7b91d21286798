package handler

import (
	"errors"
	"net/http"
	"strconv"

	"goodturn/internal/domain"
	"goodturn/internal/middleware"
	"goodturn/internal/points"
	"goodturn/internal/service"

	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	engine     *points.Engine
	statsSvc   *service.StatsService
	checkinSvc *service.CheckinService
}

func NewPointsHandler(engine *points.Engine, statsSvc *service.StatsService, checkinSvc *service.CheckinService) *PointsHandler {
	return &PointsHandler{engine: engine, statsSvc: statsSvc, checkinSvc: checkinSvc}
}

// GetStats returns the caller's aggregated stats. ?window=weekly|monthly
// narrows the aggregation; the default is all-time.
func (h *PointsHandler) GetStats(c *gin.Context) {
	userID := middleware.GetUserID(c)
	window := c.DefaultQuery("window", domain.WindowAllTime)

	var (
		stats points.UserStats
		err   error
	)
	if window == domain.WindowAllTime {
		stats, err = h.statsSvc.Stats(c.Request.Context(), userID)
	} else {
		stats, err = h.statsSvc.StatsWindowed(userID, window)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetHistory returns a page of the caller's points ledger, newest first.
func (h *PointsHandler) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	window := c.DefaultQuery("window", domain.WindowAllTime)
	limit, offset := pagination(c, 50, 200)

	history, err := h.statsSvc.History(userID, window, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": history})
}

// Checkin awards the daily check-in points and reports the current streak.
func (h *PointsHandler) Checkin(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tx, streak, err := h.checkinSvc.Checkin(userID)
	if err != nil {
		if errors.Is(err, service.ErrCooldownActive) {
			c.JSON(http.StatusConflict, gin.H{"error": "already checked in today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "check-in failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transaction": tx,
		"streak_days": streak,
	})
}

// GetLadder returns the trust ladder for display.
func (h *PointsHandler) GetLadder(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ladder": h.engine.Ladder()})
}

// GetCategories returns the category rate table for display.
func (h *PointsHandler) GetCategories(c *gin.Context) {
	rates := h.engine.Rates()
	out := make([]gin.H, 0, len(rates))
	for category, rate := range rates {
		out = append(out, gin.H{
			"category":         category,
			"base_points":      rate.BasePoints,
			"multiplier":       rate.Multiplier,
			"cooldown_minutes": rate.CooldownMinutes,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// GetLeaderboard returns the top earners. ?window=all|weekly|monthly.
func (h *PointsHandler) GetLeaderboard(c *gin.Context) {
	window := c.DefaultQuery("window", domain.WindowAllTime)
	switch window {
	case domain.WindowAllTime, domain.WindowWeekly, domain.WindowMonthly:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window"})
		return
	}
	limit, _ := pagination(c, 20, 100)
	entries, err := h.statsSvc.Leaderboard(c.Request.Context(), window, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": window, "entries": entries})
}

func pagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
