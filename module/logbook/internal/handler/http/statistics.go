package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type statisticsService interface {
	Snapshot(ctx context.Context, userID string) (*domain.StatisticsSnapshot, error)
}

type StatisticsHandler struct {
	statsSvc statisticsService
}

func NewStatisticsHandler(statsSvc statisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsSvc: statsSvc}
}

func (h *StatisticsHandler) Register(r *gin.RouterGroup) {
	r.GET("/statistics", h.Get)
}

func (h *StatisticsHandler) Get(c *gin.Context) {
	snap, err := h.statsSvc.Snapshot(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute statistics"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
