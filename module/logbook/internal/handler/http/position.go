package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type positionService interface {
	Latest(ctx context.Context, userID, vehicleID string) (*domain.VehiclePosition, error)
	History(ctx context.Context, q *domain.PositionHistoryQuery) ([]domain.VehiclePosition, error)
}

type PositionHandler struct {
	positionSvc positionService
}

func NewPositionHandler(positionSvc positionService) *PositionHandler {
	return &PositionHandler{positionSvc: positionSvc}
}

func (h *PositionHandler) Register(r *gin.RouterGroup) {
	r.GET("/vehicles/:id/position", h.Latest)
	r.GET("/vehicles/:id/position/history", h.History)
}

func (h *PositionHandler) Latest(c *gin.Context) {
	p, err := h.positionSvc.Latest(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no position recorded"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PositionHandler) History(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}
	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.PositionHistoryQuery{
		UserID:    userID(c),
		VehicleID: c.Param("id"),
		Start:     time.Unix(start, 0),
		End:       time.Unix(end, 0),
	}
	positions, err := h.positionSvc.History(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, positions)
}
