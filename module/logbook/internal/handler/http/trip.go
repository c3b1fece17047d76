package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/service"
)

type tripService interface {
	List(ctx context.Context, userID string) ([]domain.Trip, error)
	Active(ctx context.Context, userID string) (*domain.Trip, error)
	Start(ctx context.Context, userID, driverName, vehicleID string, lat, lon *float64) (*domain.Trip, error)
	End(ctx context.Context, userID, notes string, lat, lon *float64) (*domain.Trip, error)
	CreateManual(ctx context.Context, userID string, in service.ManualTripInput) (*domain.Trip, error)
	Update(ctx context.Context, t *domain.Trip) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) error
}

type startTripRequest struct {
	DriverName string   `json:"driver_name"`
	VehicleID  string   `json:"vehicle_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

type endTripRequest struct {
	Notes     string   `json:"notes"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type TripHandler struct {
	tripSvc tripService
}

func NewTripHandler(tripSvc tripService) *TripHandler {
	return &TripHandler{tripSvc: tripSvc}
}

func (h *TripHandler) Register(r *gin.RouterGroup) {
	r.GET("/trips", h.List)
	r.GET("/trips/active", h.Active)
	r.POST("/trips", h.CreateManual)
	r.POST("/trips/start", h.Start)
	r.POST("/trips/end", h.End)
	r.PUT("/trips/:id", h.Update)
	r.DELETE("/trips/:id", h.Delete)
	r.DELETE("/trips", h.DeleteAll)
}

func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.tripSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch trips"})
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) Active(c *gin.Context) {
	trip, err := h.tripSvc.Active(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch active trip"})
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active trip"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) Start(c *gin.Context) {
	var req startTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	trip, err := h.tripSvc.Start(c.Request.Context(), userID(c), req.DriverName, req.VehicleID, req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) End(c *gin.Context) {
	var req endTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	trip, err := h.tripSvc.End(c.Request.Context(), userID(c), req.Notes, req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) CreateManual(c *gin.Context) {
	var in service.ManualTripInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	trip, err := h.tripSvc.CreateManual(c.Request.Context(), userID(c), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) Update(c *gin.Context) {
	var t domain.Trip
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t.ID = c.Param("id")
	t.UserID = userID(c)

	if err := h.tripSvc.Update(c.Request.Context(), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TripHandler) Delete(c *gin.Context) {
	if err := h.tripSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete trip"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TripHandler) DeleteAll(c *gin.Context) {
	if err := h.tripSvc.DeleteAll(c.Request.Context(), userID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete trips"})
		return
	}
	c.Status(http.StatusNoContent)
}
