package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type vehicleService interface {
	List(ctx context.Context, userID string) ([]domain.Vehicle, error)
	Get(ctx context.Context, userID, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, userID, id string) error
}

type VehicleHandler struct {
	vehicleSvc vehicleService
}

func NewVehicleHandler(vehicleSvc vehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

func (h *VehicleHandler) Register(r *gin.RouterGroup) {
	r.GET("/vehicles", h.List)
	r.GET("/vehicles/:id", h.Get)
	r.POST("/vehicles", h.Create)
	r.PUT("/vehicles/:id", h.Update)
	r.DELETE("/vehicles/:id", h.Delete)
}

func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.vehicleSvc.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var v domain.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	v.UserID = userID(c)

	if err := h.vehicleSvc.Create(c.Request.Context(), &v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var v domain.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	v.ID = c.Param("id")
	v.UserID = userID(c)

	if err := h.vehicleSvc.Update(c.Request.Context(), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete vehicle"})
		return
	}
	c.Status(http.StatusNoContent)
}
