package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type driverService interface {
	List(ctx context.Context, userID string) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) error
	Update(ctx context.Context, d *domain.Driver) error
	Delete(ctx context.Context, userID, id string) error
}

type DriverHandler struct {
	driverSvc driverService
}

func NewDriverHandler(driverSvc driverService) *DriverHandler {
	return &DriverHandler{driverSvc: driverSvc}
}

func (h *DriverHandler) Register(r *gin.RouterGroup) {
	r.GET("/drivers", h.List)
	r.POST("/drivers", h.Create)
	r.PUT("/drivers/:id", h.Update)
	r.DELETE("/drivers/:id", h.Delete)
}

func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.driverSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch drivers"})
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *DriverHandler) Create(c *gin.Context) {
	var d domain.Driver
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	d.UserID = userID(c)

	if err := h.driverSvc.Create(c.Request.Context(), &d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DriverHandler) Update(c *gin.Context) {
	var d domain.Driver
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	d.ID = c.Param("id")
	d.UserID = userID(c)

	if err := h.driverSvc.Update(c.Request.Context(), &d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.driverSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete driver"})
		return
	}
	c.Status(http.StatusNoContent)
}
