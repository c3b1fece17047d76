package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type costService interface {
	List(ctx context.Context, userID string) ([]domain.Cost, error)
	Create(ctx context.Context, co *domain.Cost) error
	Update(ctx context.Context, co *domain.Cost) error
	Delete(ctx context.Context, userID, id string) error
}

type CostHandler struct {
	costSvc costService
}

func NewCostHandler(costSvc costService) *CostHandler {
	return &CostHandler{costSvc: costSvc}
}

func (h *CostHandler) Register(r *gin.RouterGroup) {
	r.GET("/costs", h.List)
	r.POST("/costs", h.Create)
	r.PUT("/costs/:id", h.Update)
	r.DELETE("/costs/:id", h.Delete)
}

func (h *CostHandler) List(c *gin.Context) {
	costs, err := h.costSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch costs"})
		return
	}
	c.JSON(http.StatusOK, costs)
}

func (h *CostHandler) Create(c *gin.Context) {
	var co domain.Cost
	if err := c.ShouldBindJSON(&co); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	co.UserID = userID(c)

	if err := h.costSvc.Create(c.Request.Context(), &co); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, co)
}

func (h *CostHandler) Update(c *gin.Context) {
	var co domain.Cost
	if err := c.ShouldBindJSON(&co); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	co.ID = c.Param("id")
	co.UserID = userID(c)

	if err := h.costSvc.Update(c.Request.Context(), &co); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cost not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, co)
}

func (h *CostHandler) Delete(c *gin.Context) {
	if err := h.costSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cost not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cost"})
		return
	}
	c.Status(http.StatusNoContent)
}
