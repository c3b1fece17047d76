package http

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

// maxReceiptImageBytes bounds uploaded receipt photos.
const maxReceiptImageBytes = 10 << 20

type fuelService interface {
	List(ctx context.Context, userID string) ([]domain.FuelRecord, error)
	Create(ctx context.Context, r *domain.FuelRecord) error
	Update(ctx context.Context, r *domain.FuelRecord) error
	Delete(ctx context.Context, userID, id string) error
	ScanReceipt(ctx context.Context, img []byte) (domain.ExtractedReceiptData, bool, error)
}

type scanResponse struct {
	Recognized bool                        `json:"recognized"`
	Data       domain.ExtractedReceiptData `json:"data"`
}

type FuelHandler struct {
	fuelSvc fuelService
}

func NewFuelHandler(fuelSvc fuelService) *FuelHandler {
	return &FuelHandler{fuelSvc: fuelSvc}
}

func (h *FuelHandler) Register(r *gin.RouterGroup) {
	r.GET("/fuel", h.List)
	r.POST("/fuel", h.Create)
	r.POST("/fuel/scan", h.Scan)
	r.PUT("/fuel/:id", h.Update)
	r.DELETE("/fuel/:id", h.Delete)
}

func (h *FuelHandler) List(c *gin.Context) {
	records, err := h.fuelSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch fuel records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *FuelHandler) Create(c *gin.Context) {
	var r domain.FuelRecord
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	r.UserID = userID(c)

	if err := h.fuelSvc.Create(c.Request.Context(), &r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Scan accepts a multipart upload with a "receipt" file field and
// returns the fields extracted from the photo.
func (h *FuelHandler) Scan(c *gin.Context) {
	file, _, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing receipt file"})
		return
	}
	defer file.Close()

	img, err := io.ReadAll(io.LimitReader(file, maxReceiptImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read receipt file"})
		return
	}

	data, recognized, err := h.fuelSvc.ScanReceipt(c.Request.Context(), img)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scanResponse{Recognized: recognized, Data: data})
}

func (h *FuelHandler) Update(c *gin.Context) {
	var r domain.FuelRecord
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	r.ID = c.Param("id")
	r.UserID = userID(c)

	if err := h.fuelSvc.Update(c.Request.Context(), &r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "fuel record not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *FuelHandler) Delete(c *gin.Context) {
	if err := h.fuelSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "fuel record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete fuel record"})
		return
	}
	c.Status(http.StatusNoContent)
}
