package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
)

type settingsService interface {
	Get(ctx context.Context, userID string) (*domain.Settings, error)
	Save(ctx context.Context, userID string, s *domain.Settings) error
	Reset(ctx context.Context, userID string) (*domain.Settings, error)
}

type SettingsHandler struct {
	settingsSvc settingsService
}

func NewSettingsHandler(settingsSvc settingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

func (h *SettingsHandler) Register(r *gin.RouterGroup) {
	r.GET("/settings", h.Get)
	r.PUT("/settings", h.Save)
	r.POST("/settings/reset", h.Reset)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settingsSvc.Get(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Save(c *gin.Context) {
	s := domain.DefaultSettings()
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.settingsSvc.Save(c.Request.Context(), userID(c), &s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Reset(c *gin.Context) {
	s, err := h.settingsSvc.Reset(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset settings"})
		return
	}
	c.JSON(http.StatusOK, s)
}
