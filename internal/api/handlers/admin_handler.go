package handlers

import (
	"net/http"

	"github.com/careerforge/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	stats services.StatsService
}

func NewAdminHandler(stats services.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	overview, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
