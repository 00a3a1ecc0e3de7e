package handlers

import (
	"net/http"
	"strconv"

	"github.com/careerforge/backend/internal/services"
	"github.com/careerforge/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) Search(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	query := c.Query("query")
	if query == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Search", "query parameter is required", nil))
		return
	}

	jobs, err := h.svc.Search(c.Request.Context(), query, c.Query("location"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

func (h *JobHandler) Recommended(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	jobs, err := h.svc.Recommended(c.Request.Context(), userID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}
