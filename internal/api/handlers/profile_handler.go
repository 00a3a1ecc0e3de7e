package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/services"
	"github.com/careerforge/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Headline *string `json:"headline,omitempty"`
	CVText   *string `json:"cv_text,omitempty"`

	Skills      *[]string `json:"skills,omitempty"`
	TargetRoles *[]string `json:"target_roles,omitempty"`
	Locations   *[]string `json:"locations,omitempty"`

	SalaryMin *int `json:"salary_min,omitempty"`
	SalaryMax *int `json:"salary_max,omitempty"`

	RemoteOK *bool `json:"remote_ok,omitempty"`
	HybridOK *bool `json:"hybrid_ok,omitempty"`
	OnsiteOK *bool `json:"onsite_ok,omitempty"`

	// JSONB field (raw)
	Preferences *json.RawMessage `json:"preferences,omitempty"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Update", "invalid request body", err))
		return
	}

	// Load existing (if not found => create new)
	var existing *models.Profile
	existing, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			existing = &models.Profile{UserID: userID}
		} else {
			writeError(c, err)
			return
		}
	}

	cvChanged := false

	// Apply partial updates
	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.Headline != nil {
		existing.Headline = *req.Headline
	}
	if req.CVText != nil && *req.CVText != existing.CVText {
		existing.CVText = *req.CVText
		cvChanged = true
	}
	if req.Skills != nil {
		existing.Skills = *req.Skills
	}
	if req.TargetRoles != nil {
		existing.TargetRoles = *req.TargetRoles
	}
	if req.Locations != nil {
		existing.Locations = *req.Locations
	}
	if req.SalaryMin != nil {
		existing.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		existing.SalaryMax = *req.SalaryMax
	}
	if req.RemoteOK != nil {
		existing.RemoteOK = *req.RemoteOK
	}
	if req.HybridOK != nil {
		existing.HybridOK = *req.HybridOK
	}
	if req.OnsiteOK != nil {
		existing.OnsiteOK = *req.OnsiteOK
	}
	if req.Preferences != nil {
		existing.Preferences = datatypes.JSON(*req.Preferences)
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := h.svc.Upsert(c.Request.Context(), existing, cvChanged); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}
