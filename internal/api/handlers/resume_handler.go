package handlers

import (
	"net/http"

	"github.com/careerforge/backend/internal/services"
	"github.com/careerforge/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	svc services.ResumeService
}

func NewResumeHandler(svc services.ResumeService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

type CreateResumeRequest struct {
	Title    string `json:"title" binding:"required"`
	RawText  string `json:"raw_text" binding:"required"`
	Template string `json:"template"`
}

func (h *ResumeHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Create", "invalid request body", err))
		return
	}

	doc, err := h.svc.Upload(c.Request.Context(), userID, req.Title, req.RawText, req.Template)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.svc.Get(c.Request.Context(), userID, c.Param("resume_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumes": docs})
}

type UpdateResumeRequest struct {
	Title      *string `json:"title,omitempty"`
	RawText    *string `json:"raw_text,omitempty"`
	Template   *string `json:"template,omitempty"`
	ChangeNote string  `json:"change_note"`
}

func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Update", "invalid request body", err))
		return
	}

	doc, err := h.svc.Update(c.Request.Context(), userID, c.Param("resume_id"), services.ResumeUpdate{
		Title:      req.Title,
		RawText:    req.RawText,
		Template:   req.Template,
		ChangeNote: req.ChangeNote,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("resume_id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ResumeHandler) SetPrimary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.SetPrimary(c.Request.Context(), userID, c.Param("resume_id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"primary": true})
}

type GenerateResumeRequest struct {
	TargetRole string `json:"target_role" binding:"required"`
	Template   string `json:"template"`
}

func (h *ResumeHandler) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req GenerateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Generate", "invalid request body", err))
		return
	}

	doc, err := h.svc.Generate(c.Request.Context(), userID, req.TargetRole, req.Template)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

type ScoreResumeRequest struct {
	TargetRole string `json:"target_role" binding:"required"`
}

func (h *ResumeHandler) Score(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ScoreResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Score", "invalid request body", err))
		return
	}

	score, err := h.svc.Score(c.Request.Context(), userID, c.Param("resume_id"), req.TargetRole)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}
