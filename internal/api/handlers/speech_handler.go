package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/careerforge/backend/internal/services"
	"github.com/careerforge/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type SpeechHandler struct {
	svc services.SpeechService
}

func NewSpeechHandler(svc services.SpeechService) *SpeechHandler {
	return &SpeechHandler{svc: svc}
}

type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64" binding:"required"`
	Language    string `json:"language"`
}

func (h *SpeechHandler) Transcribe(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SpeechHandler.Transcribe", "invalid request body", err))
		return
	}

	raw := req.AudioBase64
	if i := strings.Index(raw, ","); i >= 0 {
		raw = raw[i+1:] // strip data:...;base64,
	}
	audio, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SpeechHandler.Transcribe", "invalid audio_base64", err))
		return
	}

	text, conf, err := h.svc.Transcribe(c.Request.Context(), audio, req.Language)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text, "confidence": conf})
}

type SynthesizeRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language"`
}

func (h *SpeechHandler) Synthesize(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SpeechHandler.Synthesize", "invalid request body", err))
		return
	}

	audio, err := h.svc.Synthesize(c.Request.Context(), req.Text, req.Language)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audio_base64": base64.StdEncoding.EncodeToString(audio),
		"mime_type":    "audio/mpeg",
	})
}
