package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/services"
	"github.com/careerforge/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	svc    services.InterviewService
	speech services.SpeechService
}

func NewInterviewHandler(svc services.InterviewService, speech services.SpeechService) *InterviewHandler {
	return &InterviewHandler{svc: svc, speech: speech}
}

type StartInterviewRequest struct {
	Mode       string `json:"mode" binding:"required"` // hr|technical|behavioral
	TargetRole string `json:"target_role" binding:"required"`
}

type StartInterviewResponse struct {
	Session SessionSummary `json:"session"`
}

type SessionSummary struct {
	ID              string `json:"id"`
	CurrentQuestion string `json:"current_question"`
	QuestionNumber  int    `json:"question_number"`
	TotalQuestions  int    `json:"total_questions"`
}

func (h *InterviewHandler) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Start", "invalid request body", err))
		return
	}

	sess, err := h.svc.Start(c.Request.Context(), userID, models.InterviewMode(req.Mode), req.TargetRole)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartInterviewResponse{
		Session: SessionSummary{
			ID:              sess.SessionID,
			CurrentQuestion: sess.Questions[0],
			QuestionNumber:  1,
			TotalQuestions:  models.TotalQuestions(sess.Mode),
		},
	})
}

type SubmitAnswerRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
}

type VoiceAnswerRequest struct {
	AudioBase64 string `json:"audio_base64" binding:"required"`
	Language    string `json:"language"`
}

func (h *InterviewHandler) Next(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Next", "invalid request body", err))
		return
	}

	h.submit(c, userID, req.SessionID, req.Answer)
}

// NextVoice transcribes an audio answer and runs it through the same turn path.
func (h *InterviewHandler) NextVoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")

	var req VoiceAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.NextVoice", "invalid request body", err))
		return
	}

	raw := req.AudioBase64
	if i := strings.Index(raw, ","); i >= 0 {
		raw = raw[i+1:] // strip data:...;base64,
	}
	audio, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.NextVoice", "invalid audio_base64", err))
		return
	}

	text, _, err := h.speech.Transcribe(c.Request.Context(), audio, req.Language)
	if err != nil {
		writeError(c, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.NextVoice", "could not understand the audio", nil))
		return
	}

	h.submit(c, userID, sessionID, text)
}

func (h *InterviewHandler) submit(c *gin.Context, userID, sessionID, answer string) {
	res, err := h.svc.SubmitAnswer(c.Request.Context(), userID, sessionID, answer)
	if err != nil {
		writeError(c, err)
		return
	}

	if res.Complete {
		c.JSON(http.StatusOK, gin.H{
			"complete":   true,
			"evaluation": res.Evaluation,
			"session": gin.H{
				"overall_score":   res.OverallScore,
				"total_questions": res.TotalQuestions,
				"feedback":        res.Summary,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complete":        false,
		"evaluation":      res.Evaluation,
		"next_question":   res.NextQuestion,
		"question_number": res.QuestionNumber,
		"total_questions": res.TotalQuestions,
	})
}

func (h *InterviewHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sess, err := h.svc.Get(c.Request.Context(), userID, c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (h *InterviewHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessions, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
