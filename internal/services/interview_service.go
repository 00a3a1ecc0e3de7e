package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/providers/llm"
	mongorepo "github.com/careerforge/backend/internal/repositories/mongo"
	"github.com/careerforge/backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type InterviewService interface {
	Start(ctx context.Context, userID string, mode models.InterviewMode, targetRole string) (*models.InterviewSession, error)
	SubmitAnswer(ctx context.Context, userID, sessionID, answerText string) (*TurnResult, error)
	Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error)
	List(ctx context.Context, userID string) ([]models.InterviewSession, error)
}

// AnswerEvaluation is the strict shape requested from the model for each turn.
type AnswerEvaluation struct {
	Score        int      `json:"score"` // 0-100
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// TurnResult is what one SubmitAnswer call produces: the evaluation plus
// either the next question or the completed session aggregate.
type TurnResult struct {
	Complete       bool
	Evaluation     AnswerEvaluation
	NextQuestion   string
	QuestionNumber int // 1-based number of the question now awaiting an answer
	TotalQuestions int
	OverallScore   int
	Summary        string
}

type interviewService struct {
	sessions mongorepo.InterviewRepository
	ai       llm.Provider
	log      *logrus.Logger
}

func NewInterviewService(sessions mongorepo.InterviewRepository, ai llm.Provider, log *logrus.Logger) InterviewService {
	if log == nil {
		log = logrus.New()
	}
	return &interviewService{sessions: sessions, ai: ai, log: log}
}

func (s *interviewService) Start(ctx context.Context, userID string, mode models.InterviewMode, targetRole string) (*models.InterviewSession, error) {
	const op = "InterviewService.Start"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if !models.ValidMode(mode) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "mode must be one of hr, technical, behavioral", nil)
	}
	if strings.TrimSpace(targetRole) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "target_role is required", nil)
	}

	question := s.openingQuestion(ctx, mode, targetRole)

	session := &models.InterviewSession{
		SessionID:  uuid.NewString(),
		UserID:     userID,
		Mode:       mode,
		TargetRole: targetRole,
		Questions:  []string{question},
		Answers:    []models.InterviewAnswer{},
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, userID, sessionID, answerText string) (*TurnResult, error) {
	const op = "InterviewService.SubmitAnswer"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if sessionID == "" || strings.TrimSpace(answerText) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id and answer are required", nil)
	}

	sess, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load session", err)
	}
	// ownership miss reads the same as absence to the caller
	if sess.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", nil)
	}

	total := models.TotalQuestions(sess.Mode)
	idx := len(sess.Answers)
	if idx >= total {
		return nil, utils.E(utils.CodeConflict, op, "session is already complete", nil)
	}

	question := "Unknown question"
	if idx < len(sess.Questions) {
		question = sess.Questions[idx]
	} else {
		// question/answer lists should never desynchronize; make it visible if they do
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"answers":    idx,
			"questions":  len(sess.Questions),
		}).Warn("interview question index out of range")
	}

	eval := s.evaluate(ctx, sessionID, question, answerText)

	answer := models.InterviewAnswer{
		Question:     question,
		Text:         answerText,
		Score:        eval.Score,
		Feedback:     eval.Feedback,
		Strengths:    eval.Strengths,
		Improvements: eval.Improvements,
		AnsweredAt:   time.Now().UTC(),
	}

	if idx >= total-1 {
		return s.completeSession(ctx, sess, idx, answer, eval)
	}

	next := s.nextQuestion(ctx, sess, answer, idx)

	if err := s.sessions.AppendTurn(ctx, sessionID, idx, answer, next); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "a concurrent submission already advanced this session", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to record turn", err)
	}

	return &TurnResult{
		Complete:       false,
		Evaluation:     eval,
		NextQuestion:   next,
		QuestionNumber: idx + 2,
		TotalQuestions: total,
	}, nil
}

func (s *interviewService) completeSession(ctx context.Context, sess *models.InterviewSession, idx int, answer models.InterviewAnswer, eval AnswerEvaluation) (*TurnResult, error) {
	const op = "InterviewService.SubmitAnswer"

	total := models.TotalQuestions(sess.Mode)

	sum := answer.Score
	for _, a := range sess.Answers {
		sum += a.Score
	}
	overall := int(math.Round(float64(sum) / float64(idx+1)))

	// build the transcript including the final answer for the summary prompt
	withFinal := *sess
	withFinal.Answers = append(append([]models.InterviewAnswer{}, sess.Answers...), answer)
	summary := s.summarize(ctx, &withFinal, overall)

	now := time.Now().UTC()
	if err := s.sessions.Complete(ctx, sess.SessionID, idx, answer, overall, summary, now); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "a concurrent submission already advanced this session", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to complete session", err)
	}

	return &TurnResult{
		Complete:       true,
		Evaluation:     eval,
		TotalQuestions: total,
		OverallScore:   overall,
		Summary:        summary,
	}, nil
}

func (s *interviewService) Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	const op = "InterviewService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	sess, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}
	if sess.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", nil)
	}
	return sess, nil
}

func (s *interviewService) List(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	const op = "InterviewService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	out, err := s.sessions.ListByUser(ctx, userID, 50)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	return out, nil
}

// openingQuestion asks the model for the first question and degrades to the
// canned list on failure.
func (s *interviewService) openingQuestion(ctx context.Context, mode models.InterviewMode, targetRole string) string {
	prompt := fmt.Sprintf(openingQuestionPrompt, mode, targetRole, modeGuidance(mode))
	q, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"fallback": "opening_question",
			"mode":     mode,
		}).Warn("ai call failed, substituting fallback")
		return fallbackQuestion(mode, 0)
	}
	return strings.TrimSpace(q)
}

func (s *interviewService) evaluate(ctx context.Context, sessionID, question, answerText string) AnswerEvaluation {
	var eval AnswerEvaluation
	prompt := fmt.Sprintf(evaluateAnswerPrompt, question, answerText)
	if err := s.ai.GenerateJSON(ctx, prompt, &eval); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"fallback":   "evaluation",
			"session_id": sessionID,
		}).Warn("ai call failed, substituting fallback")
		return fallbackEvaluation()
	}

	if eval.Score < 0 {
		eval.Score = 0
	}
	if eval.Score > 100 {
		eval.Score = 100
	}
	return eval
}

func (s *interviewService) nextQuestion(ctx context.Context, sess *models.InterviewSession, latest models.InterviewAnswer, idx int) string {
	withLatest := *sess
	withLatest.Answers = append(append([]models.InterviewAnswer{}, sess.Answers...), latest)

	prompt := fmt.Sprintf(nextQuestionPrompt, sess.Mode, sess.TargetRole, modeGuidance(sess.Mode), formatTranscript(&withLatest))
	q, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"fallback":   "next_question",
			"session_id": sess.SessionID,
		}).Warn("ai call failed, substituting fallback")
		return fallbackQuestion(sess.Mode, idx)
	}
	return strings.TrimSpace(q)
}

func (s *interviewService) summarize(ctx context.Context, sess *models.InterviewSession, overall int) string {
	prompt := fmt.Sprintf(sessionSummaryPrompt, sess.Mode, sess.TargetRole, overall, formatTranscript(sess))
	out, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"fallback":   "summary",
			"session_id": sess.SessionID,
		}).Warn("ai call failed, substituting fallback")
		return fallbackSummary(sess.Mode, overall)
	}
	return strings.TrimSpace(out)
}
