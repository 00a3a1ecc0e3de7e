package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM satisfies llm.Provider with canned responses.
type fakeLLM struct {
	text    string
	textErr error

	jsonBody string
	jsonErr  error

	embedding []float32
	embedErr  error

	prompts []string
}

func (f *fakeLLM) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.text, nil
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, out any) error {
	f.prompts = append(f.prompts, prompt)
	if f.jsonErr != nil {
		return f.jsonErr
	}
	return json.Unmarshal([]byte(f.jsonBody), out)
}

func (f *fakeLLM) StreamAnswer(_ context.Context, _ string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errs := make(chan error, 1)
	close(chunks)
	close(errs)
	return chunks, errs
}

func (f *fakeLLM) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedding, nil
}

func (f *fakeLLM) Close() error { return nil }

// fakeInterviewRepo keeps sessions in memory and enforces the same
// length-guarded append the real repository does.
type fakeInterviewRepo struct {
	sessions      map[string]*models.InterviewSession
	forceConflict bool
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{sessions: map[string]*models.InterviewSession{}}
}

func (r *fakeInterviewRepo) Create(_ context.Context, s *models.InterviewSession) error {
	cp := *s
	r.sessions[s.SessionID] = &cp
	return nil
}

func (r *fakeInterviewRepo) GetBySessionID(_ context.Context, sessionID string) (*models.InterviewSession, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *s
	cp.Questions = append([]string{}, s.Questions...)
	cp.Answers = append([]models.InterviewAnswer{}, s.Answers...)
	return &cp, nil
}

func (r *fakeInterviewRepo) ListByUser(_ context.Context, userID string, _ int64) ([]models.InterviewSession, error) {
	var out []models.InterviewSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) AppendTurn(_ context.Context, sessionID string, expectedAnswers int, answer models.InterviewAnswer, nextQuestion string) error {
	if r.forceConflict {
		return utils.ErrConflict
	}
	s, ok := r.sessions[sessionID]
	if !ok || len(s.Answers) != expectedAnswers {
		return utils.ErrConflict
	}
	s.Answers = append(s.Answers, answer)
	if nextQuestion != "" {
		s.Questions = append(s.Questions, nextQuestion)
	}
	return nil
}

func (r *fakeInterviewRepo) Complete(_ context.Context, sessionID string, expectedAnswers int, answer models.InterviewAnswer, overallScore int, summary string, completedAt time.Time) error {
	if r.forceConflict {
		return utils.ErrConflict
	}
	s, ok := r.sessions[sessionID]
	if !ok || len(s.Answers) != expectedAnswers {
		return utils.ErrConflict
	}
	s.Answers = append(s.Answers, answer)
	s.OverallScore = &overallScore
	s.Summary = summary
	s.CompletedAt = &completedAt
	return nil
}

func (r *fakeInterviewRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.sessions)), nil
}

func (r *fakeInterviewRepo) AverageOverallScore(_ context.Context) (float64, error) {
	var sum, n float64
	for _, s := range r.sessions {
		if s.OverallScore != nil {
			sum += float64(*s.OverallScore)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n, nil
}

func evalJSON(score int) string {
	return `{"score": ` + jsonInt(score) + `, "feedback": "ok", "strengths": ["a"], "improvements": ["b"]}`
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestInterviewStart(t *testing.T) {
	repo := newFakeInterviewRepo()
	ai := &fakeLLM{text: "Tell me about yourself."}
	svc := NewInterviewService(repo, ai, nil)

	sess, err := svc.Start(context.Background(), "u1", models.ModeTechnical, "Backend Engineer")
	require.NoError(t, err)

	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "u1", sess.UserID)
	require.Len(t, sess.Questions, 1)
	assert.Equal(t, "Tell me about yourself.", sess.Questions[0])
	assert.Empty(t, sess.Answers)
	assert.Equal(t, 8, models.TotalQuestions(sess.Mode))
}

func TestInterviewStartValidation(t *testing.T) {
	svc := NewInterviewService(newFakeInterviewRepo(), &fakeLLM{}, nil)

	_, err := svc.Start(context.Background(), "u1", "panel", "Backend Engineer")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Start(context.Background(), "u1", models.ModeHR, "  ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestInterviewStartFallbackQuestion(t *testing.T) {
	repo := newFakeInterviewRepo()
	ai := &fakeLLM{textErr: errors.New("quota")}
	svc := NewInterviewService(repo, ai, nil)

	sess, err := svc.Start(context.Background(), "u1", models.ModeBehavioral, "PM")
	require.NoError(t, err)
	assert.Equal(t, fallbackQuestion(models.ModeBehavioral, 0), sess.Questions[0])
}

func TestSubmitAnswerAdvances(t *testing.T) {
	repo := newFakeInterviewRepo()
	ai := &fakeLLM{text: "Next question?", jsonBody: evalJSON(88)}
	svc := NewInterviewService(repo, ai, nil)

	sess, err := svc.Start(context.Background(), "u1", models.ModeHR, "Analyst")
	require.NoError(t, err)

	res, err := svc.SubmitAnswer(context.Background(), "u1", sess.SessionID, "My answer.")
	require.NoError(t, err)

	assert.False(t, res.Complete)
	assert.Equal(t, 88, res.Evaluation.Score)
	assert.Equal(t, "Next question?", res.NextQuestion)
	assert.Equal(t, 2, res.QuestionNumber)
	assert.Equal(t, 6, res.TotalQuestions)

	stored, err := repo.GetBySessionID(context.Background(), sess.SessionID)
	require.NoError(t, err)
	require.Len(t, stored.Answers, 1)
	assert.Len(t, stored.Questions, 2)
	assert.Equal(t, "My answer.", stored.Answers[0].Text)
}

func TestSubmitAnswerCompletesAndRounds(t *testing.T) {
	repo := newFakeInterviewRepo()
	ai := &fakeLLM{text: "Solid session overall.", jsonBody: evalJSON(78)}
	svc := NewInterviewService(repo, ai, nil)

	now := time.Now().UTC()
	sess := &models.InterviewSession{
		SessionID:  "s1",
		UserID:     "u1",
		Mode:       models.ModeBehavioral, // 5 questions
		TargetRole: "PM",
		Questions:  []string{"q1", "q2", "q3", "q4", "q5"},
		Answers: []models.InterviewAnswer{
			{Question: "q1", Text: "a1", Score: 80},
			{Question: "q2", Text: "a2", Score: 70},
			{Question: "q3", Text: "a3", Score: 90},
			{Question: "q4", Text: "a4", Score: 85},
		},
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), sess))

	res, err := svc.SubmitAnswer(context.Background(), "u1", "s1", "final answer")
	require.NoError(t, err)

	assert.True(t, res.Complete)
	// (80+70+90+85+78)/5 = 80.6 rounds to 81
	assert.Equal(t, 81, res.OverallScore)
	assert.Equal(t, "Solid session overall.", res.Summary)
	assert.Equal(t, 5, res.TotalQuestions)

	stored, err := repo.GetBySessionID(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.OverallScore)
	assert.Equal(t, 81, *stored.OverallScore)
	assert.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.IsComplete())
}

func TestSubmitAnswerEvaluationFallback(t *testing.T) {
	repo := newFakeInterviewRepo()
	ai := &fakeLLM{text: "next", jsonErr: errors.New("model unavailable")}
	svc := NewInterviewService(repo, ai, nil)

	sess, err := svc.Start(context.Background(), "u1", models.ModeHR, "Analyst")
	require.NoError(t, err)

	res, err := svc.SubmitAnswer(context.Background(), "u1", sess.SessionID, "an answer")
	require.NoError(t, err)

	// the canned evaluation stands in so the turn never aborts
	assert.Equal(t, 75, res.Evaluation.Score)
	assert.NotEmpty(t, res.Evaluation.Feedback)
	assert.NotEmpty(t, res.Evaluation.Strengths)
}

func TestSubmitAnswerScoreClamped(t *testing.T) {
	repo := newFakeInterviewRepo()
	ai := &fakeLLM{text: "next", jsonBody: evalJSON(140)}
	svc := NewInterviewService(repo, ai, nil)

	sess, err := svc.Start(context.Background(), "u1", models.ModeHR, "Analyst")
	require.NoError(t, err)

	res, err := svc.SubmitAnswer(context.Background(), "u1", sess.SessionID, "an answer")
	require.NoError(t, err)
	assert.Equal(t, 100, res.Evaluation.Score)
}

func TestSubmitAnswerConcurrentConflict(t *testing.T) {
	repo := newFakeInterviewRepo()
	ai := &fakeLLM{text: "next", jsonBody: evalJSON(80)}
	svc := NewInterviewService(repo, ai, nil)

	sess, err := svc.Start(context.Background(), "u1", models.ModeHR, "Analyst")
	require.NoError(t, err)

	repo.forceConflict = true
	_, err = svc.SubmitAnswer(context.Background(), "u1", sess.SessionID, "an answer")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestSubmitAnswerCompletedSessionConflicts(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewInterviewService(repo, &fakeLLM{jsonBody: evalJSON(80)}, nil)

	answers := make([]models.InterviewAnswer, 5)
	require.NoError(t, repo.Create(context.Background(), &models.InterviewSession{
		SessionID: "done",
		UserID:    "u1",
		Mode:      models.ModeBehavioral,
		Questions: []string{"q1", "q2", "q3", "q4", "q5"},
		Answers:   answers,
	}))

	_, err := svc.SubmitAnswer(context.Background(), "u1", "done", "one more")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestSubmitAnswerOwnershipReadsAsNotFound(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewInterviewService(repo, &fakeLLM{jsonBody: evalJSON(80)}, nil)

	sess, err := svc.Start(context.Background(), "owner", models.ModeHR, "Analyst")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), "intruder", sess.SessionID, "hi")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.Get(context.Background(), "intruder", sess.SessionID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestFallbackQuestionWraps(t *testing.T) {
	list := fallbackQuestions[models.ModeBehavioral]
	require.NotEmpty(t, list)
	assert.Equal(t, list[0], fallbackQuestion(models.ModeBehavioral, len(list)))
	assert.Equal(t, fallbackQuestions[models.ModeHR][1], fallbackQuestion("unknown", 1))
}
