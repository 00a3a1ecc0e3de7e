package services

import (
	"context"
	"errors"
	"testing"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriber struct {
	text string
	conf float64
	err  error
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, float64, error) {
	return s.text, s.conf, s.err
}

func (s *stubTranscriber) Close() error { return nil }

type stubSynthesizer struct {
	audio []byte
	err   error
}

func (s *stubSynthesizer) Synthesize(_ context.Context, _, _ string) ([]byte, error) {
	return s.audio, s.err
}

func (s *stubSynthesizer) Close() error { return nil }

func TestSpeechTranscribe(t *testing.T) {
	svc := NewSpeechService(&stubTranscriber{text: "hello world", conf: 0.93}, &stubSynthesizer{})

	text, conf, err := svc.Transcribe(context.Background(), []byte{1, 2, 3}, "en-US")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.InDelta(t, 0.93, conf, 0.001)

	_, _, err = svc.Transcribe(context.Background(), nil, "en-US")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestSpeechTranscribeProviderDown(t *testing.T) {
	svc := NewSpeechService(&stubTranscriber{err: errors.New("deadline exceeded")}, nil)

	_, _, err := svc.Transcribe(context.Background(), []byte{1}, "")
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestSpeechSynthesize(t *testing.T) {
	svc := NewSpeechService(nil, &stubSynthesizer{audio: []byte("mp3bytes")})

	audio, err := svc.Synthesize(context.Background(), "read this aloud", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3bytes"), audio)

	_, err = svc.Synthesize(context.Background(), "  ", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestStatsOverview(t *testing.T) {
	sessions := newFakeInterviewRepo()
	score := 80
	sessions.sessions["s1"] = &models.InterviewSession{SessionID: "s1", OverallScore: &score}
	sessions.sessions["s2"] = &models.InterviewSession{SessionID: "s2"}

	resumes := newFakeResumeRepo()
	resumes.docs["r1"] = &models.Resume{ResumeID: "r1"}

	svc := NewStatsService(sessions, resumes)

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.InterviewSessions)
	assert.Equal(t, int64(1), stats.Resumes)
	assert.InDelta(t, 80, stats.AverageScore, 0.001)
}
