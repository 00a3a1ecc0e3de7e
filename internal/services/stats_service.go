package services

import (
	"context"

	mongorepo "github.com/careerforge/backend/internal/repositories/mongo"
	"github.com/careerforge/backend/internal/utils"
)

type AdminStats struct {
	InterviewSessions int64   `json:"interview_sessions"`
	Resumes           int64   `json:"resumes"`
	AverageScore      float64 `json:"average_score"`
}

type StatsService interface {
	Overview(ctx context.Context) (*AdminStats, error)
}

type statsService struct {
	sessions mongorepo.InterviewRepository
	resumes  mongorepo.ResumeRepository
}

func NewStatsService(sessions mongorepo.InterviewRepository, resumes mongorepo.ResumeRepository) StatsService {
	return &statsService{sessions: sessions, resumes: resumes}
}

func (s *statsService) Overview(ctx context.Context) (*AdminStats, error) {
	const op = "StatsService.Overview"

	sessionCount, err := s.sessions.CountAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count sessions", err)
	}
	resumeCount, err := s.resumes.CountAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count resumes", err)
	}
	avg, err := s.sessions.AverageOverallScore(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to aggregate scores", err)
	}

	return &AdminStats{
		InterviewSessions: sessionCount,
		Resumes:           resumeCount,
		AverageScore:      avg,
	}, nil
}
