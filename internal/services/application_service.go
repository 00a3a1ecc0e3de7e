package services

import (
	"context"
	"errors"
	"time"

	"github.com/careerforge/backend/internal/models"
	pgrepo "github.com/careerforge/backend/internal/repositories/postgres"
	"github.com/careerforge/backend/internal/utils"

	"github.com/google/uuid"
)

type ApplicationService interface {
	Create(ctx context.Context, userID, jobID, resumeID, note string) (*models.Application, error)
	List(ctx context.Context, userID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID string, status models.ApplicationStatus) (*models.Application, error)
}

type applicationService struct {
	apps pgrepo.ApplicationRepository
	jobs pgrepo.JobRepository
}

func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs}
}

func (s *applicationService) Create(ctx context.Context, userID, jobID, resumeID, note string) (*models.Application, error) {
	const op = "ApplicationService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id is required", nil)
	}

	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up job", err)
	}

	now := time.Now().UTC()
	row := &models.Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		JobID:     jobID,
		ResumeID:  resumeID,
		Status:    models.StatusApplied,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.apps.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	return row, nil
}

func (s *applicationService) List(ctx context.Context, userID string) ([]models.Application, error) {
	const op = "ApplicationService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.apps.ListByUser(ctx, userID, 100)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return rows, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userID, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if applicationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application_id is required", nil)
	}
	if !models.ValidApplicationStatus(status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid status", nil)
	}

	row, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	if row.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "application not found", nil)
	}

	now := time.Now().UTC()
	if err := s.apps.UpdateStatus(ctx, applicationID, status, now); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update status", err)
	}

	row.Status = status
	row.UpdatedAt = now
	return row, nil
}
