package services

import (
	"context"
	"testing"
	"time"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplicationRepo struct {
	rows map[string]*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{rows: map[string]*models.Application{}}
}

func (r *fakeApplicationRepo) Insert(_ context.Context, a *models.Application) error {
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeApplicationRepo) ListByUser(_ context.Context, userID string, _ int) ([]models.Application, error) {
	var out []models.Application
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus, updatedAt time.Time) error {
	row, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	row.Status = status
	row.UpdatedAt = updatedAt
	return nil
}

func TestApplicationCreate(t *testing.T) {
	apps := newFakeApplicationRepo()
	jobs := &fakeJobRepo{byID: map[string]*models.Job{
		"j1": {ID: "j1", Title: "Go Developer"},
	}}
	svc := NewApplicationService(apps, jobs)

	row, err := svc.Create(context.Background(), "u1", "j1", "r1", "looks promising")
	require.NoError(t, err)

	assert.NotEmpty(t, row.ID)
	assert.Equal(t, models.StatusApplied, row.Status)
	assert.Equal(t, "r1", row.ResumeID)
}

func TestApplicationCreateUnknownJob(t *testing.T) {
	svc := NewApplicationService(newFakeApplicationRepo(), &fakeJobRepo{})

	_, err := svc.Create(context.Background(), "u1", "ghost", "", "")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestApplicationUpdateStatus(t *testing.T) {
	apps := newFakeApplicationRepo()
	jobs := &fakeJobRepo{byID: map[string]*models.Job{"j1": {ID: "j1"}}}
	svc := NewApplicationService(apps, jobs)

	row, err := svc.Create(context.Background(), "u1", "j1", "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), "u1", row.ID, models.StatusInterviewing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterviewing, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), "u1", row.ID, "ghosted")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	// another user's application reads as absent
	_, err = svc.UpdateStatus(context.Background(), "intruder", row.ID, models.StatusOffered)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
