package postgres

import (
	"context"
	"errors"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/utils"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRepository interface {
	// UpsertMany refreshes listings by external id.
	UpsertMany(ctx context.Context, jobs []models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// Nearest returns jobs ordered by embedding distance to the given vector.
	Nearest(ctx context.Context, embedding []float32, limit int) ([]models.Job, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) UpsertMany(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "company", "location", "description",
				"url", "salary", "remote", "posted_at", "metadata", "fetched_at",
			}),
		}).
		Create(&jobs).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) Nearest(ctx context.Context, embedding []float32, limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("embedding IS NOT NULL").
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{pgvector.NewVector(embedding)}},
		}).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
