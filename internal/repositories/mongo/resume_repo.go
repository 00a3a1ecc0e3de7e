package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResumeRepository interface {
	Create(ctx context.Context, r *models.Resume) error
	GetByResumeID(ctx context.Context, resumeID string) (*models.Resume, error)
	ListByUser(ctx context.Context, userID string) ([]models.Resume, error)
	// UpdateContent replaces the editable fields and, when version is non-nil,
	// appends a version snapshot.
	UpdateContent(ctx context.Context, resumeID, title, rawText, template string, version *models.ResumeVersion, updatedAt time.Time) error
	Delete(ctx context.Context, resumeID string) error
	// SetPrimary flags one resume and clears the flag on the user's others.
	SetPrimary(ctx context.Context, userID, resumeID string) error
	SetScore(ctx context.Context, resumeID string, score int, feedback string) error
	CountAll(ctx context.Context) (int64, error)
}

type resumeRepo struct {
	col *mongo.Collection
}

func NewResumeRepo(db *mongo.Database) ResumeRepository {
	return &resumeRepo{col: db.Collection("resumes")}
}

func (r *resumeRepo) Create(ctx context.Context, doc *models.Resume) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *resumeRepo) GetByResumeID(ctx context.Context, resumeID string) (*models.Resume, error) {
	var doc models.Resume
	err := r.col.FindOne(ctx, bson.M{"resume_id": resumeID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &doc, err
}

func (r *resumeRepo) ListByUser(ctx context.Context, userID string) ([]models.Resume, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Resume
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resumeRepo) UpdateContent(ctx context.Context, resumeID, title, rawText, template string, version *models.ResumeVersion, updatedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"title":      title,
			"raw_text":   rawText,
			"template":   template,
			"updated_at": updatedAt.UTC(),
		},
	}
	if version != nil {
		update["$push"] = bson.M{"versions": version}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"resume_id": resumeID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) Delete(ctx context.Context, resumeID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"resume_id": resumeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) SetPrimary(ctx context.Context, userID, resumeID string) error {
	// clear first so at most one document ever carries the flag
	_, err := r.col.UpdateMany(ctx,
		bson.M{"user_id": userID, "resume_id": bson.M{"$ne": resumeID}},
		bson.M{"$set": bson.M{"primary": false}},
	)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID, "resume_id": resumeID},
		bson.M{"$set": bson.M{"primary": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) SetScore(ctx context.Context, resumeID string, score int, feedback string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"resume_id": resumeID},
		bson.M{"$set": bson.M{"score": score, "score_feedback": feedback}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
