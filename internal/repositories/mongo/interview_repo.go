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

type InterviewRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error)
	// AppendTurn appends one answer (and, when nextQuestion is non-empty, one
	// question) iff the session still holds exactly expectedAnswers answers.
	// Returns utils.ErrConflict when another submission won the race.
	AppendTurn(ctx context.Context, sessionID string, expectedAnswers int, answer models.InterviewAnswer, nextQuestion string) error
	// Complete appends the final answer and seals the session in one update,
	// guarded the same way as AppendTurn.
	Complete(ctx context.Context, sessionID string, expectedAnswers int, answer models.InterviewAnswer, overallScore int, summary string, completedAt time.Time) error
	CountAll(ctx context.Context) (int64, error)
	AverageOverallScore(ctx context.Context) (float64, error)
}

type interviewRepo struct {
	col *mongo.Collection
}

func NewInterviewRepo(db *mongo.Database) InterviewRepository {
	return &interviewRepo{col: db.Collection("interview_sessions")}
}

func (r *interviewRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *interviewRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *interviewRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.InterviewSession, error) {
	if limit <= 0 {
		limit = 50
	}

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// turnFilter matches the session only while its answer list still has the
// expected length; a concurrent submit that already appended makes the
// filter miss and the caller gets ErrConflict instead of a duplicate turn.
func turnFilter(sessionID string, expectedAnswers int) bson.M {
	return bson.M{
		"session_id": sessionID,
		"answers":    bson.M{"$size": expectedAnswers},
	}
}

func (r *interviewRepo) AppendTurn(ctx context.Context, sessionID string, expectedAnswers int, answer models.InterviewAnswer, nextQuestion string) error {
	push := bson.M{"answers": answer}
	if nextQuestion != "" {
		push["questions"] = nextQuestion
	}

	res, err := r.col.UpdateOne(ctx,
		turnFilter(sessionID, expectedAnswers),
		bson.M{"$push": push},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrConflict
	}
	return nil
}

func (r *interviewRepo) Complete(ctx context.Context, sessionID string, expectedAnswers int, answer models.InterviewAnswer, overallScore int, summary string, completedAt time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		turnFilter(sessionID, expectedAnswers),
		bson.M{
			"$push": bson.M{"answers": answer},
			"$set": bson.M{
				"overall_score": overallScore,
				"summary":       summary,
				"completed_at":  completedAt.UTC(),
			},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrConflict
	}
	return nil
}

func (r *interviewRepo) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *interviewRepo) AverageOverallScore(ctx context.Context) (float64, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"completed_at": bson.M{"$exists": true}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$overall_score"},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Avg, nil
}
