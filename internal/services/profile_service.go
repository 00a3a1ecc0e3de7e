package services

import (
	"context"
	"errors"
	"time"

	"github.com/careerforge/backend/internal/cache"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/providers/llm"
	pgrepo "github.com/careerforge/backend/internal/repositories/postgres"
	"github.com/careerforge/backend/internal/utils"

	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
)

const profileCacheTTL = 5 * time.Minute

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.Profile, error)
	// Upsert persists the profile; when cvChanged is true the CV embedding is
	// refreshed before the write.
	Upsert(ctx context.Context, p *models.Profile, cvChanged bool) error
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	cache    cache.Cache
	ai       llm.Provider
	log      *logrus.Logger
}

func NewProfileService(profiles pgrepo.ProfileRepository, c cache.Cache, ai llm.Provider, log *logrus.Logger) ProfileService {
	if log == nil {
		log = logrus.New()
	}
	return &profileService{profiles: profiles, cache: c, ai: ai, log: log}
}

func profileCacheKey(userID string) string { return "profile:" + userID }

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached models.Profile
		if hit, err := s.cache.GetJSON(ctx, profileCacheKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, profileCacheKey(userID), p, profileCacheTTL)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, p *models.Profile, cvChanged bool) error {
	const op = "ProfileService.Upsert"

	if p == nil || p.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile.user_id is required", nil)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	if cvChanged && p.CVText != "" && s.ai != nil {
		emb, err := s.ai.Embed(ctx, p.CVText)
		if err != nil {
			// a stale embedding is better than a failed profile write
			s.log.WithError(err).WithFields(logrus.Fields{
				"fallback": "cv_embedding",
				"user_id":  p.UserID,
			}).Warn("ai call failed, keeping previous embedding")
		} else {
			p.CVEmbedding = pgvector.NewVector(emb)
		}
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, profileCacheKey(p.UserID))
	}
	return nil
}
