package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/careerforge/backend/internal/cache"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/providers/jobsearch"
	"github.com/careerforge/backend/internal/providers/llm"
	pgrepo "github.com/careerforge/backend/internal/repositories/postgres"
	"github.com/careerforge/backend/internal/utils"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
)

const jobSearchCacheTTL = 10 * time.Minute

type JobService interface {
	Search(ctx context.Context, query, location string) ([]models.Job, error)
	Recommended(ctx context.Context, userID string, limit int) ([]models.Job, error)
}

type jobService struct {
	provider jobsearch.Provider
	jobs     pgrepo.JobRepository
	profiles pgrepo.ProfileRepository
	cache    cache.Cache
	ai       llm.Provider
	log      *logrus.Logger
}

func NewJobService(provider jobsearch.Provider, jobs pgrepo.JobRepository, profiles pgrepo.ProfileRepository, c cache.Cache, ai llm.Provider, log *logrus.Logger) JobService {
	if log == nil {
		log = logrus.New()
	}
	return &jobService{provider: provider, jobs: jobs, profiles: profiles, cache: c, ai: ai, log: log}
}

func searchCacheKey(query, location string) string {
	return "jobs:search:" + strings.ToLower(strings.TrimSpace(query)) + ":" + strings.ToLower(strings.TrimSpace(location))
}

// jobID derives a stable id from the provider's external id so repeated
// fetches upsert the same row.
func jobID(externalID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("careerforge:job:"+externalID)).String()
}

func (s *jobService) Search(ctx context.Context, query, location string) ([]models.Job, error) {
	const op = "JobService.Search"

	if strings.TrimSpace(query) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}

	key := searchCacheKey(query, location)
	if s.cache != nil {
		var cached []models.Job
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	listings, err := s.provider.Search(ctx, query, location)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "job search provider failed", err)
	}

	now := time.Now().UTC()
	jobs := make([]models.Job, 0, len(listings))
	for _, l := range listings {
		j := models.Job{
			ID:          jobID(l.ExternalID),
			ExternalID:  l.ExternalID,
			Title:       l.Title,
			Company:     l.Company,
			Location:    l.Location,
			Description: l.Description,
			URL:         l.URL,
			Salary:      l.Salary,
			Remote:      l.Remote,
			PostedAt:    l.PostedAt,
			FetchedAt:   now,
		}
		if s.ai != nil {
			if emb, err := s.ai.Embed(ctx, l.Title+"\n"+l.Description); err == nil {
				j.Embedding = pgvector.NewVector(emb)
			}
		}
		jobs = append(jobs, j)
	}

	if err := s.jobs.UpsertMany(ctx, jobs); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store listings", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, jobs, jobSearchCacheTTL)
	}
	return jobs, nil
}

func (s *jobService) Recommended(ctx context.Context, userID string, limit int) ([]models.Job, error) {
	const op = "JobService.Recommended"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}

	emb := p.CVEmbedding.Slice()
	if len(emb) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "add cv text to your profile to get recommendations", nil)
	}

	out, err := s.jobs.Nearest(ctx, emb, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to query recommendations", err)
	}
	return out, nil
}
