package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/providers/jobsearch"
	"github.com/careerforge/backend/internal/utils"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobProvider struct {
	listings []jobsearch.Listing
	err      error
	calls    int
}

func (p *fakeJobProvider) Search(_ context.Context, _, _ string) ([]jobsearch.Listing, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.listings, nil
}

type fakeJobRepo struct {
	upserted []models.Job
	nearest  []models.Job
	byID     map[string]*models.Job
}

func (r *fakeJobRepo) UpsertMany(_ context.Context, jobs []models.Job) error {
	r.upserted = append(r.upserted, jobs...)
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) Nearest(_ context.Context, _ []float32, limit int) ([]models.Job, error) {
	if limit < len(r.nearest) {
		return r.nearest[:limit], nil
	}
	return r.nearest, nil
}

type memCache struct {
	data map[string][]byte
	sets int
	gets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	c.sets++
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestJobSearchNormalizesAndCaches(t *testing.T) {
	provider := &fakeJobProvider{listings: []jobsearch.Listing{
		{ExternalID: "ext-1", Title: "Go Developer", Company: "Acme", Location: "Berlin, DE"},
		{ExternalID: "ext-2", Title: "SRE", Company: "Globex", Remote: true},
	}}
	repo := &fakeJobRepo{}
	c := newMemCache()
	ai := &fakeLLM{embedding: []float32{0.1, 0.2}}

	svc := NewJobService(provider, repo, newFakeProfileRepo(), c, ai, nil)

	jobs, err := svc.Search(context.Background(), "go developer", "berlin")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, 1, provider.calls)
	assert.Len(t, repo.upserted, 2)
	assert.NotEmpty(t, jobs[0].ID)
	assert.Equal(t, "ext-1", jobs[0].ExternalID)

	// second identical search is served from cache
	again, err := svc.Search(context.Background(), "go developer", "berlin")
	require.NoError(t, err)
	assert.Len(t, again, 2)
	assert.Equal(t, 1, provider.calls)
}

func TestJobSearchStableIDs(t *testing.T) {
	// the same external id must map to the same row id on every fetch
	assert.Equal(t, jobID("ext-1"), jobID("ext-1"))
	assert.NotEqual(t, jobID("ext-1"), jobID("ext-2"))
}

func TestJobSearchProviderFailure(t *testing.T) {
	provider := &fakeJobProvider{err: errors.New("rate limited")}
	svc := NewJobService(provider, &fakeJobRepo{}, newFakeProfileRepo(), newMemCache(), &fakeLLM{}, nil)

	_, err := svc.Search(context.Background(), "go developer", "")
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestJobRecommendedRequiresEmbedding(t *testing.T) {
	profiles := newFakeProfileRepo()
	profiles.profiles["u1"] = &models.Profile{UserID: "u1"} // no cv embedding yet

	svc := NewJobService(&fakeJobProvider{}, &fakeJobRepo{}, profiles, newMemCache(), &fakeLLM{}, nil)

	_, err := svc.Recommended(context.Background(), "u1", 10)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Recommended(context.Background(), "ghost", 10)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestJobRecommended(t *testing.T) {
	profiles := newFakeProfileRepo()
	profiles.profiles["u1"] = &models.Profile{
		UserID:      "u1",
		CVEmbedding: pgvector.NewVector([]float32{0.5, 0.5}),
	}
	repo := &fakeJobRepo{nearest: []models.Job{
		{ID: "j1", Title: "Go Developer"},
		{ID: "j2", Title: "Platform Engineer"},
	}}

	svc := NewJobService(&fakeJobProvider{}, repo, profiles, newMemCache(), &fakeLLM{}, nil)

	jobs, err := svc.Recommended(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].ID)
}
