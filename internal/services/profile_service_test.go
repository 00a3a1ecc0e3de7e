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

func TestProfileGetMeCaches(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &models.Profile{UserID: "u1", FullName: "Dana"}
	c := newMemCache()
	svc := NewProfileService(repo, c, &fakeLLM{}, nil)

	p, err := svc.GetMe(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", p.FullName)
	assert.Equal(t, 1, c.sets)

	// second read comes from cache even if the row changes underneath
	repo.profiles["u1"].FullName = "Changed"
	p, err = svc.GetMe(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", p.FullName)
}

func TestProfileGetMeNotFound(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), newMemCache(), &fakeLLM{}, nil)

	_, err := svc.GetMe(context.Background(), "ghost")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestProfileUpsertRefreshesEmbeddingAndInvalidatesCache(t *testing.T) {
	repo := newFakeProfileRepo()
	c := newMemCache()
	ai := &fakeLLM{embedding: []float32{0.1, 0.2, 0.3}}
	svc := NewProfileService(repo, c, ai, nil)

	p := &models.Profile{UserID: "u1", FullName: "Dana", CVText: "Go engineer, 6 years"}
	require.NoError(t, svc.Upsert(context.Background(), p, true))

	stored, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, stored.CVEmbedding.Slice())

	// a cached read is dropped on write
	_, err = svc.GetMe(context.Background(), "u1")
	require.NoError(t, err)
	require.NoError(t, svc.Upsert(context.Background(), stored, false))
	_, hit := c.data[profileCacheKey("u1")]
	assert.False(t, hit)
}

func TestProfileUpsertKeepsWriteOnEmbedFailure(t *testing.T) {
	repo := newFakeProfileRepo()
	ai := &fakeLLM{embedErr: errors.New("embedder down")}
	svc := NewProfileService(repo, newMemCache(), ai, nil)

	p := &models.Profile{UserID: "u1", CVText: "some cv"}
	require.NoError(t, svc.Upsert(context.Background(), p, true))

	stored, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, stored.CVEmbedding.Slice())
}
