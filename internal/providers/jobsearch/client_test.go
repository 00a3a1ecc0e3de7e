package jobsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "go developer", r.URL.Query().Get("query"))
		assert.Equal(t, "berlin", r.URL.Query().Get("location"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"job_id":"j1","job_title":" Go Developer ","employer_name":"Acme","job_city":"Berlin","job_country":"DE","job_description":"Build services","job_apply_link":"https://jobs/1","job_is_remote":false,"job_min_salary":60000,"job_max_salary":80000,"job_posted_at_timestamp":1756598400},
			{"job_id":"j2","job_title":"SRE","employer_name":"Globex","job_country":"NL","job_is_remote":true,"job_min_salary":70000},
			{"job_id":"j3","job_title":"","employer_name":"NoTitle Inc"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	listings, err := c.Search(context.Background(), "go developer", "berlin")
	require.NoError(t, err)
	require.Len(t, listings, 2) // the untitled row is dropped

	first := listings[0]
	assert.Equal(t, "j1", first.ExternalID)
	assert.Equal(t, "Go Developer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Berlin, DE", first.Location)
	assert.Equal(t, "60000-80000", first.Salary)
	require.NotNil(t, first.PostedAt)
	assert.Equal(t, time.Unix(1756598400, 0).UTC(), *first.PostedAt)

	second := listings[1]
	assert.Equal(t, "NL", second.Location)
	assert.Equal(t, "70000+", second.Salary)
	assert.True(t, second.Remote)
	assert.Nil(t, second.PostedAt)
}

func TestClientSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	_, err := c.Search(context.Background(), "go developer", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}

func TestClientSearchOmitsEmptyLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasLocation := r.URL.Query()["location"]
		assert.False(t, hasLocation)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")

	listings, err := c.Search(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Empty(t, listings)
}
