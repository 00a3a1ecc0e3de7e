package jobsearch

import (
	"context"
	"time"
)

// Listing is the normalized shape every provider result is mapped into.
type Listing struct {
	ExternalID  string     `json:"external_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Salary      string     `json:"salary"`
	Remote      bool       `json:"remote"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
}

type Provider interface {
	Search(ctx context.Context, query, location string) ([]Listing, error)
}
