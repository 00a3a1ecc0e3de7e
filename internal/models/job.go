package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Job is a normalized listing from the external search provider.
// Listings are global; users reference them through applications.
type Job struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ExternalID string `gorm:"column:external_id;type:text;uniqueIndex" json:"external_id"`

	Title       string `gorm:"column:title;type:text" json:"title"`
	Company     string `gorm:"column:company;type:text" json:"company"`
	Location    string `gorm:"column:location;type:text" json:"location"`
	Description string `gorm:"column:description;type:text" json:"description"`
	URL         string `gorm:"column:url;type:text" json:"url"`
	Salary      string `gorm:"column:salary;type:text" json:"salary"`
	Remote      bool   `gorm:"column:remote" json:"remote"`

	PostedAt *time.Time     `gorm:"column:posted_at;type:timestamptz" json:"posted_at,omitempty"`
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	Embedding pgvector.Vector `gorm:"column:embedding;type:vector(768)" json:"-"`

	FetchedAt time.Time `gorm:"column:fetched_at;type:timestamptz" json:"fetched_at"`
}

func (Job) TableName() string { return "jobs" }
