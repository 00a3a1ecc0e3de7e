package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Profile struct {
	UserID   string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FullName string `gorm:"column:full_name;type:text" json:"full_name"`
	Headline string `gorm:"column:headline;type:text" json:"headline"`
	CVText   string `gorm:"column:cv_text;type:text" json:"cv_text"`

	Skills      pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	TargetRoles pq.StringArray `gorm:"column:target_roles;type:text[]" json:"target_roles"`
	Locations   pq.StringArray `gorm:"column:locations;type:text[]" json:"locations"`

	SalaryMin int `gorm:"column:salary_min;type:integer" json:"salary_min"`
	SalaryMax int `gorm:"column:salary_max;type:integer" json:"salary_max"`

	RemoteOK bool `gorm:"column:remote_ok" json:"remote_ok"`
	HybridOK bool `gorm:"column:hybrid_ok" json:"hybrid_ok"`
	OnsiteOK bool `gorm:"column:onsite_ok" json:"onsite_ok"`

	// JSONB, structure left to the client
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences"`

	// pgvector, refreshed whenever cv_text changes
	CVEmbedding pgvector.Vector `gorm:"column:cv_embedding;type:vector(768)" json:"-"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
