package models

import "time"

type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffered      ApplicationStatus = "offered"
	StatusRejected     ApplicationStatus = "rejected"
)

func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffered, StatusRejected:
		return true
	default:
		return false
	}
}

type Application struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID   string `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	JobID    string `gorm:"column:job_id;type:uuid;index" json:"job_id"`
	ResumeID string `gorm:"column:resume_id;type:text" json:"resume_id,omitempty"`

	Status ApplicationStatus `gorm:"column:status;type:text" json:"status"`
	Note   string            `gorm:"column:note;type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }
