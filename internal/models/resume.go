package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ResumeSourceUploaded  = "uploaded"
	ResumeSourceGenerated = "generated"
)

type Resume struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResumeID string             `bson:"resume_id" json:"resume_id"` // uuid v4
	UserID   string             `bson:"user_id" json:"user_id"`

	Title    string `bson:"title" json:"title"`
	RawText  string `bson:"raw_text" json:"raw_text"`
	Template string `bson:"template,omitempty" json:"template,omitempty"`
	Source   string `bson:"source" json:"source"` // uploaded|generated

	// At most one resume per user carries the flag; enforced at write time.
	Primary bool `bson:"primary" json:"primary"`

	Score         *int   `bson:"score,omitempty" json:"score,omitempty"`
	ScoreFeedback string `bson:"score_feedback,omitempty" json:"score_feedback,omitempty"`

	Versions []ResumeVersion `bson:"versions,omitempty" json:"versions,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type ResumeVersion struct {
	Number     int       `bson:"number" json:"number"` // 1-based, assigned server-side
	Content    string    `bson:"content" json:"content"`
	Score      *int      `bson:"score,omitempty" json:"score,omitempty"`
	ChangeNote string    `bson:"change_note,omitempty" json:"change_note,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
