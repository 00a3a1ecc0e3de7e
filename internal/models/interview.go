package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InterviewMode string

const (
	ModeHR         InterviewMode = "hr"
	ModeTechnical  InterviewMode = "technical"
	ModeBehavioral InterviewMode = "behavioral"
)

// TotalQuestions is the fixed session length for a mode.
func TotalQuestions(mode InterviewMode) int {
	switch mode {
	case ModeTechnical:
		return 8
	case ModeBehavioral:
		return 5
	default:
		return 6
	}
}

func ValidMode(mode InterviewMode) bool {
	switch mode {
	case ModeHR, ModeTechnical, ModeBehavioral:
		return true
	default:
		return false
	}
}

type InterviewSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"` // uuid v4
	UserID    string             `bson:"user_id" json:"user_id"`       // uuid from auth provider

	Mode       InterviewMode `bson:"mode" json:"mode"`
	TargetRole string        `bson:"target_role" json:"target_role"`

	Questions []string          `bson:"questions" json:"questions"`
	Answers   []InterviewAnswer `bson:"answers" json:"answers"`

	// Set once, on the turn that reaches the mode's total.
	OverallScore *int   `bson:"overall_score,omitempty" json:"overall_score,omitempty"`
	Summary      string `bson:"summary,omitempty" json:"summary,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

type InterviewAnswer struct {
	Question     string    `bson:"question" json:"question"`
	Text         string    `bson:"text" json:"text"`
	Score        int       `bson:"score" json:"score"` // 0-100
	Feedback     string    `bson:"feedback" json:"feedback"`
	Strengths    []string  `bson:"strengths" json:"strengths"`
	Improvements []string  `bson:"improvements" json:"improvements"`
	AnsweredAt   time.Time `bson:"answered_at" json:"answered_at"`
}

func (s *InterviewSession) IsComplete() bool {
	return len(s.Answers) >= TotalQuestions(s.Mode)
}
