package models

import "time"

// InterviewFeedback is the slice of interviewer feedback the culture scorer
// consumes. Produced by the interview subsystem; read-only here.
type InterviewFeedback struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CandidateID     string    `gorm:"column:candidate_id;type:uuid;index" json:"candidate_id"`
	RequirementID   string    `gorm:"column:requirement_id;type:uuid" json:"requirement_id,omitempty"`
	CultureFitScore float64   `gorm:"column:culture_fit_score" json:"culture_fit_score"`
	Comments        string    `gorm:"column:comments;type:text" json:"comments,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (InterviewFeedback) TableName() string { return "interview_feedback" }
