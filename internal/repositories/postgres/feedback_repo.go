package postgres

import (
	"context"

	"github.com/talentbridge/talentbridge/internal/models"
	"gorm.io/gorm"
)

// FeedbackRepository reads interview feedback for culture scoring. The
// interview subsystem owns the rows; an empty slice is the normal case for
// candidates who have not interviewed yet.
type FeedbackRepository interface {
	ListByCandidate(ctx context.Context, candidateID string) ([]models.InterviewFeedback, error)
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) ListByCandidate(ctx context.Context, candidateID string) ([]models.InterviewFeedback, error) {
	var out []models.InterviewFeedback
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
