package postgres

import (
	"context"
	"errors"

	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/utils"
	"gorm.io/gorm"
)

// CandidateRepository reads candidate profiles. Profile writes belong to the
// candidate-management subsystem; the engine only needs resolved reads.
type CandidateRepository interface {
	Get(ctx context.Context, id string) (*models.Candidate, error)
	ListActive(ctx context.Context) ([]models.Candidate, error)
}

type candidateRepo struct {
	db *gorm.DB
}

func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) Get(ctx context.Context, id string) (*models.Candidate, error) {
	var c models.Candidate
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *candidateRepo) ListActive(ctx context.Context) ([]models.Candidate, error) {
	var out []models.Candidate
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
