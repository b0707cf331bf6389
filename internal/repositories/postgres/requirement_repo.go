package postgres

import (
	"context"
	"errors"

	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/utils"
	"gorm.io/gorm"
)

// RequirementRepository reads open requirements, owned elsewhere.
type RequirementRepository interface {
	Get(ctx context.Context, id string) (*models.Requirement, error)
	ListActive(ctx context.Context) ([]models.Requirement, error)
}

type requirementRepo struct {
	db *gorm.DB
}

func NewRequirementRepo(db *gorm.DB) RequirementRepository {
	return &requirementRepo{db: db}
}

func (r *requirementRepo) Get(ctx context.Context, id string) (*models.Requirement, error) {
	var req models.Requirement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &req, err
}

func (r *requirementRepo) ListActive(ctx context.Context) ([]models.Requirement, error) {
	var out []models.Requirement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
