package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertOutcome is the tagged result of a match upsert so the orchestrator
// can drive its batch counters from an explicit contract.
type UpsertOutcome int

const (
	OutcomeCreated UpsertOutcome = iota
	OutcomeUpdated
)

// MatchRepository is the durable-store boundary for match records. The
// (requirement_id, candidate_id) composite primary key guarantees at most
// one live row per pair; Upsert relies on it to stay race-safe under
// concurrent recomputation of the same pair.
type MatchRepository interface {
	Upsert(ctx context.Context, m *models.MatchRecord) (UpsertOutcome, error)
	Get(ctx context.Context, requirementID, candidateID string) (*models.MatchRecord, error)
	ListByRequirement(ctx context.Context, requirementID string, limit, offset int) ([]models.MatchRecord, int64, error)
	ApplyOverride(ctx context.Context, requirementID, candidateID string, score float64, note, setBy string) error
	ClearOverride(ctx context.Context, requirementID, candidateID string) error
	DeleteBelowScore(ctx context.Context, requirementID string, threshold float64) (int64, error)
}

type matchRepo struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) MatchRepository {
	return &matchRepo{db: db}
}

// matchUpdateColumns are the columns a recompute replaces. Override fields
// are deliberately absent: a recompute must never clear a manual override.
var matchUpdateColumns = []string{
	"overall_score", "skill_score", "experience_score", "education_score",
	"location_score", "rate_score", "availability_score", "culture_score",
	"score_breakdown", "missing_skills", "standout_qualities",
	"matched_at", "matched_by",
}

func (r *matchRepo) Upsert(ctx context.Context, m *models.MatchRecord) (UpsertOutcome, error) {
	// The pre-read only decides the reported outcome; correctness under a
	// same-pair race rests on the OnConflict clause below.
	var existing int64
	err := r.db.WithContext(ctx).
		Model(&models.MatchRecord{}).
		Where("requirement_id = ? AND candidate_id = ?", m.RequirementID, m.CandidateID).
		Count(&existing).Error
	if err != nil {
		return OutcomeCreated, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "requirement_id"}, {Name: "candidate_id"}},
			DoUpdates: clause.AssignmentColumns(matchUpdateColumns),
		}).
		Create(m).Error
	if err != nil {
		return OutcomeCreated, err
	}

	if existing > 0 {
		return OutcomeUpdated, nil
	}
	return OutcomeCreated, nil
}

func (r *matchRepo) Get(ctx context.Context, requirementID, candidateID string) (*models.MatchRecord, error) {
	var m models.MatchRecord
	err := r.db.WithContext(ctx).
		Where("requirement_id = ? AND candidate_id = ?", requirementID, candidateID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &m, err
}

func (r *matchRepo) ListByRequirement(ctx context.Context, requirementID string, limit, offset int) ([]models.MatchRecord, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.MatchRecord{}).
		Where("requirement_id = ?", requirementID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MatchRecord
	err := q.
		Order("COALESCE(override_score, overall_score) DESC, candidate_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *matchRepo) ApplyOverride(ctx context.Context, requirementID, candidateID string, score float64, note, setBy string) error {
	res := r.db.WithContext(ctx).
		Model(&models.MatchRecord{}).
		Where("requirement_id = ? AND candidate_id = ?", requirementID, candidateID).
		Updates(map[string]any{
			"override_score":  score,
			"override_note":   note,
			"override_set_by": setBy,
			"override_set_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// override modifies an existing record, it never creates one
		return utils.ErrNotFound
	}
	return nil
}

func (r *matchRepo) ClearOverride(ctx context.Context, requirementID, candidateID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.MatchRecord{}).
		Where("requirement_id = ? AND candidate_id = ?", requirementID, candidateID).
		Updates(map[string]any{
			"override_score":  nil,
			"override_note":   "",
			"override_set_by": "",
			"override_set_at": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *matchRepo) DeleteBelowScore(ctx context.Context, requirementID string, threshold float64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("requirement_id = ? AND COALESCE(override_score, overall_score) < ?", requirementID, threshold).
		Delete(&models.MatchRecord{})
	return res.RowsAffected, res.Error
}
