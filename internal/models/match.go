package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Who last wrote the overall score.
const (
	MatchedBySystem   = "system"
	MatchedByOverride = "manual_override"
)

// ComponentScores is the per-dimension breakdown of one computed match.
// Every value is in [0,1].
type ComponentScores struct {
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Education    float64 `json:"education"`
	Location     float64 `json:"location"`
	Rate         float64 `json:"rate"`
	Availability float64 `json:"availability"`
	Culture      float64 `json:"culture"`
}

// MatchRecord is the durable result of scoring one requirement/candidate
// pair. The composite primary key keeps at most one live row per pair; a
// recompute replaces the row in place. An override supersedes the computed
// overall score for consumers while the computed breakdown stays intact for
// audit.
type MatchRecord struct {
	RequirementID string `gorm:"column:requirement_id;type:uuid;primaryKey" json:"requirement_id"`
	CandidateID   string `gorm:"column:candidate_id;type:uuid;primaryKey" json:"candidate_id"`

	OverallScore      float64        `gorm:"column:overall_score;index" json:"overall_score"`
	SkillScore        float64        `gorm:"column:skill_score" json:"skill_score"`
	ExperienceScore   float64        `gorm:"column:experience_score" json:"experience_score"`
	EducationScore    float64        `gorm:"column:education_score" json:"education_score"`
	LocationScore     float64        `gorm:"column:location_score" json:"location_score"`
	RateScore         float64        `gorm:"column:rate_score" json:"rate_score"`
	AvailabilityScore float64        `gorm:"column:availability_score" json:"availability_score"`
	CultureScore      float64        `gorm:"column:culture_score" json:"culture_score"`
	ScoreBreakdown    datatypes.JSON `gorm:"column:score_breakdown;type:jsonb" json:"score_breakdown"`

	MissingSkills     pq.StringArray `gorm:"column:missing_skills;type:text[]" json:"missing_skills"`
	StandoutQualities pq.StringArray `gorm:"column:standout_qualities;type:text[]" json:"standout_qualities"`

	MatchedAt time.Time `gorm:"column:matched_at;type:timestamptz" json:"matched_at"`
	MatchedBy string    `gorm:"column:matched_by;type:text" json:"matched_by"`

	OverrideScore *float64   `gorm:"column:override_score" json:"override_score,omitempty"`
	OverrideNote  string     `gorm:"column:override_note;type:text" json:"override_note,omitempty"`
	OverrideSetBy string     `gorm:"column:override_set_by;type:text" json:"override_set_by,omitempty"`
	OverrideSetAt *time.Time `gorm:"column:override_set_at;type:timestamptz" json:"override_set_at,omitempty"`
}

func (MatchRecord) TableName() string { return "match_scores" }

// HasOverride reports whether a manual override is in effect.
func (m *MatchRecord) HasOverride() bool { return m.OverrideScore != nil }

// EffectiveScore is the score consumers rank by: the override when present,
// otherwise the computed overall score.
func (m *MatchRecord) EffectiveScore() float64 {
	if m.OverrideScore != nil {
		return *m.OverrideScore
	}
	return m.OverallScore
}

// Components reassembles the stored per-dimension columns.
func (m *MatchRecord) Components() ComponentScores {
	return ComponentScores{
		Skill:        m.SkillScore,
		Experience:   m.ExperienceScore,
		Education:    m.EducationScore,
		Location:     m.LocationScore,
		Rate:         m.RateScore,
		Availability: m.AvailabilityScore,
		Culture:      m.CultureScore,
	}
}
