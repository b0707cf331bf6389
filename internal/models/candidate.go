package models

import (
	"time"

	"gorm.io/datatypes"
)

// CandidateSkill is a single entry in a candidate's skill list.
type CandidateSkill struct {
	Skill       string `json:"skill"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Candidate carries the fully resolved attributes the matching engine needs.
// Profile ownership (ingestion, enrichment) lives outside this service.
type Candidate struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName string `gorm:"column:full_name;type:text" json:"full_name"`
	Email    string `gorm:"column:email;type:text" json:"email"`

	Skills               datatypes.JSONSlice[CandidateSkill] `gorm:"column:skills;type:jsonb" json:"skills"`
	TotalExperienceYears *float64                            `gorm:"column:total_experience_years" json:"total_experience_years,omitempty"`
	EducationLevel       string                              `gorm:"column:education_level;type:text" json:"education_level"`

	LocationCity    string `gorm:"column:location_city;type:text" json:"location_city"`
	LocationState   string `gorm:"column:location_state;type:text" json:"location_state"`
	LocationCountry string `gorm:"column:location_country;type:text" json:"location_country"`

	DesiredRate      *float64   `gorm:"column:desired_rate" json:"desired_rate,omitempty"`
	RateCurrency     string     `gorm:"column:rate_currency;type:text" json:"rate_currency"`
	AvailabilityDate *time.Time `gorm:"column:availability_date;type:date" json:"availability_date,omitempty"`

	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Candidate) TableName() string { return "candidates" }

// SkillNames returns the raw skill names in list order.
func (c *Candidate) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.Skill)
	}
	return names
}
