package models

import (
	"time"

	"github.com/lib/pq"
)

// Work modes a requirement can specify. Remote requirements ignore candidate
// location entirely; hybrid softens the location penalty.
const (
	WorkModeOnsite = "onsite"
	WorkModeHybrid = "hybrid"
	WorkModeRemote = "remote"
)

// Requirement carries the matching-relevant attributes of an open position.
// Owned by the requirement-management subsystem; read-only here.
type Requirement struct {
	ID    string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title string `gorm:"column:title;type:text" json:"title"`

	SkillsRequired pq.StringArray `gorm:"column:skills_required;type:text[]" json:"skills_required"`
	ExperienceMin  *float64       `gorm:"column:experience_min" json:"experience_min,omitempty"`
	ExperienceMax  *float64       `gorm:"column:experience_max" json:"experience_max,omitempty"`
	EducationLevel string         `gorm:"column:education_level;type:text" json:"education_level"`

	WorkMode        string `gorm:"column:work_mode;type:text" json:"work_mode"`
	LocationCity    string `gorm:"column:location_city;type:text" json:"location_city"`
	LocationState   string `gorm:"column:location_state;type:text" json:"location_state"`
	LocationCountry string `gorm:"column:location_country;type:text" json:"location_country"`

	RateMin      *float64 `gorm:"column:rate_min" json:"rate_min,omitempty"`
	RateMax      *float64 `gorm:"column:rate_max" json:"rate_max,omitempty"`
	RateCurrency string   `gorm:"column:rate_currency;type:text" json:"rate_currency"`

	StartDate *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`

	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Requirement) TableName() string { return "requirements" }
