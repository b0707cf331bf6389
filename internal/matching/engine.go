// Package matching implements the pure pair-scoring engine: seven component
// scorers and the weighted aggregation that combines them. Nothing in this
// package touches storage; callers supply fully resolved profiles and get a
// deterministic result back.
package matching

import (
	"math"

	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/taxonomy"
)

// Result is one scoring of a requirement/candidate pair. A fresh Result is
// produced on every call; nothing is mutated in place.
type Result struct {
	Overall           float64                `json:"overall_score"`
	Components        models.ComponentScores `json:"component_scores"`
	MissingSkills     []string               `json:"missing_skills"`
	StandoutQualities []string               `json:"standout_qualities"`
}

// Engine scores pairs against an injected taxonomy. It holds no mutable
// state; the weight vector is passed into every call.
type Engine struct {
	tax taxonomy.Taxonomy
}

func NewEngine(tax taxonomy.Taxonomy) *Engine {
	return &Engine{tax: tax}
}

// Score computes the component scores and the weighted overall score for one
// pair. feedback may be nil; culture then scores 0 and is unweighted under
// the default vector. Identical inputs always produce identical output.
func (e *Engine) Score(req *models.Requirement, cand *models.Candidate, feedback []models.InterviewFeedback, w models.MatchWeights) Result {
	skillScore, missing, standout := e.ScoreSkills(req.SkillsRequired, cand.Skills)

	comps := models.ComponentScores{
		Skill:      round3(skillScore),
		Experience: round3(ScoreExperience(cand.TotalExperienceYears, req.ExperienceMin, req.ExperienceMax)),
		Education:  round3(ScoreEducation(cand.EducationLevel, req.EducationLevel)),
		Location: round3(ScoreLocation(
			cand.LocationCity, cand.LocationState, cand.LocationCountry,
			req.LocationCity, req.LocationState, req.LocationCountry,
			req.WorkMode,
		)),
		Rate:         round3(ScoreRate(cand.DesiredRate, req.RateMin, req.RateMax)),
		Availability: round3(ScoreAvailability(cand.AvailabilityDate, req.StartDate)),
		Culture:      round3(ScoreCulture(feedback)),
	}

	overall := w.Skill*comps.Skill +
		w.Experience*comps.Experience +
		w.Education*comps.Education +
		w.Location*comps.Location +
		w.Rate*comps.Rate +
		w.Availability*comps.Availability +
		w.Culture*comps.Culture

	return Result{
		Overall:           round3(clamp01(overall)),
		Components:        comps,
		MissingSkills:     missing,
		StandoutQualities: standout,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round3 keeps stored scores stable across recomputes regardless of float
// formatting downstream.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
