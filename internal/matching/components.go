package matching

import (
	"math"
	"strings"
	"time"

	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/taxonomy"
)

// The component scorers below are pure functions into [0,1]. None of them
// return errors: every edge case (missing values, zero-width ranges,
// out-of-range dates) has a defined score so ranking degrades instead of
// halting.

// ScoreExperience scores candidate years against the required range.
// Within [min,max] is a full match. Below min, score falls linearly to 0 at
// two years under. Above max, overqualification costs 5% per extra year but
// never drops below 0.8.
func ScoreExperience(candidateYears, requiredMin, requiredMax *float64) float64 {
	if candidateYears == nil {
		return 0.5
	}
	if requiredMin == nil && requiredMax == nil {
		return 1.0
	}

	min := 0.0
	if requiredMin != nil {
		min = *requiredMin
	}
	max := math.Inf(1)
	if requiredMax != nil {
		max = *requiredMax
	}

	y := *candidateYears
	switch {
	case y >= min && y <= max:
		return 1.0
	case y < min:
		gap := min - y
		if gap >= 2 {
			return 0.0
		}
		return 1.0 - gap/2
	default:
		s := 1.0 - 0.05*(y-max)
		if s < 0.8 {
			return 0.8
		}
		return s
	}
}

// Ordinal education levels. Doctorate and PhD are the same rank.
var educationRank = map[string]int{
	"none":        0,
	"high school": 1,
	"associate":   2,
	"bachelor":    3,
	"bachelors":   3,
	"master":      4,
	"masters":     4,
	"doctorate":   5,
	"phd":         5,
}

func educationLevel(s string) int {
	norm := taxonomy.Normalize(s)
	if r, ok := educationRank[norm]; ok {
		return r
	}
	// Degree strings like "Bachelor of Science" resolve by containment,
	// highest rank wins.
	best := 0
	for level, rank := range educationRank {
		if level != "none" && strings.Contains(norm, level) && rank > best {
			best = rank
		}
	}
	return best
}

// ScoreEducation compares the candidate's highest level to the required one.
// At or above scores 1.0, one level below 0.5, two or more below 0.0.
func ScoreEducation(candidateLevel, requiredLevel string) float64 {
	required := educationLevel(requiredLevel)
	if required == 0 {
		return 1.0
	}
	gap := required - educationLevel(candidateLevel)
	switch {
	case gap <= 0:
		return 1.0
	case gap == 1:
		return 0.5
	default:
		return 0.0
	}
}

// ScoreLocation scores location fit. Remote requirements always score 1.0.
// An exact city+state+country match scores 1.0, a same-state or same-country
// match 0.6, and anything else 0.0 unless the requirement is hybrid, which
// keeps a 0.3 floor.
func ScoreLocation(candCity, candState, candCountry, reqCity, reqState, reqCountry, workMode string) float64 {
	if taxonomy.Normalize(workMode) == models.WorkModeRemote {
		return 1.0
	}
	if reqCity == "" && reqState == "" && reqCountry == "" {
		return 1.0
	}

	eq := func(a, b string) bool {
		a, b = taxonomy.Normalize(a), taxonomy.Normalize(b)
		return a != "" && a == b
	}

	if eq(candCity, reqCity) && eq(candState, reqState) && eq(candCountry, reqCountry) {
		return 1.0
	}
	if eq(candState, reqState) || eq(candCountry, reqCountry) {
		return 0.6
	}
	if taxonomy.Normalize(workMode) == models.WorkModeHybrid {
		return 0.3
	}
	return 0.0
}

// ScoreRate scores expected compensation against the budget range. Inside
// the range is 1.0; outside, the score falls linearly with the percentage
// the rate misses the nearest bound by, reaching 0 at 50% out. Currency
// normalization is the caller's responsibility.
func ScoreRate(candidateRate, budgetMin, budgetMax *float64) float64 {
	if candidateRate == nil {
		return 0.5
	}
	if budgetMin == nil && budgetMax == nil {
		return 1.0
	}

	min := 0.0
	if budgetMin != nil {
		min = *budgetMin
	}
	max := math.Inf(1)
	if budgetMax != nil {
		max = *budgetMax
	}

	rate := *candidateRate
	if rate >= min && rate <= max {
		return 1.0
	}

	var pct float64
	if rate > max {
		if max <= 0 {
			return 0.0
		}
		pct = (rate - max) / max
	} else {
		if min <= 0 {
			return 0.0
		}
		pct = (min - rate) / min
	}
	return clamp01(1.0 - pct/0.5)
}

// availabilityWindowDays is how far past the desired start date a candidate
// can become available before scoring zero.
const availabilityWindowDays = 60

// ScoreAvailability scores the candidate's start date against the
// requirement's. On or before the desired start is 1.0, then a linear
// falloff across the window.
func ScoreAvailability(availableOn, desiredStart *time.Time) float64 {
	if availableOn == nil || desiredStart == nil {
		return 1.0
	}
	if !availableOn.After(*desiredStart) {
		return 1.0
	}
	daysLate := availableOn.Sub(*desiredStart).Hours() / 24
	return clamp01(1.0 - daysLate/availabilityWindowDays)
}

// ScoreCulture averages culture-fit scores from interview feedback. No
// feedback scores 0.0, not a neutral 0.5: absent data carries no signal and
// stays unweighted under the default vector.
func ScoreCulture(feedback []models.InterviewFeedback) float64 {
	if len(feedback) == 0 {
		return 0.0
	}
	total := 0.0
	for _, f := range feedback {
		total += clamp01(f.CultureFitScore)
	}
	return total / float64(len(feedback))
}
