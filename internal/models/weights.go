package models

import (
	"fmt"
	"math"
)

// WeightSumTolerance is the allowed deviation from 1.0 for a weight vector.
const WeightSumTolerance = 1e-6

// MatchWeights is the named, versioned weight vector applied to the seven
// component scores. The sum invariant is enforced when weights are updated,
// not at scoring time; scoring trusts the stored vector.
type MatchWeights struct {
	Name    string `json:"name"`
	Version int    `json:"version"`

	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Education    float64 `json:"education"`
	Location     float64 `json:"location"`
	Rate         float64 `json:"rate"`
	Availability float64 `json:"availability"`
	Culture      float64 `json:"culture"`
}

// DefaultMatchWeights returns the stock weight distribution. Culture starts
// at zero: interview feedback is sparse and should not move rankings until a
// deployment opts in.
func DefaultMatchWeights() MatchWeights {
	return MatchWeights{
		Name:         "default",
		Version:      1,
		Skill:        0.35,
		Experience:   0.25,
		Education:    0.15,
		Location:     0.10,
		Rate:         0.10,
		Availability: 0.05,
		Culture:      0.00,
	}
}

// Sum returns the total of the seven weights.
func (w MatchWeights) Sum() float64 {
	return w.Skill + w.Experience + w.Education + w.Location +
		w.Rate + w.Availability + w.Culture
}

// Validate rejects vectors with negative entries or a sum outside
// 1.0 ± WeightSumTolerance. The returned error names the failed constraint.
func (w MatchWeights) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"skill", w.Skill},
		{"experience", w.Experience},
		{"education", w.Education},
		{"location", w.Location},
		{"rate", w.Rate},
		{"availability", w.Availability},
		{"culture", w.Culture},
	} {
		if c.value < 0 {
			return fmt.Errorf("weight %q must be non-negative, got %v", c.name, c.value)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0 (±%v), got %v", WeightSumTolerance, sum)
	}
	return nil
}
