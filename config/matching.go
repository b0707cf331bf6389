package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/talentbridge/talentbridge/internal/models"
)

// MatchingConfig collects the tunables of the matching engine. Every field
// has a working default so a bare environment still boots.
type MatchingConfig struct {
	Weights  models.MatchWeights
	Workers  int
	CacheTTL time.Duration
}

// LoadMatching reads matching tunables from the environment. Weight
// overrides apply individually on top of the defaults and the resulting
// vector must still sum to 1.
func LoadMatching() (MatchingConfig, error) {
	cfg := MatchingConfig{
		Weights:  models.DefaultMatchWeights(),
		Workers:  8,
		CacheTTL: time.Hour,
	}

	overrides := []struct {
		env string
		dst *float64
	}{
		{"MATCH_WEIGHT_SKILL", &cfg.Weights.Skill},
		{"MATCH_WEIGHT_EXPERIENCE", &cfg.Weights.Experience},
		{"MATCH_WEIGHT_EDUCATION", &cfg.Weights.Education},
		{"MATCH_WEIGHT_LOCATION", &cfg.Weights.Location},
		{"MATCH_WEIGHT_RATE", &cfg.Weights.Rate},
		{"MATCH_WEIGHT_AVAILABILITY", &cfg.Weights.Availability},
		{"MATCH_WEIGHT_CULTURE", &cfg.Weights.Culture},
	}
	overridden := false
	for _, o := range overrides {
		raw := os.Getenv(o.env)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return MatchingConfig{}, fmt.Errorf("%s: %w", o.env, err)
		}
		*o.dst = v
		overridden = true
	}
	if overridden {
		cfg.Weights.Name = "env"
	}
	if err := cfg.Weights.Validate(); err != nil {
		return MatchingConfig{}, err
	}

	if raw := os.Getenv("MATCH_WORKERS"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return MatchingConfig{}, fmt.Errorf("MATCH_WORKERS must be a positive integer, got %q", raw)
		}
		cfg.Workers = v
	}

	if raw := os.Getenv("MATCH_CACHE_TTL_SECONDS"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return MatchingConfig{}, fmt.Errorf("MATCH_CACHE_TTL_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.CacheTTL = time.Duration(v) * time.Second
	}

	return cfg, nil
}
