package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/talentbridge/talentbridge/internal/models"
)

// MatchResultKey builds the cache key for a requirement's ranked match list.
// The fingerprint covers everything that changes the ranked output (weight
// vector, score threshold, result limit), so a weight update or a differently
// shaped query can never serve a stale list.
func MatchResultKey(requirementID string, w models.MatchWeights, minScore float64, limit int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%.9f|%.9f|%.9f|%.9f|%.9f|%.9f|%.9f|%.9f|%d",
		w.Name, w.Version,
		w.Skill, w.Experience, w.Education, w.Location,
		w.Rate, w.Availability, w.Culture,
		minScore, limit,
	)
	return "matches:req:" + requirementID + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}
