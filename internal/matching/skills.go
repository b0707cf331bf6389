package matching

import (
	"strings"

	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/taxonomy"
)

// Tier identifies how a required skill was satisfied.
type Tier string

const (
	TierExact   Tier = "exact"
	TierSynonym Tier = "synonym"
	TierRelated Tier = "related"
	TierPartial Tier = "partial"
	TierNone    Tier = "none"
)

// Tier scores. The ordering is a policy decision: an exact hit must always
// beat a synonym, a synonym a related skill, and so on.
const (
	exactScore   = 1.0
	synonymScore = 0.9
	partialScore = 0.5

	// minPartialOverlap is the shortest substring that still counts as a
	// partial match. Anything shorter matches too much by accident.
	minPartialOverlap = 3
)

// MatchSkill resolves the best achievable tier for one required skill
// against the candidate's skills. Both sides are normalized here, so raw
// names are fine. Precedence is strict: the first tier that matches any
// candidate skill wins, which also makes the per-skill score the maximum
// over all candidate skills. Returns the score, the tier, and the normalized
// candidate skill that produced the match ("" for TierNone).
func (e *Engine) MatchSkill(required string, candidateSkills []string) (float64, Tier, string) {
	req := taxonomy.Normalize(required)
	reqEntry := e.tax.Lookup(req)

	cands := make([]string, len(candidateSkills))
	for i, c := range candidateSkills {
		cands[i] = taxonomy.Normalize(c)
	}

	for _, c := range cands {
		if c == req {
			return exactScore, TierExact, c
		}
	}

	// Synonyms are checked in both directions: the table may list the
	// relationship under either name.
	for _, c := range cands {
		if reqEntry.HasSynonym(c) || e.tax.Lookup(c).HasSynonym(req) {
			return synonymScore, TierSynonym, c
		}
	}

	for _, c := range cands {
		if reqEntry.HasRelated(c) {
			return e.tax.RelatedDiscount(), TierRelated, c
		}
	}

	for _, c := range cands {
		if partialMatch(req, c) {
			return partialScore, TierPartial, c
		}
	}

	return 0, TierNone, ""
}

func partialMatch(a, b string) bool {
	if len(a) < minPartialOverlap || len(b) < minPartialOverlap {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ScoreSkills scores the candidate against the full required-skill list.
// The component score is the arithmetic mean of per-required-skill scores.
// Required skills with no match at all land in missing; candidate skills
// that were not used as a best match but are synonym/related to a required
// skill land in standout. An empty required list is a vacuous 1.0 match.
func (e *Engine) ScoreSkills(required []string, candidateSkills []models.CandidateSkill) (float64, []string, []string) {
	missing := []string{}
	standout := []string{}
	if len(required) == 0 {
		return 1.0, missing, standout
	}

	// Normalized candidate names, first-seen order, duplicates dropped.
	normToRaw := make(map[string]string, len(candidateSkills))
	candNorm := make([]string, 0, len(candidateSkills))
	for _, cs := range candidateSkills {
		n := taxonomy.Normalize(cs.Skill)
		if n == "" {
			continue
		}
		if _, seen := normToRaw[n]; !seen {
			normToRaw[n] = cs.Skill
			candNorm = append(candNorm, n)
		}
	}

	reqNorm := make(map[string]struct{}, len(required))
	for _, r := range required {
		reqNorm[taxonomy.Normalize(r)] = struct{}{}
	}

	usedAsBestMatch := make(map[string]struct{}, len(required))
	total := 0.0
	for _, r := range required {
		score, tier, matchedWith := e.MatchSkill(r, candNorm)
		total += score
		if tier == TierNone {
			missing = append(missing, r)
		} else {
			usedAsBestMatch[matchedWith] = struct{}{}
		}
	}

	for _, c := range candNorm {
		if _, used := usedAsBestMatch[c]; used {
			continue
		}
		if _, isRequired := reqNorm[c]; isRequired {
			continue
		}
		if e.adjacentToAny(c, reqNorm) {
			standout = append(standout, normToRaw[c])
		}
	}

	return total / float64(len(required)), missing, standout
}

// adjacentToAny reports whether a candidate skill has a synonym or related
// relationship to any required skill. Plain unrelated skills are not
// standout; standout qualities must be adjacent to the role.
func (e *Engine) adjacentToAny(candidate string, required map[string]struct{}) bool {
	candEntry := e.tax.Lookup(candidate)
	for r := range required {
		reqEntry := e.tax.Lookup(r)
		if reqEntry.HasSynonym(candidate) || reqEntry.HasRelated(candidate) {
			return true
		}
		if candEntry.HasSynonym(r) || candEntry.HasRelated(r) {
			return true
		}
	}
	return false
}
