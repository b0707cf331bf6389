package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/talentbridge/talentbridge/internal/cache"
	"github.com/talentbridge/talentbridge/internal/matching"
	"github.com/talentbridge/talentbridge/internal/models"
	pgrepo "github.com/talentbridge/talentbridge/internal/repositories/postgres"
	"github.com/talentbridge/talentbridge/internal/utils"
	"github.com/talentbridge/talentbridge/internal/workers"
)

const (
	// DefaultMinScore is the persistence threshold for directed match runs.
	DefaultMinScore = 0.5
	// DefaultMatchLimit caps how many ranked matches a directed run returns
	// and persists.
	DefaultMatchLimit = 50
	// DefaultCacheTTL bounds staleness of cached requirement match runs.
	DefaultCacheTTL = time.Hour
)

// MatchOptions tunes a directed match run. Nil fields take the service
// defaults; an explicit non-positive Limit disables truncation.
type MatchOptions struct {
	MinScore *float64 `json:"min_score,omitempty"`
	Limit    *int     `json:"limit,omitempty"`
}

// RankedMatch is one scored pair in ranked output.
type RankedMatch struct {
	RequirementID     string                 `json:"requirement_id"`
	CandidateID       string                 `json:"candidate_id"`
	Score             float64                `json:"score"`
	Components        models.ComponentScores `json:"component_scores"`
	MissingSkills     []string               `json:"missing_skills"`
	StandoutQualities []string               `json:"standout_qualities"`
}

// MatchRunResult summarizes one directed match run. Skipped counts pairs
// scored below the threshold plus pairs ranked past the limit; neither kind
// touches the store.
type MatchRunResult struct {
	RequirementID string        `json:"requirement_id,omitempty"`
	CandidateID   string        `json:"candidate_id,omitempty"`
	Evaluated     int           `json:"evaluated"`
	Created       int           `json:"created"`
	Updated       int           `json:"updated"`
	Skipped       int           `json:"skipped"`
	Errors        int           `json:"errors"`
	Matches       []RankedMatch `json:"matches"`
}

// BatchSummary aggregates a full corpus run.
type BatchSummary struct {
	Requirements int   `json:"requirements"`
	Candidates   int   `json:"candidates"`
	Evaluated    int   `json:"evaluated"`
	Created      int   `json:"created"`
	Updated      int   `json:"updated"`
	Skipped      int   `json:"skipped"`
	Errors       int   `json:"errors"`
	DurationMS   int64 `json:"duration_ms"`
}

// MatchView is a stored match plus the derived fields consumers rank by.
type MatchView struct {
	models.MatchRecord
	EffectiveScore float64 `json:"effective_score"`
	HasOverride    bool    `json:"has_override"`
}

// MatchPage is one page of stored matches for a requirement, ranked by
// effective score.
type MatchPage struct {
	Matches []MatchView `json:"matches"`
	Total   int64       `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

type MatchingService interface {
	MatchRequirementToCandidates(ctx context.Context, requirementID string, opts MatchOptions) (*MatchRunResult, error)
	MatchCandidateToRequirements(ctx context.Context, candidateID string, opts MatchOptions) (*MatchRunResult, error)
	BatchMatchAll(ctx context.Context, minScore *float64) (*BatchSummary, error)
	RecalculateRequirementMatches(ctx context.Context, requirementID string) (*MatchRunResult, error)

	GetMatch(ctx context.Context, requirementID, candidateID string) (*MatchView, error)
	ListRequirementMatches(ctx context.Context, requirementID string, limit, offset int) (*MatchPage, error)
	PruneRequirementMatches(ctx context.Context, requirementID string, threshold float64) (int64, error)

	OverrideMatch(ctx context.Context, requirementID, candidateID string, score float64, note, setBy string) (*MatchView, error)
	ClearMatchOverride(ctx context.Context, requirementID, candidateID string) (*MatchView, error)

	Weights(ctx context.Context) models.MatchWeights
	UpdateWeights(ctx context.Context, w models.MatchWeights) (models.MatchWeights, error)
}

// MatchingDeps wires the orchestrator. Engine and the three core
// repositories are required; Feedback and Cache are optional and their
// absence only degrades culture scoring and latency.
type MatchingDeps struct {
	Engine       *matching.Engine
	Matches      pgrepo.MatchRepository
	Candidates   pgrepo.CandidateRepository
	Requirements pgrepo.RequirementRepository
	Feedback     pgrepo.FeedbackRepository
	Cache        cache.Cache
	CacheTTL     time.Duration
	Pool         *workers.MatchWorkerPool
	Logger       *logrus.Logger
	Weights      models.MatchWeights
}

type matchingService struct {
	engine       *matching.Engine
	matches      pgrepo.MatchRepository
	candidates   pgrepo.CandidateRepository
	requirements pgrepo.RequirementRepository
	feedback     pgrepo.FeedbackRepository
	cache        cache.Cache
	cacheTTL     time.Duration
	pool         *workers.MatchWorkerPool
	log          *logrus.Logger

	mu      sync.RWMutex
	weights models.MatchWeights
}

func NewMatchingService(d MatchingDeps) (MatchingService, error) {
	if d.Engine == nil || d.Matches == nil || d.Candidates == nil || d.Requirements == nil {
		return nil, errors.New("MatchingService missing dependency: Engine/Matches/Candidates/Requirements must be set")
	}
	if d.CacheTTL <= 0 {
		d.CacheTTL = DefaultCacheTTL
	}
	if d.Pool == nil {
		d.Pool = &workers.MatchWorkerPool{}
	}
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	if d.Pool.Logger == nil {
		d.Pool.Logger = d.Logger
	}
	if d.Weights.Sum() == 0 {
		d.Weights = models.DefaultMatchWeights()
	}
	if err := d.Weights.Validate(); err != nil {
		return nil, err
	}
	return &matchingService{
		engine:       d.Engine,
		matches:      d.Matches,
		candidates:   d.Candidates,
		requirements: d.Requirements,
		feedback:     d.Feedback,
		cache:        d.Cache,
		cacheTTL:     d.CacheTTL,
		pool:         d.Pool,
		log:          d.Logger,
		weights:      d.Weights,
	}, nil
}

func (s *matchingService) MatchRequirementToCandidates(ctx context.Context, requirementID string, opts MatchOptions) (*MatchRunResult, error) {
	const op = "MatchingService.MatchRequirementToCandidates"

	if requirementID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "requirement_id is required", nil)
	}
	minScore, limit := opts.resolve()
	w := s.Weights(ctx)

	key := ""
	if s.cache != nil {
		key = cache.MatchResultKey(requirementID, w, minScore, limit)
		var cached MatchRunResult
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	req, err := s.getRequirement(ctx, op, requirementID)
	if err != nil {
		return nil, err
	}

	cands, err := s.candidates.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list candidates", err)
	}

	pairs := make([]workers.Pair, 0, len(cands))
	for i := range cands {
		pairs = append(pairs, workers.Pair{Requirement: req, Candidate: &cands[i]})
	}

	result, err := s.runMatch(ctx, op, pairs, w, minScore, limit, nil)
	if err != nil {
		return nil, err
	}
	result.RequirementID = requirementID

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, result, s.cacheTTL); err != nil {
			s.log.WithError(err).Warn("match result cache write failed")
		}
	}
	return result, nil
}

func (s *matchingService) MatchCandidateToRequirements(ctx context.Context, candidateID string, opts MatchOptions) (*MatchRunResult, error) {
	const op = "MatchingService.MatchCandidateToRequirements"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}
	minScore, limit := opts.resolve()

	cand, err := s.getCandidate(ctx, op, candidateID)
	if err != nil {
		return nil, err
	}

	reqs, err := s.requirements.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list requirements", err)
	}

	pairs := make([]workers.Pair, 0, len(reqs))
	for i := range reqs {
		pairs = append(pairs, workers.Pair{Requirement: &reqs[i], Candidate: cand})
	}

	result, err := s.runMatch(ctx, op, pairs, s.Weights(ctx), minScore, limit, nil)
	if err != nil {
		return nil, err
	}
	result.CandidateID = candidateID
	return result, nil
}

// BatchMatchAll scores the full active Cartesian product and persists every
// pair at or above minScore (nil takes DefaultMinScore). Unlike directed
// runs there is no result limit: the batch exists to fill the store, not to
// page ranked output.
func (s *matchingService) BatchMatchAll(ctx context.Context, minScore *float64) (*BatchSummary, error) {
	const op = "MatchingService.BatchMatchAll"

	start := time.Now()

	threshold := DefaultMinScore
	if minScore != nil {
		threshold = *minScore
	}

	reqs, err := s.requirements.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list requirements", err)
	}
	cands, err := s.candidates.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list candidates", err)
	}

	summary := &BatchSummary{Requirements: len(reqs), Candidates: len(cands)}
	w := s.Weights(ctx)

	for i := range reqs {
		pairs := make([]workers.Pair, 0, len(cands))
		for j := range cands {
			pairs = append(pairs, workers.Pair{Requirement: &reqs[i], Candidate: &cands[j]})
		}
		run, err := s.runMatch(ctx, op, pairs, w, threshold, 0, nil)
		if err != nil {
			return nil, err
		}
		summary.Evaluated += run.Evaluated
		summary.Created += run.Created
		summary.Updated += run.Updated
		summary.Skipped += run.Skipped
		summary.Errors += run.Errors
	}

	summary.DurationMS = time.Since(start).Milliseconds()
	s.log.WithFields(logrus.Fields{
		"requirements": summary.Requirements,
		"candidates":   summary.Candidates,
		"created":      summary.Created,
		"updated":      summary.Updated,
		"skipped":      summary.Skipped,
		"errors":       summary.Errors,
		"duration_ms":  summary.DurationMS,
	}).Info("batch match completed")
	return summary, nil
}

func (s *matchingService) RecalculateRequirementMatches(ctx context.Context, requirementID string) (*MatchRunResult, error) {
	const op = "MatchingService.RecalculateRequirementMatches"

	if requirementID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "requirement_id is required", nil)
	}

	req, err := s.getRequirement(ctx, op, requirementID)
	if err != nil {
		return nil, err
	}

	rows, _, err := s.matches.ListByRequirement(ctx, requirementID, -1, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list matches", err)
	}
	stored := make(map[string]struct{}, len(rows))
	for i := range rows {
		stored[requirementID+"|"+rows[i].CandidateID] = struct{}{}
	}

	cands, err := s.candidates.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list candidates", err)
	}

	pairs := make([]workers.Pair, 0, len(cands))
	for i := range cands {
		pairs = append(pairs, workers.Pair{Requirement: req, Candidate: &cands[i]})
	}

	// A recalculation re-scores the whole active pool: stored rows are
	// replaced regardless of their new score, pairs without a row are
	// created when they clear the threshold. No truncation applies.
	result, err := s.runMatch(ctx, op, pairs, s.Weights(ctx), DefaultMinScore, 0, stored)
	if err != nil {
		return nil, err
	}
	result.RequirementID = requirementID
	return result, nil
}

// runMatch scores pairs concurrently, ranks the survivors, then persists the
// selection. Persistence happens after ranking so only returned matches are
// written. Pairs whose "<requirement_id>|<candidate_id>" key is in refresh
// bypass the threshold: their stored row must be replaced even when the new
// score falls under it.
func (s *matchingService) runMatch(ctx context.Context, op string, pairs []workers.Pair, w models.MatchWeights, minScore float64, limit int, refresh map[string]struct{}) (*MatchRunResult, error) {
	type scored struct {
		reqID, candID string
		res           matching.Result
	}

	var mu sync.Mutex
	kept := make([]scored, 0, len(pairs))

	tally, err := s.pool.Run(ctx, pairs, func(ctx context.Context, p workers.Pair) (workers.Outcome, error) {
		if p.Requirement.RateCurrency != "" && p.Candidate.RateCurrency != "" &&
			!strings.EqualFold(p.Requirement.RateCurrency, p.Candidate.RateCurrency) {
			return workers.OutcomeError, utils.E(utils.CodeInvalidArgument, op, "rate currency mismatch", nil)
		}

		var fb []models.InterviewFeedback
		if s.feedback != nil {
			var ferr error
			fb, ferr = s.feedback.ListByCandidate(ctx, p.Candidate.ID)
			if ferr != nil {
				s.log.WithField("candidate_id", p.Candidate.ID).WithError(ferr).Warn("feedback lookup failed, scoring without culture signal")
				fb = nil
			}
		}

		res := s.engine.Score(p.Requirement, p.Candidate, fb, w)
		if res.Overall < minScore {
			if _, keep := refresh[p.Requirement.ID+"|"+p.Candidate.ID]; !keep {
				return workers.OutcomeSkipped, nil
			}
		}

		mu.Lock()
		kept = append(kept, scored{reqID: p.Requirement.ID, candID: p.Candidate.ID, res: res})
		mu.Unlock()
		return workers.OutcomeCreated, nil
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "match run interrupted", err)
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].res.Overall != kept[j].res.Overall {
			return kept[i].res.Overall > kept[j].res.Overall
		}
		if kept[i].candID != kept[j].candID {
			return kept[i].candID < kept[j].candID
		}
		return kept[i].reqID < kept[j].reqID
	})

	overflow := 0
	if limit > 0 && len(kept) > limit {
		overflow = len(kept) - limit
		kept = kept[:limit]
	}

	result := &MatchRunResult{
		Evaluated: len(pairs),
		Skipped:   tally.Skipped + overflow,
		Errors:    tally.Errors,
		Matches:   make([]RankedMatch, 0, len(kept)),
	}

	now := time.Now().UTC()
	for _, sc := range kept {
		rec := newMatchRecord(sc.reqID, sc.candID, sc.res, now)

		var outcome pgrepo.UpsertOutcome
		err := utils.Retry(ctx, utils.RetryAttempts, utils.RetryInitialDelay, func() error {
			var uerr error
			outcome, uerr = s.matches.Upsert(ctx, rec)
			return uerr
		})
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"requirement_id": sc.reqID,
				"candidate_id":   sc.candID,
			}).WithError(err).Error("match upsert failed")
			result.Errors++
			continue
		}

		if outcome == pgrepo.OutcomeUpdated {
			result.Updated++
		} else {
			result.Created++
		}
		result.Matches = append(result.Matches, RankedMatch{
			RequirementID:     sc.reqID,
			CandidateID:       sc.candID,
			Score:             sc.res.Overall,
			Components:        sc.res.Components,
			MissingSkills:     sc.res.MissingSkills,
			StandoutQualities: sc.res.StandoutQualities,
		})
	}
	return result, nil
}

func (s *matchingService) GetMatch(ctx context.Context, requirementID, candidateID string) (*MatchView, error) {
	const op = "MatchingService.GetMatch"

	if requirementID == "" || candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "requirement_id and candidate_id are required", nil)
	}

	m, err := s.matches.Get(ctx, requirementID, candidateID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "match not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get match", err)
	}
	return newMatchView(m), nil
}

func (s *matchingService) ListRequirementMatches(ctx context.Context, requirementID string, limit, offset int) (*MatchPage, error) {
	const op = "MatchingService.ListRequirementMatches"

	if requirementID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "requirement_id is required", nil)
	}
	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.getRequirement(ctx, op, requirementID); err != nil {
		return nil, err
	}

	rows, total, err := s.matches.ListByRequirement(ctx, requirementID, limit, offset)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list matches", err)
	}

	page := &MatchPage{
		Matches: make([]MatchView, 0, len(rows)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for i := range rows {
		page.Matches = append(page.Matches, *newMatchView(&rows[i]))
	}
	return page, nil
}

// PruneRequirementMatches deletes stored rows whose effective score fell
// under the threshold, typically after a recalculation tightened scores.
func (s *matchingService) PruneRequirementMatches(ctx context.Context, requirementID string, threshold float64) (int64, error) {
	const op = "MatchingService.PruneRequirementMatches"

	if requirementID == "" {
		return 0, utils.E(utils.CodeInvalidArgument, op, "requirement_id is required", nil)
	}
	if threshold < 0 || threshold > 1 {
		return 0, utils.E(utils.CodeInvalidArgument, op, "threshold must be within [0,1]", nil)
	}

	if _, err := s.getRequirement(ctx, op, requirementID); err != nil {
		return 0, err
	}

	n, err := s.matches.DeleteBelowScore(ctx, requirementID, threshold)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to prune matches", err)
	}
	s.log.WithFields(logrus.Fields{
		"requirement_id": requirementID,
		"threshold":      threshold,
		"deleted":        n,
	}).Info("match rows pruned")
	return n, nil
}

func (s *matchingService) OverrideMatch(ctx context.Context, requirementID, candidateID string, score float64, note, setBy string) (*MatchView, error) {
	const op = "MatchingService.OverrideMatch"

	if requirementID == "" || candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "requirement_id and candidate_id are required", nil)
	}
	if score < 0 || score > 1 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "override score must be within [0,1]", nil)
	}

	if err := s.matches.ApplyOverride(ctx, requirementID, candidateID, score, note, setBy); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "match not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to apply override", err)
	}

	s.log.WithFields(logrus.Fields{
		"requirement_id": requirementID,
		"candidate_id":   candidateID,
		"override_score": score,
		"set_by":         setBy,
	}).Info("match override applied")

	return s.GetMatch(ctx, requirementID, candidateID)
}

func (s *matchingService) ClearMatchOverride(ctx context.Context, requirementID, candidateID string) (*MatchView, error) {
	const op = "MatchingService.ClearMatchOverride"

	if requirementID == "" || candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "requirement_id and candidate_id are required", nil)
	}

	if err := s.matches.ClearOverride(ctx, requirementID, candidateID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "match not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to clear override", err)
	}
	return s.GetMatch(ctx, requirementID, candidateID)
}

func (s *matchingService) Weights(ctx context.Context) models.MatchWeights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights
}

// UpdateWeights swaps the active weight vector. The version bump makes every
// cached run keyed under the old vector unreachable, so no explicit cache
// invalidation is needed.
func (s *matchingService) UpdateWeights(ctx context.Context, w models.MatchWeights) (models.MatchWeights, error) {
	const op = "MatchingService.UpdateWeights"

	if err := w.Validate(); err != nil {
		return models.MatchWeights{}, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w.Name == "" {
		w.Name = s.weights.Name
	}
	w.Version = s.weights.Version + 1
	s.weights = w

	s.log.WithFields(logrus.Fields{
		"weights_name":    w.Name,
		"weights_version": w.Version,
	}).Info("match weights updated")
	return w, nil
}

func (s *matchingService) getRequirement(ctx context.Context, op, id string) (*models.Requirement, error) {
	req, err := s.requirements.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "requirement not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get requirement", err)
	}
	return req, nil
}

func (s *matchingService) getCandidate(ctx context.Context, op, id string) (*models.Candidate, error) {
	cand, err := s.candidates.Get(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "candidate not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get candidate", err)
	}
	return cand, nil
}

func (o MatchOptions) resolve() (minScore float64, limit int) {
	minScore = DefaultMinScore
	if o.MinScore != nil {
		minScore = *o.MinScore
	}
	limit = DefaultMatchLimit
	if o.Limit != nil {
		limit = *o.Limit
	}
	return minScore, limit
}

func newMatchRecord(requirementID, candidateID string, res matching.Result, matchedAt time.Time) *models.MatchRecord {
	breakdown, _ := json.Marshal(res)
	return &models.MatchRecord{
		RequirementID:     requirementID,
		CandidateID:       candidateID,
		OverallScore:      res.Overall,
		SkillScore:        res.Components.Skill,
		ExperienceScore:   res.Components.Experience,
		EducationScore:    res.Components.Education,
		LocationScore:     res.Components.Location,
		RateScore:         res.Components.Rate,
		AvailabilityScore: res.Components.Availability,
		CultureScore:      res.Components.Culture,
		ScoreBreakdown:    datatypes.JSON(breakdown),
		MissingSkills:     pq.StringArray(res.MissingSkills),
		StandoutQualities: pq.StringArray(res.StandoutQualities),
		MatchedAt:         matchedAt,
		MatchedBy:         models.MatchedBySystem,
	}
}

func newMatchView(m *models.MatchRecord) *MatchView {
	return &MatchView{
		MatchRecord:    *m,
		EffectiveScore: m.EffectiveScore(),
		HasOverride:    m.HasOverride(),
	}
}
