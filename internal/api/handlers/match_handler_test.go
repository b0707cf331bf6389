package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/services"
	"github.com/talentbridge/talentbridge/internal/utils"
)

type stubMatchingService struct {
	weights models.MatchWeights

	lastRequirementID string
	lastOpts          services.MatchOptions
	lastBatchMinScore *float64
}

func (s *stubMatchingService) MatchRequirementToCandidates(ctx context.Context, requirementID string, opts services.MatchOptions) (*services.MatchRunResult, error) {
	s.lastRequirementID = requirementID
	s.lastOpts = opts
	if requirementID == "missing" {
		return nil, utils.E(utils.CodeNotFound, "MatchingService.MatchRequirementToCandidates", "requirement not found", nil)
	}
	return &services.MatchRunResult{RequirementID: requirementID, Evaluated: 1, Created: 1}, nil
}

func (s *stubMatchingService) MatchCandidateToRequirements(ctx context.Context, candidateID string, opts services.MatchOptions) (*services.MatchRunResult, error) {
	return &services.MatchRunResult{CandidateID: candidateID}, nil
}

func (s *stubMatchingService) BatchMatchAll(ctx context.Context, minScore *float64) (*services.BatchSummary, error) {
	s.lastBatchMinScore = minScore
	return &services.BatchSummary{}, nil
}

func (s *stubMatchingService) RecalculateRequirementMatches(ctx context.Context, requirementID string) (*services.MatchRunResult, error) {
	return &services.MatchRunResult{RequirementID: requirementID}, nil
}

func (s *stubMatchingService) GetMatch(ctx context.Context, requirementID, candidateID string) (*services.MatchView, error) {
	return nil, utils.E(utils.CodeNotFound, "MatchingService.GetMatch", "match not found", nil)
}

func (s *stubMatchingService) ListRequirementMatches(ctx context.Context, requirementID string, limit, offset int) (*services.MatchPage, error) {
	return &services.MatchPage{Limit: limit, Offset: offset}, nil
}

func (s *stubMatchingService) PruneRequirementMatches(ctx context.Context, requirementID string, threshold float64) (int64, error) {
	return 2, nil
}

func (s *stubMatchingService) OverrideMatch(ctx context.Context, requirementID, candidateID string, score float64, note, setBy string) (*services.MatchView, error) {
	return &services.MatchView{}, nil
}

func (s *stubMatchingService) ClearMatchOverride(ctx context.Context, requirementID, candidateID string) (*services.MatchView, error) {
	return &services.MatchView{}, nil
}

func (s *stubMatchingService) Weights(ctx context.Context) models.MatchWeights {
	return s.weights
}

func (s *stubMatchingService) UpdateWeights(ctx context.Context, w models.MatchWeights) (models.MatchWeights, error) {
	if err := w.Validate(); err != nil {
		return models.MatchWeights{}, utils.E(utils.CodeInvalidArgument, "MatchingService.UpdateWeights", err.Error(), err)
	}
	s.weights = w
	return w, nil
}

func newTestRouter(stub *stubMatchingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMatchHandler(stub)
	r.POST("/match/requirement/:requirement_id", h.MatchRequirement)
	r.POST("/match/batch", h.BatchMatch)
	r.GET("/match/record/:requirement_id/:candidate_id", h.Get)
	r.POST("/match/record/:requirement_id/:candidate_id/override", h.SetOverride)
	r.GET("/match/weights", h.GetWeights)
	r.PUT("/match/weights", h.UpdateWeights)
	return r
}

func TestMatchRequirementAcceptsEmptyBody(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match/requirement/req-1", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", stub.lastRequirementID)
	assert.Nil(t, stub.lastOpts.MinScore)
}

func TestMatchRequirementPassesOptions(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match/requirement/req-1",
		strings.NewReader(`{"min_score":0.7,"limit":10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastOpts.MinScore)
	assert.InDelta(t, 0.7, *stub.lastOpts.MinScore, 1e-9)
	require.NotNil(t, stub.lastOpts.Limit)
	assert.Equal(t, 10, *stub.lastOpts.Limit)
}

func TestBatchMatchPassesMinScore(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match/batch", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, stub.lastBatchMinScore)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/match/batch", strings.NewReader(`{"min_score":0.3}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastBatchMinScore)
	assert.InDelta(t, 0.3, *stub.lastBatchMinScore, 1e-9)
}

func TestMatchRequirementNotFoundMapsTo404(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match/requirement/missing", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestGetMatchNotFoundMapsTo404(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/match/record/req-1/cand-1", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetOverrideRejectsOutOfRangeScore(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match/record/req-1/cand-1/override",
		strings.NewReader(`{"score":1.5,"set_by":"ops"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateWeightsRoundTrip(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/match/weights",
		strings.NewReader(`{"name":"skills-first","skill":0.4,"experience":0.2,"education":0.15,"location":0.1,"rate":0.1,"availability":0.05,"culture":0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/match/weights", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skills-first"`)
}

func TestUpdateWeightsRejectsBadSum(t *testing.T) {
	stub := &stubMatchingService{weights: models.DefaultMatchWeights()}
	r := newTestRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/match/weights",
		strings.NewReader(`{"skill":0.9,"experience":0.9}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
