package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talentbridge/talentbridge/internal/models"
	"github.com/talentbridge/talentbridge/internal/services"
	"github.com/talentbridge/talentbridge/internal/utils"
)

type MatchHandler struct {
	svc services.MatchingService
}

func NewMatchHandler(svc services.MatchingService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

type MatchRunRequest struct {
	MinScore *float64 `json:"min_score,omitempty" binding:"omitempty,gte=0,lte=1"`
	Limit    *int     `json:"limit,omitempty"`
}

func (r MatchRunRequest) options() services.MatchOptions {
	return services.MatchOptions{MinScore: r.MinScore, Limit: r.Limit}
}

func (h *MatchHandler) MatchRequirement(c *gin.Context) {
	var req MatchRunRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.MatchRequirement", "invalid request body", err))
		return
	}

	res, err := h.svc.MatchRequirementToCandidates(c.Request.Context(), c.Param("requirement_id"), req.options())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MatchHandler) MatchCandidate(c *gin.Context) {
	var req MatchRunRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.MatchCandidate", "invalid request body", err))
		return
	}

	res, err := h.svc.MatchCandidateToRequirements(c.Request.Context(), c.Param("candidate_id"), req.options())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type BatchMatchRequest struct {
	MinScore *float64 `json:"min_score,omitempty" binding:"omitempty,gte=0,lte=1"`
}

func (h *MatchHandler) BatchMatch(c *gin.Context) {
	var req BatchMatchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.BatchMatch", "invalid request body", err))
		return
	}

	sum, err := h.svc.BatchMatchAll(c.Request.Context(), req.MinScore)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *MatchHandler) Recalculate(c *gin.Context) {
	res, err := h.svc.RecalculateRequirementMatches(c.Request.Context(), c.Param("requirement_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MatchHandler) Get(c *gin.Context) {
	view, err := h.svc.GetMatch(c.Request.Context(), c.Param("requirement_id"), c.Param("candidate_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *MatchHandler) ListByRequirement(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.svc.ListRequirementMatches(c.Request.Context(), c.Param("requirement_id"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MatchHandler) Prune(c *gin.Context) {
	below, err := strconv.ParseFloat(c.Query("below"), 64)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.Prune", "query parameter 'below' must be a number", err))
		return
	}

	deleted, err := h.svc.PruneRequirementMatches(c.Request.Context(), c.Param("requirement_id"), below)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

type OverrideRequest struct {
	Score float64 `json:"score" binding:"gte=0,lte=1"`
	Note  string  `json:"note"`
	SetBy string  `json:"set_by" binding:"required"`
}

func (h *MatchHandler) SetOverride(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.SetOverride", "invalid request body", err))
		return
	}

	view, err := h.svc.OverrideMatch(c.Request.Context(), c.Param("requirement_id"), c.Param("candidate_id"), req.Score, req.Note, req.SetBy)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *MatchHandler) ClearOverride(c *gin.Context) {
	view, err := h.svc.ClearMatchOverride(c.Request.Context(), c.Param("requirement_id"), c.Param("candidate_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *MatchHandler) GetWeights(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Weights(c.Request.Context()))
}

type UpdateWeightsRequest struct {
	Name         string  `json:"name"`
	Skill        float64 `json:"skill" binding:"gte=0"`
	Experience   float64 `json:"experience" binding:"gte=0"`
	Education    float64 `json:"education" binding:"gte=0"`
	Location     float64 `json:"location" binding:"gte=0"`
	Rate         float64 `json:"rate" binding:"gte=0"`
	Availability float64 `json:"availability" binding:"gte=0"`
	Culture      float64 `json:"culture" binding:"gte=0"`
}

func (h *MatchHandler) UpdateWeights(c *gin.Context) {
	var req UpdateWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MatchHandler.UpdateWeights", "invalid request body", err))
		return
	}

	updated, err := h.svc.UpdateWeights(c.Request.Context(), models.MatchWeights{
		Name:         req.Name,
		Skill:        req.Skill,
		Experience:   req.Experience,
		Education:    req.Education,
		Location:     req.Location,
		Rate:         req.Rate,
		Availability: req.Availability,
		Culture:      req.Culture,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// bindOptionalJSON accepts an empty body as all-defaults so match runs can be
// triggered without a payload.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}
