package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/talentbridge/talentbridge/internal/api/handlers"
)

type Deps struct {
	Match *handlers.MatchHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/match/requirement/:requirement_id", d.Match.MatchRequirement)
	r.POST("/match/requirement/:requirement_id/recalculate", d.Match.Recalculate)
	r.POST("/match/candidate/:candidate_id", d.Match.MatchCandidate)
	r.POST("/match/batch", d.Match.BatchMatch)

	r.GET("/match/requirement/:requirement_id/records", d.Match.ListByRequirement)
	r.DELETE("/match/requirement/:requirement_id/records", d.Match.Prune)
	r.GET("/match/record/:requirement_id/:candidate_id", d.Match.Get)

	r.POST("/match/record/:requirement_id/:candidate_id/override", d.Match.SetOverride)
	r.DELETE("/match/record/:requirement_id/:candidate_id/override", d.Match.ClearOverride)

	r.GET("/match/weights", d.Match.GetWeights)
	r.PUT("/match/weights", d.Match.UpdateWeights)
}
