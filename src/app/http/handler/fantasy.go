// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing and validating HTTP requests
// - Calling use case methods
// - Converting results to HTTP responses
package handler

import (
	"github.com/gin-gonic/gin"

	"fantasyhub/src/app/http/dto"
	"fantasyhub/src/app/http/response"
	"fantasyhub/src/app/middleware"
	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/usecase"
)

// FantasyHandler handles the mutating roster endpoints: transfers and the
// wildcard.
type FantasyHandler struct {
	transferService *usecase.TransferService
	wildcardService *usecase.WildcardService
}

func NewFantasyHandler(transferService *usecase.TransferService, wildcardService *usecase.WildcardService) *FantasyHandler {
	return &FantasyHandler{
		transferService: transferService,
		wildcardService: wildcardService,
	}
}

// Transfer applies a single-player swap to the caller's team.
// POST /v1/fantasy/teams/:team_id/transfers
func (h *FantasyHandler) Transfer(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	teamID := c.Param("team_id")

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid transfer payload: "+err.Error(), middleware.GetRequestID(c))
		return
	}

	res, err := h.transferService.Transfer(c.Request.Context(), teamID, userID,
		req.PlayerOutID, req.PlayerInID, req.PlayerInPrice)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, gin.H{
		"team":                teamJSON(res.Team),
		"points_deducted":     res.PointsDeducted,
		"transfers_remaining": res.TransfersRemaining,
	})
}

// Wildcard replaces the caller's entire squad, once per team, ever.
// POST /v1/fantasy/teams/:team_id/wildcard
func (h *FantasyHandler) Wildcard(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	teamID := c.Param("team_id")

	var req dto.WildcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid wildcard payload: "+err.Error(), middleware.GetRequestID(c))
		return
	}

	players := make([]usecase.WildcardPlayer, len(req.Players))
	for i, p := range req.Players {
		players[i] = usecase.WildcardPlayer{
			PlayerID:       p.PlayerID,
			Position:       domain.Position(p.Position),
			Price:          p.Price,
			Points:         p.Points,
			GameweekPoints: p.GameweekPoints,
		}
	}

	team, err := h.wildcardService.ApplyWildcard(c.Request.Context(), teamID, userID, usecase.WildcardInput{
		Formation: domain.Formation(req.Formation),
		Players:   players,
		CaptainID: req.CaptainID,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, gin.H{"team": teamJSON(team)})
}

// WildcardStatus reports whether the team's wildcard is still available.
// GET /v1/fantasy/teams/:team_id/wildcard
func (h *FantasyHandler) WildcardStatus(c *gin.Context) {
	status, err := h.wildcardService.Status(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, status)
}

// callerID reads the caller's identity from the X-User-Id header set by
// the platform's auth layer.
func callerID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-Id")
	if userID == "" {
		response.BadRequest(c, "missing X-User-Id header", middleware.GetRequestID(c))
		return "", false
	}
	return userID, true
}

func teamJSON(t *domain.FantasyTeam) gin.H {
	return gin.H{
		"id":               t.ID,
		"user_id":          t.UserID,
		"team_name":        t.TeamName,
		"budget":           t.Budget,
		"budget_remaining": t.BudgetRemaining,
		"formation":        t.Formation,
		"players":          t.Players,
		"captain_id":       t.CaptainID,
		"total_points":     t.TotalPoints,
		"gameweek_points":  t.GameweekPoints,
		"transfers":        t.Transfers,
		"wildcard_used":    t.WildcardUsed,
		"rank":             t.Rank,
		"weekly_rank":      t.WeeklyRank,
		"badges":           t.Badges,
		"created_at":       t.CreatedAt,
		"updated_at":       t.UpdatedAt,
	}
}
