package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"fantasyhub/src/app/http/response"
	"fantasyhub/src/app/middleware"
	"fantasyhub/src/core/ports"
	"fantasyhub/src/core/usecase"
)

// LeaderboardHandler serves the ranked team listings.
type LeaderboardHandler struct {
	leaderboardService *usecase.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *usecase.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Leaderboard returns a ranked, paginated, searchable page of teams.
// GET /v1/fantasy/leaderboard?type=&page=&limit=&search=&user_id=
func (h *LeaderboardHandler) Leaderboard(c *gin.Context) {
	page, ok := parseIntQuery(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}

	result, err := h.leaderboardService.Leaderboard(c.Request.Context(), usecase.LeaderboardQuery{
		Type:   ports.LeaderboardType(c.Query("type")),
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		UserID: c.Query("user_id"),
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, result)
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+" parameter", middleware.GetRequestID(c))
		return 0, false
	}
	return v, true
}
