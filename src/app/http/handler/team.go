package handler

import (
	"github.com/gin-gonic/gin"

	"fantasyhub/src/app/http/response"
	"fantasyhub/src/app/middleware"
	"fantasyhub/src/core/usecase"
)

// TeamHandler serves the enriched read-side view of a fantasy team.
type TeamHandler struct {
	teamService *usecase.TeamService
}

func NewTeamHandler(teamService *usecase.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// MyTeam returns the caller's team with its roster joined against the
// player and team registries.
// GET /v1/fantasy/my-team
func (h *TeamHandler) MyTeam(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), userID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, team)
}
