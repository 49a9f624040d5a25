package usecase

import (
	"context"
	"log/slog"
	"time"

	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/ports"
)

// TeamService is the read side of the engine: it joins a stored roster
// against the player and team registries to produce a display-ready team.
// It never mutates the aggregate.
type TeamService struct {
	teams   ports.FantasyTeamRepository
	players ports.PlayerRegistry
	clubs   ports.TeamRegistry
	log     *slog.Logger
}

func NewTeamService(teams ports.FantasyTeamRepository, players ports.PlayerRegistry, clubs ports.TeamRegistry, log *slog.Logger) *TeamService {
	return &TeamService{teams: teams, players: players, clubs: clubs, log: log}
}

// EnrichedPlayer decorates a roster entry with registry display info and
// the player's externally owned season stats. Price and Position remain
// the values frozen at acquisition time.
type EnrichedPlayer struct {
	PlayerID       string             `json:"player_id"`
	Name           string             `json:"name"`
	Photo          string             `json:"photo,omitempty"`
	Position       domain.Position    `json:"position"`
	Price          float64            `json:"price"`
	JerseyNumber   int                `json:"jersey_number,omitempty"`
	Points         int                `json:"points"`
	GameweekPoints int                `json:"gameweek_points"`
	IsCaptain      bool               `json:"is_captain"`
	TeamID         string             `json:"team_id,omitempty"`
	TeamName       string             `json:"team_name,omitempty"`
	TeamLogo       string             `json:"team_logo,omitempty"`
	TeamColor      string             `json:"team_color,omitempty"`
	SeasonStats    domain.SeasonStats `json:"season_stats"`
}

// EnrichedTeam is the display-ready view of a FantasyTeam.
type EnrichedTeam struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	TeamName        string           `json:"team_name"`
	Budget          float64          `json:"budget"`
	BudgetRemaining float64          `json:"budget_remaining"`
	Formation       domain.Formation `json:"formation"`
	Players         []EnrichedPlayer `json:"players"`
	CaptainID       string           `json:"captain_id"`
	TotalPoints     int              `json:"total_points"`
	GameweekPoints  int              `json:"gameweek_points"`
	Transfers       int              `json:"transfers"`
	WildcardUsed    bool             `json:"wildcard_used"`
	Rank            int              `json:"rank"`
	WeeklyRank      int              `json:"weekly_rank"`
	Badges          []string         `json:"badges,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// GetTeam loads the one team owned by userID and enriches its roster.
// Registry lookups are batched by key list, never issued per player; a
// 7-entry roster costs one player query and one team query.
func (s *TeamService) GetTeam(ctx context.Context, userID string) (*EnrichedTeam, error) {
	team, err := s.teams.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	playerIDs := make([]string, 0, len(team.Players))
	seen := make(map[string]struct{}, len(team.Players))
	for _, p := range team.Players {
		if _, ok := seen[p.PlayerID]; ok {
			continue
		}
		seen[p.PlayerID] = struct{}{}
		playerIDs = append(playerIDs, p.PlayerID)
	}

	registry := make(map[string]domain.RegistryPlayer, len(playerIDs))
	for _, batch := range chunkIDs(playerIDs, domain.RegistryBatchLimit) {
		found, err := s.players.GetPlayers(ctx, batch)
		if err != nil {
			return nil, err
		}
		for id, p := range found {
			registry[id] = p
		}
	}

	teamIDs := make([]string, 0, len(registry))
	seenTeams := make(map[string]struct{}, len(registry))
	for _, p := range team.Players {
		reg, ok := registry[p.PlayerID]
		if !ok || reg.TeamID == "" {
			continue
		}
		if _, ok := seenTeams[reg.TeamID]; ok {
			continue
		}
		seenTeams[reg.TeamID] = struct{}{}
		teamIDs = append(teamIDs, reg.TeamID)
	}

	clubs := make(map[string]domain.RegistryTeam, len(teamIDs))
	for _, batch := range chunkIDs(teamIDs, domain.RegistryBatchLimit) {
		found, err := s.clubs.GetTeams(ctx, batch)
		if err != nil {
			return nil, err
		}
		for id, t := range found {
			clubs[id] = t
		}
	}

	enriched := make([]EnrichedPlayer, len(team.Players))
	for i, p := range team.Players {
		e := EnrichedPlayer{
			PlayerID:       p.PlayerID,
			Name:           "Unknown Player",
			Position:       p.Position,
			Price:          p.Price,
			Points:         p.Points,
			GameweekPoints: p.GameweekPoints,
			IsCaptain:      p.IsCaptain,
		}
		if reg, ok := registry[p.PlayerID]; ok {
			e.Name = reg.Name
			e.Photo = reg.Photo
			e.JerseyNumber = reg.JerseyNumber
			e.TeamID = reg.TeamID
			e.SeasonStats = reg.SeasonStats
			if club, ok := clubs[reg.TeamID]; ok {
				e.TeamName = club.Name
				e.TeamLogo = club.Logo
				e.TeamColor = club.Color
			}
		}
		enriched[i] = e
	}

	return &EnrichedTeam{
		ID:              team.ID,
		UserID:          team.UserID,
		TeamName:        team.TeamName,
		Budget:          team.Budget,
		BudgetRemaining: team.BudgetRemaining,
		Formation:       team.Formation,
		Players:         enriched,
		CaptainID:       team.CaptainID,
		TotalPoints:     team.TotalPoints,
		GameweekPoints:  team.GameweekPoints,
		Transfers:       team.Transfers,
		WildcardUsed:    team.WildcardUsed,
		Rank:            team.Rank,
		WeeklyRank:      team.WeeklyRank,
		Badges:          team.Badges,
		CreatedAt:       team.CreatedAt,
		UpdatedAt:       team.UpdatedAt,
	}, nil
}

// chunkIDs splits ids into batches of at most size keys.
func chunkIDs(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	var batches [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
