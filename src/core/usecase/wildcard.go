package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/ports"
)

// WildcardService performs the one-time full squad rebuild.
type WildcardService struct {
	teams ports.FantasyTeamRepository
	log   *slog.Logger
}

func NewWildcardService(teams ports.FantasyTeamRepository, log *slog.Logger) *WildcardService {
	return &WildcardService{teams: teams, log: log}
}

// WildcardPlayer is one proposed squad entry. Points fields are optional;
// absent values normalize to zero.
type WildcardPlayer struct {
	PlayerID       string
	Position       domain.Position
	Price          float64
	Points         *int
	GameweekPoints *int
}

// WildcardInput is the full replacement squad.
type WildcardInput struct {
	Formation domain.Formation
	Players   []WildcardPlayer
	CaptainID string
}

// WildcardStatus reports whether a team can still play its wildcard.
type WildcardStatus struct {
	WildcardAvailable bool `json:"wildcard_available"`
	WildcardUsed      bool `json:"wildcard_used"`
}

// ApplyWildcard replaces the entire squad, marks the wildcard consumed, and
// refills the free-transfer allowance, all in one atomic row update. The
// wildcardUsed transition is irreversible; a second call always fails.
func (s *WildcardService) ApplyWildcard(ctx context.Context, teamID, userID string, in WildcardInput) (*domain.FantasyTeam, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.UserID != userID {
		return nil, domain.NewForbiddenError("team does not belong to caller")
	}
	if team.WildcardUsed {
		return nil, domain.ErrWildcardUsed
	}

	players := make([]domain.FantasyPlayer, len(in.Players))
	for i, p := range in.Players {
		players[i] = domain.FantasyPlayer{
			PlayerID:       p.PlayerID,
			Position:       p.Position,
			Price:          p.Price,
			Points:         valueOrZero(p.Points),
			GameweekPoints: valueOrZero(p.GameweekPoints),
			IsCaptain:      p.PlayerID == in.CaptainID,
		}
	}

	if res := domain.ValidateFullSquad(team.TeamName, players, in.Formation, team.Budget); !res.Valid {
		return nil, domain.NewRuleViolationError(res.Errors)
	}
	if domain.FindPlayer(players, in.CaptainID) < 0 {
		return nil, domain.NewRuleViolationError([]string{
			fmt.Sprintf("captain %s is not in the squad", in.CaptainID),
		})
	}

	budgetRemaining := team.Budget - domain.RosterCost(players)

	updated, err := s.teams.CommitWildcard(ctx, teamID, ports.WildcardUpdate{
		Formation:         in.Formation,
		Players:           players,
		CaptainID:         in.CaptainID,
		BudgetRemaining:   budgetRemaining,
		Transfers:         domain.FreeTransferAllowance,
		ExpectedUpdatedAt: team.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("wildcard applied",
		"team_id", teamID,
		"formation", in.Formation,
		"budget_remaining", budgetRemaining,
	)
	return updated, nil
}

// Status exposes the wildcard boolean without mutation.
func (s *WildcardService) Status(ctx context.Context, teamID string) (*WildcardStatus, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &WildcardStatus{
		WildcardAvailable: !team.WildcardUsed,
		WildcardUsed:      team.WildcardUsed,
	}, nil
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
