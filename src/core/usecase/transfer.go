package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/ports"
)

// TransferService applies single-player roster swaps.
type TransferService struct {
	teams   ports.FantasyTeamRepository
	players ports.PlayerRegistry
	log     *slog.Logger
}

func NewTransferService(teams ports.FantasyTeamRepository, players ports.PlayerRegistry, log *slog.Logger) *TransferService {
	return &TransferService{teams: teams, players: players, log: log}
}

// TransferResult is returned alongside the updated team so the caller can
// render the outcome without a second read.
type TransferResult struct {
	Team               *domain.FantasyTeam
	PointsDeducted     int
	TransfersRemaining int
}

// Transfer swaps playerOut for playerIn on the caller's team. All rule
// checks run before any write; the commit is a single atomic row update.
// playerInPrice is the price the UI quoted the caller and is deliberately
// not re-read from the registry here; only the canonical position is.
func (s *TransferService) Transfer(ctx context.Context, teamID, userID, playerOutID, playerInID string, playerInPrice float64) (*TransferResult, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.UserID != userID {
		return nil, domain.NewForbiddenError("team does not belong to caller")
	}

	outIdx := domain.FindPlayer(team.Players, playerOutID)
	if outIdx < 0 {
		return nil, domain.NewRuleViolationError([]string{
			fmt.Sprintf("player %s is not in the squad", playerOutID),
		})
	}
	if domain.FindPlayer(team.Players, playerInID) >= 0 {
		return nil, domain.NewRuleViolationError([]string{
			fmt.Sprintf("player %s is already in the squad", playerInID),
		})
	}

	registry, err := s.players.GetPlayer(ctx, playerInID)
	if err != nil {
		return nil, err
	}

	playerOut := team.Players[outIdx]
	playerIn := domain.FantasyPlayer{
		PlayerID: playerInID,
		Position: registry.Position,
		Price:    playerInPrice,
	}

	if res := domain.ValidateTransfer(playerOut, playerIn, team.BudgetRemaining); !res.Valid {
		return nil, domain.NewRuleViolationError(res.Errors)
	}

	priceDifference := playerIn.Price - playerOut.Price
	newBudgetRemaining := team.BudgetRemaining - priceDifference

	transfers := team.Transfers
	totalPoints := team.TotalPoints
	pointsDeducted := 0
	if transfers > 0 {
		transfers--
	} else {
		pointsDeducted = domain.TransferPenaltyPoints
		totalPoints -= pointsDeducted
	}

	captainID := team.CaptainID
	if playerOut.IsCaptain {
		playerIn.IsCaptain = true
		captainID = playerInID
	}

	// Replace at the same roster index so position slots keep their order.
	players := domain.ReplaceAt(team.Players, outIdx, playerIn)

	updated, err := s.teams.CommitTransfer(ctx, teamID, ports.RosterUpdate{
		Players:           players,
		CaptainID:         captainID,
		BudgetRemaining:   newBudgetRemaining,
		Transfers:         transfers,
		TotalPoints:       totalPoints,
		ExpectedUpdatedAt: team.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("transfer applied",
		"team_id", teamID,
		"player_out", playerOutID,
		"player_in", playerInID,
		"points_deducted", pointsDeducted,
		"transfers_remaining", updated.Transfers,
	)

	return &TransferResult{
		Team:               updated,
		PointsDeducted:     pointsDeducted,
		TransfersRemaining: updated.Transfers,
	}, nil
}
