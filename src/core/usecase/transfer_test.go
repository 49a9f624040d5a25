package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fantasyhub/src/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// specTeam mirrors the canonical scenario: budget 100, roster prices
// 20+15+15+10+10+10+10 = 90, so 10 remains, with both free transfers left.
func specTeam() *domain.FantasyTeam {
	return &domain.FantasyTeam{
		ID:              "team-1",
		UserID:          "user-1",
		TeamName:        "The Underdogs",
		Budget:          100,
		BudgetRemaining: 10,
		Formation:       "1-2-2-2",
		Players: []domain.FantasyPlayer{
			{PlayerID: "p1", Position: domain.PositionGoalkeeper, Price: 20, IsCaptain: true},
			{PlayerID: "p2", Position: domain.PositionDefender, Price: 15},
			{PlayerID: "p3", Position: domain.PositionDefender, Price: 15},
			{PlayerID: "p4", Position: domain.PositionMidfielder, Price: 10},
			{PlayerID: "p5", Position: domain.PositionMidfielder, Price: 10},
			{PlayerID: "p6", Position: domain.PositionForward, Price: 10},
			{PlayerID: "p7", Position: domain.PositionForward, Price: 10},
		},
		CaptainID:   "p1",
		TotalPoints: 42,
		Transfers:   2,
		CreatedAt:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func testRegistry() *fakePlayerRegistry {
	return &fakePlayerRegistry{players: map[string]domain.RegistryPlayer{
		"p8":  {PlayerID: "p8", Position: domain.PositionGoalkeeper, Price: 20},
		"p9":  {PlayerID: "p9", Position: domain.PositionForward, Price: 15},
		"p10": {PlayerID: "p10", Position: domain.PositionForward, Price: 15},
		"p11": {PlayerID: "p11", Position: domain.PositionMidfielder, Price: 10},
		"p12": {PlayerID: "p12", Position: domain.PositionDefender, Price: 30},
	}}
}

func TestTransferFreeTransfer(t *testing.T) {
	repo := newFakeTeamRepo(specTeam())
	svc := NewTransferService(repo, testRegistry(), testLogger())

	res, err := svc.Transfer(context.Background(), "team-1", "user-1", "p6", "p9", 15)
	require.NoError(t, err)

	assert.Equal(t, 0, res.PointsDeducted)
	assert.Equal(t, 1, res.TransfersRemaining)
	assert.Equal(t, 42, res.Team.TotalPoints)
	assert.InDelta(t, 5, res.Team.BudgetRemaining, 1e-9)

	// Incoming player lands at the vacated roster index.
	require.Len(t, res.Team.Players, domain.RosterSize)
	assert.Equal(t, "p9", res.Team.Players[5].PlayerID)
	assert.Equal(t, domain.PositionForward, res.Team.Players[5].Position)
	assert.InDelta(t, 15, res.Team.Players[5].Price, 1e-9)

	// Captaincy untouched when the outgoing player was not captain.
	assert.Equal(t, "p1", res.Team.CaptainID)
	assert.True(t, res.Team.Players[0].IsCaptain)
}

func TestTransferPenaltyWhenNoFreeTransfers(t *testing.T) {
	team := specTeam()
	team.Transfers = 0
	repo := newFakeTeamRepo(team)
	svc := NewTransferService(repo, testRegistry(), testLogger())

	res, err := svc.Transfer(context.Background(), "team-1", "user-1", "p6", "p9", 15)
	require.NoError(t, err)

	assert.Equal(t, domain.TransferPenaltyPoints, res.PointsDeducted)
	assert.Equal(t, 0, res.TransfersRemaining)
	assert.Equal(t, 42-domain.TransferPenaltyPoints, res.Team.TotalPoints)
}

func TestTransferEndToEndBudgetWalk(t *testing.T) {
	repo := newFakeTeamRepo(specTeam())
	svc := NewTransferService(repo, testRegistry(), testLogger())
	ctx := context.Background()

	// First transfer: 10 -> 15 is affordable (5 <= 10), consumes a free
	// transfer.
	res, err := svc.Transfer(ctx, "team-1", "user-1", "p6", "p9", 15)
	require.NoError(t, err)
	assert.InDelta(t, 5, res.Team.BudgetRemaining, 1e-9)
	assert.Equal(t, 1, res.TransfersRemaining)
	assert.Equal(t, 42, res.Team.TotalPoints)

	// Second transfer consumes the last free transfer.
	res, err = svc.Transfer(ctx, "team-1", "user-1", "p7", "p10", 15)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Team.BudgetRemaining, 1e-9)
	assert.Equal(t, 0, res.TransfersRemaining)
	assert.Equal(t, 42, res.Team.TotalPoints)

	// Third transfer costs 4 points regardless of the price delta.
	res, err = svc.Transfer(ctx, "team-1", "user-1", "p4", "p11", 10)
	require.NoError(t, err)
	assert.Equal(t, 4, res.PointsDeducted)
	assert.Equal(t, 0, res.TransfersRemaining)
	assert.Equal(t, 38, res.Team.TotalPoints)
}

func TestTransferCaptainContinuity(t *testing.T) {
	repo := newFakeTeamRepo(specTeam())
	svc := NewTransferService(repo, testRegistry(), testLogger())

	res, err := svc.Transfer(context.Background(), "team-1", "user-1", "p1", "p8", 20)
	require.NoError(t, err)

	assert.Equal(t, "p8", res.Team.CaptainID)
	assert.True(t, res.Team.Players[0].IsCaptain)
	captains := 0
	for _, p := range res.Team.Players {
		if p.IsCaptain {
			captains++
		}
	}
	assert.Equal(t, 1, captains)
}

func TestTransferRejections(t *testing.T) {
	tests := []struct {
		name   string
		teamID string
		userID string
		out    string
		in     string
		price  float64
		check  func(t *testing.T, err error)
	}{
		{
			name: "team not found", teamID: "missing", userID: "user-1", out: "p6", in: "p9", price: 15,
			check: func(t *testing.T, err error) { assert.True(t, domain.IsNotFound(err)) },
		},
		{
			name: "wrong owner", teamID: "team-1", userID: "intruder", out: "p6", in: "p9", price: 15,
			check: func(t *testing.T, err error) { assert.True(t, domain.IsForbidden(err)) },
		},
		{
			name: "outgoing player not in squad", teamID: "team-1", userID: "user-1", out: "p99", in: "p9", price: 15,
			check: func(t *testing.T, err error) {
				var rv *domain.RuleViolationError
				require.ErrorAs(t, err, &rv)
				assert.Contains(t, rv.Violations, "player p99 is not in the squad")
			},
		},
		{
			name: "incoming player already in squad", teamID: "team-1", userID: "user-1", out: "p6", in: "p7", price: 10,
			check: func(t *testing.T, err error) {
				var rv *domain.RuleViolationError
				require.ErrorAs(t, err, &rv)
				assert.Contains(t, rv.Violations, "player p7 is already in the squad")
			},
		},
		{
			name: "incoming player unknown to registry", teamID: "team-1", userID: "user-1", out: "p6", in: "ghost", price: 10,
			check: func(t *testing.T, err error) { assert.True(t, domain.IsNotFound(err)) },
		},
		{
			name: "unaffordable price delta", teamID: "team-1", userID: "user-1", out: "p2", in: "p12", price: 30,
			check: func(t *testing.T, err error) {
				var rv *domain.RuleViolationError
				require.ErrorAs(t, err, &rv)
				require.Len(t, rv.Violations, 1)
				assert.Contains(t, rv.Violations[0], "insufficient budget")
			},
		},
		{
			name: "position mismatch", teamID: "team-1", userID: "user-1", out: "p6", in: "p11", price: 10,
			check: func(t *testing.T, err error) {
				var rv *domain.RuleViolationError
				require.ErrorAs(t, err, &rv)
				require.Len(t, rv.Violations, 1)
				assert.Contains(t, rv.Violations[0], "position mismatch")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTeamRepo(specTeam())
			svc := NewTransferService(repo, testRegistry(), testLogger())

			_, err := svc.Transfer(context.Background(), tt.teamID, tt.userID, tt.out, tt.in, tt.price)
			require.Error(t, err)
			tt.check(t, err)

			// A rejected transfer never mutates the stored team.
			stored := repo.teams["team-1"]
			assert.InDelta(t, 10, stored.BudgetRemaining, 1e-9)
			assert.Equal(t, 2, stored.Transfers)
			assert.Equal(t, 42, stored.TotalPoints)
			assert.Equal(t, "p6", stored.Players[5].PlayerID)
		})
	}
}

func TestTransferConflictPropagates(t *testing.T) {
	repo := newFakeTeamRepo(specTeam())
	repo.commitErr = domain.NewConflictError("team was modified concurrently")
	svc := NewTransferService(repo, testRegistry(), testLogger())

	_, err := svc.Transfer(context.Background(), "team-1", "user-1", "p6", "p9", 15)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}
