package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/ports"
)

func lbTeam(n int, total, weekly int) domain.FantasyTeam {
	return domain.FantasyTeam{
		ID:             fmt.Sprintf("team-%d", n),
		UserID:         fmt.Sprintf("user-%d", n),
		TeamName:       fmt.Sprintf("Squad %d", n),
		TotalPoints:    total,
		GameweekPoints: weekly,
		Formation:      "1-2-2-2",
	}
}

func newLeaderboardService(teams []domain.FantasyTeam, users map[string]domain.UserProfile) (*LeaderboardService, *fakeTeamRepo, *fakeUserDirectory) {
	repo := newFakeTeamRepo()
	repo.listResult = teams
	if users == nil {
		users = map[string]domain.UserProfile{}
	}
	dir := &fakeUserDirectory{users: users}
	return NewLeaderboardService(repo, dir, testLogger()), repo, dir
}

func TestLeaderboardTieRanksHaveGaps(t *testing.T) {
	svc, _, _ := newLeaderboardService([]domain.FantasyTeam{
		lbTeam(1, 50, 0),
		lbTeam(2, 50, 0),
		lbTeam(3, 50, 0),
		lbTeam(4, 30, 0),
	}, nil)

	page, err := svc.Leaderboard(context.Background(), LeaderboardQuery{Type: ports.LeaderboardGlobal})
	require.NoError(t, err)

	ranks := make([]int, len(page.Leaderboard))
	for i, e := range page.Leaderboard {
		ranks[i] = e.Rank
	}
	// Ties share the lower rank number and the next distinct score takes
	// its raw position, leaving a gap.
	assert.Equal(t, []int{1, 1, 1, 4}, ranks)
}

func TestLeaderboardWeeklyUsesGameweekPoints(t *testing.T) {
	svc, _, _ := newLeaderboardService([]domain.FantasyTeam{
		lbTeam(1, 100, 2),
		lbTeam(2, 10, 9),
		lbTeam(3, 50, 5),
	}, nil)

	page, err := svc.Leaderboard(context.Background(), LeaderboardQuery{Type: ports.LeaderboardWeekly})
	require.NoError(t, err)

	require.Len(t, page.Leaderboard, 3)
	assert.Equal(t, "team-2", page.Leaderboard[0].TeamID)
	assert.Equal(t, "team-3", page.Leaderboard[1].TeamID)
	assert.Equal(t, "team-1", page.Leaderboard[2].TeamID)
}

func TestLeaderboardPagination(t *testing.T) {
	teams := make([]domain.FantasyTeam, 0, 25)
	for i := 1; i <= 25; i++ {
		teams = append(teams, lbTeam(i, 1000-i, 0))
	}
	svc, _, _ := newLeaderboardService(teams, nil)

	page, err := svc.Leaderboard(context.Background(), LeaderboardQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	// Page 2 holds zero-based offsets 10..19 of the ranked list.
	require.Len(t, page.Leaderboard, 10)
	assert.Equal(t, "team-11", page.Leaderboard[0].TeamID)
	assert.Equal(t, 11, page.Leaderboard[0].Rank)
	assert.Equal(t, "team-20", page.Leaderboard[9].TeamID)

	assert.Equal(t, Pagination{
		Page:            2,
		Limit:           10,
		Total:           25,
		TotalPages:      3,
		HasNextPage:     true,
		HasPreviousPage: true,
	}, page.Pagination)

	// Last page is a partial window.
	page, err = svc.Leaderboard(context.Background(), LeaderboardQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Leaderboard, 5)
	assert.False(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPreviousPage)
}

func TestLeaderboardSearchFiltersFetchedWindow(t *testing.T) {
	svc, _, _ := newLeaderboardService([]domain.FantasyTeam{
		{ID: "t1", UserID: "u1", TeamName: "Red Rockets", TotalPoints: 90},
		{ID: "t2", UserID: "u2", TeamName: "Blue Bombers", TotalPoints: 80},
		{ID: "t3", UserID: "u3", TeamName: "rocket science", TotalPoints: 70},
	}, nil)

	page, err := svc.Leaderboard(context.Background(), LeaderboardQuery{Search: "ROCKET"})
	require.NoError(t, err)

	require.Len(t, page.Leaderboard, 2)
	assert.Equal(t, "t1", page.Leaderboard[0].TeamID)
	assert.Equal(t, 1, page.Leaderboard[0].Rank)
	assert.Equal(t, "t3", page.Leaderboard[1].TeamID)
	assert.Equal(t, 2, page.Leaderboard[1].Rank)
	assert.Equal(t, 2, page.Pagination.Total)
}

func TestLeaderboardUserTeamOutsidePage(t *testing.T) {
	teams := make([]domain.FantasyTeam, 0, 20)
	for i := 1; i <= 20; i++ {
		teams = append(teams, lbTeam(i, 1000-i, 0))
	}
	users := map[string]domain.UserProfile{
		"user-15": {UserID: "user-15", Name: "Dana", School: "Northside High"},
	}
	svc, _, dir := newLeaderboardService(teams, users)

	page, err := svc.Leaderboard(context.Background(), LeaderboardQuery{Page: 1, Limit: 10, UserID: "user-15"})
	require.NoError(t, err)

	require.NotNil(t, page.UserTeam)
	assert.Equal(t, 15, page.UserTeam.Rank)
	assert.Equal(t, "Squad 15", page.UserTeam.TeamName)
	assert.Equal(t, "Dana", page.UserTeam.ManagerName)

	// Off-page profile costs exactly one extra single-key lookup.
	assert.Equal(t, 1, dir.singleCalls)
}

func TestLeaderboardUserTeamAbsent(t *testing.T) {
	svc, _, _ := newLeaderboardService([]domain.FantasyTeam{lbTeam(1, 10, 0)}, nil)

	page, err := svc.Leaderboard(context.Background(), LeaderboardQuery{UserID: "nobody"})
	require.NoError(t, err)
	assert.Nil(t, page.UserTeam)
}

func TestLeaderboardProfileBatchCap(t *testing.T) {
	teams := make([]domain.FantasyTeam, 0, 15)
	users := make(map[string]domain.UserProfile, 15)
	for i := 1; i <= 15; i++ {
		teams = append(teams, lbTeam(i, 1000-i, 0))
		users[fmt.Sprintf("user-%d", i)] = domain.UserProfile{
			UserID: fmt.Sprintf("user-%d", i),
			Name:   fmt.Sprintf("Manager %d", i),
		}
	}
	svc, _, dir := newLeaderboardService(teams, users)

	page, err := svc.Leaderboard(context.Background(), LeaderboardQuery{Page: 1, Limit: 15})
	require.NoError(t, err)

	// One batch lookup, capped at the store's multi-key read limit.
	require.Len(t, dir.batches, 1)
	assert.Len(t, dir.batches[0], domain.RegistryBatchLimit)

	require.Len(t, page.Leaderboard, 15)
	assert.Equal(t, "Manager 1", page.Leaderboard[0].ManagerName)
	assert.Equal(t, "Manager 10", page.Leaderboard[9].ManagerName)
	// Entries beyond the cap degrade to the fallback name, not a failure.
	assert.Equal(t, domain.FallbackUserName, page.Leaderboard[10].ManagerName)
	assert.Equal(t, domain.FallbackUserName, page.Leaderboard[14].ManagerName)
}

func TestLeaderboardFetchWindow(t *testing.T) {
	svc, repo, _ := newLeaderboardService(nil, nil)
	ctx := context.Background()

	_, err := svc.Leaderboard(ctx, LeaderboardQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaderboardFetchFloor, repo.lastFetchLimit)

	_, err = svc.Leaderboard(ctx, LeaderboardQuery{Page: 20, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 2000, repo.lastFetchLimit)
}

func TestLeaderboardQueryNormalization(t *testing.T) {
	svc, _, _ := newLeaderboardService(nil, nil)
	ctx := context.Background()

	_, err := svc.Leaderboard(ctx, LeaderboardQuery{Type: "alltime"})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	page, err := svc.Leaderboard(ctx, LeaderboardQuery{Page: -3, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, domain.LeaderboardMaxLimit, page.Pagination.Limit)
}
