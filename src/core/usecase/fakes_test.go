package usecase

import (
	"context"
	"sort"
	"time"

	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/ports"
)

// fakeTeamRepo is an in-memory FantasyTeamRepository. Commits honour the
// optimistic-concurrency token the way the Postgres adapter does.
type fakeTeamRepo struct {
	teams      map[string]*domain.FantasyTeam
	listResult []domain.FantasyTeam

	commitErr      error
	lastFetchLimit int
}

func newFakeTeamRepo(teams ...*domain.FantasyTeam) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[string]*domain.FantasyTeam)}
	for _, t := range teams {
		repo.teams[t.ID] = t
	}
	return repo
}

func (r *fakeTeamRepo) Health(context.Context) error { return nil }

func (r *fakeTeamRepo) GetByID(_ context.Context, teamID string) (*domain.FantasyTeam, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return nil, domain.NewNotFoundError("team")
	}
	return copyTeam(t), nil
}

func (r *fakeTeamRepo) GetByUserID(_ context.Context, userID string) (*domain.FantasyTeam, error) {
	for _, t := range r.teams {
		if t.UserID == userID {
			return copyTeam(t), nil
		}
	}
	return nil, domain.NewNotFoundError("team")
}

func (r *fakeTeamRepo) CommitTransfer(_ context.Context, teamID string, update ports.RosterUpdate) (*domain.FantasyTeam, error) {
	if r.commitErr != nil {
		return nil, r.commitErr
	}
	t, ok := r.teams[teamID]
	if !ok {
		return nil, domain.NewNotFoundError("team")
	}
	if !t.UpdatedAt.Equal(update.ExpectedUpdatedAt) {
		return nil, domain.NewConflictError("team was modified concurrently")
	}
	t.Players = update.Players
	t.CaptainID = update.CaptainID
	t.BudgetRemaining = update.BudgetRemaining
	t.Transfers = update.Transfers
	t.TotalPoints = update.TotalPoints
	t.UpdatedAt = t.UpdatedAt.Add(time.Second)
	return copyTeam(t), nil
}

func (r *fakeTeamRepo) CommitWildcard(_ context.Context, teamID string, update ports.WildcardUpdate) (*domain.FantasyTeam, error) {
	if r.commitErr != nil {
		return nil, r.commitErr
	}
	t, ok := r.teams[teamID]
	if !ok {
		return nil, domain.NewNotFoundError("team")
	}
	if !t.UpdatedAt.Equal(update.ExpectedUpdatedAt) {
		return nil, domain.NewConflictError("team was modified concurrently")
	}
	t.Formation = update.Formation
	t.Players = update.Players
	t.CaptainID = update.CaptainID
	t.BudgetRemaining = update.BudgetRemaining
	t.Transfers = update.Transfers
	t.WildcardUsed = true
	t.UpdatedAt = t.UpdatedAt.Add(time.Second)
	return copyTeam(t), nil
}

func (r *fakeTeamRepo) ListByPoints(_ context.Context, lbType ports.LeaderboardType, fetchLimit int) ([]domain.FantasyTeam, error) {
	r.lastFetchLimit = fetchLimit
	out := make([]domain.FantasyTeam, len(r.listResult))
	copy(out, r.listResult)
	sort.SliceStable(out, func(i, j int) bool {
		if lbType == ports.LeaderboardWeekly {
			return out[i].GameweekPoints > out[j].GameweekPoints
		}
		return out[i].TotalPoints > out[j].TotalPoints
	})
	if len(out) > fetchLimit {
		out = out[:fetchLimit]
	}
	return out, nil
}

func copyTeam(t *domain.FantasyTeam) *domain.FantasyTeam {
	c := *t
	c.Players = make([]domain.FantasyPlayer, len(t.Players))
	copy(c.Players, t.Players)
	return &c
}

// fakePlayerRegistry records batch sizes so tests can assert lookup counts.
type fakePlayerRegistry struct {
	players map[string]domain.RegistryPlayer
	batches [][]string
}

func (r *fakePlayerRegistry) GetPlayer(_ context.Context, playerID string) (*domain.RegistryPlayer, error) {
	p, ok := r.players[playerID]
	if !ok {
		return nil, domain.NewNotFoundError("player")
	}
	return &p, nil
}

func (r *fakePlayerRegistry) GetPlayers(_ context.Context, playerIDs []string) (map[string]domain.RegistryPlayer, error) {
	r.batches = append(r.batches, playerIDs)
	out := make(map[string]domain.RegistryPlayer)
	for _, id := range playerIDs {
		if p, ok := r.players[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeTeamRegistry struct {
	teams   map[string]domain.RegistryTeam
	batches [][]string
}

func (r *fakeTeamRegistry) GetTeams(_ context.Context, teamIDs []string) (map[string]domain.RegistryTeam, error) {
	r.batches = append(r.batches, teamIDs)
	out := make(map[string]domain.RegistryTeam)
	for _, id := range teamIDs {
		if t, ok := r.teams[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

type fakeUserDirectory struct {
	users       map[string]domain.UserProfile
	batches     [][]string
	singleCalls int
}

func (r *fakeUserDirectory) GetUser(_ context.Context, userID string) (*domain.UserProfile, error) {
	r.singleCalls++
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return &u, nil
}

func (r *fakeUserDirectory) GetUsers(_ context.Context, userIDs []string) (map[string]domain.UserProfile, error) {
	r.batches = append(r.batches, userIDs)
	out := make(map[string]domain.UserProfile)
	for _, id := range userIDs {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}
