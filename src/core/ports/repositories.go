// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"
	"time"

	"fantasyhub/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// LeaderboardType selects which score field drives the ranking.
type LeaderboardType string

const (
	LeaderboardGlobal LeaderboardType = "global"
	LeaderboardWeekly LeaderboardType = "weekly"
)

// RosterUpdate is the full set of fields a transfer commits. It is written
// as one atomic row update; ExpectedUpdatedAt is the optimistic-concurrency
// token read with the team, and a mismatch must reject the write.
type RosterUpdate struct {
	Players           []domain.FantasyPlayer
	CaptainID         string
	BudgetRemaining   float64
	Transfers         int
	TotalPoints       int
	ExpectedUpdatedAt time.Time
}

// WildcardUpdate is the full squad replacement a wildcard commits, also as
// one atomic row update.
type WildcardUpdate struct {
	Formation         domain.Formation
	Players           []domain.FantasyPlayer
	CaptainID         string
	BudgetRemaining   float64
	Transfers         int
	ExpectedUpdatedAt time.Time
}

// FantasyTeamRepository is the persistence port for the FantasyTeam
// aggregate. Mutations happen only through the two commit methods.
type FantasyTeamRepository interface {
	Repository

	GetByID(ctx context.Context, teamID string) (*domain.FantasyTeam, error)
	GetByUserID(ctx context.Context, userID string) (*domain.FantasyTeam, error)

	// CommitTransfer applies a roster swap. Returns domain.ErrConflict if
	// the row changed since ExpectedUpdatedAt.
	CommitTransfer(ctx context.Context, teamID string, update RosterUpdate) (*domain.FantasyTeam, error)

	// CommitWildcard replaces the squad and irreversibly sets wildcardUsed.
	// Returns domain.ErrConflict on a concurrent update.
	CommitWildcard(ctx context.Context, teamID string, update WildcardUpdate) (*domain.FantasyTeam, error)

	// ListByPoints returns up to fetchLimit teams ordered descending by the
	// score field the leaderboard type selects.
	ListByPoints(ctx context.Context, lbType LeaderboardType, fetchLimit int) ([]domain.FantasyTeam, error)
}

// PlayerRegistry is the read-only external source of truth for real
// players. Batch lookups take at most domain.RegistryBatchLimit keys per
// call; missing keys are simply absent from the result.
type PlayerRegistry interface {
	GetPlayer(ctx context.Context, playerID string) (*domain.RegistryPlayer, error)
	GetPlayers(ctx context.Context, playerIDs []string) (map[string]domain.RegistryPlayer, error)
}

// TeamRegistry is the read-only external source for real-team display info.
type TeamRegistry interface {
	GetTeams(ctx context.Context, teamIDs []string) (map[string]domain.RegistryTeam, error)
}

// UserDirectory resolves platform users to display profiles. Batch lookups
// take at most domain.RegistryBatchLimit keys per call.
type UserDirectory interface {
	GetUser(ctx context.Context, userID string) (*domain.UserProfile, error)
	GetUsers(ctx context.Context, userIDs []string) (map[string]domain.UserProfile, error)
}
