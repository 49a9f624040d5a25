package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/ports"
	"fantasyhub/src/infra/db"
)

const fantasyTeamColumns = `
	team_id, user_id, team_name, budget, budget_remaining, formation,
	players, captain_id, total_points, gameweek_points, transfers,
	wildcard_used, rank, weekly_rank, badges, created_at, updated_at
`

// FantasyTeamRepository implements ports.FantasyTeamRepository using pgx.
// The whole roster lives in one JSONB column so every mutation is a single
// atomic row update; updated_at doubles as the optimistic-concurrency
// token.
type FantasyTeamRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewFantasyTeamRepository constructs a repository backed by Postgres.
func NewFantasyTeamRepository(pg *db.Postgres, log *slog.Logger) *FantasyTeamRepository {
	return &FantasyTeamRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *FantasyTeamRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *FantasyTeamRepository) GetByID(ctx context.Context, teamID string) (*domain.FantasyTeam, error) {
	q := `SELECT ` + fantasyTeamColumns + ` FROM fantasy_teams WHERE team_id = $1`
	team, err := scanFantasyTeam(r.pool.QueryRow(ctx, q, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("team")
		}
		return nil, err
	}
	return team, nil
}

func (r *FantasyTeamRepository) GetByUserID(ctx context.Context, userID string) (*domain.FantasyTeam, error) {
	q := `SELECT ` + fantasyTeamColumns + ` FROM fantasy_teams WHERE user_id = $1`
	team, err := scanFantasyTeam(r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("team")
		}
		return nil, err
	}
	return team, nil
}

func (r *FantasyTeamRepository) CommitTransfer(ctx context.Context, teamID string, update ports.RosterUpdate) (*domain.FantasyTeam, error) {
	players, err := json.Marshal(update.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}

	q := `
		UPDATE fantasy_teams
		SET players = $2,
		    captain_id = $3,
		    budget_remaining = $4,
		    transfers = $5,
		    total_points = $6,
		    updated_at = now()
		WHERE team_id = $1 AND updated_at = $7
		RETURNING ` + fantasyTeamColumns
	team, err := scanFantasyTeam(r.pool.QueryRow(ctx, q, teamID, players,
		update.CaptainID, update.BudgetRemaining, update.Transfers,
		update.TotalPoints, update.ExpectedUpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.staleWriteError(ctx, teamID)
		}
		return nil, err
	}
	return team, nil
}

func (r *FantasyTeamRepository) CommitWildcard(ctx context.Context, teamID string, update ports.WildcardUpdate) (*domain.FantasyTeam, error) {
	players, err := json.Marshal(update.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}

	q := `
		UPDATE fantasy_teams
		SET formation = $2,
		    players = $3,
		    captain_id = $4,
		    budget_remaining = $5,
		    transfers = $6,
		    wildcard_used = TRUE,
		    updated_at = now()
		WHERE team_id = $1 AND updated_at = $7
		RETURNING ` + fantasyTeamColumns
	team, err := scanFantasyTeam(r.pool.QueryRow(ctx, q, teamID, update.Formation,
		players, update.CaptainID, update.BudgetRemaining, update.Transfers,
		update.ExpectedUpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.staleWriteError(ctx, teamID)
		}
		return nil, err
	}
	return team, nil
}

func (r *FantasyTeamRepository) ListByPoints(ctx context.Context, lbType ports.LeaderboardType, fetchLimit int) ([]domain.FantasyTeam, error) {
	orderBy := "total_points"
	if lbType == ports.LeaderboardWeekly {
		orderBy = "gameweek_points"
	}

	// Secondary ordering keeps tied scores in a stable order across
	// requests, which the positional rank assignment depends on.
	q := `SELECT ` + fantasyTeamColumns + `
		FROM fantasy_teams
		ORDER BY ` + orderBy + ` DESC, created_at ASC, team_id ASC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, q, fetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.FantasyTeam
	for rows.Next() {
		team, err := scanFantasyTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

// staleWriteError tells a lost optimistic-concurrency race apart from a
// team that never existed.
func (r *FantasyTeamRepository) staleWriteError(ctx context.Context, teamID string) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fantasy_teams WHERE team_id = $1)`, teamID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("team")
	}
	r.log.Warn("fantasy team write lost concurrency race", "team_id", teamID)
	return domain.NewConflictError("team was modified concurrently")
}

func scanFantasyTeam(row pgx.Row) (*domain.FantasyTeam, error) {
	var t domain.FantasyTeam
	var players, badges []byte
	if err := row.Scan(
		&t.ID, &t.UserID, &t.TeamName, &t.Budget, &t.BudgetRemaining, &t.Formation,
		&players, &t.CaptainID, &t.TotalPoints, &t.GameweekPoints, &t.Transfers,
		&t.WildcardUsed, &t.Rank, &t.WeeklyRank, &badges, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(players, &t.Players); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	if len(badges) > 0 {
		if err := json.Unmarshal(badges, &t.Badges); err != nil {
			return nil, fmt.Errorf("failed to decode badges: %w", err)
		}
	}
	return &t, nil
}
