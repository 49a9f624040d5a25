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
	"fantasyhub/src/infra/db"
)

// PlayerRegistryRepository reads the platform's player registry. The
// engine never writes these tables.
type PlayerRegistryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPlayerRegistryRepository(pg *db.Postgres, log *slog.Logger) *PlayerRegistryRepository {
	return &PlayerRegistryRepository{pool: pg.Pool, log: log}
}

const registryPlayerColumns = `player_id, name, photo, position, price, jersey_number, team_id, season_stats`

func (r *PlayerRegistryRepository) GetPlayer(ctx context.Context, playerID string) (*domain.RegistryPlayer, error) {
	q := `SELECT ` + registryPlayerColumns + ` FROM players WHERE player_id = $1`
	player, err := scanRegistryPlayer(r.pool.QueryRow(ctx, q, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("player")
		}
		return nil, err
	}
	return player, nil
}

func (r *PlayerRegistryRepository) GetPlayers(ctx context.Context, playerIDs []string) (map[string]domain.RegistryPlayer, error) {
	out := make(map[string]domain.RegistryPlayer, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}

	q := `SELECT ` + registryPlayerColumns + ` FROM players WHERE player_id = ANY($1)`
	rows, err := r.pool.Query(ctx, q, playerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		player, err := scanRegistryPlayer(rows)
		if err != nil {
			return nil, err
		}
		out[player.PlayerID] = *player
	}
	return out, rows.Err()
}

func scanRegistryPlayer(row pgx.Row) (*domain.RegistryPlayer, error) {
	var p domain.RegistryPlayer
	var stats []byte
	if err := row.Scan(&p.PlayerID, &p.Name, &p.Photo, &p.Position, &p.Price,
		&p.JerseyNumber, &p.TeamID, &stats); err != nil {
		return nil, err
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &p.SeasonStats); err != nil {
			return nil, fmt.Errorf("failed to decode season stats: %w", err)
		}
	}
	return &p, nil
}

// TeamRegistryRepository reads real-team display info.
type TeamRegistryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewTeamRegistryRepository(pg *db.Postgres, log *slog.Logger) *TeamRegistryRepository {
	return &TeamRegistryRepository{pool: pg.Pool, log: log}
}

func (r *TeamRegistryRepository) GetTeams(ctx context.Context, teamIDs []string) (map[string]domain.RegistryTeam, error) {
	out := make(map[string]domain.RegistryTeam, len(teamIDs))
	if len(teamIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT team_id, name, logo, color FROM teams WHERE team_id = ANY($1)`, teamIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.RegistryTeam
		if err := rows.Scan(&t.TeamID, &t.Name, &t.Logo, &t.Color); err != nil {
			return nil, err
		}
		out[t.TeamID] = t
	}
	return out, rows.Err()
}

// UserDirectoryRepository resolves platform users to display profiles.
type UserDirectoryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserDirectoryRepository(pg *db.Postgres, log *slog.Logger) *UserDirectoryRepository {
	return &UserDirectoryRepository{pool: pg.Pool, log: log}
}

func (r *UserDirectoryRepository) GetUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var u domain.UserProfile
	err := r.pool.QueryRow(ctx, `SELECT user_id, name, photo, school FROM users WHERE user_id = $1`, userID).
		Scan(&u.UserID, &u.Name, &u.Photo, &u.School)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserDirectoryRepository) GetUsers(ctx context.Context, userIDs []string) (map[string]domain.UserProfile, error) {
	out := make(map[string]domain.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT user_id, name, photo, school FROM users WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.UserProfile
		if err := rows.Scan(&u.UserID, &u.Name, &u.Photo, &u.School); err != nil {
			return nil, err
		}
		out[u.UserID] = u
	}
	return out, rows.Err()
}
