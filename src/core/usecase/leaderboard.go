package usecase

import (
	"context"
	"log/slog"
	"strings"

	"fantasyhub/src/core/domain"
	"fantasyhub/src/core/ports"
)

// LeaderboardService produces the ranked, paginated, searchable view
// across all fantasy teams. Its reads are not transactional with respect
// to concurrent transfers; a team updated mid-request may rank with its
// old or new score.
type LeaderboardService struct {
	teams ports.FantasyTeamRepository
	users ports.UserDirectory
	log   *slog.Logger
}

func NewLeaderboardService(teams ports.FantasyTeamRepository, users ports.UserDirectory, log *slog.Logger) *LeaderboardService {
	return &LeaderboardService{teams: teams, users: users, log: log}
}

// LeaderboardQuery is a leaderboard page request.
type LeaderboardQuery struct {
	Type   ports.LeaderboardType
	Page   int
	Limit  int
	Search string
	UserID string
}

// LeaderboardEntry is one ranked row, enriched with manager display info.
type LeaderboardEntry struct {
	Rank           int              `json:"rank"`
	TeamID         string           `json:"team_id"`
	UserID         string           `json:"user_id"`
	TeamName       string           `json:"team_name"`
	ManagerName    string           `json:"manager_name"`
	ManagerPhoto   string           `json:"manager_photo,omitempty"`
	School         string           `json:"school,omitempty"`
	TotalPoints    int              `json:"total_points"`
	GameweekPoints int              `json:"gameweek_points"`
	Formation      domain.Formation `json:"formation"`
	Badges         []string         `json:"badges,omitempty"`
}

// Pagination describes the page window of a leaderboard response.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// LeaderboardPage is the full response: the requested page, the caller's
// own ranked team (even when outside the page), and pagination metadata.
type LeaderboardPage struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	UserTeam    *LeaderboardEntry  `json:"user_team"`
	Pagination  Pagination         `json:"pagination"`
}

// Leaderboard ranks teams by total or gameweek points.
//
// The fetch is capped at max(LeaderboardFetchFloor, page*limit) so an
// unbounded number of teams never drives an unbounded read; search filters
// within that window only. Rank is the 1-based position in the ordered
// list, except that a score equal to an earlier team's inherits that
// team's rank, so a run of ties is followed by a gap (1,1,1,4 — not
// 1,1,1,2). That shape is load-bearing for clients and must not be
// compressed.
func (s *LeaderboardService) Leaderboard(ctx context.Context, q LeaderboardQuery) (*LeaderboardPage, error) {
	q, err := normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	fetchLimit := domain.LeaderboardFetchFloor
	if window := q.Page * q.Limit; window > fetchLimit {
		fetchLimit = window
	}

	teams, err := s.teams.ListByPoints(ctx, q.Type, fetchLimit)
	if err != nil {
		return nil, err
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered := teams[:0]
		for _, t := range teams {
			if strings.Contains(strings.ToLower(t.TeamName), needle) {
				filtered = append(filtered, t)
			}
		}
		teams = filtered
	}

	ranked := assignRanks(teams, q.Type)

	total := len(ranked)
	totalPages := (total + q.Limit - 1) / q.Limit
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	page := ranked[start:end]

	profiles := s.resolvePageProfiles(ctx, page)
	for i := range page {
		applyProfile(&page[i], profiles)
	}

	var userTeam *LeaderboardEntry
	if q.UserID != "" {
		for i := range ranked {
			if ranked[i].UserID == q.UserID {
				entry := ranked[i]
				if _, ok := profiles[entry.UserID]; !ok {
					if profile, err := s.users.GetUser(ctx, entry.UserID); err == nil {
						profiles[entry.UserID] = *profile
					}
				}
				applyProfile(&entry, profiles)
				userTeam = &entry
				break
			}
		}
	}

	return &LeaderboardPage{
		Leaderboard: page,
		UserTeam:    userTeam,
		Pagination: Pagination{
			Page:            q.Page,
			Limit:           q.Limit,
			Total:           total,
			TotalPages:      totalPages,
			HasNextPage:     q.Page < totalPages,
			HasPreviousPage: q.Page > 1 && total > 0,
		},
	}, nil
}

func normalizeQuery(q LeaderboardQuery) (LeaderboardQuery, error) {
	switch q.Type {
	case "", ports.LeaderboardGlobal:
		q.Type = ports.LeaderboardGlobal
	case ports.LeaderboardWeekly:
	default:
		return q, domain.NewValidationError("type", "must be global or weekly")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = domain.LeaderboardDefaultLimit
	}
	if q.Limit > domain.LeaderboardMaxLimit {
		q.Limit = domain.LeaderboardMaxLimit
	}
	return q, nil
}

// assignRanks walks the descending list once. Equal scores inherit the
// earlier rank; the next distinct score takes its raw positional index.
func assignRanks(teams []domain.FantasyTeam, lbType ports.LeaderboardType) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(teams))
	prevScore := 0
	prevRank := 0
	for i, t := range teams {
		score := t.TotalPoints
		if lbType == ports.LeaderboardWeekly {
			score = t.GameweekPoints
		}
		rank := i + 1
		if i > 0 && score == prevScore {
			rank = prevRank
		}
		entries = append(entries, LeaderboardEntry{
			Rank:           rank,
			TeamID:         t.ID,
			UserID:         t.UserID,
			TeamName:       t.TeamName,
			TotalPoints:    t.TotalPoints,
			GameweekPoints: t.GameweekPoints,
			Formation:      t.Formation,
			Badges:         t.Badges,
		})
		prevScore = score
		prevRank = rank
	}
	return entries
}

// resolvePageProfiles enriches the page with one bounded directory lookup.
// The store's multi-key read limit caps the batch; user ids beyond the cap
// keep the fallback name rather than failing the request.
func (s *LeaderboardService) resolvePageProfiles(ctx context.Context, page []LeaderboardEntry) map[string]domain.UserProfile {
	ids := make([]string, 0, len(page))
	seen := make(map[string]struct{}, len(page))
	for _, e := range page {
		if _, ok := seen[e.UserID]; ok {
			continue
		}
		seen[e.UserID] = struct{}{}
		ids = append(ids, e.UserID)
	}
	if len(ids) > domain.RegistryBatchLimit {
		ids = ids[:domain.RegistryBatchLimit]
	}
	if len(ids) == 0 {
		return map[string]domain.UserProfile{}
	}

	profiles, err := s.users.GetUsers(ctx, ids)
	if err != nil {
		s.log.Warn("leaderboard profile lookup failed", "error", err)
		return map[string]domain.UserProfile{}
	}
	return profiles
}

func applyProfile(e *LeaderboardEntry, profiles map[string]domain.UserProfile) {
	profile, ok := profiles[e.UserID]
	if !ok {
		e.ManagerName = domain.FallbackUserName
		return
	}
	e.ManagerName = profile.Name
	e.ManagerPhoto = profile.Photo
	e.School = profile.School
}
