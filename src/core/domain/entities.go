package domain

import "time"

// Position classifies a real player's role on the pitch.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// AllPositions is the set of recognised position classes.
var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// FantasyPlayer is a roster entry embedded in a FantasyTeam. Position and
// Price are frozen at acquisition time; later registry changes do not touch
// them. Points fields are owned by the external scoring process.
type FantasyPlayer struct {
	PlayerID       string   `json:"player_id"`
	Position       Position `json:"position"`
	Price          float64  `json:"price"`
	Points         int      `json:"points"`
	GameweekPoints int      `json:"gameweek_points"`
	IsCaptain      bool     `json:"is_captain"`
}

// FantasyTeam is the persisted aggregate, one per user. It is mutated only
// through the transfer and wildcard operations, each as a single atomic
// row update.
type FantasyTeam struct {
	ID              string
	UserID          string
	TeamName        string
	Budget          float64
	BudgetRemaining float64
	Formation       Formation
	Players         []FantasyPlayer
	CaptainID       string
	TotalPoints     int
	GameweekPoints  int
	Transfers       int
	WildcardUsed    bool
	Rank            int
	WeeklyRank      int
	Badges          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RosterCost sums the frozen prices of the roster.
func RosterCost(players []FantasyPlayer) float64 {
	var total float64
	for _, p := range players {
		total += p.Price
	}
	return total
}

// FindPlayer returns the roster index of playerID, or -1 if absent.
func FindPlayer(players []FantasyPlayer, playerID string) int {
	for i, p := range players {
		if p.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// ReplaceAt returns a copy of the roster with the entry at index i replaced.
// The stored roster order is what the UI renders by slot, so swaps must not
// reorder entries.
func ReplaceAt(players []FantasyPlayer, i int, in FantasyPlayer) []FantasyPlayer {
	out := make([]FantasyPlayer, len(players))
	copy(out, players)
	out[i] = in
	return out
}

// RegistryPlayer is the external registry's view of a real player.
// Read-only from this engine's perspective.
type RegistryPlayer struct {
	PlayerID     string
	Name         string
	Photo        string
	Position     Position
	Price        float64
	JerseyNumber int
	TeamID       string
	SeasonStats  SeasonStats
}

// SeasonStats carries a player's externally maintained cumulative stats.
type SeasonStats struct {
	Appearances int `json:"appearances"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	CleanSheets int `json:"clean_sheets"`
}

// RegistryTeam is the external registry's display info for a real team.
type RegistryTeam struct {
	TeamID string
	Name   string
	Logo   string
	Color  string
}

// UserProfile is the display info for a platform user.
type UserProfile struct {
	UserID string
	Name   string
	Photo  string
	School string
}
