package dto

// TransferRequest is the payload for a single-player roster swap.
// PlayerInPrice is the price the UI quoted the user; the engine resolves
// the player's position from the registry but takes the price as given.
type TransferRequest struct {
	PlayerOutID   string  `json:"player_out_id" binding:"required"`
	PlayerInID    string  `json:"player_in_id" binding:"required"`
	PlayerInPrice float64 `json:"player_in_price" binding:"required"`
}

// WildcardRequest is the payload for the one-time full squad rebuild.
type WildcardRequest struct {
	Formation string           `json:"formation" binding:"required"`
	Players   []WildcardPlayer `json:"players" binding:"required"`
	CaptainID string           `json:"captain_id" binding:"required"`
}

// WildcardPlayer is one proposed squad entry. Points fields are optional
// and default to zero when absent.
type WildcardPlayer struct {
	PlayerID       string  `json:"player_id" binding:"required"`
	Position       string  `json:"position" binding:"required"`
	Price          float64 `json:"price" binding:"required"`
	Points         *int    `json:"points"`
	GameweekPoints *int    `json:"gameweek_points"`
}
