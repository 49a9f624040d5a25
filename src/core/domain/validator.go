package domain

import "fmt"

// ValidationResult is the outcome of a roster validation. An invalid result
// is data, not an error: it lists every violated rule so the caller can
// surface all of them at once.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

func validationResult(errs []string) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateFullSquad checks a complete proposed squad against the roster
// rules: size, uniqueness, budget, and formation fit. Used by the wildcard
// flow and by team creation. Pure; collects all violations.
func ValidateFullSquad(teamName string, players []FantasyPlayer, formation Formation, budget float64) ValidationResult {
	var errs []string

	if teamName == "" {
		errs = append(errs, "team name is required")
	}

	if len(players) != RosterSize {
		errs = append(errs, fmt.Sprintf("squad must have exactly %d players, got %d", RosterSize, len(players)))
	}

	seen := make(map[string]struct{}, len(players))
	positionCounter := make(map[Position]int)
	for _, p := range players {
		if p.PlayerID == "" {
			errs = append(errs, "player id is required for every squad entry")
			continue
		}
		if _, dup := seen[p.PlayerID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate player in squad: %s", p.PlayerID))
		}
		seen[p.PlayerID] = struct{}{}

		if _, ok := AllPositions[p.Position]; !ok {
			errs = append(errs, fmt.Sprintf("unknown position %q for player %s", p.Position, p.PlayerID))
			continue
		}
		positionCounter[p.Position]++
	}

	if cost := RosterCost(players); cost > budget {
		errs = append(errs, fmt.Sprintf("squad cost %.1f exceeds budget %.1f", cost, budget))
	}

	counts, err := formation.Counts()
	if err != nil {
		errs = append(errs, err.Error())
	} else if len(players) == RosterSize {
		for pos := range AllPositions {
			if got, want := positionCounter[pos], counts.RequiredFor(pos); got != want {
				errs = append(errs, fmt.Sprintf("formation %s requires %d %s players, got %d", formation, want, pos, got))
			}
		}
	}

	return validationResult(errs)
}

// ValidateTransfer checks a single proposed swap: the price delta must be
// affordable and the incoming player must fill the vacated position class,
// which keeps the squad formation-legal without re-validating all of it.
func ValidateTransfer(playerOut, playerIn FantasyPlayer, budgetRemaining float64) ValidationResult {
	var errs []string

	if diff := playerIn.Price - playerOut.Price; diff > budgetRemaining {
		errs = append(errs, fmt.Sprintf("insufficient budget: price difference %.1f exceeds remaining budget %.1f", diff, budgetRemaining))
	}

	if _, ok := AllPositions[playerIn.Position]; !ok {
		errs = append(errs, fmt.Sprintf("unknown position %q for player %s", playerIn.Position, playerIn.PlayerID))
	} else if playerIn.Position != playerOut.Position {
		errs = append(errs, fmt.Sprintf("position mismatch: %s plays %s, the vacated slot is %s", playerIn.PlayerID, playerIn.Position, playerOut.Position))
	}

	return validationResult(errs)
}
