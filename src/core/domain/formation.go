package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Formation is a tag naming a positional layout as dash-separated slot
// counts in goalkeeper-defender-midfielder-forward order, e.g. "1-2-2-2".
type Formation string

// FormationCounts is the per-position slot requirement a roster must match.
type FormationCounts struct {
	Goalkeepers int
	Defenders   int
	Midfielders int
	Forwards    int
}

// Total returns the number of slots the formation declares.
func (c FormationCounts) Total() int {
	return c.Goalkeepers + c.Defenders + c.Midfielders + c.Forwards
}

// Counts parses the formation tag. A formation is legal when it has four
// non-negative counts, exactly one goalkeeper slot, and RosterSize slots
// in total.
func (f Formation) Counts() (FormationCounts, error) {
	parts := strings.Split(string(f), "-")
	if len(parts) != 4 {
		return FormationCounts{}, fmt.Errorf("formation %q must have four dash-separated counts", f)
	}
	nums := make([]int, 4)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return FormationCounts{}, fmt.Errorf("formation %q has invalid count %q", f, part)
		}
		nums[i] = n
	}
	counts := FormationCounts{
		Goalkeepers: nums[0],
		Defenders:   nums[1],
		Midfielders: nums[2],
		Forwards:    nums[3],
	}
	if counts.Goalkeepers != 1 {
		return FormationCounts{}, fmt.Errorf("formation %q must have exactly one goalkeeper", f)
	}
	if counts.Total() != RosterSize {
		return FormationCounts{}, fmt.Errorf("formation %q must total %d slots, has %d", f, RosterSize, counts.Total())
	}
	return counts, nil
}

// RequiredFor returns the slot count for a position class.
func (c FormationCounts) RequiredFor(pos Position) int {
	switch pos {
	case PositionGoalkeeper:
		return c.Goalkeepers
	case PositionDefender:
		return c.Defenders
	case PositionMidfielder:
		return c.Midfielders
	case PositionForward:
		return c.Forwards
	}
	return 0
}
