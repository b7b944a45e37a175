package roster

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
)

var (
	ErrDuplicatePlayer     = errors.New("duplicate player in roster")
	ErrPositionMismatch    = errors.New("player position does not match slot")
	ErrFormationOutOfRange = errors.New("formation out of allowed range")
	ErrBudgetExceeded      = errors.New("budget cap exceeded")
	ErrClubLimitExceeded   = errors.New("max players from same club exceeded")
	ErrCaptainRoleConflict = errors.New("captain role conflict")
)

// Range bounds the number of starters allowed for one outfield position.
type Range struct {
	Min int
	Max int
}

func (r Range) contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Rules stores roster validation parameters. BudgetCap is a default; the
// engine substitutes each team's own cap before validating.
type Rules struct {
	SquadSize       int
	StarterCount    int
	BudgetCap       int64
	MaxPerClub      int
	StartingKeepers int
	Defenders       Range
	Midfielders     Range
	Forwards        Range
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:       15,
		StarterCount:    11,
		BudgetCap:       1000,
		MaxPerClub:      3,
		StartingKeepers: 1,
		Defenders:       Range{Min: 3, Max: 5},
		Midfielders:     Range{Min: 3, Max: 5},
		Forwards:        Range{Min: 1, Max: 3},
	}
}

// Validate checks a candidate roster state against every invariant. It is
// pure: no side effects, no clock, no store access. Checks run in a fixed
// order so the first violation reported is deterministic: duplicates, then
// position match, then formation counts, then budget, then club limit, then
// role uniqueness. playersByID must resolve every entry's PlayerID.
func Validate(entries []Entry, playersByID map[string]player.Player, rules Rules) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.PlayerID == "" {
			return fmt.Errorf("roster entry %s has no player id", e.ID)
		}
		if _, exists := seen[e.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, e.PlayerID)
		}
		seen[e.PlayerID] = struct{}{}
	}

	for _, e := range entries {
		p, ok := playersByID[e.PlayerID]
		if !ok {
			return fmt.Errorf("player %s is missing from the catalog snapshot", e.PlayerID)
		}
		if p.Position != e.Position {
			return fmt.Errorf("%w: slot=%s player=%s is %s", ErrPositionMismatch, e.Position, e.PlayerID, p.Position)
		}
	}

	if err := validateFormation(entries, rules); err != nil {
		return err
	}

	var totalCost int64
	for _, e := range entries {
		totalCost += e.Price
	}
	if totalCost > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrBudgetExceeded, rules.BudgetCap, totalCost)
	}

	if rules.MaxPerClub > 0 {
		clubCounter := make(map[string]int, len(entries))
		for _, e := range entries {
			clubCounter[e.ClubID]++
			if clubCounter[e.ClubID] > rules.MaxPerClub {
				return fmt.Errorf("%w: club=%s max=%d", ErrClubLimitExceeded, e.ClubID, rules.MaxPerClub)
			}
		}
	}

	return validateRoles(entries)
}

func validateFormation(entries []Entry, rules Rules) error {
	if len(entries) != rules.SquadSize {
		return fmt.Errorf("%w: expected %d rostered players, got %d", ErrFormationOutOfRange, rules.SquadSize, len(entries))
	}

	starters := 0
	counts := make(map[player.Position]int, len(player.AllPositions))
	for _, e := range entries {
		if !e.IsStarter {
			continue
		}
		starters++
		counts[e.Position]++
	}

	if starters != rules.StarterCount {
		return fmt.Errorf("%w: expected %d starters, got %d", ErrFormationOutOfRange, rules.StarterCount, starters)
	}
	if counts[player.PositionGoalkeeper] != rules.StartingKeepers {
		return fmt.Errorf("%w: expected exactly %d starting goalkeeper(s), got %d", ErrFormationOutOfRange, rules.StartingKeepers, counts[player.PositionGoalkeeper])
	}
	if !rules.Defenders.contains(counts[player.PositionDefender]) {
		return fmt.Errorf("%w: defenders=%d allowed=[%d,%d]", ErrFormationOutOfRange, counts[player.PositionDefender], rules.Defenders.Min, rules.Defenders.Max)
	}
	if !rules.Midfielders.contains(counts[player.PositionMidfielder]) {
		return fmt.Errorf("%w: midfielders=%d allowed=[%d,%d]", ErrFormationOutOfRange, counts[player.PositionMidfielder], rules.Midfielders.Min, rules.Midfielders.Max)
	}
	if !rules.Forwards.contains(counts[player.PositionForward]) {
		return fmt.Errorf("%w: forwards=%d allowed=[%d,%d]", ErrFormationOutOfRange, counts[player.PositionForward], rules.Forwards.Min, rules.Forwards.Max)
	}

	return nil
}

func validateRoles(entries []Entry) error {
	captains := 0
	vices := 0
	for _, e := range entries {
		if e.IsCaptain && e.IsViceCaptain {
			return fmt.Errorf("%w: entry %s holds both roles", ErrCaptainRoleConflict, e.ID)
		}
		if e.IsCaptain {
			captains++
			if !e.IsStarter {
				return fmt.Errorf("%w: captain must be a starter", ErrCaptainRoleConflict)
			}
		}
		if e.IsViceCaptain {
			vices++
			if !e.IsStarter {
				return fmt.Errorf("%w: vice-captain must be a starter", ErrCaptainRoleConflict)
			}
		}
	}

	if captains != 1 {
		return fmt.Errorf("%w: expected exactly one captain, got %d", ErrCaptainRoleConflict, captains)
	}
	if vices != 1 {
		return fmt.Errorf("%w: expected exactly one vice-captain, got %d", ErrCaptainRoleConflict, vices)
	}

	return nil
}
