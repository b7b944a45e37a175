package player

import "fmt"

// Position represents football position categories used in roster rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is one draftable athlete in the catalog. The catalog owns players;
// roster entries only reference them by ID. Price is expressed in tenths of
// a million, so 55 means 5.5M.
type Player struct {
	ID       string
	Name     string
	Position Position
	Price    int64
	ClubID   string
	ClubName string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Price < 0 {
		return fmt.Errorf("player price cannot be negative")
	}
	if p.ClubID == "" {
		return fmt.Errorf("player club id is required")
	}

	return nil
}

// PriceUpdate carries one price change from the external market feed.
type PriceUpdate struct {
	PlayerID string
	Price    int64
}
