package team

import (
	"fmt"
	"time"
)

// FantasyTeam is one user's squad shell. TotalPoints, GameweekPoints and
// Rank are written by the external scoring process; the roster engine only
// reads them.
type FantasyTeam struct {
	ID             string
	UserID         string
	Name           string
	BudgetCap      int64
	TotalPoints    int
	GameweekPoints int
	Rank           int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t FantasyTeam) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("team user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.BudgetCap <= 0 {
		return fmt.Errorf("team budget cap must be greater than zero")
	}

	return nil
}
