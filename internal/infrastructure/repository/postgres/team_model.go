package postgres

import (
	"time"

	"github.com/riskibarqy/roster-engine/internal/domain/team"
)

type teamTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	UserID         string    `db:"user_id"`
	Name           string    `db:"name"`
	BudgetCap      int64     `db:"budget_cap"`
	TotalPoints    int       `db:"total_points"`
	GameweekPoints int       `db:"gameweek_points"`
	Rank           int       `db:"rank"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func teamFromRow(row teamTableModel) team.FantasyTeam {
	return team.FantasyTeam{
		ID:             row.PublicID,
		UserID:         row.UserID,
		Name:           row.Name,
		BudgetCap:      row.BudgetCap,
		TotalPoints:    row.TotalPoints,
		GameweekPoints: row.GameweekPoints,
		Rank:           row.Rank,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

var teamSelectColumns = []string{
	"id",
	"public_id",
	"user_id",
	"name",
	"budget_cap",
	"total_points",
	"gameweek_points",
	"rank",
	"created_at",
	"updated_at",
}
