package postgres

import (
	"time"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	Price     int64     `db:"price"`
	ClubID    string    `db:"club_id"`
	ClubName  string    `db:"club_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PublicID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		Price:    row.Price,
		ClubID:   row.ClubID,
		ClubName: row.ClubName,
	}
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"position",
	"price",
	"club_id",
	"club_name",
	"created_at",
	"updated_at",
}
