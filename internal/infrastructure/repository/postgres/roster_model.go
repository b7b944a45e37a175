package postgres

import (
	"time"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/domain/roster"
)

type rosterEntryTableModel struct {
	ID            int64     `db:"id"`
	EntryPublicID string    `db:"entry_public_id"`
	TeamPublicID  string    `db:"team_public_id"`
	PlayerID      string    `db:"player_public_id"`
	ClubID        string    `db:"club_id"`
	Position      string    `db:"position"`
	Price         int64     `db:"price"`
	Slot          int       `db:"slot"`
	IsStarter     bool      `db:"is_starter"`
	IsCaptain     bool      `db:"is_captain"`
	IsViceCaptain bool      `db:"is_vice_captain"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func rosterEntryFromRow(row rosterEntryTableModel) roster.Entry {
	return roster.Entry{
		ID:            row.EntryPublicID,
		PlayerID:      row.PlayerID,
		ClubID:        row.ClubID,
		Position:      player.Position(row.Position),
		Price:         row.Price,
		Slot:          row.Slot,
		IsStarter:     row.IsStarter,
		IsCaptain:     row.IsCaptain,
		IsViceCaptain: row.IsViceCaptain,
	}
}

var rosterEntrySelectColumns = []string{
	"id",
	"entry_public_id",
	"team_public_id",
	"player_public_id",
	"club_id",
	"position",
	"price",
	"slot",
	"is_starter",
	"is_captain",
	"is_vice_captain",
	"created_at",
	"updated_at",
}

type rosterEntryInsertModel struct {
	EntryPublicID string `db:"entry_public_id"`
	TeamPublicID  string `db:"team_public_id"`
	PlayerID      string `db:"player_public_id"`
	ClubID        string `db:"club_id"`
	Position      string `db:"position"`
	Price         int64  `db:"price"`
	Slot          int    `db:"slot"`
	IsStarter     bool   `db:"is_starter"`
	IsCaptain     bool   `db:"is_captain"`
	IsViceCaptain bool   `db:"is_vice_captain"`
}

func rosterEntryToInsertModel(teamID string, e roster.Entry) rosterEntryInsertModel {
	return rosterEntryInsertModel{
		EntryPublicID: e.ID,
		TeamPublicID:  teamID,
		PlayerID:      e.PlayerID,
		ClubID:        e.ClubID,
		Position:      string(e.Position),
		Price:         e.Price,
		Slot:          e.Slot,
		IsStarter:     e.IsStarter,
		IsCaptain:     e.IsCaptain,
		IsViceCaptain: e.IsViceCaptain,
	}
}
