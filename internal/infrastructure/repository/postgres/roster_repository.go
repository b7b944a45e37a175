package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	qb "github.com/riskibarqy/roster-engine/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Load(ctx context.Context, teamID string) ([]roster.Entry, bool, error) {
	query, args, err := qb.Select(rosterEntrySelectColumns...).
		From("roster_entries").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build load roster query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, false, fmt.Errorf("load roster: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	entries := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rosterEntryFromRow(row))
	}
	return entries, true, nil
}

// Commit replaces the team's roster in a single transaction so readers
// never observe a partially applied swap.
func (r *RosterRepository) Commit(ctx context.Context, teamID string, entries []roster.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster commit tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM roster_entries WHERE team_public_id = $1", teamID); err != nil {
		return fmt.Errorf("delete roster entries: %w", err)
	}

	for _, e := range entries {
		insertQuery, insertArgs, err := qb.InsertModel("roster_entries", rosterEntryToInsertModel(teamID, e), "")
		if err != nil {
			return fmt.Errorf("build insert roster query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert roster entry %s: %w", e.ID, err)
		}
	}

	touchQuery, touchArgs, err := qb.Update("fantasy_teams").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build touch team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
		return fmt.Errorf("touch team: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster tx: %w", err)
	}
	return nil
}
