package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/roster-engine/internal/domain/team"
	qb "github.com/riskibarqy/roster-engine/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.FantasyTeam, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).
		From("fantasy_teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return team.FantasyTeam{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.FantasyTeam{}, false, nil
		}
		return team.FantasyTeam{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}
