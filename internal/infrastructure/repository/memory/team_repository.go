package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/roster-engine/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	index map[string]team.FantasyTeam
}

func NewTeamRepository(teams []team.FantasyTeam) *TeamRepository {
	index := make(map[string]team.FantasyTeam, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}

	return &TeamRepository{index: index}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.FantasyTeam, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.index[teamID]
	return t, ok, nil
}
