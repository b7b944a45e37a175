package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/roster-engine/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	entries map[string][]roster.Entry
}

func NewRosterRepository(entriesByTeam map[string][]roster.Entry) *RosterRepository {
	entries := make(map[string][]roster.Entry, len(entriesByTeam))
	for teamID, items := range entriesByTeam {
		entries[teamID] = roster.CloneEntries(items)
	}

	return &RosterRepository{entries: entries}
}

func (r *RosterRepository) Load(_ context.Context, teamID string) ([]roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items, ok := r.entries[teamID]
	if !ok {
		return nil, false, nil
	}

	return roster.CloneEntries(items), true, nil
}

func (r *RosterRepository) Commit(_ context.Context, teamID string, entries []roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[teamID] = roster.CloneEntries(entries)

	return nil
}
