package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items []player.Player
	index map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := append([]player.Player(nil), players...)
	index := make(map[string]player.Player, len(items))
	for _, p := range items {
		index[p.ID] = p
	}

	return &PlayerRepository{
		items: items,
		index: index,
	}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	out = append(out, r.items...)

	return out, nil
}

func (r *PlayerRepository) UpdatePrices(_ context.Context, updates []player.PriceUpdate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := 0
	for _, u := range updates {
		p, ok := r.index[u.PlayerID]
		if !ok || p.Price == u.Price {
			continue
		}
		p.Price = u.Price
		r.index[u.PlayerID] = p
		for i := range r.items {
			if r.items[i].ID == u.PlayerID {
				r.items[i].Price = u.Price
				break
			}
		}
		applied++
	}

	return applied, nil
}
