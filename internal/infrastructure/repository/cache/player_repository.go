// Package cache decorates repositories with read-through caching. Writes go
// straight to the next layer and invalidate the affected keys.
package cache

import (
	"context"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	basecache "github.com/riskibarqy/roster-engine/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

// GetByIDs is used on the validation path, where a stale price would corrupt
// budget checks, so it always reads through to the next layer.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	return r.next.GetByIDs(ctx, playerIDs)
}

func (r *PlayerRepository) UpdatePrices(ctx context.Context, updates []player.PriceUpdate) (int, error) {
	applied, err := r.next.UpdatePrices(ctx, updates)
	if err != nil {
		return applied, err
	}
	if applied > 0 {
		r.cache.DeletePrefix(ctx, "player:")
	}

	return applied, nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}
