package player

import "context"

// Repository describes catalog persistence needs from use cases. The catalog
// is read-only for the roster engine; UpdatePrices exists for the market feed
// sync job only.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	List(ctx context.Context) ([]Player, error)
	UpdatePrices(ctx context.Context, updates []PriceUpdate) (int, error)
}
