package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/roster-engine/internal/platform/logging"
)

type staticFeed struct {
	updates []player.PriceUpdate
	err     error
}

func (f staticFeed) FetchPrices(context.Context) ([]player.PriceUpdate, error) {
	return f.updates, f.err
}

func TestPriceSyncService_Run(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	feed := staticFeed{updates: []player.PriceUpdate{
		{PlayerID: "pl-fwd-01", Price: 120},
		{PlayerID: "pl-def-03", Price: 50}, // unchanged, not counted as applied
		{PlayerID: "pl-unknown", Price: 40},
		{PlayerID: "", Price: 10},
		{PlayerID: "pl-mid-03", Price: -5},
	}}

	svc := NewPriceSyncService(feed, repo, logging.NewNop(), 2)
	report, err := svc.Run(t.Context(), false)
	if err != nil {
		t.Fatalf("price sync failed: %v", err)
	}

	if report.Fetched != 5 {
		t.Fatalf("unexpected fetched count: %d", report.Fetched)
	}
	if report.Skipped != 2 {
		t.Fatalf("unexpected skipped count: %d", report.Skipped)
	}
	if report.Applied != 1 {
		t.Fatalf("unexpected applied count: %d", report.Applied)
	}

	p, exists, err := repo.GetByID(t.Context(), "pl-fwd-01")
	if err != nil || !exists {
		t.Fatalf("get updated player: exists=%v err=%v", exists, err)
	}
	if p.Price != 120 {
		t.Fatalf("price not applied: %d", p.Price)
	}
}

func TestPriceSyncService_DryRun(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	feed := staticFeed{updates: []player.PriceUpdate{{PlayerID: "pl-fwd-01", Price: 120}}}

	svc := NewPriceSyncService(feed, repo, logging.NewNop(), 2)
	report, err := svc.Run(t.Context(), true)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !report.DryRun || report.Applied != 0 {
		t.Fatalf("dry run applied changes: %+v", report)
	}

	p, _, _ := repo.GetByID(t.Context(), "pl-fwd-01")
	if p.Price != 115 {
		t.Fatalf("dry run mutated the catalog: %d", p.Price)
	}
}

func TestPriceSyncService_FeedFailure(t *testing.T) {
	repo := memory.NewPlayerRepository(memory.SeedPlayers())
	feed := staticFeed{err: errors.New("feed down")}

	svc := NewPriceSyncService(feed, repo, logging.NewNop(), 2)
	if _, err := svc.Run(t.Context(), false); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
