package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/platform/logging"
)

const (
	priceSyncBatchSize       = 50
	priceSyncDefaultPoolSize = 4
)

// PriceFeed is the external market data source. Implementations decide how
// pages, retries and circuit breaking work; the service only sees the merged
// update list.
type PriceFeed interface {
	FetchPrices(ctx context.Context) ([]player.PriceUpdate, error)
}

type PriceSyncReport struct {
	Fetched  int
	Applied  int
	Skipped  int
	Batches  int
	DryRun   bool
	Duration time.Duration
}

// PriceSyncService pulls current market prices from the feed and applies
// them to the catalog in parallel batches. Roster entry prices are frozen at
// purchase time, so a sync never rewrites existing rosters.
type PriceSyncService struct {
	feed       PriceFeed
	playerRepo player.Repository
	logger     *logging.Logger
	poolSize   int
	now        func() time.Time
}

func NewPriceSyncService(feed PriceFeed, playerRepo player.Repository, logger *logging.Logger, poolSize int) *PriceSyncService {
	if poolSize <= 0 {
		poolSize = priceSyncDefaultPoolSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &PriceSyncService{
		feed:       feed,
		playerRepo: playerRepo,
		logger:     logger,
		poolSize:   poolSize,
		now:        time.Now,
	}
}

func (s *PriceSyncService) Run(ctx context.Context, dryRun bool) (PriceSyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PriceSyncService.Run")
	defer span.End()

	started := s.now()

	updates, err := s.feed.FetchPrices(ctx)
	if err != nil {
		return PriceSyncReport{}, fmt.Errorf("%w: fetch prices: %v", ErrDependencyUnavailable, err)
	}

	valid := make([]player.PriceUpdate, 0, len(updates))
	skipped := 0
	for _, u := range updates {
		if u.PlayerID == "" || u.Price < 0 {
			skipped++
			continue
		}
		valid = append(valid, u)
	}

	batches := splitUpdates(valid, priceSyncBatchSize)
	report := PriceSyncReport{
		Fetched: len(updates),
		Skipped: skipped,
		Batches: len(batches),
		DryRun:  dryRun,
	}

	if dryRun || len(batches) == 0 {
		report.Duration = s.now().Sub(started)
		return report, nil
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return PriceSyncReport{}, fmt.Errorf("create price sync pool: %w", err)
	}
	defer pool.Release()

	var applied atomic.Int64
	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for _, batch := range batches {
		batch := batch
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			n, err := s.playerRepo.UpdatePrices(ctx, batch)
			if err != nil {
				fail(err)
				return
			}
			applied.Add(int64(n))
		}); err != nil {
			wg.Done()
			fail(err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return PriceSyncReport{}, fmt.Errorf("%w: apply price batch: %v", ErrPersistence, firstErr)
	}

	report.Applied = int(applied.Load())
	report.Duration = s.now().Sub(started)

	s.logger.InfoContext(ctx, "price sync finished",
		"fetched", report.Fetched,
		"applied", report.Applied,
		"skipped", report.Skipped,
		"batches", report.Batches,
		"duration", report.Duration.String(),
	)

	return report, nil
}

func splitUpdates(updates []player.PriceUpdate, size int) [][]player.PriceUpdate {
	if size <= 0 || len(updates) == 0 {
		if len(updates) == 0 {
			return nil
		}
		return [][]player.PriceUpdate{updates}
	}

	out := make([][]player.PriceUpdate, 0, (len(updates)+size-1)/size)
	for start := 0; start < len(updates); start += size {
		end := start + size
		if end > len(updates) {
			end = len(updates)
		}
		out = append(out, updates[start:end])
	}

	return out
}
