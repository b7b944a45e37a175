package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/roster-engine/external/pricefeed"
	"github.com/riskibarqy/roster-engine/internal/config"
	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/domain/team"
	cacherepo "github.com/riskibarqy/roster-engine/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/roster-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/roster-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/roster-engine/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/roster-engine/internal/platform/cache"
	"github.com/riskibarqy/roster-engine/internal/platform/logging"
	"github.com/riskibarqy/roster-engine/internal/platform/resilience"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router. With an
// empty DB_URL the service runs on the seeded in-memory repositories.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		teamRepo   team.Repository
		playerRepo player.Repository
		rosterRepo roster.Repository
		closeDB    func() error
	)

	if cfg.DBURL == "" {
		logger.Info("storage backend", "driver", "memory")
		teamRepo = memory.NewTeamRepository(memory.SeedTeams())
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		rosterRepo = memory.NewRosterRepository(memory.SeedRosters())
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		logger.Info("storage backend", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))
		teamRepo = postgres.NewTeamRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		rosterRepo = postgres.NewRosterRepository(db)
		closeDB = db.Close
	}

	if cfg.CacheEnabled {
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, basecache.NewStore(cfg.CacheTTL))
	}

	rules := roster.DefaultRules()
	rules.SquadSize = cfg.SquadSize
	rules.StarterCount = cfg.StarterCount
	rules.BudgetCap = cfg.BudgetCap
	rules.MaxPerClub = cfg.MaxPerClub

	deadline := roster.DeadlinePolicy{
		Deadline:       cfg.TransferDeadline,
		LocksCaptaincy: cfg.DeadlineLocksCaptaincy,
	}

	rosterSvc := usecase.NewRosterService(teamRepo, playerRepo, rosterRepo, rules, deadline)
	playerSvc := usecase.NewPlayerService(playerRepo)
	teamSvc := usecase.NewTeamService(teamRepo, rosterRepo)

	var priceSyncSvc *usecase.PriceSyncService
	if cfg.PricefeedEnabled {
		feed := pricefeed.NewClient(pricefeed.ClientConfig{
			BaseURL:     cfg.PricefeedBaseURL,
			Token:       cfg.PricefeedToken,
			Timeout:     cfg.PricefeedTimeout,
			MaxRetries:  cfg.PricefeedMaxRetries,
			MaxParallel: cfg.PricefeedMaxParallel,
			Logger:      logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PricefeedCircuitEnabled,
				FailureThreshold: cfg.PricefeedCircuitFailureCount,
				OpenTimeout:      cfg.PricefeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PricefeedCircuitHalfOpenMaxReq,
			},
		})
		priceSyncSvc = usecase.NewPriceSyncService(feed, playerRepo, logger, cfg.PriceSyncWorkers)
	}

	handler := httpapi.NewHandler(rosterSvc, playerSvc, teamSvc, priceSyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if closeDB != nil {
		server.RegisterOnShutdown(func() { _ = closeDB() })
	}

	return server, nil
}
