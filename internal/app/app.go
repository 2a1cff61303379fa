package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/survivor-pool/external/gridiron"
	"github.com/riskibarqy/survivor-pool/internal/config"
	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/domain/team"
	"github.com/riskibarqy/survivor-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/survivor-pool/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/survivor-pool/internal/interfaces/httpapi"
	"github.com/riskibarqy/survivor-pool/internal/platform/cache"
	idgen "github.com/riskibarqy/survivor-pool/internal/platform/id"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
	"github.com/riskibarqy/survivor-pool/internal/platform/resilience"
	"github.com/riskibarqy/survivor-pool/internal/usecase"
)

type repositories struct {
	seasons season.Repository
	teams   team.Repository
	matches match.Repository
	entries entry.Repository
	picks   pick.Repository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var provider usecase.EventProvider
	if cfg.GridironEnabled {
		provider = gridiron.NewClient(gridiron.ClientConfig{
			HTTPClient:       &fasthttp.Client{},
			BaseURL:          cfg.GridironBaseURL,
			Token:            cfg.GridironToken,
			Timeout:          cfg.GridironTimeout,
			MaxRetries:       cfg.GridironMaxRetries,
			RateLimitBackoff: cfg.GridironRateLimitBackoff,
			Logger:           logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GridironCircuitEnabled,
				FailureThreshold: cfg.GridironCircuitFailureCount,
				OpenTimeout:      cfg.GridironCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GridironCircuitHalfOpenMaxReq,
			},
		})
	} else {
		logger.Warn("scoreboard provider disabled, match sync jobs will be rejected")
	}

	var teamCache *cache.Store
	if cfg.CacheEnabled {
		teamCache = cache.NewStore(cfg.CacheTTL)
	}

	ids := idgen.NewRandomGenerator()
	platformLogger := logging.Default()

	syncSvc := usecase.NewMatchSyncService(provider, repos.seasons, repos.teams, repos.matches, ids, teamCache, platformLogger)
	scoringSvc := usecase.NewPickScoringService(repos.seasons, repos.matches, repos.picks, platformLogger)
	statsSvc := usecase.NewEntryStatsService(repos.seasons, repos.entries, repos.picks, platformLogger)
	weekSvc := usecase.NewWeekService(repos.seasons, platformLogger)
	autoPickSvc := usecase.NewAutoPickService(repos.seasons, repos.entries, repos.matches, repos.picks, ids, platformLogger)
	maintenanceSvc := usecase.NewMaintenanceService(syncSvc, scoringSvc, statsSvc, weekSvc, autoPickSvc, platformLogger)
	reportingSvc := usecase.NewReportingService(repos.seasons, repos.teams, repos.matches, repos.entries, repos.picks, platformLogger)

	handler := httpapi.NewHandler(
		syncSvc,
		scoringSvc,
		statsSvc,
		weekSvc,
		autoPickSvc,
		maintenanceSvc,
		reportingSvc,
		platformLogger,
	)
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

	return server, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL is empty, using in-memory repositories with seed data")
		return repositories{
			seasons: memory.NewSeasonRepository(memory.SeedSeasons()),
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			matches: memory.NewMatchRepository(memory.SeedMatches()),
			entries: memory.NewEntryRepository(memory.SeedEntries()),
			picks:   memory.NewPickRepository(nil),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	return repositories{
		seasons: postgres.NewSeasonRepository(db),
		teams:   postgres.NewTeamRepository(db),
		matches: postgres.NewMatchRepository(db),
		entries: postgres.NewEntryRepository(db),
		picks:   postgres.NewPickRepository(db),
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}
