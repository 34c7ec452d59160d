package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/config"
	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/ledger"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/roster"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	"github.com/VeselinMar/TournamentManager/internal/infrastructure/account/jwtauth"
	"github.com/VeselinMar/TournamentManager/internal/infrastructure/live"
	cacherepo "github.com/VeselinMar/TournamentManager/internal/infrastructure/repository/cache"
	"github.com/VeselinMar/TournamentManager/internal/infrastructure/repository/memory"
	"github.com/VeselinMar/TournamentManager/internal/infrastructure/repository/postgres"
	"github.com/VeselinMar/TournamentManager/internal/interfaces/httpapi"
	"github.com/VeselinMar/TournamentManager/internal/platform/cache"
	idgen "github.com/VeselinMar/TournamentManager/internal/platform/id"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
	"github.com/VeselinMar/TournamentManager/internal/usecase"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sourcegraph/conc/pool"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const defaultShutdownTimeout = 10 * time.Second

// App owns the HTTP server and the background workers of the service.
type App struct {
	Server *http.Server

	hub             *live.Hub
	db              *sqlx.DB
	logger          *logging.Logger
	shutdownTimeout time.Duration
}

type repositories struct {
	tournaments tournament.Repository
	teams       team.Repository
	players     player.Repository
	fields      field.Repository
	matches     match.Repository
	events      matchevent.Repository
	ledger      ledger.Repository
	roster      roster.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{
		logger:          logger,
		shutdownTimeout: defaultShutdownTimeout,
	}

	repos, err := a.openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		standingsCache = cache.NewStore(cfg.CacheTTL)
		readCache := cache.NewStore(cfg.CacheTTL)
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, readCache)
		repos.fields = cacherepo.NewFieldRepository(repos.fields, readCache)
	}

	var (
		publisher usecase.LivePublisher
		feed      httpapi.LiveFeed
		upgrader  *websocket.Upgrader
	)
	if cfg.LiveFeedEnabled {
		a.hub = live.NewHub(logger.Named("live"))
		publisher = a.hub
		feed = a.hub
		u := live.Upgrader(cfg.CORSAllowedOrigins)
		upgrader = &u
	}

	locks := &resilience.KeyedMutex{}
	ids := idgen.NewUUIDGenerator()
	breaker := resilience.NewCircuitBreaker(resilience.BreakerConfig{
		FailureThreshold: cfg.StandingsBreakerFailures,
		OpenTimeout:      cfg.StandingsBreakerOpenFor,
		HalfOpenProbes:   1,
	})

	standingsSvc := usecase.NewStandingsService(
		repos.tournaments,
		repos.teams,
		repos.players,
		repos.matches,
		repos.events,
		usecase.StandingsOptions{
			DefaultTopScorers: cfg.StandingsTopScorers,
			Cache:             standingsCache,
			Breaker:           breaker,
		},
		logger,
	)

	services := httpapi.Services{
		Tournaments: usecase.NewTournamentService(repos.tournaments, standingsSvc, ids, cfg.StandingsWorkers, logger),
		Standings:   standingsSvc,
		Roster: usecase.NewRosterService(
			repos.tournaments, repos.teams, repos.players, repos.fields, repos.matches, repos.roster,
			standingsSvc, locks, ids, logger,
		),
		Matches: usecase.NewMatchService(
			repos.tournaments, repos.teams, repos.players, repos.fields, repos.matches, repos.events,
			standingsSvc, locks, ids, logger,
		),
		Ledger: usecase.NewLedgerService(
			repos.tournaments, repos.teams, repos.players, repos.matches, repos.events, repos.ledger,
			standingsSvc, publisher, locks, ids, logger,
		),
		Schedule: usecase.NewScheduleService(
			repos.tournaments, repos.teams, repos.fields, repos.matches,
			standingsSvc, publisher, locks, ids, logger,
		),
	}

	handler := httpapi.NewHandler(services, feed, upgrader, logger)
	verifier := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	// WriteTimeout does not apply to hijacked websocket connections.
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app initialized",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"live_feed_enabled", cfg.LiveFeedEnabled,
		"seed_demo", cfg.SeedDemo,
	)

	return a, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("ping postgres: %w", err)
		}
		a.db = db

		if cfg.SeedDemo {
			if err := postgres.SeedDemo(ctx, db, cfg.SeedDemoOwnerID, time.Now()); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("seed demo data: %w", err)
			}
		}

		return repositories{
			tournaments: postgres.NewTournamentRepository(db),
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			fields:      postgres.NewFieldRepository(db),
			matches:     postgres.NewMatchRepository(db),
			events:      postgres.NewEventRepository(db),
			ledger:      postgres.NewLedgerRepository(db),
			roster:      postgres.NewRosterRepository(db),
		}, nil
	default:
		store := memory.NewStore()
		if cfg.SeedDemo {
			memory.SeedDemo(store, cfg.SeedDemoOwnerID, time.Now())
		}

		return repositories{
			tournaments: memory.NewTournamentRepository(store),
			teams:       memory.NewTeamRepository(store),
			players:     memory.NewPlayerRepository(store),
			fields:      memory.NewFieldRepository(store),
			matches:     memory.NewMatchRepository(store),
			events:      memory.NewEventRepository(store),
			ledger:      memory.NewLedgerRepository(store),
			roster:      memory.NewRosterRepository(store),
		}, nil
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbNameFromURL(cfg.DBURL)))

	return db, nil
}

// Run serves HTTP and the live hub until ctx is cancelled or one of them
// fails, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()

	if a.hub != nil {
		p.Go(func(ctx context.Context) error {
			return a.hub.Run(ctx)
		})
	}

	p.Go(func(context.Context) error {
		a.logger.Info("http server starting", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		a.logger.Info("http server stopped")
		return nil
	})

	return p.Wait()
}

// Close releases the storage connection pool.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
