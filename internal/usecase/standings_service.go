package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/standings"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	"github.com/VeselinMar/TournamentManager/internal/platform/cache"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
)

const maxTopScorers = 100

type StandingsService struct {
	access     tournamentAccess
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	eventRepo  matchevent.Repository
	cache      *cache.Store
	breaker    *resilience.CircuitBreaker
	defaultTop int
	logger     *logging.Logger
}

type StandingsOptions struct {
	DefaultTopScorers int
	// Cache is optional; nil computes every request.
	Cache   *cache.Store
	Breaker *resilience.CircuitBreaker
}

func NewStandingsService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	opts StandingsOptions,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.DefaultTopScorers <= 0 {
		opts.DefaultTopScorers = standings.DefaultTopScorers
	}

	return &StandingsService{
		access:     tournamentAccess{repo: tournamentRepo},
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		cache:      opts.Cache,
		breaker:    opts.Breaker,
		defaultTop: opts.DefaultTopScorers,
		logger:     logger,
	}
}

// Get returns the ranked teams and the top scorers of a tournament. top <= 0
// uses the configured default.
func (s *StandingsService) Get(ctx context.Context, slug string, top int) (standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Get", tournamentAttr(slug))
	defer span.End()

	item, err := s.access.resolve(ctx, slug)
	if err != nil {
		return standings.Table{}, err
	}

	return s.ForTournament(ctx, item, top)
}

func (s *StandingsService) ForTournament(ctx context.Context, item tournament.Tournament, top int) (standings.Table, error) {
	if top <= 0 {
		top = s.defaultTop
	}
	if top > maxTopScorers {
		return standings.Table{}, invalidInput("top must be at most %d", maxTopScorers)
	}

	key := standingsCacheKey(item.ID) + strconv.Itoa(top)
	table, err := cache.Load(ctx, s.cache, key, func(ctx context.Context) (standings.Table, error) {
		var table standings.Table
		err := s.breaker.Execute(func() error {
			var loadErr error
			table, loadErr = s.compute(ctx, item.ID, top)
			return loadErr
		}, isCallerError)
		return table, err
	})
	if err != nil {
		return standings.Table{}, classify(err)
	}

	return table, nil
}

// Invalidate drops every cached table of the tournament.
func (s *StandingsService) Invalidate(ctx context.Context, tournamentID string) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, standingsCacheKey(tournamentID))
	s.logger.DebugContext(ctx, "standings cache invalidated", "tournament_id", tournamentID)
}

func (s *StandingsService) compute(ctx context.Context, tournamentID string, top int) (standings.Table, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return standings.Table{}, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return standings.Table{}, fmt.Errorf("list players: %w", err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return standings.Table{}, fmt.Errorf("list matches: %w", err)
	}
	events, err := s.eventRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return standings.Table{}, fmt.Errorf("list match events: %w", err)
	}

	return standings.Build(tournamentID, teams, players, matches, events, top), nil
}

func standingsCacheKey(tournamentID string) string {
	return "standings:" + tournamentID + ":"
}
