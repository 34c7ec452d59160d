package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/ledger"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	"github.com/VeselinMar/TournamentManager/internal/infrastructure/repository/memory"
	"github.com/VeselinMar/TournamentManager/internal/platform/cache"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
)

const ownerID = "owner-1"

var kickoff = time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC)

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequentialIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

// steppingClock returns a strictly increasing time so creation order is
// stable in listings.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []LiveEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event LiveEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Types() []LiveEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]LiveEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store       *memory.Store
	tournaments *TournamentService
	standings   *StandingsService
	roster      *RosterService
	matches     *MatchService
	ledger      *LedgerService
	schedule    *ScheduleService
	live        *recordingPublisher
}

type fixtureOptions struct {
	ledgerRepo ledger.Repository
	matchRepo  match.Repository
	breaker    *resilience.CircuitBreaker
	cache      *cache.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, fixtureOptions{})
}

func newFixtureWith(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()

	store := memory.NewStore()
	tournamentRepo := memory.NewTournamentRepository(store)
	teamRepo := memory.NewTeamRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	fieldRepo := memory.NewFieldRepository(store)
	eventRepo := memory.NewEventRepository(store)
	rosterRepo := memory.NewRosterRepository(store)

	var matchRepo match.Repository = memory.NewMatchRepository(store)
	if opts.matchRepo != nil {
		matchRepo = opts.matchRepo
	}
	var ledgerRepo ledger.Repository = memory.NewLedgerRepository(store)
	if opts.ledgerRepo != nil {
		ledgerRepo = opts.ledgerRepo
	}

	logger := logging.NewNop()
	ids := &sequentialIDs{}
	clock := &steppingClock{now: kickoff.Add(-24 * time.Hour)}
	locks := &resilience.KeyedMutex{}
	live := &recordingPublisher{}

	standingsSvc := NewStandingsService(tournamentRepo, teamRepo, playerRepo, matchRepo, eventRepo,
		StandingsOptions{DefaultTopScorers: 5, Breaker: opts.breaker, Cache: opts.cache}, logger)
	tournamentSvc := NewTournamentService(tournamentRepo, standingsSvc, ids, 2, logger)
	tournamentSvc.now = clock.Now
	rosterSvc := NewRosterService(tournamentRepo, teamRepo, playerRepo, fieldRepo, matchRepo, rosterRepo,
		standingsSvc, locks, ids, logger)
	rosterSvc.now = clock.Now
	matchSvc := NewMatchService(tournamentRepo, teamRepo, playerRepo, fieldRepo, matchRepo, eventRepo,
		standingsSvc, locks, ids, logger)
	matchSvc.now = clock.Now
	ledgerSvc := NewLedgerService(tournamentRepo, teamRepo, playerRepo, matchRepo, eventRepo, ledgerRepo,
		standingsSvc, live, locks, ids, logger)
	ledgerSvc.now = clock.Now
	scheduleSvc := NewScheduleService(tournamentRepo, teamRepo, fieldRepo, matchRepo, standingsSvc, live, locks, ids, logger)
	scheduleSvc.now = clock.Now

	return &fixture{
		store:       store,
		tournaments: tournamentSvc,
		standings:   standingsSvc,
		roster:      rosterSvc,
		matches:     matchSvc,
		ledger:      ledgerSvc,
		schedule:    scheduleSvc,
		live:        live,
	}
}

func (f *fixture) mustTournament(t *testing.T, name string) tournament.Tournament {
	t.Helper()
	item, err := f.tournaments.Create(context.Background(), CreateTournamentInput{OwnerID: ownerID, Name: name})
	if err != nil {
		t.Fatalf("create tournament %q: %v", name, err)
	}
	return item
}

func (f *fixture) mustTeam(t *testing.T, slug, name string) team.Team {
	t.Helper()
	item, err := f.roster.CreateTeam(context.Background(), CreateTeamInput{OwnerID: ownerID, Slug: slug, Name: name})
	if err != nil {
		t.Fatalf("create team %q: %v", name, err)
	}
	return item
}

func (f *fixture) mustPlayer(t *testing.T, slug, teamID, name string) player.Player {
	t.Helper()
	item, err := f.roster.CreatePlayer(context.Background(), CreatePlayerInput{OwnerID: ownerID, Slug: slug, TeamID: teamID, Name: name})
	if err != nil {
		t.Fatalf("create player %q: %v", name, err)
	}
	return item
}

func (f *fixture) mustField(t *testing.T, slug, name string) field.Field {
	t.Helper()
	item, err := f.roster.CreateField(context.Background(), CreateFieldInput{OwnerID: ownerID, Slug: slug, Name: name})
	if err != nil {
		t.Fatalf("create field %q: %v", name, err)
	}
	return item
}

func (f *fixture) mustMatch(t *testing.T, slug, homeID, awayID, fieldID string, start time.Time) match.Match {
	t.Helper()
	view, err := f.matches.Create(context.Background(), CreateMatchInput{
		OwnerID:    ownerID,
		Slug:       slug,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		FieldID:    fieldID,
		StartTime:  start,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return view.Match
}

// derby is one tournament with two teams, one field and one match.
type derby struct {
	tournament tournament.Tournament
	home       team.Team
	away       team.Team
	striker    player.Player
	bench      player.Player
	keeper     player.Player
	match      match.Match
}

func (f *fixture) mustDerby(t *testing.T) derby {
	t.Helper()

	tr := f.mustTournament(t, "Spring Cup")
	home := f.mustTeam(t, tr.Slug, "Lions")
	away := f.mustTeam(t, tr.Slug, "Tigers")
	striker := f.mustPlayer(t, tr.Slug, home.ID, "Ana")
	bench := f.mustPlayer(t, tr.Slug, home.ID, "Bea")
	keeper := f.mustPlayer(t, tr.Slug, away.ID, "Cid")
	pitch := f.mustField(t, tr.Slug, "Pitch A")
	m := f.mustMatch(t, tr.Slug, home.ID, away.ID, pitch.ID, kickoff)

	return derby{tournament: tr, home: home, away: away, striker: striker, bench: bench, keeper: keeper, match: m}
}
