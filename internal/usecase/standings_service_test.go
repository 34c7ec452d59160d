package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/infrastructure/repository/memory"
	"github.com/VeselinMar/TournamentManager/internal/platform/cache"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyMatches fails ListByTournament while down is set.
type flakyMatches struct {
	match.Repository
	down  atomic.Bool
	calls atomic.Int32
}

func (r *flakyMatches) ListByTournament(ctx context.Context, tournamentID string) ([]match.Match, error) {
	r.calls.Add(1)
	if r.down.Load() {
		return nil, errors.New("statement timeout")
	}
	return r.Repository.ListByTournament(ctx, tournamentID)
}

func TestStandingsService_BreakerOpensOnBackendFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	memory.SeedDemo(store, ownerID, kickoff)
	matches := &flakyMatches{Repository: memory.NewMatchRepository(store)}
	matches.down.Store(true)

	service := NewStandingsService(
		memory.NewTournamentRepository(store),
		memory.NewTeamRepository(store),
		memory.NewPlayerRepository(store),
		matches,
		memory.NewEventRepository(store),
		StandingsOptions{Breaker: resilience.NewCircuitBreaker(resilience.BreakerConfig{
			FailureThreshold: 2,
			OpenTimeout:      time.Hour,
			HalfOpenProbes:   1,
		})},
		logging.NewNop(),
	)

	for i := 0; i < 2; i++ {
		_, err := service.Get(ctx, memory.DemoTournamentSlug, 0)
		require.Error(t, err)
		if errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("attempt %d tripped too early: %v", i, err)
		}
	}

	matches.down.Store(false)
	_, err := service.Get(ctx, memory.DemoTournamentSlug, 0)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrDependencyUnavailable)
	}
	assert.Equal(t, int32(2), matches.calls.Load())

	// Caller mistakes never reach the backend and never trip the breaker.
	_, err = service.Get(ctx, "unknown", 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrNotFound)
	}
}

func TestStandingsService_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	memory.SeedDemo(store, ownerID, kickoff)
	matches := &flakyMatches{Repository: memory.NewMatchRepository(store)}

	service := NewStandingsService(
		memory.NewTournamentRepository(store),
		memory.NewTeamRepository(store),
		memory.NewPlayerRepository(store),
		matches,
		memory.NewEventRepository(store),
		StandingsOptions{Cache: cache.NewStore(time.Minute)},
		logging.NewNop(),
	)

	first, err := service.Get(ctx, memory.DemoTournamentSlug, 3)
	require.NoError(t, err)
	second, err := service.Get(ctx, memory.DemoTournamentSlug, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), matches.calls.Load())

	// A different top is a different table.
	_, err = service.Get(ctx, memory.DemoTournamentSlug, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), matches.calls.Load())

	service.Invalidate(ctx, first.TournamentID)
	_, err = service.Get(ctx, memory.DemoTournamentSlug, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), matches.calls.Load())
}

func TestStandingsService_RejectsHugeTop(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tr := f.mustTournament(t, "Top Cup")

	_, err := f.standings.Get(context.Background(), tr.Slug, maxTopScorers+1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrInvalidInput)
	}
}
