package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	tournamentmock "github.com/VeselinMar/TournamentManager/internal/mocks/domain/tournament"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTournamentService_CreateSuffixesTakenSlugs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	first := f.mustTournament(t, "Spring Cup!")
	second := f.mustTournament(t, "spring cup")
	third := f.mustTournament(t, "Spring   Cup")

	assert.Equal(t, "spring-cup", first.Slug)
	assert.Equal(t, "spring-cup-2", second.Slug)
	assert.Equal(t, "spring-cup-3", third.Slug)
	assert.Equal(t, ownerID, first.OwnerID)
}

func TestTournamentService_CreateRequiresOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.tournaments.Create(context.Background(), CreateTournamentInput{Name: "Nobody's Cup"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrUnauthorized)
	}
}

func TestTournamentService_CreateRetriesOnInsertRaceUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	service := NewTournamentService(repo, nil, &sequentialIDs{}, 1, logging.NewNop())

	repo.On("GetBySlug", mock.Anything, "derby").Return(tournament.Tournament{}, false, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(v tournament.Tournament) bool { return v.Slug == "derby" })).
		Return(tournament.ErrSlugTaken).
		Once()
	repo.On("GetBySlug", mock.Anything, "derby-2").Return(tournament.Tournament{}, false, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(v tournament.Tournament) bool { return v.Slug == "derby-2" })).
		Return(nil).
		Once()

	got, err := service.Create(ctx, CreateTournamentInput{OwnerID: ownerID, Name: "Derby"})
	require.NoError(t, err)
	if got.Slug != "derby-2" {
		t.Fatalf("unexpected slug got=%s want=%s", got.Slug, "derby-2")
	}
}

func TestTournamentService_UpdateAndListMine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	first := f.mustTournament(t, "First Cup")
	second := f.mustTournament(t, "Second Cup")
	_, err := f.tournaments.Create(ctx, CreateTournamentInput{OwnerID: "someone-else", Name: "Foreign Cup"})
	require.NoError(t, err)

	finished := true
	name := "First Cup 2026"
	updated, err := f.tournaments.Update(ctx, UpdateTournamentInput{
		OwnerID: ownerID, Slug: first.Slug, Name: &name, IsFinished: &finished,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, first.Slug, updated.Slug)
	assert.True(t, updated.IsFinished)

	mine, err := f.tournaments.ListMine(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, mine.Items, 2)
	assert.Equal(t, first.ID, mine.Items[0].ID)
	assert.Equal(t, second.ID, mine.ActiveID)

	_, err = f.tournaments.Update(ctx, UpdateTournamentInput{OwnerID: "someone-else", Slug: second.Slug, Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrForbidden)
	}
	_, err = f.tournaments.Update(ctx, UpdateTournamentInput{OwnerID: ownerID, Slug: second.Slug})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestTournamentService_GetUnknown(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.tournaments.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error got=%v want=%v", err, ErrNotFound)
	}
}

func TestTournamentService_Overview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	d := f.mustDerby(t)
	empty := f.mustTournament(t, "Empty Cup")

	_, err := f.ledger.CreateEvent(ctx, CreateEventInput{
		OwnerID: ownerID, Slug: d.tournament.Slug, MatchID: d.match.ID,
		Type: "goal", Side: SideHome, PlayerID: d.striker.ID, Minute: 7,
	})
	require.NoError(t, err)
	_, err = f.ledger.FinishMatch(ctx, ownerID, d.tournament.Slug, d.match.ID)
	require.NoError(t, err)

	rows, err := f.tournaments.Overview(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[string]TournamentOverview, len(rows))
	for _, row := range rows {
		require.NoError(t, row.Err)
		byID[row.Tournament.ID] = row
	}

	derbyRow := byID[d.tournament.ID]
	require.NotNil(t, derbyRow.Leader)
	assert.Equal(t, d.home.ID, derbyRow.Leader.Team.ID)
	require.NotNil(t, derbyRow.TopScorer)
	assert.Equal(t, "Ana", derbyRow.TopScorer.Player.Name)
	assert.Equal(t, 1, derbyRow.FinishedMatches)
	assert.Equal(t, 1, derbyRow.TotalMatches)

	emptyRow := byID[empty.ID]
	assert.Nil(t, emptyRow.Leader)
	assert.Nil(t, emptyRow.TopScorer)
	assert.Zero(t, emptyRow.TotalMatches)
}

func TestTournamentService_OverviewWithoutTournaments(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	rows, err := f.tournaments.Overview(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
