package cache

import (
	"context"
	"testing"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	fieldmock "github.com/VeselinMar/TournamentManager/internal/mocks/domain/field"
	tournamentmock "github.com/VeselinMar/TournamentManager/internal/mocks/domain/tournament"
	basecache "github.com/VeselinMar/TournamentManager/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTournamentRepository_CachesSlugLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, basecache.NewStore(time.Minute))

	cup := tournament.Tournament{ID: "t1", OwnerID: "o1", Name: "Spring Cup", Slug: "spring-cup"}
	next.On("GetBySlug", mock.Anything, "spring-cup").Return(cup, true, nil).Once()

	for i := 0; i < 3; i++ {
		got, ok, err := repo.GetBySlug(ctx, "spring-cup")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, cup, got)
	}
}

func TestTournamentRepository_CreateDropsCachedMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, basecache.NewStore(time.Minute))

	cup := tournament.Tournament{ID: "t1", OwnerID: "o1", Name: "Spring Cup", Slug: "spring-cup"}
	next.On("GetBySlug", mock.Anything, "spring-cup").Return(tournament.Tournament{}, false, nil).Once()
	next.On("Create", mock.Anything, cup).Return(nil).Once()
	next.On("GetBySlug", mock.Anything, "spring-cup").Return(cup, true, nil).Once()

	_, ok, err := repo.GetBySlug(ctx, "spring-cup")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Create(ctx, cup))

	got, ok, err := repo.GetBySlug(ctx, "spring-cup")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "t1", got.ID)
}

func TestTournamentRepository_UpdateRefreshesOwnerList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, basecache.NewStore(time.Minute))

	before := tournament.Tournament{ID: "t1", OwnerID: "o1", Name: "Spring Cup", Slug: "spring-cup"}
	after := before
	after.IsFinished = true

	next.On("ListByOwner", mock.Anything, "o1").Return([]tournament.Tournament{before}, nil).Once()
	next.On("Update", mock.Anything, after).Return(nil).Once()
	next.On("ListByOwner", mock.Anything, "o1").Return([]tournament.Tournament{after}, nil).Once()

	items, err := repo.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	require.False(t, items[0].IsFinished)

	items[0].Name = "mutated by caller"
	items, err = repo.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, "Spring Cup", items[0].Name, "cached slice must not alias caller copies")

	require.NoError(t, repo.Update(ctx, after))

	items, err = repo.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	require.True(t, items[0].IsFinished)
}

func TestFieldRepository_GetByIDUsesCachedList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := fieldmock.NewRepository(t)
	repo := NewFieldRepository(next, basecache.NewStore(time.Minute))

	north := field.Field{ID: "f1", TournamentID: "t1", Name: "North"}
	south := field.Field{ID: "f2", TournamentID: "t1", Name: "South"}
	next.On("ListByTournament", mock.Anything, "t1").Return([]field.Field{north}, nil).Once()
	next.On("Create", mock.Anything, south).Return(nil).Once()
	next.On("ListByTournament", mock.Anything, "t1").Return([]field.Field{north, south}, nil).Once()

	got, ok, err := repo.GetByID(ctx, "t1", "f1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, north, got)

	_, ok, err = repo.GetByID(ctx, "t1", "f2")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Create(ctx, south))

	_, ok, err = repo.GetByID(ctx, "t1", "f2")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFieldRepository_NilStorePassesThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := fieldmock.NewRepository(t)
	repo := NewFieldRepository(next, nil)

	next.On("ListByTournament", mock.Anything, "t1").Return([]field.Field{}, nil).Twice()
	next.On("Delete", mock.Anything, "t1", "f1").Return(field.ErrInUse).Once()

	for i := 0; i < 2; i++ {
		_, err := repo.ListByTournament(ctx, "t1")
		require.NoError(t, err)
	}
	require.ErrorIs(t, repo.Delete(ctx, "t1", "f1"), field.ErrInUse)
}
