package cache

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	basecache "github.com/VeselinMar/TournamentManager/internal/platform/cache"
)

// TournamentRepository caches tournament reads. Every tournament write goes
// through it, so its own invalidation keeps the cache exact.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

type cachedTournament struct {
	value  tournament.Tournament
	exists bool
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	return r.getOne(ctx, tournamentIDKey(tournamentID), func(ctx context.Context) (tournament.Tournament, bool, error) {
		return r.next.GetByID(ctx, tournamentID)
	})
}

func (r *TournamentRepository) GetBySlug(ctx context.Context, slug string) (tournament.Tournament, bool, error) {
	return r.getOne(ctx, tournamentSlugKey(slug), func(ctx context.Context) (tournament.Tournament, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

func (r *TournamentRepository) getOne(
	ctx context.Context,
	key string,
	load func(context.Context) (tournament.Tournament, bool, error),
) (tournament.Tournament, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedTournament, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return cachedTournament{}, err
		}
		return cachedTournament{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) ListByOwner(ctx context.Context, ownerID string) ([]tournament.Tournament, error) {
	items, err := basecache.Load(ctx, r.cache, tournamentOwnerKey(ownerID), func(ctx context.Context) ([]tournament.Tournament, error) {
		items, err := r.next.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item)
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item)
	return nil
}

// invalidate also drops the slug key, which may hold a cached miss from
// slug probing before Create.
func (r *TournamentRepository) invalidate(ctx context.Context, item tournament.Tournament) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, tournamentIDKey(item.ID))
	r.cache.Delete(ctx, tournamentSlugKey(item.Slug))
	r.cache.Delete(ctx, tournamentOwnerKey(item.OwnerID))
}

func tournamentIDKey(id string) string       { return "tournament:id:" + id }
func tournamentSlugKey(slug string) string   { return "tournament:slug:" + slug }
func tournamentOwnerKey(owner string) string { return "tournament:owner:" + owner }
