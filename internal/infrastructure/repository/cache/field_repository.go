package cache

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	basecache "github.com/VeselinMar/TournamentManager/internal/platform/cache"
)

type FieldRepository struct {
	next  field.Repository
	cache *basecache.Store
}

func NewFieldRepository(next field.Repository, cache *basecache.Store) *FieldRepository {
	return &FieldRepository{next: next, cache: cache}
}

func (r *FieldRepository) ListByTournament(ctx context.Context, tournamentID string) ([]field.Field, error) {
	items, err := basecache.Load(ctx, r.cache, fieldListKey(tournamentID), func(ctx context.Context) ([]field.Field, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]field.Field(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]field.Field(nil), items...), nil
}

// GetByID is served from the cached list.
func (r *FieldRepository) GetByID(ctx context.Context, tournamentID, fieldID string) (field.Field, bool, error) {
	items, err := r.ListByTournament(ctx, tournamentID)
	if err != nil {
		return field.Field{}, false, err
	}
	for _, item := range items {
		if item.ID == fieldID {
			return item, true, nil
		}
	}
	return field.Field{}, false, nil
}

func (r *FieldRepository) Create(ctx context.Context, item field.Field) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.TournamentID)
	return nil
}

func (r *FieldRepository) Delete(ctx context.Context, tournamentID, fieldID string) error {
	if err := r.next.Delete(ctx, tournamentID, fieldID); err != nil {
		return err
	}
	r.invalidate(ctx, tournamentID)
	return nil
}

func (r *FieldRepository) invalidate(ctx context.Context, tournamentID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, fieldListKey(tournamentID))
	}
}

func fieldListKey(tournamentID string) string { return "field:list:" + tournamentID }
