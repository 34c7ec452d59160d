package memory

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	"github.com/cockroachdb/errors"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) GetByID(_ context.Context, id string) (tournament.Tournament, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := indexOf(r.store.tournaments, tournamentID, id)
	if idx < 0 {
		return tournament.Tournament{}, false, nil
	}
	return r.store.tournaments[idx], true, nil
}

func (r *TournamentRepository) GetBySlug(_ context.Context, slug string) (tournament.Tournament, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.tournaments {
		if item.Slug == slug {
			return item, true, nil
		}
	}
	return tournament.Tournament{}, false, nil
}

func (r *TournamentRepository) ListByOwner(_ context.Context, ownerID string) ([]tournament.Tournament, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.tournaments, func(t tournament.Tournament) bool { return t.OwnerID == ownerID }), nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.tournaments {
		if existing.Slug == item.Slug {
			return errors.Wrapf(tournament.ErrSlugTaken, "slug=%s", item.Slug)
		}
	}
	r.store.tournaments = append(r.store.tournaments, item)
	return nil
}

func (r *TournamentRepository) Update(_ context.Context, item tournament.Tournament) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := indexOf(r.store.tournaments, tournamentID, item.ID)
	if idx < 0 {
		return errors.Newf("tournament %s not found", item.ID)
	}
	// The slug is the external address and never changes after creation.
	item.Slug = r.store.tournaments[idx].Slug
	r.store.tournaments[idx] = item
	return nil
}
