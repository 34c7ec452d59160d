package memory

import (
	"context"
	"strings"

	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/cockroachdb/errors"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) ListByTournament(_ context.Context, tournamentID string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.players, func(p player.Player) bool { return p.TournamentID == tournamentID }), nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.players, func(p player.Player) bool { return p.TeamID == teamID }), nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []string) ([]player.Player, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.players, func(p player.Player) bool {
		_, ok := want[p.ID]
		return ok
	}), nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.checkPlayerName(item); err != nil {
		return err
	}
	r.store.players = append(r.store.players, item)
	return nil
}

func (s *Store) checkPlayerName(item player.Player) error {
	for _, existing := range s.players {
		if existing.ID != item.ID && existing.TeamID == item.TeamID &&
			strings.EqualFold(strings.TrimSpace(existing.Name), strings.TrimSpace(item.Name)) {
			return errors.Wrapf(player.ErrNameTaken, "name=%q", item.Name)
		}
	}
	return nil
}
