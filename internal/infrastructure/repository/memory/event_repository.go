package memory

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) GetByID(_ context.Context, id string) (matchevent.Event, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := indexOf(r.store.events, eventID, id)
	if idx < 0 {
		return matchevent.Event{}, false, nil
	}
	return r.store.events[idx], true, nil
}

func (r *EventRepository) ListByMatch(_ context.Context, matchID string) ([]matchevent.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := filter(r.store.events, func(e matchevent.Event) bool { return e.MatchID == matchID })
	matchevent.Sort(out)
	return out, nil
}

func (r *EventRepository) ListByTournament(_ context.Context, tournamentID string) ([]matchevent.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.events, func(e matchevent.Event) bool { return e.TournamentID == tournamentID }), nil
}
