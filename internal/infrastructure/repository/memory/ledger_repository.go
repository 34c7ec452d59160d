package memory

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/ledger"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/cockroachdb/errors"
)

type LedgerRepository struct {
	store *Store
}

func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Commit validates every row of the changeset first and only then writes,
// all under the store's write lock.
func (r *LedgerRepository) Commit(_ context.Context, changes ledger.Changeset) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	matchIdx := indexOf(s.matches, matchID, changes.Match.ID)
	if matchIdx < 0 {
		return errors.Newf("match %s not found", changes.Match.ID)
	}
	teamIdx := make([]int, len(changes.Teams))
	for i, t := range changes.Teams {
		if teamIdx[i] = indexOf(s.teams, teamID, t.ID); teamIdx[i] < 0 {
			return errors.Newf("team %s not found", t.ID)
		}
	}
	playerIdx := make([]int, len(changes.Players))
	for i, p := range changes.Players {
		if playerIdx[i] = indexOf(s.players, playerID, p.ID); playerIdx[i] < 0 {
			return errors.Newf("player %s not found", p.ID)
		}
	}
	for _, e := range changes.InsertEvents {
		if indexOf(s.events, eventID, e.ID) >= 0 {
			return errors.Newf("event %s already exists", e.ID)
		}
	}
	deleted := make(map[string]struct{}, len(changes.DeleteEventIDs))
	for _, id := range changes.DeleteEventIDs {
		if indexOf(s.events, eventID, id) < 0 {
			return errors.Wrapf(ledger.ErrEventNotFound, "event=%s", id)
		}
		deleted[id] = struct{}{}
	}

	s.matches[matchIdx] = changes.Match
	for i, t := range changes.Teams {
		s.teams[teamIdx[i]] = t
	}
	for i, p := range changes.Players {
		s.players[playerIdx[i]] = p
	}
	if len(deleted) > 0 {
		s.events = filter(s.events, func(e matchevent.Event) bool {
			_, gone := deleted[e.ID]
			return !gone
		})
	}
	s.events = append(s.events, changes.InsertEvents...)
	return nil
}
