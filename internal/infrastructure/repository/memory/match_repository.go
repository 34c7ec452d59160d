package memory

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/cockroachdb/errors"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) GetByID(_ context.Context, tournamentID, id string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := indexOf(r.store.matches, matchID, id)
	if idx < 0 || r.store.matches[idx].TournamentID != tournamentID {
		return match.Match{}, false, nil
	}
	return r.store.matches[idx], true, nil
}

func (r *MatchRepository) ListByTournament(_ context.Context, tournamentID string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.matchesOf(tournamentID), nil
}

func (r *MatchRepository) Create(_ context.Context, items ...match.Match) error {
	if len(items) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	byTournament := make(map[string][]match.Match)
	for _, item := range items {
		if _, ok := byTournament[item.TournamentID]; !ok {
			byTournament[item.TournamentID] = r.store.matchesOf(item.TournamentID)
		}
		byTournament[item.TournamentID] = append(byTournament[item.TournamentID], item)
	}
	for _, candidate := range byTournament {
		if a, b, clash := match.FindSlotConflict(candidate); clash {
			return errors.Wrapf(match.ErrSlotTaken, "matches %s and %s", a.ID, b.ID)
		}
	}

	r.store.matches = append(r.store.matches, items...)
	return nil
}

func (r *MatchRepository) UpdateStartTimes(_ context.Context, tournamentID string, items []match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	next := make([]match.Match, len(r.store.matches))
	copy(next, r.store.matches)
	for _, item := range items {
		idx := indexOf(next, matchID, item.ID)
		if idx < 0 || next[idx].TournamentID != tournamentID {
			return errors.Newf("match %s not found in tournament %s", item.ID, tournamentID)
		}
		next[idx].StartTime = item.StartTime
		next[idx].UpdatedAt = item.UpdatedAt
	}

	scoped := filter(next, func(m match.Match) bool { return m.TournamentID == tournamentID })
	if a, b, clash := match.FindSlotConflict(scoped); clash {
		return errors.Wrapf(match.ErrSlotTaken, "matches %s and %s", a.ID, b.ID)
	}

	r.store.matches = next
	return nil
}

func (s *Store) matchesOf(tournamentID string) []match.Match {
	return filter(s.matches, func(m match.Match) bool { return m.TournamentID == tournamentID })
}
