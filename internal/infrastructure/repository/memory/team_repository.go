package memory

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/cockroachdb/errors"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return filter(r.store.teams, func(t team.Team) bool { return t.TournamentID == tournamentID }), nil
}

func (r *TeamRepository) GetByID(_ context.Context, tournamentID, id string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := indexOf(r.store.teams, teamID, id)
	if idx < 0 || r.store.teams[idx].TournamentID != tournamentID {
		return team.Team{}, false, nil
	}
	return r.store.teams[idx], true, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.checkTeamName(item); err != nil {
		return err
	}
	r.store.teams = append(r.store.teams, item)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := indexOf(r.store.teams, teamID, item.ID)
	if idx < 0 {
		return errors.Newf("team %s not found", item.ID)
	}
	if err := r.store.checkTeamName(item); err != nil {
		return err
	}
	r.store.teams[idx] = item
	return nil
}

// checkTeamName mirrors the unique (tournament_id, lower(name)) index.
func (s *Store) checkTeamName(item team.Team) error {
	for _, existing := range s.teams {
		if existing.ID != item.ID && existing.TournamentID == item.TournamentID && team.SameName(existing.Name, item.Name) {
			return errors.Wrapf(team.ErrNameTaken, "name=%q", item.Name)
		}
	}
	return nil
}
