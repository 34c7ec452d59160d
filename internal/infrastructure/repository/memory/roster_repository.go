package memory

import (
	"context"

	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
)

type RosterRepository struct {
	store *Store
}

func NewRosterRepository(store *Store) *RosterRepository {
	return &RosterRepository{store: store}
}

func (r *RosterRepository) Import(_ context.Context, teams []team.Team, players []player.Player) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	teamsBefore, playersBefore := len(s.teams), len(s.players)
	rollback := func() {
		s.teams = s.teams[:teamsBefore]
		s.players = s.players[:playersBefore]
	}

	for _, item := range teams {
		if err := s.checkTeamName(item); err != nil {
			rollback()
			return err
		}
		s.teams = append(s.teams, item)
	}
	for _, item := range players {
		if err := s.checkPlayerName(item); err != nil {
			rollback()
			return err
		}
		s.players = append(s.players, item)
	}
	return nil
}
