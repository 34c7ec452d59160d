package postgres

import (
	"context"
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Import inserts every new team before its players, all or nothing.
func (r *RosterRepository) Import(ctx context.Context, teams []team.Team, players []player.Player) error {
	if len(teams) == 0 && len(players) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx import roster: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertRoster(ctx, tx, teams, players); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import roster tx: %w", translateError(err))
	}
	return nil
}

func insertRoster(ctx context.Context, tx sqlx.ExecerContext, teams []team.Team, players []player.Player) error {
	if len(teams) > 0 {
		rows := make([]any, 0, len(teams))
		for _, t := range teams {
			rows = append(rows, teamToRow(t))
		}
		query, args, err := qb.InsertModels("teams", rows, "")
		if err != nil {
			return fmt.Errorf("build insert roster teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert roster teams: %w", translateError(err))
		}
	}

	if len(players) > 0 {
		rows := make([]any, 0, len(players))
		for _, p := range players {
			rows = append(rows, playerToRow(p))
		}
		query, args, err := qb.InsertModels("players", rows, "")
		if err != nil {
			return fmt.Errorf("build insert roster players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert roster players: %w", translateError(err))
		}
	}
	return nil
}
