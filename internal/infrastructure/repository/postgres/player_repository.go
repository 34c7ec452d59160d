package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTournament(ctx context.Context, tournamentID string) ([]player.Player, error) {
	return r.list(ctx, "tournament", qb.Eq("tournament_id", tournamentID))
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	return r.list(ctx, "team", qb.Eq("team_id", teamID))
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}
	return r.list(ctx, "ids", qb.In("id", stringSliceToAny(playerIDs)))
}

func (r *PlayerRepository) list(ctx context.Context, by string, cond qb.Condition) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("players").
		Where(cond).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by %s query: %w", by, err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by %s: %w", by, err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player name=%q: %w", item.Name, translateError(err))
	}
	return nil
}

func updatePlayerCounters(ctx context.Context, db sqlx.ExecerContext, item player.Player, now time.Time) error {
	query, args, err := qb.Update("players").
		Set("goals", item.Goals).
		Set("own_goals", item.OwnGoals).
		Set("yellow_cards", item.YellowCards).
		Set("red_cards", item.RedCards).
		Set("second_yellow_red", item.SecondYellowRed).
		Set("is_allowed_to_play", item.IsAllowedToPlay).
		Set("updated_at", now).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player id=%s: %w", item.ID, err)
	}
	return expectAffected(res, "player "+item.ID)
}
