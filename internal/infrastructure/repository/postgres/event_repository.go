package postgres

import (
	"context"
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (matchevent.Event, bool, error) {
	query, args, err := qb.Select(eventColumns...).From("match_events").
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return matchevent.Event{}, false, fmt.Errorf("build get match event query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchevent.Event{}, false, nil
		}
		return matchevent.Event{}, false, fmt.Errorf("get match event id=%s: %w", eventID, err)
	}
	return eventFromRow(row), true, nil
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID string) ([]matchevent.Event, error) {
	return listEvents(ctx, r.db, "match", qb.Eq("match_id", matchID))
}

func (r *EventRepository) ListByTournament(ctx context.Context, tournamentID string) ([]matchevent.Event, error) {
	return listEvents(ctx, r.db, "tournament", qb.Eq("tournament_id", tournamentID))
}

func listEvents(ctx context.Context, db sqlx.QueryerContext, by string, cond qb.Condition) ([]matchevent.Event, error) {
	query, args, err := qb.Select(eventColumns...).From("match_events").
		Where(cond).
		OrderBy("minute", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match events by %s query: %w", by, err)
	}

	var rows []eventTableModel
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match events by %s: %w", by, err)
	}
	return eventsFromRows(rows), nil
}
