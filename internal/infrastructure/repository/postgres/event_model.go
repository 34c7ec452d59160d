package postgres

import (
	"database/sql"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
)

type eventTableModel struct {
	ID                 string         `db:"id"`
	TournamentID       string         `db:"tournament_id"`
	MatchID            string         `db:"match_id"`
	TeamID             string         `db:"team_id"`
	PlayerID           sql.NullString `db:"player_id"`
	SubstitutePlayerID sql.NullString `db:"substitute_player_id"`
	EventType          string         `db:"event_type"`
	Minute             int            `db:"minute"`
	CreatedAt          time.Time      `db:"created_at"`
}

var eventColumns = qb.Columns(eventTableModel{})

func eventFromRow(row eventTableModel) matchevent.Event {
	return matchevent.Event{
		ID:                 row.ID,
		TournamentID:       row.TournamentID,
		MatchID:            row.MatchID,
		TeamID:             row.TeamID,
		PlayerID:           row.PlayerID.String,
		SubstitutePlayerID: row.SubstitutePlayerID.String,
		Type:               matchevent.Type(row.EventType),
		Minute:             row.Minute,
		CreatedAt:          row.CreatedAt,
	}
}

func eventToRow(item matchevent.Event) eventTableModel {
	return eventTableModel{
		ID:                 item.ID,
		TournamentID:       item.TournamentID,
		MatchID:            item.MatchID,
		TeamID:             item.TeamID,
		PlayerID:           nullString(item.PlayerID),
		SubstitutePlayerID: nullString(item.SubstitutePlayerID),
		EventType:          string(item.Type),
		Minute:             item.Minute,
		CreatedAt:          item.CreatedAt,
	}
}

func eventsFromRows(rows []eventTableModel) []matchevent.Event {
	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out
}
