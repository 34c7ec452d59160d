package postgres

import (
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID           string    `db:"id"`
	TournamentID string    `db:"tournament_id"`
	HomeTeamID   string    `db:"home_team_id"`
	AwayTeamID   string    `db:"away_team_id"`
	FieldID      string    `db:"field_id"`
	StartTime    time.Time `db:"start_time"`
	HomeScore    int       `db:"home_score"`
	AwayScore    int       `db:"away_score"`
	IsFinished   bool      `db:"is_finished"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var matchColumns = qb.Columns(matchTableModel{})

func matchFromRow(row matchTableModel) match.Match {
	m := match.Match(row)
	m.StartTime = m.StartTime.UTC()
	return m
}

func matchToRow(item match.Match) matchTableModel {
	row := matchTableModel(item)
	row.UpdatedAt = updatedOrCreated(item.UpdatedAt, item.CreatedAt)
	return row
}
