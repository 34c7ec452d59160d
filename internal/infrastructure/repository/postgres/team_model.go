package postgres

import (
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID               string    `db:"id"`
	TournamentID     string    `db:"tournament_id"`
	Name             string    `db:"name"`
	LogoURL          string    `db:"logo_url"`
	TournamentPoints int       `db:"tournament_points"`
	MatchPoints      int       `db:"match_points"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

var teamColumns = qb.Columns(teamTableModel{})

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:               row.ID,
		TournamentID:     row.TournamentID,
		Name:             row.Name,
		LogoURL:          row.LogoURL,
		TournamentPoints: row.TournamentPoints,
		MatchPoints:      row.MatchPoints,
		CreatedAt:        row.CreatedAt,
	}
}

func teamToRow(item team.Team) teamTableModel {
	return teamTableModel{
		ID:               item.ID,
		TournamentID:     item.TournamentID,
		Name:             item.Name,
		LogoURL:          item.LogoURL,
		TournamentPoints: item.TournamentPoints,
		MatchPoints:      item.MatchPoints,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.CreatedAt,
	}
}
