package postgres

import (
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID              string    `db:"id"`
	TournamentID    string    `db:"tournament_id"`
	TeamID          string    `db:"team_id"`
	Name            string    `db:"name"`
	Goals           int       `db:"goals"`
	OwnGoals        int       `db:"own_goals"`
	YellowCards     int       `db:"yellow_cards"`
	RedCards        int       `db:"red_cards"`
	SecondYellowRed bool      `db:"second_yellow_red"`
	IsAllowedToPlay bool      `db:"is_allowed_to_play"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

var playerColumns = qb.Columns(playerTableModel{})

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:              row.ID,
		TournamentID:    row.TournamentID,
		TeamID:          row.TeamID,
		Name:            row.Name,
		Goals:           row.Goals,
		OwnGoals:        row.OwnGoals,
		YellowCards:     row.YellowCards,
		RedCards:        row.RedCards,
		SecondYellowRed: row.SecondYellowRed,
		IsAllowedToPlay: row.IsAllowedToPlay,
		CreatedAt:       row.CreatedAt,
	}
}

func playerToRow(item player.Player) playerTableModel {
	return playerTableModel{
		ID:              item.ID,
		TournamentID:    item.TournamentID,
		TeamID:          item.TeamID,
		Name:            item.Name,
		Goals:           item.Goals,
		OwnGoals:        item.OwnGoals,
		YellowCards:     item.YellowCards,
		RedCards:        item.RedCards,
		SecondYellowRed: item.SecondYellowRed,
		IsAllowedToPlay: item.IsAllowedToPlay,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.CreatedAt,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
