package postgres

import (
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
)

type tournamentTableModel struct {
	ID         string    `db:"id"`
	OwnerID    string    `db:"owner_id"`
	Name       string    `db:"name"`
	Slug       string    `db:"slug"`
	IsFinished bool      `db:"is_finished"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

var tournamentColumns = qb.Columns(tournamentTableModel{})

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		ID:         row.ID,
		OwnerID:    row.OwnerID,
		Name:       row.Name,
		Slug:       row.Slug,
		IsFinished: row.IsFinished,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func tournamentToRow(item tournament.Tournament) tournamentTableModel {
	return tournamentTableModel{
		ID:         item.ID,
		OwnerID:    item.OwnerID,
		Name:       item.Name,
		Slug:       item.Slug,
		IsFinished: item.IsFinished,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  updatedOrCreated(item.UpdatedAt, item.CreatedAt),
	}
}

func updatedOrCreated(updated, created time.Time) time.Time {
	if updated.IsZero() {
		return created
	}
	return updated
}
