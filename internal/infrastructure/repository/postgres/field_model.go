package postgres

import (
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
)

type fieldTableModel struct {
	ID           string    `db:"id"`
	TournamentID string    `db:"tournament_id"`
	OwnerID      string    `db:"owner_id"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
}

var fieldColumns = qb.Columns(fieldTableModel{})

func fieldFromRow(row fieldTableModel) field.Field {
	return field.Field(row)
}

func fieldToRow(item field.Field) fieldTableModel {
	return fieldTableModel(item)
}
