package postgres

import (
	"context"
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FieldRepository struct {
	db *sqlx.DB
}

func NewFieldRepository(db *sqlx.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) ListByTournament(ctx context.Context, tournamentID string) ([]field.Field, error) {
	query, args, err := qb.Select(fieldColumns...).From("fields").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fields query: %w", err)
	}

	var rows []fieldTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fields: %w", err)
	}

	out := make([]field.Field, 0, len(rows))
	for _, row := range rows {
		out = append(out, fieldFromRow(row))
	}
	return out, nil
}

func (r *FieldRepository) GetByID(ctx context.Context, tournamentID, fieldID string) (field.Field, bool, error) {
	query, args, err := qb.Select(fieldColumns...).From("fields").
		Where(
			qb.Eq("id", fieldID),
			qb.Eq("tournament_id", tournamentID),
		).
		ToSQL()
	if err != nil {
		return field.Field{}, false, fmt.Errorf("build get field query: %w", err)
	}

	var row fieldTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return field.Field{}, false, nil
		}
		return field.Field{}, false, fmt.Errorf("get field id=%s: %w", fieldID, err)
	}
	return fieldFromRow(row), true, nil
}

func (r *FieldRepository) Create(ctx context.Context, item field.Field) error {
	query, args, err := qb.InsertModel("fields", fieldToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert field query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert field name=%q: %w", item.Name, translateError(err))
	}
	return nil
}

// Delete relies on the matches foreign key to refuse fields that still
// host a match.
func (r *FieldRepository) Delete(ctx context.Context, tournamentID, fieldID string) error {
	query, args, err := qb.DeleteFrom("fields").
		Where(
			qb.Eq("id", fieldID),
			qb.Eq("tournament_id", tournamentID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete field query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete field id=%s: %w", fieldID, translateError(err))
	}
	return nil
}
