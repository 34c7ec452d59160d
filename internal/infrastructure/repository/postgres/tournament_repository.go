package postgres

import (
	"context"
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	return r.getOne(ctx, qb.Eq("id", tournamentID))
}

func (r *TournamentRepository) GetBySlug(ctx context.Context, slug string) (tournament.Tournament, bool, error) {
	return r.getOne(ctx, qb.Eq("slug", slug))
}

func (r *TournamentRepository) getOne(ctx context.Context, cond qb.Condition) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}
	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) ListByOwner(ctx context.Context, ownerID string) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(qb.Eq("owner_id", ownerID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments by owner query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments by owner: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	query, args, err := qb.InsertModel("tournaments", tournamentToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tournament slug=%s: %w", item.Slug, translateError(err))
	}
	return nil
}

// Update writes the mutable columns. The slug is never rewritten.
func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) error {
	query, args, err := qb.Update("tournaments").
		Set("name", item.Name).
		Set("is_finished", item.IsFinished).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tournament query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tournament id=%s: %w", item.ID, err)
	}
	return expectAffected(res, "tournament "+item.ID)
}
