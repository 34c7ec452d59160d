package postgres

import (
	"context"
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// matchInsertBatch keeps one multi-row insert well below the postgres
// bind parameter limit.
const matchInsertBatch = 500

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, tournamentID, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(
			qb.Eq("id", matchID),
			qb.Eq("tournament_id", tournamentID),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match id=%s: %w", matchID, err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("start_time", "field_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, items ...match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx insert matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(items); start += matchInsertBatch {
		end := min(start+matchInsertBatch, len(items))
		rows := make([]any, 0, end-start)
		for _, item := range items[start:end] {
			rows = append(rows, matchToRow(item))
		}
		query, args, err := qb.InsertModels("matches", rows, "")
		if err != nil {
			return fmt.Errorf("build insert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert matches batch=%d: %w", start/matchInsertBatch, translateError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert matches tx: %w", translateError(err))
	}
	return nil
}

// UpdateStartTimes moves the given matches in one transaction. The slot
// constraint is deferred, so intermediate overlaps inside the cascade are
// fine and only the final layout is checked at commit.
func (r *MatchRepository) UpdateStartTimes(ctx context.Context, tournamentID string, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update match start times: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		query, args, err := qb.Update("matches").
			Set("start_time", item.StartTime).
			Set("updated_at", item.UpdatedAt).
			Where(
				qb.Eq("id", item.ID),
				qb.Eq("tournament_id", tournamentID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update match start time query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update match start time id=%s: %w", item.ID, translateError(err))
		}
		if err := expectAffected(res, "match "+item.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update match start times tx: %w", translateError(err))
	}
	return nil
}
