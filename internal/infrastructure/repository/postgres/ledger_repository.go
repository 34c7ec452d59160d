package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/ledger"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

type LedgerRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Commit writes a changeset inside one transaction. The match row is
// locked first so concurrent commits on the same match queue up behind it.
func (r *LedgerRepository) Commit(ctx context.Context, changes ledger.Changeset) error {
	if changes.Empty() {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx commit ledger: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := r.now()
	m := changes.Match

	lockQuery, lockArgs, err := qb.Select("id").From("matches").
		Where(qb.Eq("id", m.ID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock match query: %w", err)
	}
	var lockedID string
	if err := tx.GetContext(ctx, &lockedID, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return errors.Newf("match %s not found", m.ID)
		}
		return fmt.Errorf("lock match id=%s: %w", m.ID, err)
	}

	matchQuery, matchArgs, err := qb.Update("matches").
		Set("home_score", m.HomeScore).
		Set("away_score", m.AwayScore).
		Set("is_finished", m.IsFinished).
		Set("updated_at", updatedOrCreated(m.UpdatedAt, now)).
		Where(qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match score query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, matchQuery, matchArgs...); err != nil {
		return fmt.Errorf("update match score id=%s: %w", m.ID, err)
	}

	for _, t := range changes.Teams {
		if err := updateTeam(ctx, tx, t, now); err != nil {
			return err
		}
	}
	for _, p := range changes.Players {
		if err := updatePlayerCounters(ctx, tx, p, now); err != nil {
			return err
		}
	}

	if len(changes.DeleteEventIDs) > 0 {
		query, args, err := qb.DeleteFrom("match_events").
			Where(
				qb.Eq("match_id", m.ID),
				qb.InStrings("id", changes.DeleteEventIDs),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete match events query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete match events: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected for delete match events: %w", err)
		}
		if int(n) != len(changes.DeleteEventIDs) {
			return errors.Wrapf(ledger.ErrEventNotFound, "deleted=%d want=%d", n, len(changes.DeleteEventIDs))
		}
	}

	if len(changes.InsertEvents) > 0 {
		rows := make([]any, 0, len(changes.InsertEvents))
		for _, e := range changes.InsertEvents {
			rows = append(rows, eventToRow(e))
		}
		query, args, err := qb.InsertModels("match_events", rows, "")
		if err != nil {
			return fmt.Errorf("build insert match events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match events: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger tx match=%s: %w", m.ID, err)
	}
	return nil
}
