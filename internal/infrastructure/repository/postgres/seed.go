package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/infrastructure/repository/memory"
	qb "github.com/VeselinMar/TournamentManager/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// SeedDemo inserts the demo tournament when the database holds no
// tournaments yet.
func SeedDemo(ctx context.Context, db *sqlx.DB, ownerID string, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tournaments`); err != nil {
		return fmt.Errorf("count tournaments for demo seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	demo := memory.DemoData(ownerID, now)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("tournaments", tournamentToRow(demo.Tournament), "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build seed tournament query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed tournament %s: %w", demo.Tournament.ID, err)
	}

	if err := insertRoster(ctx, tx, demo.Teams, demo.Players); err != nil {
		return fmt.Errorf("seed demo roster: %w", err)
	}

	fields := make([]any, 0, len(demo.Fields))
	for _, f := range demo.Fields {
		fields = append(fields, fieldToRow(f))
	}
	query, args, err = qb.InsertModels("fields", fields, "")
	if err != nil {
		return fmt.Errorf("build seed fields query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed fields: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
