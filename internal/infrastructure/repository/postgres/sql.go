package postgres

import (
	"database/sql"
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
)

// constraintErrors maps constraint and unique index names from
// db/migrations onto domain errors.
var constraintErrors = map[string]error{
	"tournaments_slug_key":       tournament.ErrSlugTaken,
	"teams_tournament_name_key":  team.ErrNameTaken,
	"players_team_name_key":      player.ErrNameTaken,
	"fields_tournament_name_key": field.ErrNameTaken,
	"matches_field_slot_key":     match.ErrSlotTaken,
	"matches_field_id_fkey":      field.ErrInUse,
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// translateError turns integrity violations of known constraints into
// domain errors. Anything else is returned unchanged.
func translateError(err error) error {
	var pqErr *pq.Error
	if err == nil || !errors.As(err, &pqErr) {
		return err
	}
	if pqErr.Code != codeUniqueViolation && pqErr.Code != codeForeignKeyViolation {
		return err
	}
	sentinel, ok := constraintErrors[pqErr.Constraint]
	if !ok {
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, pqErr.Message)
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return errors.Newf("%s not found", what)
	}
	return nil
}
