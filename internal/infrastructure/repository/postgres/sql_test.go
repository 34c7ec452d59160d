package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

func TestTranslateError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate team name",
			err:  &pq.Error{Code: codeUniqueViolation, Constraint: "teams_tournament_name_key", Message: "duplicate key"},
			want: team.ErrNameTaken,
		},
		{
			name: "double booked slot inside wrapped error",
			err:  fmt.Errorf("commit: %w", &pq.Error{Code: codeUniqueViolation, Constraint: "matches_field_slot_key"}),
			want: match.ErrSlotTaken,
		},
		{
			name: "field still referenced",
			err:  &pq.Error{Code: codeForeignKeyViolation, Constraint: "matches_field_id_fkey"},
			want: field.ErrInUse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("translateError() got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestTranslateErrorPassThrough(t *testing.T) {
	t.Parallel()

	unknown := &pq.Error{Code: codeUniqueViolation, Constraint: "something_else"}
	if got := translateError(unknown); got != error(unknown) {
		t.Fatalf("unknown constraint must pass through, got=%v", got)
	}
	plain := fakeErr("pq: relation matches does not exist")
	if got := translateError(plain); got != error(plain) {
		t.Fatalf("non pq error must pass through, got=%v", got)
	}
	if translateError(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("unexpected not found for unrelated error")
	}
}

func TestNullString(t *testing.T) {
	t.Parallel()

	if got := nullString(""); got.Valid {
		t.Fatalf("empty string must be NULL, got=%+v", got)
	}
	if got := nullString("p1"); !got.Valid || got.String != "p1" {
		t.Fatalf("unexpected null string got=%+v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
