package usecase

import (
	"errors"
	"fmt"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/ledger"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/VeselinMar/TournamentManager/internal/domain/matchevent"
	"github.com/VeselinMar/TournamentManager/internal/domain/player"
	"github.com/VeselinMar/TournamentManager/internal/domain/schedule"
	"github.com/VeselinMar/TournamentManager/internal/domain/team"
	"github.com/VeselinMar/TournamentManager/internal/domain/tournament"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrRuleViolation         = errors.New("rule violation")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify tags a domain error with its taxonomy kind. The domain error
// stays in the chain so callers can still match the precise cause.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var kind error
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden),
		errors.Is(err, ErrConflict), errors.Is(err, ErrRuleViolation), errors.Is(err, ErrDependencyUnavailable):
		return err
	case ledger.IsRuleViolation(err):
		kind = ErrRuleViolation
	case ledger.IsNotFound(err):
		kind = ErrNotFound
	case errors.Is(err, tournament.ErrSlugTaken),
		errors.Is(err, team.ErrNameTaken),
		errors.Is(err, player.ErrNameTaken),
		errors.Is(err, field.ErrNameTaken),
		errors.Is(err, match.ErrSlotTaken):
		kind = ErrConflict
	case errors.Is(err, match.ErrSelfMatch),
		errors.Is(err, matchevent.ErrUnknownType),
		errors.Is(err, matchevent.ErrInvalidEvent),
		errors.Is(err, ledger.ErrTeamNotInMatch),
		errors.Is(err, ledger.ErrPlayerNotInTeam),
		errors.Is(err, ledger.ErrUnexpectedSubstitute),
		errors.Is(err, ledger.ErrEventMatchMismatch),
		errors.Is(err, schedule.ErrNoFields),
		errors.Is(err, field.ErrInUse):
		kind = ErrInvalidInput
	case errors.Is(err, resilience.ErrCircuitOpen):
		kind = ErrDependencyUnavailable
	default:
		return err
	}

	return fmt.Errorf("%w: %w", kind, err)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// isCallerError reports errors that say nothing about backend health.
func isCallerError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) || errors.Is(err, ErrConflict) || errors.Is(err, ErrRuleViolation)
}
