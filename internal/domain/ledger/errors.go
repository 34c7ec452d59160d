package ledger

import "github.com/cockroachdb/errors"

// Rule violations refused at the ledger boundary.
var (
	ErrSuspendedPlayer     = errors.New("suspended player cannot score")
	ErrMissingSubstitute   = errors.New("substitution requires a substitute player")
	ErrSubstituteWrongTeam = errors.New("substitute must belong to the same team")
)

// Input errors detected before any mutation.
var (
	ErrTeamNotInMatch       = errors.New("team does not play in this match")
	ErrPlayerNotInTeam      = errors.New("player does not belong to the event team")
	ErrUnexpectedSubstitute = errors.New("only substitutions carry a substitute player")
	ErrEventMatchMismatch   = errors.New("event belongs to another match")
)

// Missing references.
var (
	ErrEventNotFound  = errors.New("match event not found")
	ErrPlayerNotFound = errors.New("player not found")
)

// IsRuleViolation reports whether err was refused by a ledger rule.
func IsRuleViolation(err error) bool {
	return errors.IsAny(err, ErrSuspendedPlayer, ErrMissingSubstitute, ErrSubstituteWrongTeam)
}

// IsNotFound reports whether err points at a missing ledger reference.
func IsNotFound(err error) bool {
	return errors.IsAny(err, ErrEventNotFound, ErrPlayerNotFound)
}
