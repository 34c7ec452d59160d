package schedule

import (
	"fmt"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/field"
	"github.com/VeselinMar/TournamentManager/internal/domain/match"
	"github.com/cockroachdb/errors"
)

var ErrNoFields = errors.New("tournament has no fields to schedule on")

// Options control how rounds are laid out on fields and time slots.
type Options struct {
	TournamentID string
	Start        time.Time
	Duration     time.Duration
	Pause        time.Duration
	// NewID returns a fresh match identifier.
	NewID func() (string, error)
	Now   time.Time
}

func (o Options) Validate() error {
	if o.TournamentID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if o.Start.IsZero() {
		return fmt.Errorf("schedule start time is required")
	}
	if o.Duration <= 0 {
		return fmt.Errorf("game duration must be positive")
	}
	if o.Pause < 0 {
		return fmt.Errorf("pause duration cannot be negative")
	}
	if o.NewID == nil {
		return fmt.Errorf("id generator is required")
	}
	return nil
}

// Build turns rounds into matches. Each round is split into time slots of as
// many pairings as there are fields; pairing i of a slot goes to
// fields[i mod len(fields)]. The clock advances by duration+pause after
// every slot. A team may play in consecutive slots.
func Build(rounds []Round, fields []field.Field, opts Options) ([]match.Match, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	step := opts.Duration + opts.Pause
	clock := opts.Start
	out := make([]match.Match, 0, countPairings(rounds))
	for _, round := range rounds {
		for start := 0; start < len(round.Pairings); start += len(fields) {
			end := min(start+len(fields), len(round.Pairings))
			for i, pairing := range round.Pairings[start:end] {
				id, err := opts.NewID()
				if err != nil {
					return nil, fmt.Errorf("generate match id: %w", err)
				}
				item := match.Match{
					ID:           id,
					TournamentID: opts.TournamentID,
					HomeTeamID:   pairing.HomeTeamID,
					AwayTeamID:   pairing.AwayTeamID,
					FieldID:      fields[i%len(fields)].ID,
					StartTime:    clock,
					CreatedAt:    opts.Now,
					UpdatedAt:    opts.Now,
				}
				if err := item.Validate(); err != nil {
					return nil, fmt.Errorf("round %d: %w", round.Number, err)
				}
				out = append(out, item)
			}
			clock = clock.Add(step)
		}
	}

	return out, nil
}

func countPairings(rounds []Round) int {
	total := 0
	for _, r := range rounds {
		total += len(r.Pairings)
	}
	return total
}
