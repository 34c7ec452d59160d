package team

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrNameTaken = errors.New("team name already used in tournament")

// Team is a club entered into one tournament.
type Team struct {
	ID               string
	TournamentID     string
	Name             string
	LogoURL          string
	TournamentPoints int
	MatchPoints      int
	CreatedAt        time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.TournamentID == "" {
		return fmt.Errorf("team tournament id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len([]rune(t.Name)) > 100 {
		return fmt.Errorf("team name must be at most 100 characters")
	}
	if t.TournamentPoints < 0 || t.MatchPoints < 0 {
		return fmt.Errorf("team points cannot be negative")
	}

	return nil
}

// SameName compares team names the way the uniqueness constraint does.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
