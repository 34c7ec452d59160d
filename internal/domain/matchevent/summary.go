package matchevent

import (
	"fmt"
	"strings"
)

// Names carries display names used to render an event summary.
type Names struct {
	Player     string
	Substitute string
	Team       string
}

// Summary renders a one-line description such as "GOAL: Ana (Lions) 23'".
func Summary(e Event, names Names) string {
	who := strings.TrimSpace(names.Player)
	if who == "" {
		who = "Unknown player"
	}
	if e.Type == TypeSubstitution {
		sub := strings.TrimSpace(names.Substitute)
		if sub == "" {
			sub = "Unknown player"
		}
		who = who + " → " + sub
	}

	team := strings.TrimSpace(names.Team)
	if team == "" {
		return fmt.Sprintf("%s: %s %d'", e.Type.Label(), who, e.Minute)
	}
	return fmt.Sprintf("%s: %s (%s) %d'", e.Type.Label(), who, team, e.Minute)
}
