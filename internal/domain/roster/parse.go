package roster

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	ReasonNoCurrentTeam   = "player line before any team"
	ReasonEmptyPlayerName = "empty player name"
	ReasonUnrecognized    = "unrecognized line"
)

// TeamBlock is one team line followed by its player lines.
type TeamBlock struct {
	Line    int
	Name    string
	Players []string
}

// Skipped is an input line the import ignored.
type Skipped struct {
	Line   int
	Text   string
	Reason string
}

// Plan is the parsed form of a batch roster text.
type Plan struct {
	Teams   []TeamBlock
	Skipped []Skipped
}

// PlayerCount is the number of player lines accepted into the plan.
func (p Plan) PlayerCount() int {
	total := 0
	for _, t := range p.Teams {
		total += len(t.Players)
	}
	return total
}

// Parse reads a batch roster. A trimmed line starting with an uppercase
// letter opens a team; "-name" adds a player to the most recent team.
// Blank lines are ignored. Duplicate player names within a team collapse.
// Lines of any length are read.
func Parse(text string) Plan {
	var plan Plan
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		first, _ := utf8.DecodeRuneInString(line)
		switch {
		case unicode.IsUpper(first):
			plan.Teams = append(plan.Teams, TeamBlock{Line: lineNo, Name: line})
		case first == '-':
			if len(plan.Teams) == 0 {
				plan.Skipped = append(plan.Skipped, Skipped{Line: lineNo, Text: clip(line), Reason: ReasonNoCurrentTeam})
				continue
			}
			name := strings.TrimSpace(line[1:])
			if name == "" {
				plan.Skipped = append(plan.Skipped, Skipped{Line: lineNo, Text: clip(line), Reason: ReasonEmptyPlayerName})
				continue
			}
			current := &plan.Teams[len(plan.Teams)-1]
			if !contains(current.Players, name) {
				current.Players = append(current.Players, name)
			}
		default:
			plan.Skipped = append(plan.Skipped, Skipped{Line: lineNo, Text: clip(line), Reason: ReasonUnrecognized})
		}
	}

	return plan
}

// ParseLines is Parse over already split input, such as CSV rows.
func ParseLines(lines []string) Plan {
	return Parse(strings.Join(lines, "\n"))
}

const maxSkippedText = 120

// clip shortens echoed skip text; the line number identifies the rest.
func clip(line string) string {
	if len(line) <= maxSkippedText {
		return line
	}
	cut := maxSkippedText
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut] + "..."
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
