package schedule

// Pairing is one home/away fixture of a round.
type Pairing struct {
	HomeTeamID string
	AwayTeamID string
}

// Round is one matchday of a round robin. Number starts at 1.
type Round struct {
	Number   int
	Pairings []Pairing
}

const bye = ""

// RoundRobin pairs every team with every other exactly once using the circle
// method. An odd team count gets a bye slot; pairings with the bye are
// dropped, so each round of n teams holds n/2 pairings, rounded down.
func RoundRobin(teamIDs []string) []Round {
	if len(teamIDs) < 2 {
		return nil
	}

	circle := append([]string(nil), teamIDs...)
	if len(circle)%2 == 1 {
		circle = append(circle, bye)
	}
	n := len(circle)

	rounds := make([]Round, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := Round{Number: r + 1, Pairings: make([]Pairing, 0, n/2)}
		for i := 0; i < n/2; i++ {
			home, away := circle[i], circle[n-1-i]
			if home == bye || away == bye {
				continue
			}
			round.Pairings = append(round.Pairings, Pairing{HomeTeamID: home, AwayTeamID: away})
		}
		rounds = append(rounds, round)
		rotate(circle)
	}

	return rounds
}

// rotate keeps position 0 fixed and shifts the rest one place clockwise.
func rotate(circle []string) {
	if len(circle) < 3 {
		return
	}
	last := circle[len(circle)-1]
	copy(circle[2:], circle[1:len(circle)-1])
	circle[1] = last
}

// PairCount is the number of fixtures a full round robin over n teams holds.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
