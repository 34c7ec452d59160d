package player

// Eligibility reports whether a player with the given card counts may take
// part in the next match.
func Eligibility(redCards, yellowCards int) bool {
	return !(redCards >= 1 || yellowCards >= 2)
}

// RefreshEligibility normalizes card counters and recomputes
// IsAllowedToPlay. Two yellows without a red count as one red; the
// conversion is remembered so that withdrawing the second yellow also
// withdraws the red it produced. Calling it repeatedly is a no-op.
func (p *Player) RefreshEligibility() {
	if p.SecondYellowRed && p.YellowCards < 2 {
		p.RedCards--
		if p.RedCards < 0 {
			p.RedCards = 0
		}
		p.SecondYellowRed = false
	}
	if p.YellowCards >= 2 && p.RedCards == 0 {
		p.RedCards = 1
		p.SecondYellowRed = true
	}

	p.IsAllowedToPlay = Eligibility(p.RedCards, p.YellowCards)
}
