package pick

import "time"

// Outcome derives the pick result from a decided match. A tie beats any
// selection; otherwise the pick wins iff it selected the winning side.
func Outcome(selectedTeamID, homeTeamID, awayTeamID string, homeScore, awayScore int) Result {
	if homeScore == awayScore {
		return ResultTie
	}

	winner := homeTeamID
	if awayScore > homeScore {
		winner = awayTeamID
	}
	if selectedTeamID == winner {
		return ResultWin
	}
	return ResultLoss
}

// AnticipationMultiplier rewards early commitment: zero at or after kickoff,
// one for any advance pick under an hour, and one per full hour of advance
// notice beyond that, unbounded above. Zero timestamps score as zero so a
// corrupt record cannot block the rest of a batch.
func AnticipationMultiplier(createdAt, kickoffAt time.Time) int {
	if createdAt.IsZero() || kickoffAt.IsZero() {
		return 0
	}

	diff := kickoffAt.Sub(createdAt)
	if diff <= 0 {
		return 0
	}
	if diff < time.Hour {
		return 1
	}
	return int(diff / time.Hour)
}

// Points converts a result and multiplier into earned points. Ties pay half
// the multiplier, floored; losses pay nothing.
func Points(result Result, multiplier int) int {
	if multiplier < 0 {
		multiplier = 0
	}
	switch result {
	case ResultWin:
		return multiplier
	case ResultTie:
		return multiplier / 2
	default:
		return 0
	}
}
