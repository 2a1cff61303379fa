package entry

import (
	"sort"

	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
)

// Statistics is the cumulative state derived from an entry's scored picks.
type Statistics struct {
	TotalWins      int
	TotalLosses    int
	CurrentStreak  int
	LongestStreak  int
	Points         int
	Status         Status
	EliminatedWeek *int
	IsActive       bool
}

// Aggregate folds an entry's picks, in ascending week order, into cumulative
// statistics. The fold stops at the eliminating second loss; picks in later
// weeks never influence the outcome, which makes recomputation reproduce the
// same eliminated_week for the same history. Pending picks are skipped.
func Aggregate(picks []pick.Pick) Statistics {
	ordered := make([]pick.Pick, len(picks))
	copy(ordered, picks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Week < ordered[j].Week
	})

	stats := Statistics{Status: StatusAlive}
	lossCount := 0
	tempStreak := 0
	folded := make([]pick.Pick, 0, len(ordered))

	for _, item := range ordered {
		if !item.Result.IsDecided() {
			continue
		}
		folded = append(folded, item)
		stats.Points += item.PointsEarned

		switch item.Result {
		case pick.ResultWin:
			stats.TotalWins++
			tempStreak++
			if tempStreak > stats.LongestStreak {
				stats.LongestStreak = tempStreak
			}
		case pick.ResultLoss:
			stats.TotalLosses++
			lossCount++
			tempStreak = 0
			if lossCount == 1 {
				stats.Status = StatusLastChance
			}
		case pick.ResultTie:
			// Ties leave the streak untouched in either direction.
		}

		if lossCount >= 2 {
			week := item.Week
			stats.Status = StatusEliminated
			stats.EliminatedWeek = &week
			break
		}
	}

	stats.CurrentStreak = trailingWins(folded)
	stats.IsActive = stats.Status != StatusEliminated
	return stats
}

// trailingWins counts consecutive wins from the most recent decided pick
// backward, stopping at the first non-win. tempStreak cannot be reused here
// because losses zero it before the fold stops.
func trailingWins(folded []pick.Pick) int {
	streak := 0
	for i := len(folded) - 1; i >= 0; i-- {
		if folded[i].Result != pick.ResultWin {
			break
		}
		streak++
	}
	return streak
}
