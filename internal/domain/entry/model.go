package entry

import "strings"

type Status string

const (
	StatusAlive      Status = "alive"
	StatusLastChance Status = "last_chance"
	StatusEliminated Status = "eliminated"
)

func NormalizeStatus(value string) Status {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "last_chance":
		return StatusLastChance
	case "eliminated":
		return StatusEliminated
	default:
		return StatusAlive
	}
}

// Entry is one contestant's participation in a season. Status only moves
// forward: alive, last_chance after the first loss, eliminated after the
// second. EliminatedWeek freezes at the week of the second loss.
type Entry struct {
	ID             string
	UserID         string
	SeasonID       string
	Name           string
	Points         int
	Status         Status
	IsActive       bool
	EliminatedWeek *int
	TotalWins      int
	TotalLosses    int
	CurrentStreak  int
	LongestStreak  int
}
