package pick

import (
	"strings"
	"time"
)

type Result string

const (
	ResultWin     Result = "W"
	ResultLoss    Result = "L"
	ResultTie     Result = "T"
	ResultPending Result = "pending"
)

func NormalizeResult(value string) Result {
	switch strings.TrimSpace(value) {
	case "W", "w", "win":
		return ResultWin
	case "L", "l", "loss":
		return ResultLoss
	case "T", "t", "tie":
		return ResultTie
	default:
		return ResultPending
	}
}

// IsDecided reports whether the pick has been scored.
func (r Result) IsDecided() bool {
	switch r {
	case ResultWin, ResultLoss, ResultTie:
		return true
	default:
		return false
	}
}

// Pick is one entry's team selection for a week. Exactly one pick exists per
// (entry, week) in steady state; the auto-pick assigner only inserts for
// entries that have none.
type Pick struct {
	ID             string
	EntryID        string
	SeasonID       string
	MatchID        string
	Week           int
	SelectedTeamID string
	Result         Result
	PointsEarned   int
	Multiplier     int
	CreatedAt      time.Time
}
