package match

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusPostponed  Status = "postponed"
)

// Match is one scheduled game within a season week. Within a season it is
// uniquely identified by (week, home_team_id, away_team_id). Scores stay nil
// until the provider reports them.
type Match struct {
	ID         string
	SeasonID   string
	Week       int
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	HomeScore  *int
	AwayScore  *int
	Status     Status
	GameType   string
}

func NormalizeStatus(value string) Status {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "scheduled", "pre":
		return StatusScheduled
	case "in_progress", "live", "in":
		return StatusInProgress
	case "completed", "final", "post":
		return StatusCompleted
	case "postponed", "cancelled", "canceled":
		return StatusPostponed
	default:
		return StatusScheduled
	}
}

/// IsDecided reports whether the match can be scored: both scores recorded and
// play finished. A match never reverts out of this state.
func (m Match) IsDecided() bool {
	return m.Status == StatusCompleted && m.HomeScore != nil && m.AwayScore != nil
}

// WinnerTeamID returns the winning side of a decided match, or ("", false)
// on a tie or an undecided match.
func (m Match) WinnerTeamID() (string, bool) {
	if m.HomeScore == nil || m.AwayScore == nil {
		return "", false
	}
	switch {
	case *m.HomeScore > *m.AwayScore:
		return m.HomeTeamID, true
	case *m.HomeScore < *m.AwayScore:
		return m.AwayTeamID, true
	default:
		return "", false
	}
}
