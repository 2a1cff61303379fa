package season

import "time"

// Season represents one contest year. Exactly one season is active at a time
// and every other query in the system is scoped to it.
type Season struct {
	ID          string
	Year        int
	Name        string
	IsActive    bool
	CurrentWeek int
	MaxWeeks    int
	StartDate   time.Time
	EndDate     *time.Time
}

// ClampWeek bounds a week to the valid [1, MaxWeeks] range.
func (s Season) ClampWeek(week int) int {
	if week < 1 {
		return 1
	}
	if s.MaxWeeks > 0 && week > s.MaxWeeks {
		return s.MaxWeeks
	}
	return week
}
