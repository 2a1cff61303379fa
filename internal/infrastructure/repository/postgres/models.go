package postgres

import (
	"database/sql"
	"time"
)

type seasonTableModel struct {
	ID          int64        `db:"id"`
	PublicID    string       `db:"public_id"`
	Year        int          `db:"year"`
	Name        string       `db:"name"`
	IsActive    bool         `db:"is_active"`
	CurrentWeek int          `db:"current_week"`
	MaxWeeks    int          `db:"max_weeks"`
	StartDate   time.Time    `db:"start_date"`
	EndDate     sql.NullTime `db:"end_date"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
	DeletedAt   *time.Time   `db:"deleted_at"`
}

type teamTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Name         string     `db:"name"`
	City         string     `db:"city"`
	Abbreviation string     `db:"abbreviation"`
	Conference   string     `db:"conference"`
	Division     string     `db:"division"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type matchTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	SeasonID   string        `db:"season_public_id"`
	Week       int           `db:"week"`
	HomeTeamID string        `db:"home_team_public_id"`
	AwayTeamID string        `db:"away_team_public_id"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
	GameType   string        `db:"game_type"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID   string        `db:"public_id"`
	SeasonID   string        `db:"season_public_id"`
	Week       int           `db:"week"`
	HomeTeamID string        `db:"home_team_public_id"`
	AwayTeamID string        `db:"away_team_public_id"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
	GameType   string        `db:"game_type"`
}

type entryTableModel struct {
	ID             int64         `db:"id"`
	PublicID       string        `db:"public_id"`
	UserID         string        `db:"user_id"`
	SeasonID       string        `db:"season_public_id"`
	Name           string        `db:"name"`
	Points         int           `db:"points"`
	Status         string        `db:"status"`
	IsActive       bool          `db:"is_active"`
	EliminatedWeek sql.NullInt64 `db:"eliminated_week"`
	TotalWins      int           `db:"total_wins"`
	TotalLosses    int           `db:"total_losses"`
	CurrentStreak  int           `db:"current_streak"`
	LongestStreak  int           `db:"longest_streak"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	DeletedAt      *time.Time    `db:"deleted_at"`
}

type pickTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	EntryID        string     `db:"entry_public_id"`
	SeasonID       string     `db:"season_public_id"`
	MatchID        string     `db:"match_public_id"`
	Week           int        `db:"week"`
	SelectedTeamID string     `db:"selected_team_public_id"`
	Result         string     `db:"result"`
	PointsEarned   int        `db:"points_earned"`
	Multiplier     int        `db:"multiplier"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

// created_at is written explicitly because the assigner backdates fallback
// picks to one minute before kickoff.
type pickInsertModel struct {
	PublicID       string    `db:"public_id"`
	EntryID        string    `db:"entry_public_id"`
	SeasonID       string    `db:"season_public_id"`
	MatchID        string    `db:"match_public_id"`
	Week           int       `db:"week"`
	SelectedTeamID string    `db:"selected_team_public_id"`
	Result         string    `db:"result"`
	PointsEarned   int       `db:"points_earned"`
	Multiplier     int       `db:"multiplier"`
	CreatedAt      time.Time `db:"created_at"`
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int64)
	return &out
}

func intPtrToNullInt64(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullTimeToPtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	out := value.Time
	return &out
}
