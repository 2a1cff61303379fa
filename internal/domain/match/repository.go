package match

import "context"

type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	ListBySeasonWeek(ctx context.Context, seasonID string, week int) ([]Match, error)
	// FindByTeams locates a match by its natural key within a season.
	FindByTeams(ctx context.Context, seasonID string, week int, homeTeamID, awayTeamID string) (Match, bool, error)
	Insert(ctx context.Context, item Match) error
	// UpdateResult replaces scores and status in place for an existing match.
	UpdateResult(ctx context.Context, matchID string, homeScore, awayScore *int, status Status) error
}
