package pick

import "context"

type Repository interface {
	// ListPendingBySeason returns undecided picks for weeks <= maxWeek.
	ListPendingBySeason(ctx context.Context, seasonID string, maxWeek int) ([]Pick, error)
	// ListBySeasonUpToWeek returns every pick for weeks <= maxWeek regardless
	// of result. Used by the explicit replay operation.
	ListBySeasonUpToWeek(ctx context.Context, seasonID string, maxWeek int) ([]Pick, error)
	// ListByEntry returns the entry's picks ordered by week ascending.
	ListByEntry(ctx context.Context, entryID string) ([]Pick, error)
	ListByEntryAndWeek(ctx context.Context, entryID string, week int) ([]Pick, error)
	Insert(ctx context.Context, item Pick) error
	// UpdateScore records the derived (result, points, multiplier) for a pick.
	UpdateScore(ctx context.Context, pickID string, result Result, points, multiplier int) error
}
