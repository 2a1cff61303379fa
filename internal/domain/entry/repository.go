package entry

import "context"

type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Entry, error)
	// ListActiveBySeason returns entries that are still in the contest.
	ListActiveBySeason(ctx context.Context, seasonID string) ([]Entry, error)
	Get(ctx context.Context, entryID string) (Entry, bool, error)
	UpdateStatistics(ctx context.Context, entryID string, stats Statistics) error
}
