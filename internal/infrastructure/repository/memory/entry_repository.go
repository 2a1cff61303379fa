package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
)

type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]entry.Entry
}

func NewEntryRepository(entries []entry.Entry) *EntryRepository {
	byID := make(map[string]entry.Entry, len(entries))
	for _, item := range entries {
		byID[item.ID] = item
	}

	return &EntryRepository{entries: byID}
}

func (r *EntryRepository) ListBySeason(_ context.Context, seasonID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.entries))
	for _, item := range r.entries {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *EntryRepository) ListActiveBySeason(_ context.Context, seasonID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.entries))
	for _, item := range r.entries {
		if item.SeasonID == seasonID && item.IsActive {
			out = append(out, item)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *EntryRepository) Get(_ context.Context, entryID string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.entries[entryID]
	return item, ok, nil
}

func (r *EntryRepository) UpdateStatistics(_ context.Context, entryID string, stats entry.Statistics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.entries[entryID]
	if !ok {
		return fmt.Errorf("entry %s not found", entryID)
	}
	item.TotalWins = stats.TotalWins
	item.TotalLosses = stats.TotalLosses
	item.CurrentStreak = stats.CurrentStreak
	item.LongestStreak = stats.LongestStreak
	item.Points = stats.Points
	item.Status = stats.Status
	item.EliminatedWeek = stats.EliminatedWeek
	item.IsActive = stats.IsActive
	r.entries[entryID] = item
	return nil
}

func sortEntries(items []entry.Entry) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
