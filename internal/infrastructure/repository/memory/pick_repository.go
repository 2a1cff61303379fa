package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	picks map[string]pick.Pick
}

func NewPickRepository(picks []pick.Pick) *PickRepository {
	byID := make(map[string]pick.Pick, len(picks))
	for _, item := range picks {
		byID[item.ID] = item
	}

	return &PickRepository{picks: byID}
}

func (r *PickRepository) ListPendingBySeason(_ context.Context, seasonID string, maxWeek int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picks {
		if item.SeasonID == seasonID && item.Week <= maxWeek && !item.Result.IsDecided() {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListBySeasonUpToWeek(_ context.Context, seasonID string, maxWeek int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picks {
		if item.SeasonID == seasonID && item.Week <= maxWeek {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListByEntry(_ context.Context, entryID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picks {
		if item.EntryID == entryID {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListByEntryAndWeek(_ context.Context, entryID string, week int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picks {
		if item.EntryID == entryID && item.Week == week {
			out = append(out, item)
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) Insert(_ context.Context, item pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.picks[item.ID]; exists {
		return fmt.Errorf("pick %s already exists", item.ID)
	}
	r.picks[item.ID] = item
	return nil
}

func (r *PickRepository) UpdateScore(_ context.Context, pickID string, result pick.Result, points, multiplier int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.picks[pickID]
	if !ok {
		return fmt.Errorf("pick %s not found", pickID)
	}
	item.Result = result
	item.PointsEarned = points
	item.Multiplier = multiplier
	r.picks[pickID] = item
	return nil
}

func sortPicks(items []pick.Pick) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week < items[j].Week
		}
		if items[i].EntryID != items[j].EntryID {
			return items[i].EntryID < items[j].EntryID
		}
		return items[i].ID < items[j].ID
	})
}
