package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/survivor-pool/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.Season
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	byID := make(map[string]season.Season, len(seasons))
	for _, item := range seasons {
		byID[item.ID] = item
	}

	return &SeasonRepository{seasons: byID}
}

func (r *SeasonRepository) GetActive(_ context.Context) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.seasons {
		if item.IsActive {
			return item, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) UpdateCurrentWeek(_ context.Context, seasonID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.seasons[seasonID]
	if !ok {
		return fmt.Errorf("season %s not found", seasonID)
	}
	item.CurrentWeek = week
	r.seasons[seasonID] = item
	return nil
}
