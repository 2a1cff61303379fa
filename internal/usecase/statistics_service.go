package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
	"github.com/riskibarqy/survivor-pool/internal/platform/resilience"
)

const defaultStatsWorkers = 4

type EntryStatsService struct {
	seasonRepo season.Repository
	entryRepo  entry.Repository
	pickRepo   pick.Repository
	logger     *logging.Logger
	now        func() time.Time
	flight     resilience.SingleFlight
	maxWorkers int
}

func NewEntryStatsService(
	seasonRepo season.Repository,
	entryRepo entry.Repository,
	pickRepo pick.Repository,
	logger *logging.Logger,
) *EntryStatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EntryStatsService{
		seasonRepo: seasonRepo,
		entryRepo:  entryRepo,
		pickRepo:   pickRepo,
		logger:     logger,
		now:        time.Now,
		maxWorkers: defaultStatsWorkers,
	}
}

// RecomputeEntryStatistics rebuilds every entry's cumulative record in the
// active season from its full pick history. Entries are independent, so the
// recompute fans out across a worker pool; within an entry, picks are always
// folded in week order. Concurrent runs for the same season coalesce.
func (s *EntryStatsService) RecomputeEntryStatistics(ctx context.Context) (EntryStatsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryStatsService.RecomputeEntryStatistics")
	defer span.End()

	activeSeason, ok, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return EntryStatsResult{}, fmt.Errorf("get active season: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "skip entry statistics: no active season")
		return EntryStatsResult{Status: RunStatusNoData}, nil
	}

	value, err, _ := s.flight.Do("stats:"+activeSeason.ID, func() (any, error) {
		return s.recomputeSeason(ctx, activeSeason)
	})
	if err != nil {
		return EntryStatsResult{}, err
	}
	return value.(EntryStatsResult), nil
}

func (s *EntryStatsService) recomputeSeason(ctx context.Context, activeSeason season.Season) (EntryStatsResult, error) {
	start := s.now()

	entries, err := s.entryRepo.ListBySeason(ctx, activeSeason.ID)
	if err != nil {
		return EntryStatsResult{}, fmt.Errorf("list entries: %w", err)
	}

	workerCount := s.maxWorkers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(entries) && len(entries) > 0 {
		workerCount = len(entries)
	}

	result := EntryStatsResult{
		Status:      RunStatusCompleted,
		SeasonID:    activeSeason.ID,
		EntryCount:  len(entries),
		WorkerCount: workerCount,
	}
	if len(entries) == 0 {
		result.Status = RunStatusNoData
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return EntryStatsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var updatedCount atomic.Int32
	var eliminatedCount atomic.Int32
	var failedCount atomic.Int32
	var failuresMu sync.Mutex
	failures := make([]RunFailure, 0)

	var wg sync.WaitGroup
	for _, item := range entries {
		item := item
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			eliminated, err := s.recomputeEntry(ctx, item)
			if err != nil {
				failedCount.Add(1)
				failuresMu.Lock()
				failures = append(failures, RunFailure{Ref: item.ID, Reason: err.Error()})
				failuresMu.Unlock()
				return
			}
			updatedCount.Add(1)
			if eliminated {
				eliminatedCount.Add(1)
			}
		}); err != nil {
			wg.Done()
			return EntryStatsResult{}, fmt.Errorf("submit entry to worker pool: %w", err)
		}
	}
	wg.Wait()

	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Ref < failures[j].Ref
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.EliminatedCount = int(eliminatedCount.Load())
	result.FailedCount = int(failedCount.Load())
	if len(failures) > 0 {
		result.Failures = failures
		result.Status = RunStatusPartialFailure
	}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "entry statistics finished",
		"season_id", activeSeason.ID,
		"status", string(result.Status),
		"entries", result.EntryCount,
		"updated", result.UpdatedCount,
		"eliminated", result.EliminatedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *EntryStatsService) recomputeEntry(ctx context.Context, item entry.Entry) (bool, error) {
	picks, err := s.pickRepo.ListByEntry(ctx, item.ID)
	if err != nil {
		return false, fmt.Errorf("list picks for entry %s: %w", item.ID, err)
	}

	stats := entry.Aggregate(picks)
	if err := s.entryRepo.UpdateStatistics(ctx, item.ID, stats); err != nil {
		return false, fmt.Errorf("update statistics for entry %s: %w", item.ID, err)
	}
	return stats.Status == entry.StatusEliminated, nil
}
