package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
)

type WeekService struct {
	seasonRepo season.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewWeekService(seasonRepo season.Repository, logger *logging.Logger) *WeekService {
	if logger == nil {
		logger = logging.Default()
	}

	return &WeekService{
		seasonRepo: seasonRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// AdvanceCurrentWeek moves the active season's current week to the one
// implied by elapsed time since the season start, one week per seven days.
// The stored week only moves forward; reruns and clock drift can never pull
// it back.
func (s *WeekService) AdvanceCurrentWeek(ctx context.Context) (WeekAdvanceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.AdvanceCurrentWeek")
	defer span.End()

	start := s.now()

	activeSeason, ok, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return WeekAdvanceResult{}, fmt.Errorf("get active season: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "skip week advancement: no active season")
		return WeekAdvanceResult{Status: RunStatusNoData, DurationMs: time.Since(start).Milliseconds()}, nil
	}

	computed := elapsedWeek(activeSeason, start)
	result := WeekAdvanceResult{
		Status:       RunStatusCompleted,
		SeasonID:     activeSeason.ID,
		PreviousWeek: activeSeason.CurrentWeek,
		CurrentWeek:  activeSeason.CurrentWeek,
	}

	if computed <= activeSeason.CurrentWeek {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	if err := s.seasonRepo.UpdateCurrentWeek(ctx, activeSeason.ID, computed); err != nil {
		return WeekAdvanceResult{}, fmt.Errorf("update current week: %w", err)
	}
	result.CurrentWeek = computed
	result.Advanced = true
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "season week advanced",
		"season_id", activeSeason.ID,
		"previous_week", result.PreviousWeek,
		"current_week", result.CurrentWeek,
	)
	return result, nil
}

// elapsedWeek maps wall-clock time to a week number: week 1 covers the seven
// days starting at the season start, clamped to [1, MaxWeeks].
func elapsedWeek(activeSeason season.Season, now time.Time) int {
	if activeSeason.StartDate.IsZero() || now.Before(activeSeason.StartDate) {
		return 1
	}
	week := int(now.Sub(activeSeason.StartDate)/(7*24*time.Hour)) + 1
	return activeSeason.ClampWeek(week)
}
