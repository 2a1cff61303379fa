package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
	"github.com/riskibarqy/survivor-pool/internal/platform/resilience"
)

const defaultScoringWorkers = 4

type PickScoringService struct {
	seasonRepo season.Repository
	matchRepo  match.Repository
	pickRepo   pick.Repository
	logger     *logging.Logger
	now        func() time.Time
	flight     resilience.SingleFlight
	maxWorkers int
}

func NewPickScoringService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	pickRepo pick.Repository,
	logger *logging.Logger,
) *PickScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PickScoringService{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		pickRepo:   pickRepo,
		logger:     logger,
		now:        time.Now,
		maxWorkers: defaultScoringWorkers,
	}
}

// ScorePendingPicks settles every pending pick in the active season whose
// match has finished, up to and including the season's current week. Picks on
// matches still in play are skipped and picked up by a later run. Concurrent
// runs for the same season coalesce into one.
func (s *PickScoringService) ScorePendingPicks(ctx context.Context) (PickScoringResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickScoringService.ScorePendingPicks")
	defer span.End()

	activeSeason, ok, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return PickScoringResult{}, fmt.Errorf("get active season: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "skip pick scoring: no active season")
		return PickScoringResult{Status: RunStatusNoData}, nil
	}

	value, err, _ := s.flight.Do("scoring:"+activeSeason.ID, func() (any, error) {
		picks, err := s.pickRepo.ListPendingBySeason(ctx, activeSeason.ID, activeSeason.CurrentWeek)
		if err != nil {
			return PickScoringResult{}, fmt.Errorf("list pending picks: %w", err)
		}
		return s.scoreBatch(ctx, activeSeason, picks, false)
	})
	if err != nil {
		return PickScoringResult{}, err
	}
	return value.(PickScoringResult), nil
}

// ReplayScores recomputes every pick up to throughWeek, decided ones
// included, against current match results. It exists for score corrections
// after a provider restated a final.
func (s *PickScoringService) ReplayScores(ctx context.Context, throughWeek int) (PickScoringResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickScoringService.ReplayScores")
	defer span.End()

	if throughWeek < 1 {
		return PickScoringResult{}, fmt.Errorf("%w: through_week must be greater than zero", ErrInvalidInput)
	}

	activeSeason, ok, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return PickScoringResult{}, fmt.Errorf("get active season: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "skip score replay: no active season")
		return PickScoringResult{Status: RunStatusNoData}, nil
	}
	week := activeSeason.ClampWeek(throughWeek)

	value, err, _ := s.flight.Do("scoring:"+activeSeason.ID, func() (any, error) {
		picks, err := s.pickRepo.ListBySeasonUpToWeek(ctx, activeSeason.ID, week)
		if err != nil {
			return PickScoringResult{}, fmt.Errorf("list picks for replay: %w", err)
		}
		return s.scoreBatch(ctx, activeSeason, picks, true)
	})
	if err != nil {
		return PickScoringResult{}, err
	}
	return value.(PickScoringResult), nil
}

func (s *PickScoringService) scoreBatch(
	ctx context.Context,
	activeSeason season.Season,
	picks []pick.Pick,
	replay bool,
) (PickScoringResult, error) {
	start := s.now()
	result := PickScoringResult{
		Status:   RunStatusCompleted,
		SeasonID: activeSeason.ID,
	}
	if len(picks) == 0 {
		result.Status = RunStatusNoData
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	matchByID, err := s.loadMatchIndex(ctx, activeSeason.ID)
	if err != nil {
		return PickScoringResult{}, err
	}

	var mu sync.Mutex
	workers := pool.New().WithMaxGoroutines(s.maxWorkers)
	for _, item := range picks {
		item := item
		workers.Go(func() {
			outcome := s.scoreOne(ctx, item, matchByID, replay)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case outcome.err != nil:
				result.FailedCount++
				result.Failures = append(result.Failures, RunFailure{
					Ref:    item.ID,
					Reason: outcome.err.Error(),
				})
			case outcome.scored:
				result.ScoredCount++
			default:
				result.SkippedCount++
			}
		})
	}
	workers.Wait()

	sort.SliceStable(result.Failures, func(i, j int) bool {
		return result.Failures[i].Ref < result.Failures[j].Ref
	})
	if result.FailedCount > 0 {
		result.Status = RunStatusPartialFailure
	}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "pick scoring finished",
		"season_id", activeSeason.ID,
		"status", string(result.Status),
		"scored", result.ScoredCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
		"replay", replay,
	)
	return result, nil
}

type scoreOutcome struct {
	scored bool
	err    error
}

func (s *PickScoringService) scoreOne(
	ctx context.Context,
	item pick.Pick,
	matchByID map[string]match.Match,
	replay bool,
) scoreOutcome {
	game, ok := matchByID[item.MatchID]
	if !ok {
		return scoreOutcome{err: fmt.Errorf("match %s not found", item.MatchID)}
	}
	if !game.IsDecided() {
		return scoreOutcome{}
	}

	outcome := pick.Outcome(item.SelectedTeamID, game.HomeTeamID, game.AwayTeamID, *game.HomeScore, *game.AwayScore)
	multiplier := pick.AnticipationMultiplier(item.CreatedAt, game.KickoffAt)
	points := pick.Points(outcome, multiplier)

	if replay && item.Result == outcome && item.PointsEarned == points && item.Multiplier == multiplier {
		return scoreOutcome{}
	}

	if err := s.pickRepo.UpdateScore(ctx, item.ID, outcome, points, multiplier); err != nil {
		return scoreOutcome{err: fmt.Errorf("update pick score: %w", err)}
	}
	return scoreOutcome{scored: true}
}

func (s *PickScoringService) loadMatchIndex(ctx context.Context, seasonID string) (map[string]match.Match, error) {
	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches for scoring: %w", err)
	}

	out := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		out[item.ID] = item
	}
	return out, nil
}
