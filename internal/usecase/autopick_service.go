package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/platform/id"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
	"github.com/riskibarqy/survivor-pool/internal/platform/resilience"
)

type AutoPickService struct {
	seasonRepo season.Repository
	entryRepo  entry.Repository
	matchRepo  match.Repository
	pickRepo   pick.Repository
	ids        id.Generator
	logger     *logging.Logger
	now        func() time.Time
	flight     resilience.SingleFlight
}

func NewAutoPickService(
	seasonRepo season.Repository,
	entryRepo entry.Repository,
	matchRepo match.Repository,
	pickRepo pick.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *AutoPickService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewRandomGenerator()
	}

	return &AutoPickService{
		seasonRepo: seasonRepo,
		entryRepo:  entryRepo,
		matchRepo:  matchRepo,
		pickRepo:   pickRepo,
		ids:        ids,
		logger:     logger,
		now:        time.Now,
	}
}

// AssignFallbackPicks inserts a fallback pick for every active entry that has
// none in the current week, once the week's last-starting match has kicked
// off. The pick's created_at is backdated to one minute before its match's
// kickoff so scoring awards the minimal nonzero multiplier. Concurrent runs
// for the same (season, week) coalesce into one.
func (s *AutoPickService) AssignFallbackPicks(ctx context.Context) (AutoPickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoPickService.AssignFallbackPicks")
	defer span.End()

	activeSeason, ok, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return AutoPickResult{}, fmt.Errorf("get active season: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "skip auto picks: no active season")
		return AutoPickResult{Status: RunStatusNoData}, nil
	}

	key := "autopick:" + activeSeason.ID + ":" + strconv.Itoa(activeSeason.CurrentWeek)
	value, err, _ := s.flight.Do(key, func() (any, error) {
		return s.assignForWeek(ctx, activeSeason)
	})
	if err != nil {
		return AutoPickResult{}, err
	}
	return value.(AutoPickResult), nil
}

func (s *AutoPickService) assignForWeek(ctx context.Context, activeSeason season.Season) (AutoPickResult, error) {
	start := s.now()
	week := activeSeason.CurrentWeek
	result := AutoPickResult{
		Status:   RunStatusCompleted,
		SeasonID: activeSeason.ID,
		Week:     week,
	}

	matches, err := s.matchRepo.ListBySeasonWeek(ctx, activeSeason.ID, week)
	if err != nil {
		return AutoPickResult{}, fmt.Errorf("list matches for week %d: %w", week, err)
	}
	if len(matches) == 0 {
		s.logger.WarnContext(ctx, "skip auto picks: no matches for current week",
			"season_id", activeSeason.ID,
			"week", week,
		)
		result.Status = RunStatusNoData
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	lastMatch := latestKickoff(matches)
	if start.Before(lastMatch.KickoffAt) {
		s.logger.InfoContext(ctx, "skip auto picks: final match has not kicked off",
			"season_id", activeSeason.ID,
			"week", week,
			"kickoff_at", lastMatch.KickoffAt,
		)
		result.Status = RunStatusNoData
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	matchByTeam := indexMatchesByTeam(matches)

	entries, err := s.entryRepo.ListActiveBySeason(ctx, activeSeason.ID)
	if err != nil {
		return AutoPickResult{}, fmt.Errorf("list active entries: %w", err)
	}

	for _, item := range entries {
		assigned, err := s.assignForEntry(ctx, activeSeason, item, week, lastMatch, matchByTeam)
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, RunFailure{Ref: item.ID, Reason: err.Error()})
			continue
		}
		if assigned {
			result.AssignedCount++
		} else {
			result.SkippedCount++
		}
	}

	if result.FailedCount > 0 {
		result.Status = RunStatusPartialFailure
	}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "auto picks finished",
		"season_id", activeSeason.ID,
		"week", week,
		"status", string(result.Status),
		"assigned", result.AssignedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *AutoPickService) assignForEntry(
	ctx context.Context,
	activeSeason season.Season,
	item entry.Entry,
	week int,
	lastMatch match.Match,
	matchByTeam map[string]match.Match,
) (bool, error) {
	existing, err := s.pickRepo.ListByEntryAndWeek(ctx, item.ID, week)
	if err != nil {
		return false, fmt.Errorf("list picks for week %d: %w", week, err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	history, err := s.pickRepo.ListByEntry(ctx, item.ID)
	if err != nil {
		return false, fmt.Errorf("list pick history: %w", err)
	}

	teamID, game := chooseFallbackTeam(history, lastMatch, matchByTeam)

	pickID, err := s.ids.NewID()
	if err != nil {
		return false, fmt.Errorf("generate pick id: %w", err)
	}

	fallback := pick.Pick{
		ID:             pickID,
		EntryID:        item.ID,
		SeasonID:       activeSeason.ID,
		MatchID:        game.ID,
		Week:           week,
		SelectedTeamID: teamID,
		Result:         pick.ResultPending,
		CreatedAt:      game.KickoffAt.Add(-time.Minute),
	}
	if err := s.pickRepo.Insert(ctx, fallback); err != nil {
		return false, fmt.Errorf("insert fallback pick: %w", err)
	}
	return true, nil
}

// chooseFallbackTeam applies the fallback policy in order: the last match's
// away team when the entry never used it; otherwise the earliest team the
// entry previously lost with that plays this week; otherwise the away team
// again, reuse allowed.
func chooseFallbackTeam(
	history []pick.Pick,
	lastMatch match.Match,
	matchByTeam map[string]match.Match,
) (string, match.Match) {
	used := make(map[string]struct{}, len(history))
	for _, item := range history {
		used[item.SelectedTeamID] = struct{}{}
	}

	if _, taken := used[lastMatch.AwayTeamID]; !taken {
		return lastMatch.AwayTeamID, lastMatch
	}

	ordered := make([]pick.Pick, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Week < ordered[j].Week
	})
	for _, item := range ordered {
		if item.Result != pick.ResultLoss {
			continue
		}
		if game, ok := matchByTeam[item.SelectedTeamID]; ok {
			return item.SelectedTeamID, game
		}
	}

	return lastMatch.AwayTeamID, lastMatch
}

func latestKickoff(matches []match.Match) match.Match {
	last := matches[0]
	for _, item := range matches[1:] {
		if item.KickoffAt.After(last.KickoffAt) {
			last = item
		}
	}
	return last
}

func indexMatchesByTeam(matches []match.Match) map[string]match.Match {
	out := make(map[string]match.Match, len(matches)*2)
	for _, item := range matches {
		out[item.HomeTeamID] = item
		out[item.AwayTeamID] = item
	}
	return out
}
