package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/domain/team"
	"github.com/riskibarqy/survivor-pool/internal/platform/cache"
	"github.com/riskibarqy/survivor-pool/internal/platform/id"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
)

// EventProvider fetches a season's schedule and live results from the
// external scoreboard feed.
type EventProvider interface {
	FetchEventsByYear(ctx context.Context, year int) ([]ExternalEvent, error)
}

type ExternalEvent struct {
	ExternalID  string
	Week        int
	KickoffAt   time.Time
	Status      string
	GameType    string
	Competitors []ExternalCompetitor
}

type ExternalCompetitor struct {
	HomeAway     string
	TeamName     string
	Abbreviation string
	Score        *int
}

type MatchSyncService struct {
	provider   EventProvider
	seasonRepo season.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	ids        id.Generator
	teamCache  *cache.Store
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchSyncService(
	provider EventProvider,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	ids id.Generator,
	teamCache *cache.Store,
	logger *logging.Logger,
) *MatchSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewRandomGenerator()
	}

	return &MatchSyncService{
		provider:   provider,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		ids:        ids,
		teamCache:  teamCache,
		logger:     logger,
		now:        time.Now,
	}
}

// teamDirectory resolves provider team labels to internal team ids,
// abbreviation first and normalized full name as fallback.
type teamDirectory struct {
	byAbbreviation map[string]string
	byName         map[string]string
}

// SynchronizeMatches pulls the provider schedule for the active season and
// upserts matches keyed by (week, home_team_id, away_team_id). Passing a week
// narrows the upsert to that week's events. A match that has reached
// completed never reverts to an earlier status on later runs.
func (s *MatchSyncService) SynchronizeMatches(ctx context.Context, week *int) (MatchSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSyncService.SynchronizeMatches")
	defer span.End()

	start := s.now()

	if s.provider == nil {
		return MatchSyncResult{}, fmt.Errorf("%w: event provider is not configured (GRIDIRON_ENABLED=false)", ErrDependencyUnavailable)
	}
	if week != nil && *week < 1 {
		return MatchSyncResult{}, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}

	activeSeason, ok, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return MatchSyncResult{}, fmt.Errorf("get active season: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "skip match sync: no active season")
		return MatchSyncResult{Status: RunStatusNoData, DurationMs: time.Since(start).Milliseconds()}, nil
	}

	directory, err := s.loadTeamDirectory(ctx)
	if err != nil {
		return MatchSyncResult{}, err
	}

	events, err := s.provider.FetchEventsByYear(ctx, activeSeason.Year)
	if err != nil {
		return MatchSyncResult{}, fmt.Errorf("fetch events year=%d: %w", activeSeason.Year, err)
	}

	result := MatchSyncResult{
		Status:   RunStatusCompleted,
		SeasonID: activeSeason.ID,
		Week:     week,
	}

	for _, event := range events {
		if week != nil && event.Week != *week {
			continue
		}
		result.FetchedCount++

		if err := s.upsertEvent(ctx, activeSeason, directory, event, &result); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, RunFailure{
				Ref:    event.ExternalID,
				Reason: err.Error(),
			})
		}
	}

	sort.SliceStable(result.Failures, func(i, j int) bool {
		return result.Failures[i].Ref < result.Failures[j].Ref
	})

	switch {
	case result.FetchedCount == 0:
		result.Status = RunStatusNoData
	case result.FailedCount > 0:
		result.Status = RunStatusPartialFailure
	}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "match sync finished",
		"season_id", activeSeason.ID,
		"status", string(result.Status),
		"fetched", result.FetchedCount,
		"created", result.CreatedCount,
		"updated", result.UpdatedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *MatchSyncService) upsertEvent(
	ctx context.Context,
	activeSeason season.Season,
	directory teamDirectory,
	event ExternalEvent,
	result *MatchSyncResult,
) error {
	if event.Week < 1 {
		return fmt.Errorf("event has no week number")
	}

	home, away, err := splitCompetitors(event.Competitors)
	if err != nil {
		return err
	}

	homeTeamID, err := directory.resolve(home)
	if err != nil {
		return fmt.Errorf("resolve home team: %w", err)
	}
	awayTeamID, err := directory.resolve(away)
	if err != nil {
		return fmt.Errorf("resolve away team: %w", err)
	}

	status := match.NormalizeStatus(event.Status)
	homeScore, awayScore := normalizeScores(home.Score, away.Score, status)

	existing, found, err := s.matchRepo.FindByTeams(ctx, activeSeason.ID, event.Week, homeTeamID, awayTeamID)
	if err != nil {
		return fmt.Errorf("find match by teams: %w", err)
	}

	if !found {
		matchID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate match id: %w", err)
		}
		item := match.Match{
			ID:         matchID,
			SeasonID:   activeSeason.ID,
			Week:       event.Week,
			HomeTeamID: homeTeamID,
			AwayTeamID: awayTeamID,
			KickoffAt:  event.KickoffAt,
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			Status:     status,
			GameType:   event.GameType,
		}
		if err := s.matchRepo.Insert(ctx, item); err != nil {
			return fmt.Errorf("insert match week=%d: %w", event.Week, err)
		}
		result.CreatedCount++
		return nil
	}

	// Completed results are final; a stale provider payload must not
	// reopen a decided match.
	if existing.Status == match.StatusCompleted && status != match.StatusCompleted {
		result.SkippedCount++
		return nil
	}
	if existing.Status == status && intPtrEqual(existing.HomeScore, homeScore) && intPtrEqual(existing.AwayScore, awayScore) {
		result.SkippedCount++
		return nil
	}

	if err := s.matchRepo.UpdateResult(ctx, existing.ID, homeScore, awayScore, status); err != nil {
		return fmt.Errorf("update match result id=%s: %w", existing.ID, err)
	}
	result.UpdatedCount++
	return nil
}

func (s *MatchSyncService) loadTeamDirectory(ctx context.Context) (teamDirectory, error) {
	load := func(ctx context.Context) (any, error) {
		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return teamDirectory{}, fmt.Errorf("list teams: %w", err)
		}
		return buildTeamDirectory(teams), nil
	}

	if s.teamCache == nil {
		value, err := load(ctx)
		if err != nil {
			return teamDirectory{}, err
		}
		return value.(teamDirectory), nil
	}

	value, err := s.teamCache.GetOrLoad(ctx, "sync:team-directory", load)
	if err != nil {
		return teamDirectory{}, err
	}
	directory, ok := value.(teamDirectory)
	if !ok {
		return teamDirectory{}, fmt.Errorf("unexpected team directory cache value")
	}
	return directory, nil
}

func buildTeamDirectory(teams []team.Team) teamDirectory {
	directory := teamDirectory{
		byAbbreviation: make(map[string]string, len(teams)),
		byName:         make(map[string]string, len(teams)),
	}
	for _, item := range teams {
		if abbr := strings.ToUpper(strings.TrimSpace(item.Abbreviation)); abbr != "" {
			directory.byAbbreviation[abbr] = item.ID
		}
		if key := normalizeTeamKey(item.City + " " + item.Name); key != "" {
			directory.byName[key] = item.ID
		}
		if key := normalizeTeamKey(item.Name); key != "" {
			if _, exists := directory.byName[key]; !exists {
				directory.byName[key] = item.ID
			}
		}
	}
	return directory
}

func (d teamDirectory) resolve(competitor ExternalCompetitor) (string, error) {
	if abbr := strings.ToUpper(strings.TrimSpace(competitor.Abbreviation)); abbr != "" {
		if teamID, ok := d.byAbbreviation[abbr]; ok {
			return teamID, nil
		}
	}
	if key := normalizeTeamKey(competitor.TeamName); key != "" {
		if teamID, ok := d.byName[key]; ok {
			return teamID, nil
		}
	}
	return "", fmt.Errorf("unknown team abbreviation=%s name=%s", competitor.Abbreviation, competitor.TeamName)
}

func normalizeTeamKey(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitCompetitors(competitors []ExternalCompetitor) (ExternalCompetitor, ExternalCompetitor, error) {
	var home, away ExternalCompetitor
	var hasHome, hasAway bool
	for _, item := range competitors {
		switch strings.ToLower(strings.TrimSpace(item.HomeAway)) {
		case "home":
			home = item
			hasHome = true
		case "away":
			away = item
			hasAway = true
		}
	}
	if !hasHome || !hasAway {
		return ExternalCompetitor{}, ExternalCompetitor{}, fmt.Errorf("event is missing a home or away competitor")
	}
	return home, away, nil
}

// normalizeScores drops the provider's placeholder 0-0 scoreline on games
// that have not finished, so a scheduled match keeps null scores.
func normalizeScores(homeScore, awayScore *int, status match.Status) (*int, *int) {
	if status == match.StatusCompleted {
		return homeScore, awayScore
	}
	if homeScore != nil && awayScore != nil && *homeScore == 0 && *awayScore == 0 {
		return nil, nil
	}
	return homeScore, awayScore
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
