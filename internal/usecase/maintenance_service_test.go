package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/infrastructure/repository/memory"
)

type maintenanceFixture struct {
	svc       *MaintenanceService
	entryRepo *memory.EntryRepository
	pickRepo  *memory.PickRepository
}

func newMaintenanceFixture(provider EventProvider) maintenanceFixture {
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	now := func() time.Time {
		return time.Date(2025, 9, 8, 9, 0, 0, 0, time.UTC)
	}

	seasonRepo := memory.NewSeasonRepository([]season.Season{testSeason()})
	teamRepo := memory.NewTeamRepository(testTeams())
	matchRepo := memory.NewMatchRepository([]match.Match{
		{
			ID: "m-1", SeasonID: "nfl-2025", Week: 1,
			HomeTeamID: "kc", AwayTeamID: "buf",
			KickoffAt: kickoff, Status: match.StatusScheduled,
		},
	})
	entryRepo := memory.NewEntryRepository([]entry.Entry{
		{ID: "e-picked", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true},
		{ID: "e-lazy", UserID: "u-2", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true},
	})
	pickRepo := memory.NewPickRepository([]pick.Pick{
		{
			ID: "p-1", EntryID: "e-picked", SeasonID: "nfl-2025", MatchID: "m-1",
			Week: 1, SelectedTeamID: "kc", Result: pick.ResultPending,
			CreatedAt: kickoff.Add(-2 * time.Hour),
		},
	})

	syncService := NewMatchSyncService(provider, seasonRepo, teamRepo, matchRepo, &seqIDGenerator{prefix: "m"}, nil, nil)
	scoringService := NewPickScoringService(seasonRepo, matchRepo, pickRepo, nil)
	statsService := NewEntryStatsService(seasonRepo, entryRepo, pickRepo, nil)
	weekService := NewWeekService(seasonRepo, nil)
	weekService.now = now
	autoPickService := NewAutoPickService(seasonRepo, entryRepo, matchRepo, pickRepo, &seqIDGenerator{prefix: "ap"}, nil)
	autoPickService.now = now

	return maintenanceFixture{
		svc:       NewMaintenanceService(syncService, scoringService, statsService, weekService, autoPickService, nil),
		entryRepo: entryRepo,
		pickRepo:  pickRepo,
	}
}

func taskByStep(t *testing.T, result MaintenanceResult, step string) MaintenanceTaskResult {
	t.Helper()
	for _, task := range result.Tasks {
		if task.Step == step {
			return task
		}
	}
	t.Fatalf("step %s missing from %+v", step, result.Tasks)
	return MaintenanceTaskResult{}
}

func TestMaintenanceService_Run_FullPipeline(t *testing.T) {
	t.Parallel()

	fixture := newMaintenanceFixture(stubEventProvider{events: []ExternalEvent{
		{
			ExternalID: "ev-1",
			Week:       1,
			KickoffAt:  time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC),
			Status:     "final",
			Competitors: []ExternalCompetitor{
				{HomeAway: "home", Abbreviation: "KC", Score: intPtr(27)},
				{HomeAway: "away", Abbreviation: "BUF", Score: intPtr(20)},
			},
		},
	}})

	result, err := fixture.svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Status != RunStatusCompleted {
		t.Fatalf("expected completed, got %s", result.Status)
	}
	if result.TaskCount != 5 || result.FailedCount != 0 || result.SkippedCount != 0 {
		t.Fatalf("unexpected pipeline counts: %+v", result)
	}

	if task := taskByStep(t, result, maintenanceStepMatches); task.Records != 1 {
		t.Fatalf("expected one match update, got %+v", task)
	}
	if task := taskByStep(t, result, maintenanceStepScores); task.Records != 1 {
		t.Fatalf("expected one scored pick, got %+v", task)
	}
	if task := taskByStep(t, result, maintenanceStepAutoPicks); task.Records != 1 {
		t.Fatalf("expected one auto pick for the lazy entry, got %+v", task)
	}

	picked, _, _ := fixture.entryRepo.Get(context.Background(), "e-picked")
	if picked.TotalWins != 1 || picked.Points != 2 {
		t.Fatalf("scored pick did not reach statistics: %+v", picked)
	}

	lazyPicks, _ := fixture.pickRepo.ListByEntryAndWeek(context.Background(), "e-lazy", 1)
	if len(lazyPicks) != 1 || lazyPicks[0].SelectedTeamID != "buf" {
		t.Fatalf("expected fallback pick on the away team: %+v", lazyPicks)
	}
}

func TestMaintenanceService_Run_ProviderFailureSkipsDependents(t *testing.T) {
	t.Parallel()

	fixture := newMaintenanceFixture(stubEventProvider{err: errors.New("scoreboard unavailable")})

	result, err := fixture.svc.Run(context.Background())
	if err != nil {
		t.Fatalf("pipeline surfaces step failures in the result, not as an error: %v", err)
	}
	if result.Status != RunStatusPartialFailure {
		t.Fatalf("expected partial_failure, got %s", result.Status)
	}

	if task := taskByStep(t, result, maintenanceStepMatches); task.Status != maintenanceStatusFailed {
		t.Fatalf("matches step should fail: %+v", task)
	}
	if task := taskByStep(t, result, maintenanceStepScores); task.Status != maintenanceStatusSkipped {
		t.Fatalf("scores step should be skipped: %+v", task)
	}
	if task := taskByStep(t, result, maintenanceStepStatistics); task.Status != maintenanceStatusSkipped {
		t.Fatalf("statistics step should be skipped: %+v", task)
	}
	if task := taskByStep(t, result, maintenanceStepWeek); task.Status != maintenanceStatusSuccess {
		t.Fatalf("week step is independent of match sync: %+v", task)
	}
	if task := taskByStep(t, result, maintenanceStepAutoPicks); task.Status != maintenanceStatusSuccess {
		t.Fatalf("auto picks run after a successful week step: %+v", task)
	}
}

func TestMaintenanceService_Run_Unconfigured(t *testing.T) {
	t.Parallel()

	svc := NewMaintenanceService(nil, nil, nil, nil, nil, nil)
	if _, err := svc.Run(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
