package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/infrastructure/repository/memory"
)

var scoringKickoff = time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)

func scoringMatches() []match.Match {
	return []match.Match{
		{
			ID:         "m-decided",
			SeasonID:   "nfl-2025",
			Week:       1,
			HomeTeamID: "kc",
			AwayTeamID: "buf",
			KickoffAt:  scoringKickoff,
			HomeScore:  intPtr(27),
			AwayScore:  intPtr(20),
			Status:     match.StatusCompleted,
		},
		{
			ID:         "m-live",
			SeasonID:   "nfl-2025",
			Week:       1,
			HomeTeamID: "phi",
			AwayTeamID: "dal",
			KickoffAt:  scoringKickoff,
			HomeScore:  intPtr(7),
			AwayScore:  intPtr(3),
			Status:     match.StatusInProgress,
		},
	}
}

func TestPickScoringService_ScorePendingPicks(t *testing.T) {
	t.Parallel()

	pickRepo := memory.NewPickRepository([]pick.Pick{
		{
			ID: "p-win", EntryID: "e-1", SeasonID: "nfl-2025", MatchID: "m-decided",
			Week: 1, SelectedTeamID: "kc", Result: pick.ResultPending,
			CreatedAt: scoringKickoff.Add(-3 * time.Hour),
		},
		{
			ID: "p-loss", EntryID: "e-2", SeasonID: "nfl-2025", MatchID: "m-decided",
			Week: 1, SelectedTeamID: "buf", Result: pick.ResultPending,
			CreatedAt: scoringKickoff.Add(-10 * time.Minute),
		},
		{
			ID: "p-live", EntryID: "e-3", SeasonID: "nfl-2025", MatchID: "m-live",
			Week: 1, SelectedTeamID: "phi", Result: pick.ResultPending,
			CreatedAt: scoringKickoff.Add(-2 * time.Hour),
		},
	})

	svc := NewPickScoringService(
		memory.NewSeasonRepository([]season.Season{testSeason()}),
		memory.NewMatchRepository(scoringMatches()),
		pickRepo,
		nil,
	)

	result, err := svc.ScorePendingPicks(context.Background())
	if err != nil {
		t.Fatalf("ScorePendingPicks error: %v", err)
	}
	if result.Status != RunStatusCompleted {
		t.Fatalf("expected completed, got %s", result.Status)
	}
	if result.ScoredCount != 2 || result.SkippedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	picks, err := pickRepo.ListBySeasonUpToWeek(context.Background(), "nfl-2025", 1)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	byID := make(map[string]pick.Pick, len(picks))
	for _, item := range picks {
		byID[item.ID] = item
	}

	if got := byID["p-win"]; got.Result != pick.ResultWin || got.Multiplier != 3 || got.PointsEarned != 3 {
		t.Fatalf("3h-early win should pay 3 points: %+v", got)
	}
	if got := byID["p-loss"]; got.Result != pick.ResultLoss || got.Multiplier != 1 || got.PointsEarned != 0 {
		t.Fatalf("loss should pay 0 with multiplier 1: %+v", got)
	}
	if got := byID["p-live"]; got.Result != pick.ResultPending {
		t.Fatalf("pick on live match must stay pending: %+v", got)
	}
}

func TestPickScoringService_ScorePendingPicks_Idempotent(t *testing.T) {
	t.Parallel()

	pickRepo := memory.NewPickRepository([]pick.Pick{
		{
			ID: "p-1", EntryID: "e-1", SeasonID: "nfl-2025", MatchID: "m-decided",
			Week: 1, SelectedTeamID: "kc", Result: pick.ResultPending,
			CreatedAt: scoringKickoff.Add(-2 * time.Hour),
		},
	})

	svc := NewPickScoringService(
		memory.NewSeasonRepository([]season.Season{testSeason()}),
		memory.NewMatchRepository(scoringMatches()),
		pickRepo,
		nil,
	)

	if _, err := svc.ScorePendingPicks(context.Background()); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := svc.ScorePendingPicks(context.Background())
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if second.Status != RunStatusNoData || second.ScoredCount != 0 {
		t.Fatalf("second run has nothing pending, got %+v", second)
	}

	picks, _ := pickRepo.ListByEntry(context.Background(), "e-1")
	if picks[0].Result != pick.ResultWin || picks[0].PointsEarned != 2 {
		t.Fatalf("score changed across runs: %+v", picks[0])
	}
}

func TestPickScoringService_ScorePendingPicks_SkipsFutureWeeks(t *testing.T) {
	t.Parallel()

	futureMatch := match.Match{
		ID:         "m-w2",
		SeasonID:   "nfl-2025",
		Week:       2,
		HomeTeamID: "bal",
		AwayTeamID: "cin",
		KickoffAt:  scoringKickoff.AddDate(0, 0, 7),
		HomeScore:  intPtr(14),
		AwayScore:  intPtr(10),
		Status:     match.StatusCompleted,
	}
	pickRepo := memory.NewPickRepository([]pick.Pick{
		{
			ID: "p-w2", EntryID: "e-1", SeasonID: "nfl-2025", MatchID: "m-w2",
			Week: 2, SelectedTeamID: "bal", Result: pick.ResultPending,
			CreatedAt: futureMatch.KickoffAt.Add(-time.Hour),
		},
	})

	svc := NewPickScoringService(
		memory.NewSeasonRepository([]season.Season{testSeason()}),
		memory.NewMatchRepository([]match.Match{futureMatch}),
		pickRepo,
		nil,
	)

	result, err := svc.ScorePendingPicks(context.Background())
	if err != nil {
		t.Fatalf("ScorePendingPicks error: %v", err)
	}
	if result.Status != RunStatusNoData {
		t.Fatalf("week 2 picks are out of scope while current_week=1, got %+v", result)
	}
}

func TestPickScoringService_ReplayScores_RestatedFinal(t *testing.T) {
	t.Parallel()

	matchRepo := memory.NewMatchRepository(scoringMatches())
	pickRepo := memory.NewPickRepository([]pick.Pick{
		{
			ID: "p-1", EntryID: "e-1", SeasonID: "nfl-2025", MatchID: "m-decided",
			Week: 1, SelectedTeamID: "kc", Result: pick.ResultLoss,
			PointsEarned: 0, Multiplier: 2,
			CreatedAt: scoringKickoff.Add(-2 * time.Hour),
		},
	})

	svc := NewPickScoringService(
		memory.NewSeasonRepository([]season.Season{testSeason()}),
		matchRepo,
		pickRepo,
		nil,
	)

	result, err := svc.ReplayScores(context.Background(), 1)
	if err != nil {
		t.Fatalf("ReplayScores error: %v", err)
	}
	if result.ScoredCount != 1 {
		t.Fatalf("expected one corrected pick, got %+v", result)
	}

	picks, _ := pickRepo.ListByEntry(context.Background(), "e-1")
	if picks[0].Result != pick.ResultWin || picks[0].PointsEarned != 2 {
		t.Fatalf("replay did not correct the result: %+v", picks[0])
	}

	again, err := svc.ReplayScores(context.Background(), 1)
	if err != nil {
		t.Fatalf("second replay error: %v", err)
	}
	if again.ScoredCount != 0 || again.SkippedCount != 1 {
		t.Fatalf("unchanged picks must be skipped on replay, got %+v", again)
	}
}

func TestPickScoringService_ReplayScores_InvalidWeek(t *testing.T) {
	t.Parallel()

	svc := NewPickScoringService(
		memory.NewSeasonRepository([]season.Season{testSeason()}),
		memory.NewMatchRepository(nil),
		memory.NewPickRepository(nil),
		nil,
	)

	if _, err := svc.ReplayScores(context.Background(), 0); err == nil {
		t.Fatal("expected invalid input error")
	}
}

func TestPickScoringService_NoActiveSeason(t *testing.T) {
	t.Parallel()

	svc := NewPickScoringService(
		memory.NewSeasonRepository(nil),
		memory.NewMatchRepository(nil),
		memory.NewPickRepository(nil),
		nil,
	)

	result, err := svc.ScorePendingPicks(context.Background())
	if err != nil {
		t.Fatalf("no active season must not be an error: %v", err)
	}
	if result.Status != RunStatusNoData {
		t.Fatalf("expected no_data, got %s", result.Status)
	}
}
