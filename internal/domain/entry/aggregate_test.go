package entry

import (
	"testing"

	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
)

func decidedPick(week int, result pick.Result, points int) pick.Pick {
	return pick.Pick{Week: week, Result: result, PointsEarned: points}
}

func TestAggregateWinLossHistory(t *testing.T) {
	stats := Aggregate([]pick.Pick{
		decidedPick(1, pick.ResultWin, 3),
		decidedPick(2, pick.ResultWin, 2),
		decidedPick(3, pick.ResultLoss, 0),
		decidedPick(4, pick.ResultWin, 1),
	})

	if stats.TotalWins != 3 || stats.TotalLosses != 1 {
		t.Fatalf("expected 3 wins 1 loss, got %d/%d", stats.TotalWins, stats.TotalLosses)
	}
	if stats.Status != StatusLastChance {
		t.Fatalf("expected last_chance, got %s", stats.Status)
	}
	if stats.LongestStreak != 2 {
		t.Fatalf("expected longest streak 2, got %d", stats.LongestStreak)
	}
	if stats.CurrentStreak != 1 {
		t.Fatalf("expected current streak 1, got %d", stats.CurrentStreak)
	}
	if stats.Points != 6 {
		t.Fatalf("expected 6 points, got %d", stats.Points)
	}
	if !stats.IsActive || stats.EliminatedWeek != nil {
		t.Fatalf("entry should still be active with no elimination week")
	}
}

func TestAggregateSecondLossEliminates(t *testing.T) {
	stats := Aggregate([]pick.Pick{
		decidedPick(1, pick.ResultLoss, 0),
		decidedPick(2, pick.ResultLoss, 0),
	})

	if stats.Status != StatusEliminated {
		t.Fatalf("expected eliminated, got %s", stats.Status)
	}
	if stats.EliminatedWeek == nil || *stats.EliminatedWeek != 2 {
		t.Fatalf("expected eliminated_week 2, got %v", stats.EliminatedWeek)
	}
	if stats.IsActive {
		t.Fatal("eliminated entry must not be active")
	}
}

func TestAggregateStopsAtElimination(t *testing.T) {
	stats := Aggregate([]pick.Pick{
		decidedPick(1, pick.ResultLoss, 0),
		decidedPick(2, pick.ResultLoss, 0),
		decidedPick(3, pick.ResultWin, 4),
		decidedPick(4, pick.ResultWin, 4),
	})

	if stats.Status != StatusEliminated {
		t.Fatalf("expected eliminated, got %s", stats.Status)
	}
	if stats.EliminatedWeek == nil || *stats.EliminatedWeek != 2 {
		t.Fatalf("expected eliminated_week frozen at 2, got %v", stats.EliminatedWeek)
	}
	if stats.TotalWins != 0 || stats.Points != 0 {
		t.Fatalf("picks after elimination must not count, got %d wins %d points", stats.TotalWins, stats.Points)
	}
	if stats.CurrentStreak != 0 {
		t.Fatalf("expected current streak 0, got %d", stats.CurrentStreak)
	}
}

func TestAggregateTieKeepsStreakNeutral(t *testing.T) {
	stats := Aggregate([]pick.Pick{
		decidedPick(1, pick.ResultWin, 2),
		decidedPick(2, pick.ResultWin, 2),
		decidedPick(3, pick.ResultTie, 1),
	})

	if stats.LongestStreak != 2 {
		t.Fatalf("expected longest streak 2, got %d", stats.LongestStreak)
	}
	if stats.CurrentStreak != 0 {
		t.Fatalf("a trailing tie ends the current win run, got %d", stats.CurrentStreak)
	}
	if stats.TotalWins != 2 || stats.TotalLosses != 0 {
		t.Fatalf("ties count as neither win nor loss, got %d/%d", stats.TotalWins, stats.TotalLosses)
	}
	if stats.Status != StatusAlive {
		t.Fatalf("expected alive, got %s", stats.Status)
	}
}

func TestAggregateSkipsPendingPicks(t *testing.T) {
	stats := Aggregate([]pick.Pick{
		decidedPick(1, pick.ResultWin, 3),
		decidedPick(2, pick.ResultPending, 0),
		decidedPick(3, pick.ResultWin, 1),
	})

	if stats.TotalWins != 2 {
		t.Fatalf("expected 2 wins, got %d", stats.TotalWins)
	}
	if stats.CurrentStreak != 2 || stats.LongestStreak != 2 {
		t.Fatalf("pending picks must not break streaks, got current=%d longest=%d", stats.CurrentStreak, stats.LongestStreak)
	}
}

func TestAggregateSortsByWeek(t *testing.T) {
	stats := Aggregate([]pick.Pick{
		decidedPick(4, pick.ResultWin, 1),
		decidedPick(1, pick.ResultLoss, 0),
		decidedPick(3, pick.ResultLoss, 0),
		decidedPick(2, pick.ResultWin, 2),
	})

	if stats.Status != StatusEliminated {
		t.Fatalf("expected eliminated, got %s", stats.Status)
	}
	if stats.EliminatedWeek == nil || *stats.EliminatedWeek != 3 {
		t.Fatalf("expected eliminated_week 3 once ordered, got %v", stats.EliminatedWeek)
	}
}

func TestAggregateEmptyHistory(t *testing.T) {
	stats := Aggregate(nil)

	if stats.Status != StatusAlive || !stats.IsActive {
		t.Fatalf("fresh entry should be alive, got %s", stats.Status)
	}
	if stats.Points != 0 || stats.CurrentStreak != 0 {
		t.Fatalf("fresh entry should have zero totals")
	}
}
