package pick

import (
	"testing"
	"time"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name       string
		selected   string
		homeScore  int
		awayScore  int
		wantResult Result
	}{
		{name: "home win selected home", selected: "home", homeScore: 24, awayScore: 17, wantResult: ResultWin},
		{name: "home win selected away", selected: "away", homeScore: 24, awayScore: 17, wantResult: ResultLoss},
		{name: "away win selected away", selected: "away", homeScore: 10, awayScore: 31, wantResult: ResultWin},
		{name: "away win selected home", selected: "home", homeScore: 10, awayScore: 31, wantResult: ResultLoss},
		{name: "tie selected home", selected: "home", homeScore: 20, awayScore: 20, wantResult: ResultTie},
		{name: "tie selected away", selected: "away", homeScore: 0, awayScore: 0, wantResult: ResultTie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Outcome(tt.selected, "home", "away", tt.homeScore, tt.awayScore)
			if got != tt.wantResult {
				t.Fatalf("expected %s, got %s", tt.wantResult, got)
			}
		})
	}
}

func TestAnticipationMultiplier(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{name: "three hours early", createdAt: kickoff.Add(-3 * time.Hour), want: 3},
		{name: "ten minutes early", createdAt: kickoff.Add(-10 * time.Minute), want: 1},
		{name: "one minute early", createdAt: kickoff.Add(-time.Minute), want: 1},
		{name: "exactly at kickoff", createdAt: kickoff, want: 0},
		{name: "half hour late", createdAt: kickoff.Add(30 * time.Minute), want: 0},
		{name: "3.9 hours early floors to 3", createdAt: kickoff.Add(-(3*time.Hour + 54*time.Minute)), want: 3},
		{name: "exactly one hour early", createdAt: kickoff.Add(-time.Hour), want: 1},
		{name: "two days early", createdAt: kickoff.Add(-48 * time.Hour), want: 48},
		{name: "zero created_at", createdAt: time.Time{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnticipationMultiplier(tt.createdAt, kickoff)
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}

	if got := AnticipationMultiplier(kickoff.Add(-time.Hour), time.Time{}); got != 0 {
		t.Fatalf("expected 0 for zero kickoff, got %d", got)
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name       string
		result     Result
		multiplier int
		want       int
	}{
		{name: "win pays multiplier", result: ResultWin, multiplier: 3, want: 3},
		{name: "win with zero multiplier", result: ResultWin, multiplier: 0, want: 0},
		{name: "tie pays half floored", result: ResultTie, multiplier: 5, want: 2},
		{name: "tie with multiplier one", result: ResultTie, multiplier: 1, want: 0},
		{name: "loss pays nothing", result: ResultLoss, multiplier: 10, want: 0},
		{name: "pending pays nothing", result: ResultPending, multiplier: 4, want: 0},
		{name: "negative multiplier clamps", result: ResultWin, multiplier: -2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Points(tt.result, tt.multiplier)
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestScoringIsDeterministic(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	createdAt := kickoff.Add(-2 * time.Hour)

	first := Points(Outcome("a", "a", "b", 21, 14), AnticipationMultiplier(createdAt, kickoff))
	second := Points(Outcome("a", "a", "b", 21, 14), AnticipationMultiplier(createdAt, kickoff))
	if first != second || first != 2 {
		t.Fatalf("expected stable 2 points, got %d then %d", first, second)
	}
}
