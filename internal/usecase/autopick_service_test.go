package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/infrastructure/repository/memory"
)

var (
	earlyKickoff = time.Date(2025, 9, 21, 17, 0, 0, 0, time.UTC)
	lateKickoff  = time.Date(2025, 9, 21, 20, 20, 0, 0, time.UTC)
)

func autoPickSeason() season.Season {
	s := testSeason()
	s.CurrentWeek = 3
	return s
}

func autoPickMatches() []match.Match {
	return []match.Match{
		{
			ID: "m-early", SeasonID: "nfl-2025", Week: 3,
			HomeTeamID: "kc", AwayTeamID: "buf",
			KickoffAt: earlyKickoff, Status: match.StatusInProgress,
		},
		{
			ID: "m-late", SeasonID: "nfl-2025", Week: 3,
			HomeTeamID: "phi", AwayTeamID: "dal",
			KickoffAt: lateKickoff, Status: match.StatusInProgress,
		},
	}
}

func historyPick(id, entryID, teamID string, week int, result pick.Result) pick.Pick {
	return pick.Pick{
		ID:             id,
		EntryID:        entryID,
		SeasonID:       "nfl-2025",
		MatchID:        "m-history-" + id,
		Week:           week,
		SelectedTeamID: teamID,
		Result:         result,
		CreatedAt:      time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newAutoPickService(entries []entry.Entry, picks []pick.Pick) (*AutoPickService, *memory.PickRepository) {
	pickRepo := memory.NewPickRepository(picks)
	svc := NewAutoPickService(
		memory.NewSeasonRepository([]season.Season{autoPickSeason()}),
		memory.NewEntryRepository(entries),
		memory.NewMatchRepository(autoPickMatches()),
		pickRepo,
		&seqIDGenerator{prefix: "ap"},
		nil,
	)
	svc.now = func() time.Time {
		return lateKickoff.Add(5 * time.Minute)
	}
	return svc, pickRepo
}

func weekPick(t *testing.T, pickRepo *memory.PickRepository, entryID string) pick.Pick {
	t.Helper()
	picks, err := pickRepo.ListByEntryAndWeek(context.Background(), entryID, 3)
	if err != nil {
		t.Fatalf("list picks for %s: %v", entryID, err)
	}
	if len(picks) != 1 {
		t.Fatalf("expected exactly one week-3 pick for %s, got %d", entryID, len(picks))
	}
	return picks[0]
}

func TestAutoPickService_AssignsAwayTeamOfLastMatch(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newAutoPickService(
		[]entry.Entry{{ID: "e-fresh", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true}},
		nil,
	)

	result, err := svc.AssignFallbackPicks(context.Background())
	if err != nil {
		t.Fatalf("AssignFallbackPicks error: %v", err)
	}
	if result.AssignedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	assigned := weekPick(t, pickRepo, "e-fresh")
	if assigned.SelectedTeamID != "dal" || assigned.MatchID != "m-late" {
		t.Fatalf("expected away team of the last match, got %+v", assigned)
	}
	if assigned.Result != pick.ResultPending {
		t.Fatalf("fallback pick must start pending, got %s", assigned.Result)
	}
	if !assigned.CreatedAt.Equal(lateKickoff.Add(-time.Minute)) {
		t.Fatalf("created_at must be backdated one minute before kickoff, got %s", assigned.CreatedAt)
	}
}

func TestAutoPickService_BackdateYieldsMultiplierOne(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newAutoPickService(
		[]entry.Entry{{ID: "e-fresh", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true}},
		nil,
	)
	if _, err := svc.AssignFallbackPicks(context.Background()); err != nil {
		t.Fatalf("AssignFallbackPicks error: %v", err)
	}

	assigned := weekPick(t, pickRepo, "e-fresh")
	if got := pick.AnticipationMultiplier(assigned.CreatedAt, lateKickoff); got != 1 {
		t.Fatalf("backdated pick must score multiplier 1, got %d", got)
	}
}

func TestAutoPickService_ReusesEarliestLosingTeam(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newAutoPickService(
		[]entry.Entry{{ID: "e-reuse", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true}},
		[]pick.Pick{
			historyPick("h1", "e-reuse", "dal", 1, pick.ResultWin),
			historyPick("h2", "e-reuse", "kc", 2, pick.ResultLoss),
		},
	)

	if _, err := svc.AssignFallbackPicks(context.Background()); err != nil {
		t.Fatalf("AssignFallbackPicks error: %v", err)
	}

	assigned := weekPick(t, pickRepo, "e-reuse")
	if assigned.SelectedTeamID != "kc" || assigned.MatchID != "m-early" {
		t.Fatalf("expected prior losing team, got %+v", assigned)
	}
	if !assigned.CreatedAt.Equal(earlyKickoff.Add(-time.Minute)) {
		t.Fatalf("created_at must track the selected match's kickoff, got %s", assigned.CreatedAt)
	}
}

func TestAutoPickService_EarliestLossWinsTieBreak(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newAutoPickService(
		[]entry.Entry{{ID: "e-two", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true}},
		[]pick.Pick{
			historyPick("h1", "e-two", "dal", 1, pick.ResultWin),
			historyPick("h2", "e-two", "phi", 2, pick.ResultLoss),
			historyPick("h3", "e-two", "kc", 1, pick.ResultLoss),
		},
	)

	if _, err := svc.AssignFallbackPicks(context.Background()); err != nil {
		t.Fatalf("AssignFallbackPicks error: %v", err)
	}

	assigned := weekPick(t, pickRepo, "e-two")
	if assigned.SelectedTeamID != "kc" {
		t.Fatalf("earliest loss week wins the tie-break, got %s", assigned.SelectedTeamID)
	}
}

func TestAutoPickService_NoLossFallsBackToAwayTeam(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newAutoPickService(
		[]entry.Entry{{ID: "e-noloss", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true}},
		[]pick.Pick{
			historyPick("h1", "e-noloss", "dal", 1, pick.ResultWin),
		},
	)

	if _, err := svc.AssignFallbackPicks(context.Background()); err != nil {
		t.Fatalf("AssignFallbackPicks error: %v", err)
	}

	assigned := weekPick(t, pickRepo, "e-noloss")
	if assigned.SelectedTeamID != "dal" || assigned.MatchID != "m-late" {
		t.Fatalf("no prior loss falls back to the away team, reuse allowed: %+v", assigned)
	}
}

func TestAutoPickService_SkipsEntriesWithPick(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newAutoPickService(
		[]entry.Entry{{ID: "e-has", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true}},
		[]pick.Pick{
			historyPick("h1", "e-has", "phi", 3, pick.ResultPending),
		},
	)

	result, err := svc.AssignFallbackPicks(context.Background())
	if err != nil {
		t.Fatalf("AssignFallbackPicks error: %v", err)
	}
	if result.AssignedCount != 0 || result.SkippedCount != 1 {
		t.Fatalf("existing pick must be left alone: %+v", result)
	}

	picks, _ := pickRepo.ListByEntryAndWeek(context.Background(), "e-has", 3)
	if len(picks) != 1 {
		t.Fatalf("expected the original pick only, got %d", len(picks))
	}
}

func TestAutoPickService_WaitsForLastKickoff(t *testing.T) {
	t.Parallel()

	svc, _ := newAutoPickService(
		[]entry.Entry{{ID: "e-fresh", UserID: "u-1", SeasonID: "nfl-2025", Status: entry.StatusAlive, IsActive: true}},
		nil,
	)
	svc.now = func() time.Time {
		return lateKickoff.Add(-time.Hour)
	}

	result, err := svc.AssignFallbackPicks(context.Background())
	if err != nil {
		t.Fatalf("AssignFallbackPicks error: %v", err)
	}
	if result.Status != RunStatusNoData || result.AssignedCount != 0 {
		t.Fatalf("assigner must wait for the week's last kickoff: %+v", result)
	}
}

func TestAutoPickService_NoActiveSeason(t *testing.T) {
	t.Parallel()

	svc := NewAutoPickService(
		memory.NewSeasonRepository(nil),
		memory.NewEntryRepository(nil),
		memory.NewMatchRepository(nil),
		memory.NewPickRepository(nil),
		&seqIDGenerator{prefix: "ap"},
		nil,
	)

	result, err := svc.AssignFallbackPicks(context.Background())
	if err != nil {
		t.Fatalf("no active season must not be an error: %v", err)
	}
	if result.Status != RunStatusNoData {
		t.Fatalf("expected no_data, got %s", result.Status)
	}
}
