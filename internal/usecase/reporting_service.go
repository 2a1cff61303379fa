package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/domain/team"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
)

// ReportingService serves the read-only pool views: the active season, the
// team directory, the schedule, and entry standings.
type ReportingService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	entryRepo  entry.Repository
	pickRepo   pick.Repository
	logger     *logging.Logger
}

func NewReportingService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	entryRepo entry.Repository,
	pickRepo pick.Repository,
	logger *logging.Logger,
) *ReportingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReportingService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		entryRepo:  entryRepo,
		pickRepo:   pickRepo,
		logger:     logger,
	}
}

func (s *ReportingService) CurrentSeason(ctx context.Context) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportingService.CurrentSeason")
	defer span.End()

	active, found, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("get active season: %w", err)
	}
	if !found {
		return season.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
	}
	return active, nil
}

func (s *ReportingService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportingService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// ListMatches returns the active season's schedule, optionally filtered to a
// single week.
func (s *ReportingService) ListMatches(ctx context.Context, week *int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportingService.ListMatches")
	defer span.End()

	if week != nil && *week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	active, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}

	if week != nil {
		matches, err := s.matchRepo.ListBySeasonWeek(ctx, active.ID, *week)
		if err != nil {
			return nil, fmt.Errorf("list matches by week: %w", err)
		}
		return matches, nil
	}

	matches, err := s.matchRepo.ListBySeason(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *ReportingService) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportingService.ListEntries")
	defer span.End()

	active, err := s.CurrentSeason(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListBySeason(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *ReportingService) GetEntry(ctx context.Context, entryID string) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportingService.GetEntry")
	defer span.End()

	if entryID == "" {
		return entry.Entry{}, fmt.Errorf("%w: entry id is required", ErrInvalidInput)
	}

	item, found, err := s.entryRepo.Get(ctx, entryID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	if !found {
		return entry.Entry{}, fmt.Errorf("%w: entry %s", ErrNotFound, entryID)
	}
	return item, nil
}

// ListEntryPicks returns the entry's pick history ordered by week.
func (s *ReportingService) ListEntryPicks(ctx context.Context, entryID string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportingService.ListEntryPicks")
	defer span.End()

	if _, err := s.GetEntry(ctx, entryID); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("list picks by entry: %w", err)
	}
	return picks, nil
}
