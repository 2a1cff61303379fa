package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
)

const (
	maintenanceStatusSuccess = "success"
	maintenanceStatusFailed  = "failed"
	maintenanceStatusSkipped = "skipped"

	maintenanceStepMatches    = "matches"
	maintenanceStepScores     = "scores"
	maintenanceStepStatistics = "statistics"
	maintenanceStepWeek       = "week"
	maintenanceStepAutoPicks  = "auto_picks"
)

type MaintenanceResult struct {
	Status       RunStatus               `json:"status"`
	TaskCount    int                     `json:"task_count"`
	SuccessCount int                     `json:"success_count"`
	FailedCount  int                     `json:"failed_count"`
	SkippedCount int                     `json:"skipped_count"`
	Tasks        []MaintenanceTaskResult `json:"tasks"`
	DurationMs   int64                   `json:"duration_ms"`
}

type MaintenanceTaskResult struct {
	Step       string `json:"step"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// MaintenanceService runs the full nightly pipeline in dependency order:
// matches, then scores, then statistics, then the week pointer, then auto
// picks. A failed step skips the steps that consume its output instead of
// running them against stale data; skips are explicit in the task list.
type MaintenanceService struct {
	syncService     *MatchSyncService
	scoringService  *PickScoringService
	statsService    *EntryStatsService
	weekService     *WeekService
	autoPickService *AutoPickService
	logger          *logging.Logger
	now             func() time.Time
}

func NewMaintenanceService(
	syncService *MatchSyncService,
	scoringService *PickScoringService,
	statsService *EntryStatsService,
	weekService *WeekService,
	autoPickService *AutoPickService,
	logger *logging.Logger,
) *MaintenanceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MaintenanceService{
		syncService:     syncService,
		scoringService:  scoringService,
		statsService:    statsService,
		weekService:     weekService,
		autoPickService: autoPickService,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *MaintenanceService) Run(ctx context.Context) (MaintenanceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MaintenanceService.Run")
	defer span.End()

	if s.syncService == nil || s.scoringService == nil || s.statsService == nil ||
		s.weekService == nil || s.autoPickService == nil {
		return MaintenanceResult{}, fmt.Errorf("%w: maintenance pipeline is not fully configured", ErrDependencyUnavailable)
	}

	start := s.now()
	result := MaintenanceResult{
		Status: RunStatusCompleted,
		Tasks:  make([]MaintenanceTaskResult, 0, 5),
	}

	matchesTask := s.runStep(maintenanceStepMatches, func() (int, RunStatus, error) {
		out, err := s.syncService.SynchronizeMatches(ctx, nil)
		return out.CreatedCount + out.UpdatedCount, out.Status, err
	})
	result.Tasks = append(result.Tasks, matchesTask)

	scoresTask := s.runDependentStep(maintenanceStepScores, matchesTask, func() (int, RunStatus, error) {
		out, err := s.scoringService.ScorePendingPicks(ctx)
		return out.ScoredCount, out.Status, err
	})
	result.Tasks = append(result.Tasks, scoresTask)

	statsTask := s.runDependentStep(maintenanceStepStatistics, scoresTask, func() (int, RunStatus, error) {
		out, err := s.statsService.RecomputeEntryStatistics(ctx)
		return out.UpdatedCount, out.Status, err
	})
	result.Tasks = append(result.Tasks, statsTask)

	weekTask := s.runStep(maintenanceStepWeek, func() (int, RunStatus, error) {
		out, err := s.weekService.AdvanceCurrentWeek(ctx)
		records := 0
		if out.Advanced {
			records = 1
		}
		return records, out.Status, err
	})
	result.Tasks = append(result.Tasks, weekTask)

	autoPicksTask := s.runDependentStep(maintenanceStepAutoPicks, weekTask, func() (int, RunStatus, error) {
		out, err := s.autoPickService.AssignFallbackPicks(ctx)
		return out.AssignedCount, out.Status, err
	})
	result.Tasks = append(result.Tasks, autoPicksTask)

	allNoData := true
	for _, task := range result.Tasks {
		switch task.Status {
		case maintenanceStatusSuccess:
			result.SuccessCount++
		case maintenanceStatusSkipped:
			result.SkippedCount++
		default:
			result.FailedCount++
		}
		if task.Message != string(RunStatusNoData) {
			allNoData = false
		}
	}
	result.TaskCount = len(result.Tasks)

	switch {
	case result.FailedCount > 0:
		result.Status = RunStatusPartialFailure
	case allNoData:
		result.Status = RunStatusNoData
	}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "maintenance pipeline finished",
		"status", string(result.Status),
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

func (s *MaintenanceService) runStep(step string, fn func() (int, RunStatus, error)) MaintenanceTaskResult {
	start := s.now()
	task := MaintenanceTaskResult{Step: step}

	records, status, err := fn()
	task.Records = records
	task.DurationMs = time.Since(start).Milliseconds()

	switch {
	case err != nil:
		task.Status = maintenanceStatusFailed
		task.Message = err.Error()
	case status == RunStatusPartialFailure:
		task.Status = maintenanceStatusFailed
		task.Message = string(RunStatusPartialFailure)
	case status == RunStatusNoData:
		task.Status = maintenanceStatusSuccess
		task.Message = string(RunStatusNoData)
	default:
		task.Status = maintenanceStatusSuccess
	}
	return task
}

func (s *MaintenanceService) runDependentStep(step string, upstream MaintenanceTaskResult, fn func() (int, RunStatus, error)) MaintenanceTaskResult {
	if upstream.Status == maintenanceStatusFailed || upstream.Status == maintenanceStatusSkipped {
		return MaintenanceTaskResult{
			Step:    step,
			Status:  maintenanceStatusSkipped,
			Message: fmt.Sprintf("skipped because %s step did not succeed", upstream.Step),
		}
	}
	return s.runStep(step, fn)
}
