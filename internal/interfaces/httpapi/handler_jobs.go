package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/survivor-pool/internal/usecase"
)

type syncMatchesJobRequest struct {
	Week *int `json:"week" validate:"omitempty,min=1"`
}

type replayScoresJobRequest struct {
	ThroughWeek int `json:"through_week" validate:"required,min=1"`
}

func (h *Handler) RunSyncMatchesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncMatchesJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: match sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncMatchesJobRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SynchronizeMatches(ctx, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync matches job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunScorePicksJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScorePicksJob")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.scoringService.ScorePendingPicks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run score picks job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunReplayScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReplayScoresJob")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req replayScoresJobRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ReplayScores(ctx, req.ThroughWeek)
	if err != nil {
		h.logger.WarnContext(ctx, "run replay scores job failed", "through_week", req.ThroughWeek, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRecomputeStatisticsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeStatisticsJob")
	defer span.End()

	if h.statsService == nil {
		writeError(ctx, w, fmt.Errorf("%w: statistics service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.statsService.RecomputeEntryStatistics(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run recompute statistics job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunAdvanceWeekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAdvanceWeekJob")
	defer span.End()

	if h.weekService == nil {
		writeError(ctx, w, fmt.Errorf("%w: week service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.weekService.AdvanceCurrentWeek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run advance week job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunAssignAutoPicksJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAssignAutoPicksJob")
	defer span.End()

	if h.autoPickService == nil {
		writeError(ctx, w, fmt.Errorf("%w: auto pick service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.autoPickService.AssignFallbackPicks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run assign auto picks job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunMaintenanceJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMaintenanceJob")
	defer span.End()

	if h.maintenanceService == nil {
		writeError(ctx, w, fmt.Errorf("%w: maintenance service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.maintenanceService.Run(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run maintenance job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// decodeJobRequest parses an optional JSON body. An empty body leaves the
// target at its zero value; unknown fields are rejected.
func decodeJobRequest(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
