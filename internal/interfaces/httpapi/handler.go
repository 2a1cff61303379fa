package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/survivor-pool/internal/platform/logging"
	"github.com/riskibarqy/survivor-pool/internal/usecase"
)

type Handler struct {
	syncService        *usecase.MatchSyncService
	scoringService     *usecase.PickScoringService
	statsService       *usecase.EntryStatsService
	weekService        *usecase.WeekService
	autoPickService    *usecase.AutoPickService
	maintenanceService *usecase.MaintenanceService
	reportingService   *usecase.ReportingService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	syncService *usecase.MatchSyncService,
	scoringService *usecase.PickScoringService,
	statsService *usecase.EntryStatsService,
	weekService *usecase.WeekService,
	autoPickService *usecase.AutoPickService,
	maintenanceService *usecase.MaintenanceService,
	reportingService *usecase.ReportingService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		syncService:        syncService,
		scoringService:     scoringService,
		statsService:       statsService,
		weekService:        weekService,
		autoPickService:    autoPickService,
		maintenanceService: maintenanceService,
		reportingService:   reportingService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
