package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	"github.com/riskibarqy/survivor-pool/internal/domain/team"
	"github.com/riskibarqy/survivor-pool/internal/usecase"
)

type seasonDTO struct {
	ID          string     `json:"id"`
	Year        int        `json:"year"`
	Name        string     `json:"name"`
	CurrentWeek int        `json:"current_week"`
	MaxWeeks    int        `json:"max_weeks"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type teamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Abbreviation string `json:"abbreviation"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
}

type matchDTO struct {
	ID         string    `json:"id"`
	Week       int       `json:"week"`
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	KickoffAt  time.Time `json:"kickoff_at"`
	HomeScore  *int      `json:"home_score"`
	AwayScore  *int      `json:"away_score"`
	Status     string    `json:"status"`
	GameType   string    `json:"game_type"`
}

type entryDTO struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Name           string `json:"name,omitempty"`
	Points         int    `json:"points"`
	Status         string `json:"status"`
	IsActive       bool   `json:"is_active"`
	EliminatedWeek *int   `json:"eliminated_week,omitempty"`
	TotalWins      int    `json:"total_wins"`
	TotalLosses    int    `json:"total_losses"`
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
}

type pickDTO struct {
	ID             string    `json:"id"`
	Week           int       `json:"week"`
	MatchID        string    `json:"match_id"`
	SelectedTeamID string    `json:"selected_team_id"`
	Result         string    `json:"result"`
	PointsEarned   int       `json:"points_earned"`
	Multiplier     int       `json:"multiplier"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *Handler) GetCurrentSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentSeason")
	defer span.End()

	active, err := h.reportingService.CurrentSeason(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(active))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.reportingService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	week, err := parseOptionalWeek(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.reportingService.ListMatches(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEntries")
	defer span.End()

	entries, err := h.reportingService.ListEntries(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list entries failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntry")
	defer span.End()

	entryID := r.PathValue("entryID")
	item, err := h.reportingService.GetEntry(ctx, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "get entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(item))
}

func (h *Handler) ListEntryPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEntryPicks")
	defer span.End()

	entryID := r.PathValue("entryID")
	picks, err := h.reportingService.ListEntryPicks(ctx, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "list entry picks failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func parseOptionalWeek(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid week %q", usecase.ErrInvalidInput, raw)
	}
	return &week, nil
}

func seasonToDTO(s season.Season) seasonDTO {
	return seasonDTO{
		ID:          s.ID,
		Year:        s.Year,
		Name:        s.Name,
		CurrentWeek: s.CurrentWeek,
		MaxWeeks:    s.MaxWeeks,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:           t.ID,
		Name:         t.Name,
		City:         t.City,
		Abbreviation: t.Abbreviation,
		Conference:   t.Conference,
		Division:     t.Division,
	}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		Week:       m.Week,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		KickoffAt:  m.KickoffAt,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Status:     string(m.Status),
		GameType:   m.GameType,
	}
}

func entryToDTO(e entry.Entry) entryDTO {
	return entryDTO{
		ID:             e.ID,
		UserID:         e.UserID,
		Name:           e.Name,
		Points:         e.Points,
		Status:         string(e.Status),
		IsActive:       e.IsActive,
		EliminatedWeek: e.EliminatedWeek,
		TotalWins:      e.TotalWins,
		TotalLosses:    e.TotalLosses,
		CurrentStreak:  e.CurrentStreak,
		LongestStreak:  e.LongestStreak,
	}
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		ID:             p.ID,
		Week:           p.Week,
		MatchID:        p.MatchID,
		SelectedTeamID: p.SelectedTeamID,
		Result:         string(p.Result),
		PointsEarned:   p.PointsEarned,
		Multiplier:     p.Multiplier,
		CreatedAt:      p.CreatedAt,
	}
}
