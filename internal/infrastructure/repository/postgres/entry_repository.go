package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-pool/internal/domain/entry"
	qb "github.com/riskibarqy/survivor-pool/internal/platform/querybuilder"
)

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) ListBySeason(ctx context.Context, seasonID string) ([]entry.Entry, error) {
	query, args, err := qb.Select("*").From("entries").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select entries by season query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entries by season: %w", err)
	}
	return mapEntryRows(rows), nil
}

func (r *EntryRepository) ListActiveBySeason(ctx context.Context, seasonID string) ([]entry.Entry, error) {
	query, args, err := qb.Select("*").From("entries").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active entries query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active entries: %w", err)
	}
	return mapEntryRows(rows), nil
}

func (r *EntryRepository) Get(ctx context.Context, entryID string) (entry.Entry, bool, error) {
	query, args, err := qb.Select("*").From("entries").
		Where(
			qb.Eq("public_id", entryID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("build get entry query: %w", err)
	}

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("get entry: %w", err)
	}
	return mapEntryRow(row), true, nil
}

func (r *EntryRepository) UpdateStatistics(ctx context.Context, entryID string, stats entry.Statistics) error {
	query, args, err := qb.Update("entries").
		Set("points", stats.Points).
		Set("status", string(stats.Status)).
		Set("is_active", stats.IsActive).
		Set("eliminated_week", intPtrToNullInt64(stats.EliminatedWeek)).
		Set("total_wins", stats.TotalWins).
		Set("total_losses", stats.TotalLosses).
		Set("current_streak", stats.CurrentStreak).
		Set("longest_streak", stats.LongestStreak).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", entryID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update entry statistics query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update entry statistics: %w", err)
	}
	return nil
}

func mapEntryRows(rows []entryTableModel) []entry.Entry {
	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapEntryRow(row))
	}
	return out
}

func mapEntryRow(row entryTableModel) entry.Entry {
	return entry.Entry{
		ID:             row.PublicID,
		UserID:         row.UserID,
		SeasonID:       row.SeasonID,
		Name:           row.Name,
		Points:         row.Points,
		Status:         entry.NormalizeStatus(row.Status),
		IsActive:       row.IsActive,
		EliminatedWeek: nullInt64ToIntPtr(row.EliminatedWeek),
		TotalWins:      row.TotalWins,
		TotalLosses:    row.TotalLosses,
		CurrentStreak:  row.CurrentStreak,
		LongestStreak:  row.LongestStreak,
	}
}
