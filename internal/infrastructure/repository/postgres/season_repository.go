package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-pool/internal/domain/season"
	qb "github.com/riskibarqy/survivor-pool/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetActive(ctx context.Context) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("year DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get active season: %w", err)
	}

	return season.Season{
		ID:          row.PublicID,
		Year:        row.Year,
		Name:        row.Name,
		IsActive:    row.IsActive,
		CurrentWeek: row.CurrentWeek,
		MaxWeeks:    row.MaxWeeks,
		StartDate:   row.StartDate,
		EndDate:     nullTimeToPtr(row.EndDate),
	}, true, nil
}

func (r *SeasonRepository) UpdateCurrentWeek(ctx context.Context, seasonID string, week int) error {
	query, args, err := qb.Update("seasons").
		Set("current_week", week).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season week query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update season week: %w", err)
	}
	return nil
}
