package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-pool/internal/domain/pick"
	qb "github.com/riskibarqy/survivor-pool/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListPendingBySeason(ctx context.Context, seasonID string, maxWeek int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("result", string(pick.ResultPending)),
			qb.Expr("week <= ?", maxWeek),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "entry_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pending picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pending picks: %w", err)
	}
	return mapPickRows(rows), nil
}

func (r *PickRepository) ListBySeasonUpToWeek(ctx context.Context, seasonID string, maxWeek int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Expr("week <= ?", maxWeek),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "entry_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks up to week query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks up to week: %w", err)
	}
	return mapPickRows(rows), nil
}

func (r *PickRepository) ListByEntry(ctx context.Context, entryID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("entry_public_id", entryID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by entry query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by entry: %w", err)
	}
	return mapPickRows(rows), nil
}

func (r *PickRepository) ListByEntryAndWeek(ctx context.Context, entryID string, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("entry_public_id", entryID),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by entry week query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by entry week: %w", err)
	}
	return mapPickRows(rows), nil
}

func (r *PickRepository) Insert(ctx context.Context, item pick.Pick) error {
	insertModel := pickInsertModel{
		PublicID:       item.ID,
		EntryID:        item.EntryID,
		SeasonID:       item.SeasonID,
		MatchID:        item.MatchID,
		Week:           item.Week,
		SelectedTeamID: item.SelectedTeamID,
		Result:         string(item.Result),
		PointsEarned:   item.PointsEarned,
		Multiplier:     item.Multiplier,
		CreatedAt:      item.CreatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("picks", insertModel,
		"ON CONFLICT (entry_public_id, week) WHERE deleted_at IS NULL DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}
	return nil
}

func (r *PickRepository) UpdateScore(ctx context.Context, pickID string, result pick.Result, points, multiplier int) error {
	query, args, err := qb.Update("picks").
		Set("result", string(result)).
		Set("points_earned", points).
		Set("multiplier", multiplier).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", pickID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update pick score: %w", err)
	}
	return nil
}

func mapPickRows(rows []pickTableModel) []pick.Pick {
	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.Pick{
			ID:             row.PublicID,
			EntryID:        row.EntryID,
			SeasonID:       row.SeasonID,
			MatchID:        row.MatchID,
			Week:           row.Week,
			SelectedTeamID: row.SelectedTeamID,
			Result:         pick.NormalizeResult(row.Result),
			PointsEarned:   row.PointsEarned,
			Multiplier:     row.Multiplier,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out
}
