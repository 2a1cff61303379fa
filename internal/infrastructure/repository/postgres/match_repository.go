package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-pool/internal/domain/match"
	qb "github.com/riskibarqy/survivor-pool/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by season query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}
	return mapMatchRows(rows), nil
}

func (r *MatchRepository) ListBySeasonWeek(ctx context.Context, seasonID string, week int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by week query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by week: %w", err)
	}
	return mapMatchRows(rows), nil
}

func (r *MatchRepository) FindByTeams(ctx context.Context, seasonID string, week int, homeTeamID, awayTeamID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("week", week),
			qb.Eq("home_team_public_id", homeTeamID),
			qb.Eq("away_team_public_id", awayTeamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build find match by teams query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("find match by teams: %w", err)
	}
	return mapMatchRow(row), true, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) error {
	insertModel := matchInsertModel{
		PublicID:   item.ID,
		SeasonID:   item.SeasonID,
		Week:       item.Week,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		KickoffAt:  item.KickoffAt.UTC(),
		HomeScore:  intPtrToNullInt64(item.HomeScore),
		AwayScore:  intPtrToNullInt64(item.AwayScore),
		Status:     string(item.Status),
		GameType:   item.GameType,
	}
	query, args, err := qb.InsertModel("matches", insertModel, "ON CONFLICT (public_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) UpdateResult(ctx context.Context, matchID string, homeScore, awayScore *int, status match.Status) error {
	query, args, err := qb.Update("matches").
		Set("home_score", intPtrToNullInt64(homeScore)).
		Set("away_score", intPtrToNullInt64(awayScore)).
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match result: %w", err)
	}
	return nil
}

func mapMatchRows(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMatchRow(row))
	}
	return out
}

func mapMatchRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.PublicID,
		SeasonID:   row.SeasonID,
		Week:       row.Week,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		KickoffAt:  row.KickoffAt,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		Status:     match.NormalizeStatus(row.Status),
		GameType:   row.GameType,
	}
}
