package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-pool/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the reference season, teams, matches, and entries into
// an empty database. A non-empty seasons table makes it a no-op.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSeasons() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO seasons (public_id, year, name, is_active, current_week, max_weeks, start_date)
VALUES (:public_id, :year, :name, :is_active, :current_week, :max_weeks, :start_date)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    s.ID,
			"year":         s.Year,
			"name":         s.Name,
			"is_active":    s.IsActive,
			"current_week": s.CurrentWeek,
			"max_weeks":    s.MaxWeeks,
			"start_date":   s.StartDate.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed season %s query: %w", s.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed season %s: %w", s.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, name, city, abbreviation, conference, division)
VALUES (:public_id, :name, :city, :abbreviation, :conference, :division)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    t.ID,
			"name":         t.Name,
			"city":         t.City,
			"abbreviation": t.Abbreviation,
			"conference":   t.Conference,
			"division":     t.Division,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (public_id, season_public_id, week, home_team_public_id, away_team_public_id, kickoff_at, status, game_type)
VALUES (:public_id, :season_public_id, :week, :home_team_public_id, :away_team_public_id, :kickoff_at, :status, :game_type)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           m.ID,
			"season_public_id":    m.SeasonID,
			"week":                m.Week,
			"home_team_public_id": m.HomeTeamID,
			"away_team_public_id": m.AwayTeamID,
			"kickoff_at":          m.KickoffAt.UTC(),
			"status":              string(m.Status),
			"game_type":           m.GameType,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, e := range memory.SeedEntries() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO entries (public_id, user_id, season_public_id, name, status, is_active)
VALUES (:public_id, :user_id, :season_public_id, :name, :status, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        e.ID,
			"user_id":          e.UserID,
			"season_public_id": e.SeasonID,
			"name":             e.Name,
			"status":           string(e.Status),
			"is_active":        e.IsActive,
		})
		if err != nil {
			return fmt.Errorf("bind seed entry %s query: %w", e.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
