package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const liftColumns = `id, user_id, name, goal_weight, week_number, top_set_start_percent,
	backoff_percent, cycle_start_weight, top_set_sets, top_set_reps, backoff_sets, backoff_reps,
	alt_top_set_sets, alt_top_set_reps, alt_backoff_sets, alt_backoff_reps,
	alt_day_top_set_percent, alt_day_backoff_percent, created_at`

func scanLift(row pgx.Row) (models.Lift, error) {
	var l models.Lift
	c := &l.Config
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &c.GoalWeight, &c.WeekNumber, &c.TopSetStartPercent,
		&c.BackoffPercent, &c.CycleStartWeight, &c.TopSet.Sets, &c.TopSet.Reps,
		&c.Backoff.Sets, &c.Backoff.Reps, &c.AltTopSet.Sets, &c.AltTopSet.Reps,
		&c.AltBackoff.Sets, &c.AltBackoff.Reps,
		&c.AltDayTopSetPercent, &c.AltDayBackoffPercent, &l.CreatedAt)
	return l, err
}

// ListLifts returns a user's lifts, newest first.
func (db *DB) ListLifts(ctx context.Context, userID int) ([]models.Lift, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+liftColumns+` FROM lifts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying lifts: %w", err)
	}
	defer rows.Close()

	var result []models.Lift
	for rows.Next() {
		l, err := scanLift(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lift: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// GetLift returns one of the user's lifts.
func (db *DB) GetLift(ctx context.Context, id uuid.UUID, userID int) (*models.Lift, error) {
	l, err := scanLift(db.Pool.QueryRow(ctx,
		`SELECT `+liftColumns+` FROM lifts WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, classify("getting lift", err)
	}
	return &l, nil
}

// InsertLift stores a new lift for the user.
func (db *DB) InsertLift(ctx context.Context, userID int, in models.LiftInput) (*models.Lift, error) {
	c := in.Config()
	l, err := scanLift(db.Pool.QueryRow(ctx,
		`INSERT INTO lifts (id, user_id, name, goal_weight, week_number, top_set_start_percent,
		 backoff_percent, cycle_start_weight, top_set_sets, top_set_reps, backoff_sets, backoff_reps,
		 alt_top_set_sets, alt_top_set_reps, alt_backoff_sets, alt_backoff_reps,
		 alt_day_top_set_percent, alt_day_backoff_percent)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		 RETURNING `+liftColumns,
		uuid.New(), userID, in.Name, c.GoalWeight, c.WeekNumber, c.TopSetStartPercent,
		c.BackoffPercent, c.CycleStartWeight, c.TopSet.Sets, c.TopSet.Reps,
		c.Backoff.Sets, c.Backoff.Reps, c.AltTopSet.Sets, c.AltTopSet.Reps,
		c.AltBackoff.Sets, c.AltBackoff.Reps, c.AltDayTopSetPercent, c.AltDayBackoffPercent))
	if err != nil {
		return nil, classify("inserting lift", err)
	}
	return &l, nil
}

// UpdateLift replaces the configuration of one of the user's lifts.
func (db *DB) UpdateLift(ctx context.Context, id uuid.UUID, userID int, in models.LiftInput) (*models.Lift, error) {
	c := in.Config()
	l, err := scanLift(db.Pool.QueryRow(ctx,
		`UPDATE lifts SET name = $3, goal_weight = $4, week_number = $5, top_set_start_percent = $6,
		 backoff_percent = $7, cycle_start_weight = $8, top_set_sets = $9, top_set_reps = $10,
		 backoff_sets = $11, backoff_reps = $12, alt_top_set_sets = $13, alt_top_set_reps = $14,
		 alt_backoff_sets = $15, alt_backoff_reps = $16,
		 alt_day_top_set_percent = $17, alt_day_backoff_percent = $18
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+liftColumns,
		id, userID, in.Name, c.GoalWeight, c.WeekNumber, c.TopSetStartPercent,
		c.BackoffPercent, c.CycleStartWeight, c.TopSet.Sets, c.TopSet.Reps,
		c.Backoff.Sets, c.Backoff.Reps, c.AltTopSet.Sets, c.AltTopSet.Reps,
		c.AltBackoff.Sets, c.AltBackoff.Reps, c.AltDayTopSetPercent, c.AltDayBackoffPercent))
	if err != nil {
		return nil, classify("updating lift", err)
	}
	return &l, nil
}

// DeleteLift removes one of the user's lifts and drops it from their templates.
func (db *DB) DeleteLift(ctx context.Context, id uuid.UUID, userID int) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete lift: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx, `DELETE FROM lifts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting lift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting lift: %w", ErrNotFound)
	}

	_, err = tx.Exec(ctx, `
		UPDATE workout_templates
		SET lift_ids = array_remove(lift_ids, $1),
		    main_lift_id = NULLIF(main_lift_id, $1)
		WHERE user_id = $2 AND $1 = ANY(lift_ids)
	`, id, userID)
	if err != nil {
		return fmt.Errorf("detaching lift from templates: %w", err)
	}
	return tx.Commit(ctx)
}

// GetLiftRefs returns id/name pairs for the user's lifts among ids.
func (db *DB) GetLiftRefs(ctx context.Context, ids []uuid.UUID, userID int) ([]models.LiftRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name FROM lifts WHERE id = ANY($1) AND user_id = $2 ORDER BY name`, ids, userID)
	if err != nil {
		return nil, fmt.Errorf("querying lift refs: %w", err)
	}
	defer rows.Close()

	var result []models.LiftRef
	for rows.Next() {
		var r models.LiftRef
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scanning lift ref: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
