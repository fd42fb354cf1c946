package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const logColumns = `id, user_id, lift_name, top_set_weight, top_set_reps,
	backoff_weight, backoff_reps, notes, tags, created_at`

func scanLog(row pgx.Row) (models.WorkoutLog, error) {
	var l models.WorkoutLog
	err := row.Scan(&l.ID, &l.UserID, &l.LiftName, &l.TopSetWeight, &l.TopSetReps,
		&l.BackoffWeight, &l.BackoffReps, &l.Notes, &l.Tags, &l.CreatedAt)
	return l, err
}

func collectLogs(rows pgx.Rows) ([]models.WorkoutLog, error) {
	defer rows.Close()
	var result []models.WorkoutLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// InsertLog stores a validated workout log. Logs without PerformedAt are stamped now.
func (db *DB) InsertLog(ctx context.Context, userID int, in models.LogInput) (*models.WorkoutLog, error) {
	createdAt := time.Now()
	if in.PerformedAt != nil {
		createdAt = *in.PerformedAt
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	l, err := scanLog(db.Pool.QueryRow(ctx,
		`INSERT INTO workout_logs (id, user_id, lift_name, top_set_weight, top_set_reps,
		 backoff_weight, backoff_reps, notes, tags, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+logColumns,
		uuid.New(), userID, in.LiftName, in.TopSetWeight, in.TopSetReps,
		in.BackoffWeight, in.BackoffReps, in.Notes, tags, createdAt))
	if err != nil {
		return nil, classify("inserting workout log", err)
	}
	return &l, nil
}

// GetLog returns any log by ID. Logs are public.
func (db *DB) GetLog(ctx context.Context, id uuid.UUID) (*models.WorkoutLog, error) {
	l, err := scanLog(db.Pool.QueryRow(ctx,
		`SELECT `+logColumns+` FROM workout_logs WHERE id = $1`, id))
	if err != nil {
		return nil, classify("getting workout log", err)
	}
	return &l, nil
}

// QueryRecentLogs returns the newest logs across all users.
func (db *DB) QueryRecentLogs(ctx context.Context, limit int) ([]models.WorkoutLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+logColumns+` FROM workout_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent logs: %w", err)
	}
	return collectLogs(rows)
}

// QueryUserLogs returns a user's newest logs.
func (db *DB) QueryUserLogs(ctx context.Context, userID, limit int) ([]models.WorkoutLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+logColumns+` FROM workout_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying user logs: %w", err)
	}
	return collectLogs(rows)
}
