package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const templateColumns = `id, user_id, name, lift_ids, main_lift_id, created_at`

func scanTemplate(row pgx.Row) (models.Template, error) {
	var t models.Template
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.LiftIDs, &t.MainLiftID, &t.CreatedAt)
	return t, err
}

// ListTemplates returns a user's workout templates, newest first.
func (db *DB) ListTemplates(ctx context.Context, userID int) ([]models.Template, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+templateColumns+` FROM workout_templates WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetTemplate returns one of the user's templates.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID, userID int) (*models.Template, error) {
	t, err := scanTemplate(db.Pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM workout_templates WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, classify("getting template", err)
	}
	return &t, nil
}

// InsertTemplate stores a validated template.
func (db *DB) InsertTemplate(ctx context.Context, userID int, in models.TemplateInput) (*models.Template, error) {
	t, err := scanTemplate(db.Pool.QueryRow(ctx,
		`INSERT INTO workout_templates (id, user_id, name, lift_ids, main_lift_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+templateColumns,
		uuid.New(), userID, in.Name, in.LiftIDs, in.MainLiftID))
	if err != nil {
		return nil, classify("inserting template", err)
	}
	return &t, nil
}

// UpdateTemplate replaces the name and lifts of one of the user's templates.
func (db *DB) UpdateTemplate(ctx context.Context, id uuid.UUID, userID int, in models.TemplateInput) (*models.Template, error) {
	t, err := scanTemplate(db.Pool.QueryRow(ctx,
		`UPDATE workout_templates SET name = $3, lift_ids = $4, main_lift_id = $5
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+templateColumns,
		id, userID, in.Name, in.LiftIDs, in.MainLiftID))
	if err != nil {
		return nil, classify("updating template", err)
	}
	return &t, nil
}

// DeleteTemplate removes one of the user's templates.
func (db *DB) DeleteTemplate(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_templates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting template: %w", ErrNotFound)
	}
	return nil
}
