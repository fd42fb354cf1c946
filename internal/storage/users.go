package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// GetOrCreateUser finds or creates a user by Tailscale login name.
// Returns the user ID. Updates last_seen and display_name on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting user %s: %w", login, err)
	}
	return id, nil
}

// CreateUser registers a password account. Returns ErrConflict if the login is taken.
func (db *DB) CreateUser(ctx context.Context, login, displayName, passwordHash string) (*models.User, error) {
	u := &models.User{Login: login, DisplayName: displayName, PasswordHash: passwordHash}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, login, displayName, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, classify("creating user", err)
	}
	return u, nil
}

// GetUserByLogin looks up an account for password login.
func (db *DB) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	var hash *string
	err := db.Pool.QueryRow(ctx, `
		SELECT id, login, display_name, password_hash, created_at
		FROM users WHERE login = $1
	`, login).Scan(&u.ID, &u.Login, &u.DisplayName, &hash, &u.CreatedAt)
	if err != nil {
		return nil, classify("getting user", err)
	}
	if hash != nil {
		u.PasswordHash = *hash
	}
	return &u, nil
}

// EnsureModerators grants moderator rights to the given logins, creating
// users for logins that have not signed in yet. Idempotent.
func (db *DB) EnsureModerators(ctx context.Context, logins []string) error {
	for _, login := range logins {
		id, err := db.GetOrCreateUser(ctx, login, "")
		if err != nil {
			return err
		}
		if _, err := db.Pool.Exec(ctx,
			`INSERT INTO moderators (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, id); err != nil {
			return fmt.Errorf("granting moderator to %s: %w", login, err)
		}
	}
	return nil
}

// IsModerator reports whether the user may work the moderation queue.
func (db *DB) IsModerator(ctx context.Context, userID int) (bool, error) {
	var ok bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM moderators WHERE user_id = $1)`, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("checking moderator: %w", err)
	}
	return ok, nil
}

// GetUser returns a user by ID.
func (db *DB) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, login, display_name, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Login, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		return nil, classify("getting user", err)
	}
	return &u, nil
}
