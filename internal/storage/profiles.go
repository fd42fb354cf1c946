package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// CreateProfile completes onboarding. Returns ErrConflict if the handle or
// the user's profile already exists.
func (db *DB) CreateProfile(ctx context.Context, p models.Profile) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO profiles (user_id, handle, display_name, bio) VALUES ($1, $2, $3, $4)`,
		p.UserID, p.Handle, p.DisplayName, p.Bio)
	if err != nil {
		return classify("creating profile", err)
	}
	return nil
}

// GetProfile returns the profile of a user.
func (db *DB) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id, handle, display_name, bio FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.Handle, &p.DisplayName, &p.Bio)
	if err != nil {
		return nil, classify("getting profile", err)
	}
	return &p, nil
}

// GetProfileByHandle returns the profile with the given handle.
func (db *DB) GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id, handle, display_name, bio FROM profiles WHERE handle = $1`, handle,
	).Scan(&p.UserID, &p.Handle, &p.DisplayName, &p.Bio)
	if err != nil {
		return nil, classify("getting profile by handle", err)
	}
	return &p, nil
}

// GetProfiles returns profiles keyed by user ID. Users without a profile are absent.
func (db *DB) GetProfiles(ctx context.Context, userIDs []int) (map[int]models.Profile, error) {
	result := make(map[int]models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, handle, display_name, bio FROM profiles WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.UserID, &p.Handle, &p.DisplayName, &p.Bio); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		result[p.UserID] = p
	}
	return result, rows.Err()
}

// UpdateProfile edits the display name and bio of a user's own profile.
func (db *DB) UpdateProfile(ctx context.Context, userID int, u models.ProfileUpdate) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE profiles SET display_name = $2, bio = $3 WHERE user_id = $1`,
		userID, u.DisplayName, u.Bio)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating profile: %w", ErrNotFound)
	}
	return nil
}
