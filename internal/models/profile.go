package models

import (
	"strings"
	"time"
)

// User is an account. Login is the Tailscale login name or the registered
// handle, depending on the auth mode.
type User struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a user's public identity.
type Profile struct {
	UserID      int     `json:"user_id"`
	Handle      string  `json:"handle"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio"`
}

// ProfileDetail is a profile page: the profile, recent logs, and whether
// the viewer has blocked its owner.
type ProfileDetail struct {
	Profile
	Logs      []WorkoutLog `json:"logs"`
	IsOwner   bool         `json:"is_owner"`
	IsBlocked bool         `json:"is_blocked"`
}

// MinHandleLength is the shortest accepted handle after normalization.
const MinHandleLength = 3

// NormalizeHandle lowercases the handle and strips everything outside [a-z0-9_].
func NormalizeHandle(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	for _, r := range h {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ProfileInput is the onboarding body.
type ProfileInput struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
}

// Validate normalizes the handle and trims the display name.
func (in *ProfileInput) Validate() error {
	in.Handle = NormalizeHandle(in.Handle)
	if len(in.Handle) < MinHandleLength {
		return invalid("handle", "handle must be at least 3 characters")
	}
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	return nil
}

// ProfileUpdate is the body for editing one's own profile.
type ProfileUpdate struct {
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio"`
}

// Validate requires a display name and turns a blank bio into no bio.
func (in *ProfileUpdate) Validate() error {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.DisplayName == "" {
		return invalid("display_name", "display name is required")
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if bio == "" {
			in.Bio = nil
		} else {
			in.Bio = &bio
		}
	}
	return nil
}
