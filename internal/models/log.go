package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WorkoutLog is a public record of one session of a lift.
type WorkoutLog struct {
	ID            uuid.UUID `json:"id"`
	UserID        int       `json:"user_id"`
	LiftName      string    `json:"lift_name"`
	TopSetWeight  float64   `json:"top_set_weight"`
	TopSetReps    int       `json:"top_set_reps"`
	BackoffWeight float64   `json:"backoff_weight"`
	BackoffReps   int       `json:"backoff_reps"`
	Notes         string    `json:"notes"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// FeedEntry is a log together with its author's public identity.
type FeedEntry struct {
	WorkoutLog
	UserHandle string `json:"user_handle"`
	UserName   string `json:"user_name"`
}

// Author fallbacks for logs whose user has not finished onboarding.
const (
	UnknownHandle = "unknown"
	AnonymousName = "Anonymous"
)

// NewFeedEntry attaches author details to a log, falling back to placeholders
// when the author has no profile.
func NewFeedEntry(l WorkoutLog, p *Profile) FeedEntry {
	e := FeedEntry{WorkoutLog: l, UserHandle: UnknownHandle, UserName: AnonymousName}
	if p != nil {
		e.UserHandle = p.Handle
		if p.DisplayName != "" {
			e.UserName = p.DisplayName
		}
	}
	return e
}

// LogInput is the body for creating a workout log. PerformedAt is only set by
// bulk imports; interactive logs are stamped with the server time.
type LogInput struct {
	LiftName      string     `json:"lift_name"`
	TopSetWeight  float64    `json:"top_set_weight"`
	TopSetReps    int        `json:"top_set_reps"`
	BackoffWeight float64    `json:"backoff_weight"`
	BackoffReps   int        `json:"backoff_reps"`
	Notes         string     `json:"notes"`
	Tags          []string   `json:"tags"`
	PerformedAt   *time.Time `json:"performed_at,omitempty"`
}

// Validate trims text fields, normalizes tags, and checks the numbers.
func (in *LogInput) Validate() error {
	in.LiftName = strings.TrimSpace(in.LiftName)
	if in.LiftName == "" {
		return invalid("lift_name", "lift name is required")
	}
	if err := requireNonNegative("top_set_weight", in.TopSetWeight); err != nil {
		return err
	}
	if err := requireNonNegative("backoff_weight", in.BackoffWeight); err != nil {
		return err
	}
	if in.TopSetReps < 0 {
		return invalid("top_set_reps", "must not be negative")
	}
	if in.BackoffReps < 0 {
		return invalid("backoff_reps", "must not be negative")
	}
	in.Notes = strings.TrimSpace(in.Notes)
	in.Tags = NormalizeTags(in.Tags)
	return nil
}

// ParseTags splits a comma-separated tag string.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims tags and drops empty and repeated ones, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
