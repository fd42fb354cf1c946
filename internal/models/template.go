package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Template is a named group of lifts. MainLiftID, when set, is always one of LiftIDs.
type Template struct {
	ID         uuid.UUID   `json:"id"`
	UserID     int         `json:"user_id"`
	Name       string      `json:"name"`
	LiftIDs    []uuid.UUID `json:"lift_ids"`
	MainLiftID *uuid.UUID  `json:"main_lift_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

// PreferredLiftID is the lift a new log is prefilled from: the main lift if
// one is set, otherwise the first lift.
func (t Template) PreferredLiftID() (uuid.UUID, bool) {
	if t.MainLiftID != nil {
		return *t.MainLiftID, true
	}
	if len(t.LiftIDs) > 0 {
		return t.LiftIDs[0], true
	}
	return uuid.Nil, false
}

// TemplateDetail is a template with the names of its lifts resolved.
type TemplateDetail struct {
	Template
	Lifts []LiftRef `json:"lifts"`
}

// LiftRef is the minimal view of a lift used in listings.
type LiftRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TemplateInput is the create/update body for a template.
type TemplateInput struct {
	Name       string      `json:"name"`
	LiftIDs    []uuid.UUID `json:"lift_ids"`
	MainLiftID *uuid.UUID  `json:"main_lift_id"`
}

// Validate trims the name, drops nil and duplicate lift IDs, and clears a
// main lift that is not part of the selection.
func (in *TemplateInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("name", "workout name is required")
	}

	ids := make([]uuid.UUID, 0, len(in.LiftIDs))
	for _, id := range in.LiftIDs {
		if id == uuid.Nil || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return invalid("lift_ids", "select at least one lift")
	}
	in.LiftIDs = ids

	if in.MainLiftID != nil && !slices.Contains(ids, *in.MainLiftID) {
		in.MainLiftID = nil
	}
	return nil
}
