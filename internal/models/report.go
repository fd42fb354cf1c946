package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReportStatus is a report's position in the moderation queue.
type ReportStatus string

const (
	ReportOpen      ReportStatus = "open"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// ReportStatuses lists every status in queue order.
var ReportStatuses = []ReportStatus{ReportOpen, ReportReviewed, ReportResolved, ReportDismissed}

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	for _, v := range ReportStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Report flags a log or a user for moderator review.
type Report struct {
	ID           uuid.UUID    `json:"id"`
	ReporterID   int          `json:"reporter_id"`
	TargetLogID  *uuid.UUID   `json:"target_log_id"`
	TargetUserID *int         `json:"target_user_id"`
	Reason       string       `json:"reason"`
	Status       ReportStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ReportInput is the body for filing a report. Exactly one target is set.
type ReportInput struct {
	TargetLogID  *uuid.UUID `json:"target_log_id"`
	TargetUserID *int       `json:"target_user_id"`
	Reason       string     `json:"reason"`
}

func (in *ReportInput) Validate() error {
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return invalid("reason", "a reason is required")
	}
	if (in.TargetLogID == nil) == (in.TargetUserID == nil) {
		return invalid("target", "report exactly one of target_log_id or target_user_id")
	}
	return nil
}

// StatusUpdate is the moderator body for moving a report.
type StatusUpdate struct {
	Status ReportStatus `json:"status"`
}

func (in StatusUpdate) Validate() error {
	if !in.Status.Valid() {
		return invalid("status", "must be one of open, reviewed, resolved, dismissed")
	}
	return nil
}

// BlockInput is the body for blocking a user.
type BlockInput struct {
	BlockedID int `json:"blocked_id"`
}

// Validate rejects empty and self blocks; blockerID is the caller.
func (in BlockInput) Validate(blockerID int) error {
	if in.BlockedID <= 0 {
		return invalid("blocked_id", "blocked_id is required")
	}
	if in.BlockedID == blockerID {
		return invalid("blocked_id", "you cannot block yourself")
	}
	return nil
}
