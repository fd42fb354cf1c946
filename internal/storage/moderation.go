package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// InsertReport files a report in the open state.
func (db *DB) InsertReport(ctx context.Context, reporterID int, in models.ReportInput) (*models.Report, error) {
	r := models.Report{
		ID:           uuid.New(),
		ReporterID:   reporterID,
		TargetLogID:  in.TargetLogID,
		TargetUserID: in.TargetUserID,
		Reason:       in.Reason,
		Status:       models.ReportOpen,
	}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO reports (id, reporter_id, target_log_id, target_user_id, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		r.ID, r.ReporterID, r.TargetLogID, r.TargetUserID, r.Reason, r.Status,
	).Scan(&r.CreatedAt)
	if err != nil {
		return nil, classify("inserting report", err)
	}
	return &r, nil
}

// QueryReports returns the newest reports for the moderation queue.
func (db *DB) QueryReports(ctx context.Context, limit int) ([]models.Report, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, reporter_id, target_log_id, target_user_id, reason, status, created_at
		 FROM reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var result []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.ReporterID, &r.TargetLogID, &r.TargetUserID,
			&r.Reason, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// UpdateReportStatus moves a report within the queue.
func (db *DB) UpdateReportStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE reports SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating report %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating report %s: %w", id, ErrNotFound)
	}
	return nil
}

// InsertBlock hides blockedID's logs from blockerID. Blocking twice is a no-op.
func (db *DB) InsertBlock(ctx context.Context, blockerID, blockedID int) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO blocks (blocker_id, blocked_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		blockerID, blockedID)
	if err != nil {
		return classify("inserting block", err)
	}
	return nil
}

// ListBlockedIDs returns the users blockerID has blocked.
func (db *DB) ListBlockedIDs(ctx context.Context, blockerID int) ([]int, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT blocked_id FROM blocks WHERE blocker_id = $1`, blockerID)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsBlocked reports whether blockerID has blocked blockedID.
func (db *DB) IsBlocked(ctx context.Context, blockerID, blockedID int) (bool, error) {
	var ok bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blocks WHERE blocker_id = $1 AND blocked_id = $2)`,
		blockerID, blockedID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("checking block: %w", err)
	}
	return ok, nil
}
