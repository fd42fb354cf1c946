package server

import (
	"context"

	"github.com/claude/liftlog/internal/feed"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Store is the persistence the HTTP handlers need. *storage.DB implements it.
type Store interface {
	feed.Source

	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
	CreateUser(ctx context.Context, login, displayName, passwordHash string) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	IsModerator(ctx context.Context, userID int) (bool, error)

	CreateProfile(ctx context.Context, p models.Profile) error
	GetProfile(ctx context.Context, userID int) (*models.Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int, u models.ProfileUpdate) error

	ListLifts(ctx context.Context, userID int) ([]models.Lift, error)
	GetLift(ctx context.Context, id uuid.UUID, userID int) (*models.Lift, error)
	InsertLift(ctx context.Context, userID int, in models.LiftInput) (*models.Lift, error)
	UpdateLift(ctx context.Context, id uuid.UUID, userID int, in models.LiftInput) (*models.Lift, error)
	DeleteLift(ctx context.Context, id uuid.UUID, userID int) error
	GetLiftRefs(ctx context.Context, ids []uuid.UUID, userID int) ([]models.LiftRef, error)

	ListTemplates(ctx context.Context, userID int) ([]models.Template, error)
	GetTemplate(ctx context.Context, id uuid.UUID, userID int) (*models.Template, error)
	InsertTemplate(ctx context.Context, userID int, in models.TemplateInput) (*models.Template, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, userID int, in models.TemplateInput) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID, userID int) error

	InsertLog(ctx context.Context, userID int, in models.LogInput) (*models.WorkoutLog, error)
	GetLog(ctx context.Context, id uuid.UUID) (*models.WorkoutLog, error)
	QueryUserLogs(ctx context.Context, userID, limit int) ([]models.WorkoutLog, error)

	InsertReport(ctx context.Context, reporterID int, in models.ReportInput) (*models.Report, error)
	QueryReports(ctx context.Context, limit int) ([]models.Report, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error
	InsertBlock(ctx context.Context, blockerID, blockedID int) error
	IsBlocked(ctx context.Context, blockerID, blockedID int) (bool, error)
}

var _ Store = (*storage.DB)(nil)
