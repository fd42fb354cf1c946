package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/feed"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both LocalSource
// (in-process) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListLifts(ctx context.Context, userID int) ([]models.Lift, error)
	GetLift(ctx context.Context, id uuid.UUID, userID int) (*models.Lift, error)
	GetTemplate(ctx context.Context, id uuid.UUID, userID int) (*models.Template, error)
	Feed(ctx context.Context, userID int, q feed.Query) (*feed.Page, error)
}

// LocalSource serves MCP tools straight from the database.
type LocalSource struct {
	*storage.DB
	feed *feed.Builder
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource wraps db; the feed limits mirror the HTTP API's.
func NewLocalSource(db *storage.DB, defaultLimit, maxLimit int) *LocalSource {
	return &LocalSource{DB: db, feed: feed.NewBuilder(db, defaultLimit, maxLimit)}
}

func (s *LocalSource) Feed(ctx context.Context, userID int, q feed.Query) (*feed.Page, error) {
	return s.feed.Build(ctx, userID, q)
}
