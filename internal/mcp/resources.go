package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/liftlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

var resLifts = mcp.NewResource(
	"liftlog://lifts",
	"Lifts",
	mcp.WithResourceDescription("All of your lifts with their configuration and this week's computed weights"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) liftsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	lifts, err := h.ds.ListLifts(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]models.LiftWithPreview, 0, len(lifts))
	for _, l := range lifts {
		out = append(out, l.WithPreview())
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
