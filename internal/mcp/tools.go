package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/feed"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/progression"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListLifts = mcp.NewTool("list_lifts",
	mcp.WithDescription("List your configured lifts with this week's computed weights (main-day top set and back-off, alternate-day top set and back-off)."),
)

var toolPreviewLift = mcp.NewTool("preview_lift",
	mcp.WithDescription("Compute the working weights for one lift. Pass week to look ahead or back without changing the stored lift."),
	mcp.WithString("lift_id", mcp.Required(), mcp.Description("Lift UUID from list_lifts")),
	mcp.WithNumber("week", mcp.Description("Week number to preview (1 = cycle start). Defaults to the lift's current week.")),
)

var toolPrefillLog = mcp.NewTool("prefill_log",
	mcp.WithDescription("Suggest a workout log for a template: the template's main lift (or first lift) with today's top set and back-off weights and reps."),
	mcp.WithString("template_id", mcp.Required(), mcp.Description("Workout template UUID")),
)

var toolGetFeed = mcp.NewTool("get_feed",
	mcp.WithDescription("Read recent public workout logs, excluding users you blocked. Supports free-text search and a tag filter."),
	mcp.WithString("q", mcp.Description("Case-insensitive search over author, lift name, notes, and tags")),
	mcp.WithString("tag", mcp.Description("Only logs with this tag. 'all' disables the filter.")),
	mcp.WithNumber("limit", mcp.Description("Number of logs to load (default 20, max 100)")),
)

// --- Tool handlers ---

func (h *handlers) listLifts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	lifts, err := h.ds.ListLifts(ctx, uid)
	if err != nil {
		h.log.Error("mcp list_lifts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out := make([]models.LiftWithPreview, 0, len(lifts))
	for _, l := range lifts {
		out = append(out, l.WithPreview())
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) previewLift(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("lift_id")
	if err != nil {
		return mcp.NewToolResultError("lift_id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid lift_id"), nil
	}

	lift, err := h.ds.GetLift(ctx, id, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp preview_lift", "error", err)
		return mcp.NewToolResultError("lift not found"), nil
	}

	cfg := lift.Config
	if week := req.GetInt("week", 0); week != 0 {
		if week < 1 {
			return mcp.NewToolResultError("week must be at least 1"), nil
		}
		cfg.WeekNumber = week
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"lift":    lift.Name,
		"week":    cfg.WeekNumber,
		"preview": progression.ComputePreview(cfg),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) prefillLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("template_id")
	if err != nil {
		return mcp.NewToolResultError("template_id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid template_id"), nil
	}

	uid := UserIDFromContext(ctx)
	tmpl, err := h.ds.GetTemplate(ctx, id, uid)
	if err != nil {
		h.log.Error("mcp prefill_log", "error", err)
		return mcp.NewToolResultError("template not found"), nil
	}

	prefill := progression.Prefill{}
	if liftID, ok := tmpl.PreferredLiftID(); ok {
		lift, err := h.ds.GetLift(ctx, liftID, uid)
		if err != nil {
			h.log.Error("mcp prefill_log lift", "error", err)
			return mcp.NewToolResultError("template lift not found"), nil
		}
		prefill = progression.PrefillLog(lift.Name, lift.Config)
	}

	result, err := mcp.NewToolResultJSON(prefill)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := feed.Query{
		Limit: req.GetInt("limit", 0),
		Text:  req.GetString("q", ""),
		Tag:   req.GetString("tag", ""),
	}

	page, err := h.ds.Feed(ctx, UserIDFromContext(ctx), q)
	if err != nil {
		h.log.Error("mcp get_feed", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(page)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
