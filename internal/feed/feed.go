// Package feed assembles the global workout-log feed for a viewer.
package feed

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

const (
	DefaultLimit = 20
	ExploreLimit = 50
	MaxLimit     = 100

	// AllTags is the tag filter value that disables tag filtering.
	AllTags = "all"
)

// Source is the storage the feed reads from.
type Source interface {
	QueryRecentLogs(ctx context.Context, limit int) ([]models.WorkoutLog, error)
	ListBlockedIDs(ctx context.Context, blockerID int) ([]int, error)
	GetProfiles(ctx context.Context, userIDs []int) (map[int]models.Profile, error)
}

// Query narrows the feed. Zero values mean no narrowing.
type Query struct {
	Limit   int
	Explore bool
	Text    string
	Tag     string
}

// Page is one rendered feed.
type Page struct {
	Entries    []models.FeedEntry `json:"entries"`
	TagOptions []string           `json:"tag_options"`
}

// Builder builds feed pages.
type Builder struct {
	src          Source
	defaultLimit int
	maxLimit     int
}

// NewBuilder returns a Builder. Non-positive limits fall back to the package defaults.
func NewBuilder(src Source, defaultLimit, maxLimit int) *Builder {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	return &Builder{src: src, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Limit resolves the number of logs to load for q.
func (b *Builder) Limit(q Query) int {
	n := q.Limit
	if n <= 0 {
		n = b.defaultLimit
		if q.Explore {
			n = ExploreLimit
		}
	}
	return min(n, b.maxLimit)
}

// Build loads recent logs, hides authors the viewer blocked, attaches author
// identities, and applies the text and tag filters.
func (b *Builder) Build(ctx context.Context, viewerID int, q Query) (*Page, error) {
	logs, err := b.src.QueryRecentLogs(ctx, b.Limit(q))
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}

	blocked, err := b.src.ListBlockedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("loading blocks: %w", err)
	}

	visible := make([]models.WorkoutLog, 0, len(logs))
	var authors []int
	for _, l := range logs {
		if slices.Contains(blocked, l.UserID) {
			continue
		}
		visible = append(visible, l)
		if !slices.Contains(authors, l.UserID) {
			authors = append(authors, l.UserID)
		}
	}

	profiles, err := b.src.GetProfiles(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("loading authors: %w", err)
	}

	page := &Page{Entries: []models.FeedEntry{}, TagOptions: TagOptions(visible)}
	text := strings.ToLower(strings.TrimSpace(q.Text))
	tag := strings.TrimSpace(q.Tag)
	for _, l := range visible {
		var author *models.Profile
		if p, ok := profiles[l.UserID]; ok {
			author = &p
		}
		e := models.NewFeedEntry(l, author)
		if !matchesTag(e, tag) || !matchesText(e, text) {
			continue
		}
		page.Entries = append(page.Entries, e)
	}
	return page, nil
}

// TagOptions lists AllTags followed by every distinct tag in order of appearance.
func TagOptions(logs []models.WorkoutLog) []string {
	opts := []string{AllTags}
	for _, l := range logs {
		for _, t := range l.Tags {
			if !slices.Contains(opts, t) {
				opts = append(opts, t)
			}
		}
	}
	return opts
}

func matchesTag(e models.FeedEntry, tag string) bool {
	if tag == "" || tag == AllTags {
		return true
	}
	return slices.Contains(e.Tags, tag)
}

// matchesText expects text already lowercased.
func matchesText(e models.FeedEntry, text string) bool {
	if text == "" {
		return true
	}
	fields := append([]string{e.UserName, e.UserHandle, e.LiftName, e.Notes}, e.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}
