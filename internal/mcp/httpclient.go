package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/feed"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) and the
// server identifies the user from the bearer token or tailnet identity.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. token may
// be empty when the server authenticates by tailnet identity.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) ListLifts(ctx context.Context, _ int) ([]models.Lift, error) {
	var lifts []models.Lift
	if err := c.get(ctx, "/api/v1/lifts", nil, &lifts); err != nil {
		return nil, err
	}
	return lifts, nil
}

func (c *HTTPClient) GetLift(ctx context.Context, id uuid.UUID, _ int) (*models.Lift, error) {
	var lift models.Lift
	if err := c.get(ctx, "/api/v1/lifts/"+id.String(), nil, &lift); err != nil {
		return nil, err
	}
	return &lift, nil
}

func (c *HTTPClient) GetTemplate(ctx context.Context, id uuid.UUID, _ int) (*models.Template, error) {
	var t models.Template
	if err := c.get(ctx, "/api/v1/templates/"+id.String(), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) Feed(ctx context.Context, _ int, q feed.Query) (*feed.Page, error) {
	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Explore {
		params.Set("view", "explore")
	}
	if q.Text != "" {
		params.Set("q", q.Text)
	}
	if q.Tag != "" {
		params.Set("tag", q.Tag)
	}

	var page feed.Page
	if err := c.get(ctx, "/api/v1/feed", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
