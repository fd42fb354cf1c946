package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

const maxAttempts = 3

// Client posts workout logs to a LiftLog server.
type Client struct {
	serverURL  string
	token      string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a client for the server at serverURL, authenticating with
// a bearer token when one is given.
func NewClient(serverURL, token string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		token:     token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// SendLog POSTs one log to /api/v1/logs. Network errors and 5xx responses are
// retried up to 3 attempts with exponential backoff; other client errors are
// returned immediately since resending the same body cannot fix them.
func (c *Client) SendLog(ctx context.Context, in models.LogInput) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling log: %w", err)
	}

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(1<<uint(attempt-1)) * c.backoff):
			}
		}

		retry, err := c.post(ctx, "/api/v1/logs", data)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) post(ctx context.Context, path string, body []byte) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+path, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	respBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		return false, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return true, fmt.Errorf("post failed (status %d): %s", resp.StatusCode, bytes.TrimSpace(respBody))
	default:
		return false, fmt.Errorf("post rejected (status %d): %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}
}
