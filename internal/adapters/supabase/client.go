package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/unscroll-app/unscroll/internal/ports"
)

// requestTimeout bounds every mirror call; the services layer treats the
// mirror as fire-and-forget, so a slow backend must never hold a write.
const requestTimeout = 10 * time.Second

// Client mirrors records to a Supabase project through its PostgREST
// endpoint. Upserts rely on the Prefer: resolution=merge-duplicates header,
// so the target tables need a primary key on the mirrored id column.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ ports.RemoteMirror = (*Client)(nil)

// NewClient creates a mirror client for the given project URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Upsert implements ports.RemoteMirror.Upsert
func (c *Client) Upsert(ctx context.Context, table string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record for %s: %w", table, err)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mirror request to %s failed: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mirror request to %s returned %d: %s", table, resp.StatusCode, detail)
	}
	return nil
}
