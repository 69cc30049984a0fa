// Package tonapi is a thin client for the trace source (a toncenter v3
// style indexer API). In-flight traces and finalized traces live behind
// separate endpoints, both keyed by the normalized external message hash.
package tonapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ton-connect/kit-sub008/models"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PendingTraces looks up the in-flight trace for an external message hash.
func (c *Client) PendingTraces(ctx context.Context, extMsgHash string) (*models.TracesResponse, error) {
	return c.getTraces(ctx, "/api/v3/pendingTraces", "ext_msg_hash", extMsgHash)
}

// Traces looks up the finalized trace by trace id (the same normalized
// hash).
func (c *Client) Traces(ctx context.Context, traceID string) (*models.TracesResponse, error) {
	return c.getTraces(ctx, "/api/v3/traces", "trace_id", traceID)
}

func (c *Client) getTraces(ctx context.Context, path, param, value string) (*models.TracesResponse, error) {
	q := url.Values{}
	q.Set(param, value)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("trace source returned %s: %s", resp.Status, body)
	}

	var res models.TracesResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode traces response: %w", err)
	}
	return &res, nil
}
