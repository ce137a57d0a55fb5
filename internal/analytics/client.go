package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client fetches the analytics payload for a campaign from the upstream
// analytics service, for callers that want the report generated server-side
// instead of posting the analytics object themselves.
type Client struct {
	baseURL    string
	httpc      *http.Client
	maxRetries int
	logger     *zap.Logger
}

// NewClient creates an upstream analytics client.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpc:      &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// FetchReportInput retrieves the campaign snapshot and analytics object for
// the given campaign and reporting window. Transport errors and 5xx
// responses are retried with exponential backoff; 4xx responses are
// terminal. The response body is expected to already match the report
// input schema.
func (c *Client) FetchReportInput(ctx context.Context, campaignID, start, end string) (*ReportInput, error) {
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	endpoint := fmt.Sprintf("%s/campaigns/%s/analytics", c.baseURL, url.PathEscape(campaignID))
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var in ReportInput
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * 250 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			c.logger.Warn("Retrying upstream analytics fetch",
				zap.String("campaign_id", campaignID),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
		}

		retryable, err := c.getJSON(ctx, endpoint, &in)
		if err == nil {
			return &in, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("fetch analytics for campaign %s: %w", campaignID, lastErr)
}

// getJSON performs one GET and decodes the body. The bool result reports
// whether the failure is worth retrying.
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(body))
		return resp.StatusCode >= 500, err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, fmt.Errorf("decode upstream response: %w", err)
	}
	return false, nil
}
