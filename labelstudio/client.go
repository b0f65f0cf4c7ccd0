// Package labelstudio fetches annotation tasks from a Label Studio
// server and merges them with corpus records for export.
package labelstudio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPageSize is how many tasks one paginated request asks for.
const DefaultPageSize = 50

// DefaultRequestTimeout bounds a single task page request.
const DefaultRequestTimeout = 30 * time.Second

// Client is a Label Studio API client with token auth and request
// rate limiting.
type Client struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	pageSize int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithPageSize sets the task page size.
func WithPageSize(n int) Option {
	return func(cl *Client) {
		cl.pageSize = n
	}
}

// WithRateLimit caps requests per second against the server.
func WithRateLimit(rps float64) Option {
	return func(cl *Client) {
		cl.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a client for the Label Studio server at baseURL,
// authenticating every request with the API key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	cl := &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(cl)
	}
	if cl.client == nil {
		cl.client = &http.Client{Timeout: DefaultRequestTimeout}
	}
	return cl
}

// tasksResponse is the paginated /api/tasks/ payload.
type tasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

// FetchTasks retrieves every task of a project, page by page. The
// server answers out-of-range pages with a non-200 status, which ends
// the pagination along with an empty page.
func (c *Client) FetchTasks(ctx context.Context, projectID int) ([]*Task, error) {
	var all []*Task

	for page := 1; ; page++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		tasks, ok, err := c.fetchPage(ctx, projectID, page)
		if err != nil {
			return nil, err
		}
		if !ok || len(tasks) == 0 {
			break
		}
		all = append(all, tasks...)
	}

	return all, nil
}

// fetchPage retrieves one task page. The second return value is false
// when the server signaled the end of pagination.
func (c *Client) fetchPage(ctx context.Context, projectID, page int) ([]*Task, bool, error) {
	url := fmt.Sprintf("%s/api/tasks/?page=%d&project=%d&page_size=%d&fields=all",
		c.baseURL, page, projectID, c.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, nil
	}

	var payload tasksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode tasks page %d: %w", page, err)
	}

	return payload.Tasks, true, nil
}
