// Package practicum implements the HTTP client for the Practicum
// homework-statuses endpoint.
package practicum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultEndpoint is the production statuses endpoint.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const defaultTimeout = 30 * time.Second

// Responses larger than this are not expected from the API; the cap keeps a
// misbehaving endpoint from exhausting memory.
const maxResponseBytes = 1 << 20

// EndpointUnavailableError reports a non-2xx status from the endpoint. It is
// distinct from a transport failure but the poller handles both the same way.
type EndpointUnavailableError struct {
	StatusCode int
}

func (e *EndpointUnavailableError) Error() string {
	return fmt.Sprintf("statuses endpoint unavailable: status %d", e.StatusCode)
}

// Client talks to the homework-statuses API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint. An empty endpoint
// selects DefaultEndpoint. The token is sent as "Authorization: OAuth <token>"
// on every request.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HomeworkStatuses fetches the raw statuses payload for changes since the
// given epoch-seconds cursor. Shape validation of the payload is the caller's
// concern (homework.CheckResponse).
func (c *Client) HomeworkStatuses(ctx context.Context, since int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create statuses request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(since, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch statuses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &EndpointUnavailableError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read statuses body: %w", err)
	}
	return body, nil
}
