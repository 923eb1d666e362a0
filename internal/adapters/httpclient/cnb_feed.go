package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Lednacek-Dev/converter/internal/cnb"
)

// UpstreamError reports a non-success HTTP status from the CNB endpoint.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("cnb responded with status %d", e.Status)
}

// CNB expects historical dates as DD.MM.YYYY.
const queryDateLayout = "02.01.2006"

type CNBFeedClient struct {
	http    *http.Client
	baseURL string
}

// FetchDaily downloads and parses the daily fixing. A nil date fetches
// the latest publication; otherwise the date is passed as a query
// parameter. Retry policy is the caller's business.
func (c *CNBFeedClient) FetchDaily(ctx context.Context, date *time.Time) (cnb.Feed, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return cnb.Feed{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	if date != nil {
		q := u.Query()
		q.Set("date", date.Format(queryDateLayout))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return cnb.Feed{}, fmt.Errorf("failed to create feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return cnb.Feed{}, fmt.Errorf("failed to execute feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return cnb.Feed{}, &UpstreamError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cnb.Feed{}, fmt.Errorf("failed to read feed body: %w", err)
	}

	return cnb.Parse(string(body))
}

func NewCNBFeedClient(httpClient *http.Client, baseURL string) *CNBFeedClient {
	return &CNBFeedClient{http: httpClient, baseURL: baseURL}
}
