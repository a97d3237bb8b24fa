package emias

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/az3l1t/analysis-platform/pkg/common/httpclient"
	"github.com/az3l1t/analysis-platform/pkg/common/models"
)

// StatusError carries a non-2xx status returned by the EMIAS service so the
// REST facade can surface it unchanged.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("emias returned status %d", e.StatusCode)
}

// Client is the read-through client for the external EMIAS-compatible service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.New(timeout),
	}
}

// GetResultByID fetches /api/results/{id}. A literal null body (cache miss on
// the EMIAS side) comes back as a nil record without error.
func (c *Client) GetResultByID(ctx context.Context, id string) (*models.SendResults, error) {
	url := fmt.Sprintf("%s/api/results/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling emias: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var result *models.SendResults
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding emias response: %w", err)
	}
	return result, nil
}
