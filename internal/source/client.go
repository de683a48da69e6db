package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rileyhilliard/hwbench/internal/config"
	"github.com/rileyhilliard/hwbench/internal/errors"
)

// Client fetches the raw sensor tree from the monitor endpoint.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for the configured endpoint. The configured
// timeout covers the whole fetch: connect, response, and body read.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		url:  cfg.SourceURL(),
		http: &http.Client{Timeout: cfg.Source.Timeout},
	}
}

// Fetch retrieves and decodes the sensor tree. Timeouts, refused
// connections, unexpected status codes, and malformed bodies all surface as
// a SOURCE-coded error; nothing is swallowed here.
func (c *Client) Fetch(ctx context.Context) (*RawNode, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Invalid monitor URL: "+c.url,
			"Check the source host and port in the configuration")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Hardware monitor did not respond",
			"Check that the monitor is running and its web server is enabled")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrSource,
			fmt.Sprintf("Hardware monitor returned HTTP %d", resp.StatusCode),
			"Check the monitor's web server settings")
	}

	var root RawNode
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Hardware monitor returned a malformed sensor tree",
			"Check that the endpoint serves the expected JSON format")
	}

	return &root, nil
}
