// Package client fetches full card detail records from a gallery endpoint.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/marcus/charview/internal/library"
	"github.com/marcus/charview/internal/models"
)

const defaultTimeout = 10 * time.Second

// maxBodySize caps detail responses; card files are small.
const maxBodySize = 4 << 20

// Client talks to a card gallery over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the given gallery base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// FetchDetail retrieves the full card record addressed by avatarRef.
// Transport failures and non-2xx statuses are returned as errors; the caller
// decides whether to surface them or fall back to local data.
func (c *Client) FetchDetail(ctx context.Context, avatarRef string) (*models.CharacterCard, error) {
	if avatarRef == "" {
		return nil, fmt.Errorf("fetch detail: empty avatar reference")
	}

	u := fmt.Sprintf("%s/cards/%s", c.baseURL, url.PathEscape(avatarRef))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build detail request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch detail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch detail: gallery returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read detail response: %w", err)
	}

	card, err := library.ParseCardFile(body)
	if err != nil {
		return nil, fmt.Errorf("fetch detail: %w", err)
	}
	return card, nil
}
