// Package cardclient implements cards.Store against a remote tango card
// service.
package cardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/tango/internal/cards"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("card service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("card service returned %d", e.StatusCode)
}

// Client talks to the /api/cards endpoints.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ cards.Store = (*Client)(nil)

// New returns a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote url must be http or https, got %q", baseURL)
	}
	return &Client{base: u, http: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) endpoint() string {
	return c.base.JoinPath("api", "cards").String()
}

func (c *Client) FetchAll(ctx context.Context) ([]cards.Card, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	var out []cards.Card
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("fetch cards: %w", err)
	}
	if out == nil {
		out = []cards.Card{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, term, meaning, note string) (cards.Card, error) {
	body, err := json.Marshal(map[string]string{
		"term":    term,
		"meaning": meaning,
		"note":    note,
	})
	if err != nil {
		return cards.Card{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return cards.Card{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out cards.Card
	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return cards.Card{}, fmt.Errorf("create card: %w", err)
	}
	return out, nil
}

func (c *Client) do(req *http.Request, want int, into any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var body struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if json.Unmarshal(data, &body) != nil {
			body.Error = strings.TrimSpace(string(data))
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
