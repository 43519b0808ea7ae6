// Package client provides the HTTP client for the watchlist API and a
// local cache of the movie collection that stays consistent with server
// state after every mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/calebtr/watchlist/internal/data"
)

// Client makes typed requests against the watchlist API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL. A nil httpClient falls
// back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:4000"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// List fetches the full collection, most recently added first.
func (c *Client) List(ctx context.Context) ([]data.Movie, error) {
	var movies []data.Movie
	if err := c.do(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Get fetches a single movie by id.
func (c *Client) Get(ctx context.Context, id int64) (*data.Movie, error) {
	var movie data.Movie
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Create adds a movie and returns its server-assigned id.
func (c *Client) Create(ctx context.Context, input data.MovieInput) (int64, error) {
	var reply struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/movies", input, &reply); err != nil {
		return 0, err
	}
	return reply.ID, nil
}

// Update replaces the title, year, and status of the movie with the given
// id and returns the authoritative post-write record from the server.
func (c *Client) Update(ctx context.Context, id int64, input data.MovieInput) (*data.Movie, error) {
	var reply struct {
		Message string     `json:"message"`
		Movie   data.Movie `json:"movie"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/movies/%d", id), input, &reply); err != nil {
		return nil, err
	}
	return &reply.Movie, nil
}

// Delete removes the movie with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/movies/%d", id), nil, nil)
}

// do issues a single request and decodes a 2xx response body into out.
// Non-2xx responses are translated into the package's sentinel errors.
// There are no retries; every failure surfaces exactly once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		// Drain the body so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError maps a non-2xx response onto the sentinel error taxonomy,
// preserving the server's message. The error body is {"error": ...} where
// the value is either a string or a map of field names to messages.
func (c *Client) decodeError(resp *http.Response) error {
	var reply struct {
		Error json.RawMessage `json:"error"`
	}
	detail := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&reply); err == nil && len(reply.Error) > 0 {
		var message string
		var fields map[string]string
		switch {
		case json.Unmarshal(reply.Error, &message) == nil:
			detail = message
		case json.Unmarshal(reply.Error, &fields) == nil:
			detail = formatFieldErrors(fields)
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, detail)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: %s", ErrInvalidInput, detail)
	default:
		return fmt.Errorf("%w: %s", ErrServer, detail)
	}
}

// formatFieldErrors flattens field-level validation errors into a single
// human-readable string, e.g. "title must be provided; year must be 1900 or later".
func formatFieldErrors(fields map[string]string) string {
	var buf bytes.Buffer
	for _, field := range []string{"title", "year", "status"} {
		if message, ok := fields[field]; ok {
			if buf.Len() > 0 {
				buf.WriteString("; ")
			}
			buf.WriteString(field + " " + message)
		}
	}
	// Any fields outside the known set are appended unordered.
	for field, message := range fields {
		if field == "title" || field == "year" || field == "status" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(field + " " + message)
	}
	return buf.String()
}
