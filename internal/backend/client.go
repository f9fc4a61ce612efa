// Package backend is the client of the authoritative finance REST API.
package backend

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

	"github.com/google/uuid"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// maxErrorBody is the number of bytes of an error response kept in a NetworkError.
const maxErrorBody = 512

type contextKey string

const requestIDKey contextKey = "request-id"

// WithRequestID returns a context that makes backend calls carry the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

// Client calls the backend API.
type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a client for the API at baseURL. When token is not empty, it is
// sent as bearer token with every request.
func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", baseURL)
	}

	client := &http.Client{}
	if token != "" {
		client = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	}
	client.Timeout = timeout

	return &Client{base: base, http: client}, nil
}

// List fetches all records of a collection.
func (c *Client) List(ctx context.Context, kind Kind, query url.Values) ([]normalize.RawRecord, error) {
	body, err := c.do(ctx, http.MethodGet, c.url(kind, "", "", query), nil)
	if err != nil {
		return nil, err
	}

	return normalize.Decode(body)
}

// Get fetches a single record. For the savings account, id is empty.
func (c *Client) Get(ctx context.Context, kind Kind, id string) (normalize.RawRecord, error) {
	return c.one(ctx, http.MethodGet, c.url(kind, id, "", nil), nil)
}

// Create creates a record and returns it as stored by the backend.
func (c *Client) Create(ctx context.Context, kind Kind, payload any) (normalize.RawRecord, error) {
	return c.one(ctx, http.MethodPost, c.url(kind, "", "", nil), payload)
}

// Update patches a record and returns it as stored by the backend.
func (c *Client) Update(ctx context.Context, kind Kind, id string, patch any) (normalize.RawRecord, error) {
	return c.one(ctx, http.MethodPatch, c.url(kind, id, "", nil), patch)
}

// Delete deletes a record.
func (c *Client) Delete(ctx context.Context, kind Kind, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.url(kind, id, "", nil), nil)
	return err
}

// Action runs an action on a record and returns the record after it.
func (c *Client) Action(ctx context.Context, kind Kind, id, action string, payload any) (normalize.RawRecord, error) {
	return c.one(ctx, http.MethodPost, c.url(kind, id, action, nil), payload)
}

func (c *Client) one(ctx context.Context, method, u string, payload any) (normalize.RawRecord, error) {
	body, err := c.do(ctx, method, u, payload)
	if err != nil {
		return nil, err
	}

	return normalize.DecodeOne(body)
}

func (c *Client) url(kind Kind, id, action string, query url.Values) string {
	path := kind.Path()
	if id != "" {
		path += url.PathEscape(id) + "/"
	}
	if action != "" {
		path += action + "/"
	}

	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, u string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not encode the request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: u, Err: err}
	}

	id := requestID(ctx)
	req.Header.Set("X-Request-ID", id)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Str("request-id", id).Str("method", method).Str("url", u).Err(err).Msg("backend")
		return nil, &NetworkError{Method: method, URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: u, Status: resp.StatusCode, Err: err}
	}

	log.Debug().
		Str("request-id", id).
		Str("method", method).
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &NetworkError{Method: method, URL: u, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}
