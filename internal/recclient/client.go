// Package recclient talks to the recommendation backend over HTTP.
package recclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coreselect/internal/recommend/contract"
)

const (
	defaultTimeout = 90 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client calls the backend endpoints. It never retries on its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A zero timeout uses the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient uses hc for all requests.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: hc,
	}
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Greeting is the body of GET /.
type Greeting struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// User is a backend sample user.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Major string `json:"major"`
}

// Recommend posts the answers to /recommend. Game lists are dropped unless
// gaming is a top priority.
func (c *Client) Recommend(ctx context.Context, req contract.Request) (contract.Result, error) {
	if !contract.GamingSelected(req.Priorities) {
		req.WantToPlayGames = nil
		req.CurrentlyPlayingGames = nil
	}
	body, err := c.do(ctx, http.MethodPost, "/recommend", req, "Failed to get recommendation")
	if err != nil {
		return contract.Result{}, err
	}
	res, err := contract.ParseResult(body)
	if err != nil {
		return contract.Result{}, &Error{Kind: KindMalformed, Status: http.StatusOK, Message: "Invalid recommendation response", Err: err}
	}
	return res, nil
}

// Greeting calls GET /.
func (c *Client) Greeting(ctx context.Context) (Greeting, error) {
	var out Greeting
	err := c.getJSON(ctx, "/", &out)
	return out, err
}

// ListUsers calls GET /users/.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.getJSON(ctx, "/users/", &out)
	return out, err
}

// CreateUser calls POST /user/.
func (c *Client) CreateUser(ctx context.Context, name, major string) (User, error) {
	body, err := c.do(ctx, http.MethodPost, "/user/", map[string]string{"name": name, "major": major}, "Failed to create user")
	if err != nil {
		return User{}, err
	}
	var out User
	if err := json.Unmarshal(body, &out); err != nil {
		return User{}, &Error{Kind: KindMalformed, Message: "Invalid user response", Err: err}
	}
	return out, nil
}

// ListParts calls GET /parts/:componentType.
func (c *Client) ListParts(ctx context.Context, componentType string) ([]map[string]any, error) {
	var out []map[string]any
	err := c.getJSON(ctx, "/parts/"+url.PathEscape(componentType), &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, "Request failed")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindMalformed, Message: "Invalid response from server", Err: err}
	}
	return nil
}

// do performs the call and returns the body of a 2xx response that carries
// no error field.
func (c *Client) do(ctx context.Context, method, path string, payload any, fallback string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "Invalid backend address", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := "Could not reach the recommendation server"
		if errors.Is(err, context.Canceled) {
			msg = "Request cancelled"
		}
		return nil, &Error{Kind: KindTransport, Message: msg, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "Connection lost while reading the response", Err: err}
	}

	backendMsg, hasErrorField := errorField(body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		if hasErrorField && backendMsg != "" {
			msg = backendMsg
		}
		return nil, &Error{Kind: KindStatus, Status: resp.StatusCode, Message: msg}
	}
	if hasErrorField {
		if backendMsg == "" {
			backendMsg = fallback
		}
		return nil, &Error{Kind: KindBackend, Status: resp.StatusCode, Message: backendMsg}
	}
	return body, nil
}

// errorField extracts a non-null "error" member from a JSON object body.
func errorField(body []byte) (string, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", false
	}
	raw, ok := probe["error"]
	if !ok || string(raw) == "null" {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return strings.TrimSpace(string(raw)), true
	}
	return msg, true
}
