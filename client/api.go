package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"backoffice/internal/domain/email"
	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/page"
	"backoffice/internal/domain/user"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to the backoffice API. Token is set by Login and sent as a
// bearer credential on every later call.
type Client struct {
	base  string
	token string
	http  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs a previously minted session token.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(raw)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func listParams(q listing.Query) string {
	vals := url.Values{}
	vals.Set("limit", strconv.Itoa(q.Limit))
	vals.Set("skip", strconv.Itoa(q.Skip))
	if q.SortField != "" {
		vals.Set("sortField", q.SortField)
	}
	vals.Set("sortDir", strconv.Itoa(int(q.SortDir)))
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	return "?" + vals.Encode()
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*user.User, error) {
	var out struct {
		Token string     `json:"token"`
		User  *user.User `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return out.User, nil
}

// Token returns the current session token, empty before Login.
func (c *Client) Token() string { return c.token }

func (c *Client) ListPages(ctx context.Context, q listing.Query) (listing.Result[page.Page], error) {
	var out listing.Result[page.Page]
	err := c.do(ctx, http.MethodGet, "/api/v1/pages"+listParams(q), nil, &out)
	return out, err
}

func (c *Client) GetPage(ctx context.Context, id string) (*page.Page, error) {
	var out page.Page
	if err := c.do(ctx, http.MethodGet, "/api/v1/pages/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/pages/"+id, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, q listing.Query) (listing.Result[user.User], error) {
	var out listing.Result[user.User]
	err := c.do(ctx, http.MethodGet, "/api/v1/users"+listParams(q), nil, &out)
	return out, err
}

func (c *Client) CountUsers(ctx context.Context, search string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	path := "/api/v1/users/count"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Count, err
}

func (c *Client) GetUser(ctx context.Context, id string) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetEmail(ctx context.Context, id string) (*email.Email, error) {
	var out email.Email
	if err := c.do(ctx, http.MethodGet, "/api/v1/emails/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmail(ctx context.Context, id string, upd email.Update) error {
	return c.do(ctx, http.MethodPut, "/api/v1/emails/"+id, upd, nil)
}
