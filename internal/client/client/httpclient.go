package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/client/models"
	"github.com/dmitrijs2005/filesmanager/internal/common"
)

// HTTPClient implements Client over the server's JSON API. The session token
// set with SetToken is attached to every authenticated call.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

type errorReply struct {
	Error string `json:"error"`
}

// do sends a request and decodes a JSON reply into out when out is not nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, prepare func(*http.Request)) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prepare != nil {
		prepare(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var e errorReply
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) withToken(req *http.Request) {
	req.Header.Set(common.TokenHeaderName, c.token)
}

func (c *HTTPClient) authed(ctx context.Context, method, path string, body, out any) error {
	if c.token == "" {
		return ErrNotLoggedIn
	}
	return c.do(ctx, method, path, body, out, c.withToken)
}

// Status reports backing store health.
func (c *HTTPClient) Status(ctx context.Context) (*models.Status, error) {
	var st models.Status
	if err := c.do(ctx, http.MethodGet, "/status", nil, &st, nil); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var st models.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &st, nil); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users", body, &u, nil); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a session token and keeps it for later calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var reply struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodGet, "/connect", nil, &reply, func(req *http.Request) {
		req.SetBasicAuth(email, password)
	})
	if err != nil {
		return "", err
	}
	if reply.Token == "" {
		return "", errors.New("empty token in reply")
	}
	c.token = reply.Token
	return reply.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	if err := c.authed(ctx, http.MethodGet, "/disconnect", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.authed(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, e *models.NewEntry) (*models.Entry, error) {
	var out models.Entry
	if err := c.authed(ctx, http.MethodPost, "/files", e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetEntry(ctx context.Context, id int64) (*models.Entry, error) {
	var out models.Entry
	if err := c.authed(ctx, http.MethodGet, "/files/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context, parentID int64, page int) ([]*models.Entry, error) {
	q := url.Values{}
	q.Set("parentId", strconv.FormatInt(parentID, 10))
	q.Set("page", strconv.Itoa(page))

	out := make([]*models.Entry, 0)
	if err := c.authed(ctx, http.MethodGet, "/files?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
