// Package client is the console's view of the REST API: a session stored on
// disk, a thin HTTP client that unwraps the response envelope, and table
// rendering for list results.
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
	"sort"
	"strconv"
	"strings"
	"time"

	identityapp "github.com/assetops/backend/internal/application/identity"
	"github.com/assetops/backend/internal/application/listview"
)

// MaxListRecords caps how many records List pulls before local filtering
const MaxListRecords = 500

// serverPageSize is the largest page the API serves
const serverPageSize = 100

// Resources maps console resource names to their API paths
var Resources = map[string]string{
	"tenants":          "/tenant",
	"roles":            "/tenant/roles",
	"users":            "/users",
	"departments":      "/department/departments",
	"categories":       "/category",
	"locations":        "/locations",
	"cost-centres":     "/cost-centres",
	"assets":           "/assets",
	"wip-assets":       "/wip-assets",
	"budgets":          "/budgets",
	"forex-rates":      "/forex-rates",
	"depreciation":     "/depreciation",
	"partners":         "/partners",
	"contracts":        "/contracts",
	"leases":           "/leases",
	"short-urls":       "/short-urls",
	"report-templates": "/report-templates",
	"notifications":    "/notifications",
}

// ResourceNames returns the known resource names in order
func ResourceNames() []string {
	names := make([]string, 0, len(Resources))
	for name := range Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// APIError is a failed call, carrying the envelope's error code when the
// server sent one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type envelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

// Client calls the API on behalf of a session
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a client for the API rooted at baseURL, e.g.
// http://localhost:8080/api/v1. A nil httpClient uses a 30s timeout.
func New(baseURL string, httpClient *http.Client, session *Session) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if session == nil {
		session = &Session{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

// Session returns the session the client signs requests with
func (c *Client) Session() *Session {
	return c.session
}

// Login signs in and stores the new session
func (c *Client) Login(ctx context.Context, email, password, tenantCode string) (*identityapp.LoginResult, error) {
	in := identityapp.LoginInput{Email: email, Password: password, TenantCode: tenantCode}
	env, err := c.do(ctx, http.MethodPost, "/user/auth", nil, in)
	if err != nil {
		return nil, err
	}
	var result identityapp.LoginResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode login result: %w", err)
	}
	var raw struct {
		User map[string]any `json:"user"`
	}
	_ = json.Unmarshal(env.Data, &raw)

	c.session.Token = result.Token
	c.session.TenantID = result.TenantID.String()
	c.session.UserID = result.UserID.String()
	c.session.UserRole = result.UserRole
	c.session.Email = result.Email
	c.session.User = raw.User
	if err := c.session.Save(); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the token on the server and clears the local session. The
// session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	var callErr error
	if c.session.Authenticated() {
		_, callErr = c.do(ctx, http.MethodPost, "/user/auth/logout", nil, nil)
	}
	return errors.Join(callErr, c.session.Clear())
}

// Me returns the signed-in identity as the server sees it
func (c *Client) Me(ctx context.Context) (*identityapp.MeResult, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var me identityapp.MeResult
	if err := json.Unmarshal(env.Data, &me); err != nil {
		return nil, fmt.Errorf("failed to decode identity: %w", err)
	}
	return &me, nil
}

// List fetches up to MaxListRecords records of a resource, page by page.
// query is passed through as server-side filters.
func (c *Client) List(ctx context.Context, resource string, query url.Values) ([]listview.Record, error) {
	path, err := resourcePath(resource)
	if err != nil {
		return nil, err
	}

	records := make([]listview.Record, 0)
	for page := 1; len(records) < MaxListRecords; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(serverPageSize))

		env, err := c.do(ctx, http.MethodGet, path, q, nil)
		if err != nil {
			return nil, err
		}
		batch, err := decodeRecords(env.Data)
		if err != nil {
			return nil, err
		}
		records = append(records, batch...)

		if len(batch) < serverPageSize || env.Meta == nil || int64(len(records)) >= env.Meta.Total {
			break
		}
	}
	if len(records) > MaxListRecords {
		records = records[:MaxListRecords]
	}
	return records, nil
}

// Get fetches one record
func (c *Client) Get(ctx context.Context, resource, id string) (listview.Record, error) {
	path, err := resourcePath(resource)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodGet, path+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(env.Data)
}

// Create posts a new record and returns what the server stored
func (c *Client) Create(ctx context.Context, resource string, body any) (listview.Record, error) {
	path, err := resourcePath(resource)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(env.Data)
}

// Update replaces a record's editable fields
func (c *Client) Update(ctx context.Context, resource, id string, body any) (listview.Record, error) {
	path, err := resourcePath(resource)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPut, path+"/"+url.PathEscape(id), nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(env.Data)
}

// Delete removes a record
func (c *Client) Delete(ctx context.Context, resource, id string) error {
	path, err := resourcePath(resource)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil)
	return err
}

func resourcePath(resource string) (string, error) {
	path, ok := Resources[strings.ToLower(resource)]
	if !ok {
		return "", fmt.Errorf("unknown resource %q (known: %s)", resource, strings.Join(ResourceNames(), ", "))
	}
	return path, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Msg}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return &env, nil
}

func decodeRecords(data json.RawMessage) ([]listview.Record, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []listview.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

func decodeRecord(data json.RawMessage) (listview.Record, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rec listview.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}
