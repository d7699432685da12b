// Package api is a small HTTP client for the RecipeBox API used by the CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
)

// ErrUnavailable is returned when the server cannot be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx answer from the server.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Account is the account record as returned by GET /account.
type Account struct {
	ID             string    `json:"user_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ConfirmedEmail string    `json:"confirmed_email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Recipe is a catalog entry as returned by GET /catalog.
type Recipe struct {
	ID           string    `json:"ID"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Ingredients  []any     `json:"ingredients"`
	Instructions string    `json:"instructions"`
	PrepTime     float64   `json:"prepTime"`
	CookTime     float64   `json:"cookTime"`
	Servings     float64   `json:"servings"`
	ImageURL     string    `json:"image_url,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Signup is the body of POST /account.
type Signup struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Client talks to one RecipeBox server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for baseURL. A nil httpClient gets a default
// one with the given timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Ping checks that the server answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/ping", nil, nil)
	return err
}

// Signup creates an account and returns the server's confirmation message.
func (c *Client) Signup(ctx context.Context, s Signup) (string, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	data, err := c.do(ctx, http.MethodPost, "/account", nil, body)
	if err != nil {
		return "", err
	}
	return message(data), nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	headers := map[string]string{
		common.EmailHeaderName:    email,
		common.PasswordHeaderName: password,
	}
	data, err := c.do(ctx, http.MethodPost, "/login", headers, nil)
	if err != nil {
		return "", err
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return res.Token, nil
}

// Accounts returns the caller's own account, or every account for an admin.
func (c *Client) Accounts(ctx context.Context, token string) ([]Account, error) {
	data, err := c.do(ctx, http.MethodGet, "/account", bearer(token), nil)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []Account
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode accounts: %w", err)
		}
		return list, nil
	}

	var one Account
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return []Account{one}, nil
}

// Recipes lists the catalog.
func (c *Client) Recipes(ctx context.Context, token string) ([]Recipe, error) {
	data, err := c.do(ctx, http.MethodGet, "/catalog", bearer(token), nil)
	if err != nil {
		return nil, err
	}
	var list []Recipe
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	return list, nil
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body []byte) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: message(data)}
	}
	return data, nil
}

func bearer(token string) map[string]string {
	return map[string]string{common.AuthorizationHeaderName: common.BearerPrefix + token}
}

// message extracts a human readable text from a response body. The server
// answers with a bare JSON string, {"error": ...} or {"message": ...}.
func message(data []byte) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Error != "" {
			return obj.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	return strings.TrimSpace(string(data))
}
