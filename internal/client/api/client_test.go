package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, nil)
}

func TestLogin_SendsCredentialHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "a@x.io", r.Header.Get("email"))
		assert.Equal(t, "pw", r.Header.Get("password"))
		_, _ = io.WriteString(w, `{"token":"tkn"}`)
	})

	token, err := c.Login(context.Background(), "a@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tkn", token)
}

func TestLogin_ErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Invalid credentials"}`)
	})

	_, err := c.Login(context.Background(), "a@x.io", "bad")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestSignup_ReturnsMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@x.io","password":"pw","first_name":"Ann"}`, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `"u1 user created successfully!"`)
	})

	msg, err := c.Signup(context.Background(), Signup{Email: "a@x.io", Password: "pw", FirstName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "u1 user created successfully!", msg)
}

func TestAccounts_SingleAndList(t *testing.T) {
	body := `{"user_id":"u1","email":"a@x.io","role":"User"}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, body)
	})

	got, err := c.Accounts(context.Background(), "tkn")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]Account{{ID: "u1", Email: "a@x.io", Role: "User"}}, got))

	body = ` [{"user_id":"u1"},{"user_id":"u2"}]`
	got, err = c.Accounts(context.Background(), "tkn")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u2", got[1].ID)
}

func TestRecipes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog", r.URL.Path)
		_, _ = io.WriteString(w, `[{"ID":"r1","title":"Soup","ingredients":["water",{"name":"salt","grams":2.5}],"prepTime":1.5,"servings":2}]`)
	})

	got, err := c.Recipes(context.Background(), "tkn")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Soup", got[0].Title)
	assert.InDelta(t, 1.5, got[0].PrepTime, 1e-9)
	assert.Equal(t, []any{"water", map[string]any{"name": "salt", "grams": 2.5}}, got[0].Ingredients)
}

func TestRecipes_GatewayMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"Token has expired"}`)
	})

	_, err := c.Recipes(context.Background(), "old")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Token has expired", apiErr.Message)
}

func TestPing_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, time.Second, nil).Ping(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "plain", message([]byte(`"plain"`)))
	assert.Equal(t, "e", message([]byte(`{"error":"e"}`)))
	assert.Equal(t, "m", message([]byte(`{"message":"m"}`)))
	assert.Equal(t, "not json", message([]byte("not json\n")))
}
