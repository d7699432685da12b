package services

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/server/auth"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_HeaderCaseInsensitive(t *testing.T) {
	r := Request{Headers: map[string]string{"authorization": "x", "User_ID": "42"}}

	assert.Equal(t, "x", r.Header("Authorization"))
	assert.Equal(t, "42", r.Header("user_id"))
	assert.Equal(t, "", r.Header("recipe_id"))
}

func TestCallerClaims(t *testing.T) {
	tokens := newTokens()
	past := auth.NewTokenService(testSecret, time.Hour, auth.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))
	expired, err := past.Issue("a@x.com", models.RoleUser)
	require.NoError(t, err)
	noEmail, err := tokens.Issue("", models.RoleUser)
	require.NoError(t, err)
	other, err := auth.NewTokenService([]byte("other"), 0).Issue("a@x.com", models.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing", "", "Not Authorized"},
		{"no bearer", "Token abc", "Not Authorized"},
		{"expired", "Bearer " + expired, "Token has expired"},
		{"other secret", "Bearer " + other, "Invalid token"},
		{"garbage", "Bearer garbage", "Invalid token"},
		{"no subject", "Bearer " + noEmail, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := callerClaims(tokens, Request{Headers: map[string]string{"Authorization": tt.header}})
			require.Error(t, err)

			resp, herr := unauthenticated(err)
			require.NoError(t, herr)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.wantMsg, bodyString(t, resp))
		})
	}

	claims, err := callerClaims(tokens, Request{Headers: bearer(t, tokens, "a@x.com", models.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestUnauthenticated_PassesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := unauthenticated(boom)
	assert.ErrorIs(t, err, boom)
}
