package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/auth"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/dmitrijs2005/recipebox/internal/server/policy"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

// tickClock returns a later instant on every call.
type tickClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newTickClock() *tickClock {
	return &tickClock{cur: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func newTokens() *auth.TokenService {
	return auth.NewTokenService(testSecret, 0)
}

func newChecker(t *testing.T) *policy.Checker {
	t.Helper()
	c, err := policy.NewChecker()
	require.NoError(t, err)
	return c
}

func bearer(t *testing.T, tokens *auth.TokenService, email string, role models.Role) map[string]string {
	t.Helper()
	tok, err := tokens.Issue(email, role)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func withHeader(h map[string]string, k, v string) map[string]string {
	out := make(map[string]string, len(h)+1)
	for hk, hv := range h {
		out[hk] = hv
	}
	out[k] = v
	return out
}

func bodyString(t *testing.T, r Response) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal([]byte(r.Body), &s), "body %q", r.Body)
	return s
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

var nop logging.Logger = logging.Nop{}

var ctx = context.Background()
