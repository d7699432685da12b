// Package services holds the login, account and catalog handlers. Each
// handler receives one platform invocation and answers with a status code
// and a JSON body.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/auth"
	"github.com/dmitrijs2005/recipebox/internal/server/gateway"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

// Request is a single invocation: verb, headers and raw body.
type Request struct {
	Method  string
	Headers map[string]string
	Body    string
}

// Header looks name up case-insensitively.
func (r Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Response is what a handler hands back. Body is always JSON.
type Response struct {
	StatusCode int
	Body       string
}

// Handler is implemented by every service in this package. A returned
// error means the invocation failed outside the handled cases and is left
// to the platform.
type Handler interface {
	Handle(ctx context.Context, req Request) (Response, error)
}

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// TokenIssuer is satisfied by *auth.TokenService.
type TokenIssuer interface {
	Issue(email string, role models.Role) (string, error)
}

const (
	msgNotAuthorized = "Not Authorized"
	msgMissingID     = "Missing id parameter in the URL path"
	msgInvalidJSON   = "Invalid JSON format in the request body"
	msgNotAllowed    = "Method not allowed"
)

func respond(status int, v any) (Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: status, Body: string(b)}, nil
}

func notAuthorized() (Response, error) {
	return respond(http.StatusUnauthorized, msgNotAuthorized)
}

func methodNotAllowed() (Response, error) {
	return respond(http.StatusMethodNotAllowed, msgNotAllowed)
}

// errUnauthenticated carries the message returned when a handler cannot
// verify the caller's token itself.
type errUnauthenticated struct{ msg string }

func (e errUnauthenticated) Error() string { return e.msg }

// callerClaims verifies the bearer token of req. Failures come back as
// errUnauthenticated so the caller can answer 401.
func callerClaims(tokens TokenVerifier, req Request) (*auth.Claims, error) {
	header := req.Header(common.AuthorizationHeaderName)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return nil, errUnauthenticated{msgNotAuthorized}
	}

	claims, err := tokens.Verify(strings.SplitN(header, " ", 3)[1])
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return nil, errUnauthenticated{gateway.MessageExpired}
	case err != nil:
		return nil, errUnauthenticated{gateway.MessageInvalid}
	case claims.Email == "":
		return nil, errUnauthenticated{gateway.MessageInvalid}
	}
	return claims, nil
}

func unauthenticated(err error) (Response, error) {
	var ue errUnauthenticated
	if errors.As(err, &ue) {
		return respond(http.StatusUnauthorized, ue.msg)
	}
	return Response{}, err
}
