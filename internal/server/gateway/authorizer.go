// Package gateway makes the allow/deny decision that runs before any
// account or catalog handler. It holds no state besides the token verifier.
package gateway

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/auth"
)

// Request is what the platform passes to the authorizer.
type Request struct {
	AuthorizationToken string `json:"authorizationToken"`
	MethodArn          string `json:"methodArn"`
}

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authorizer turns a bearer token into an Allow or Deny policy.
type Authorizer struct {
	tokens TokenVerifier
	logger logging.Logger
}

// NewAuthorizer returns an Authorizer verifying tokens with tokens.
func NewAuthorizer(tokens TokenVerifier, l logging.Logger) *Authorizer {
	return &Authorizer{tokens: tokens, logger: l.With("module", "gateway")}
}

// Authorize returns an Allow policy for the token's email, or a Deny policy
// for principal "user". A header that does not start with "Bearer " is not
// a Deny: it fails with common.ErrMalformedAuthHeader.
func (a *Authorizer) Authorize(ctx context.Context, req Request) (*Policy, error) {
	header := req.AuthorizationToken
	if !strings.HasPrefix(header, common.BearerPrefix) {
		a.logger.Error(ctx, "rejecting authorization header", "resource", req.MethodArn)
		return nil, common.ErrMalformedAuthHeader
	}

	token := strings.SplitN(header, " ", 3)[1]

	claims, err := a.tokens.Verify(token)
	if err != nil {
		msg := MessageInvalid
		if errors.Is(err, common.ErrTokenExpired) {
			msg = MessageExpired
		}
		a.logger.Warn(ctx, "access denied", "resource", req.MethodArn, "reason", err.Error())
		return generatePolicy(denyPrincipal, EffectDeny, req.MethodArn, msg), nil
	}

	if claims.Email == "" {
		a.logger.Warn(ctx, "access denied", "resource", req.MethodArn, "reason", common.ErrMissingSubject.Error())
		return generatePolicy(denyPrincipal, EffectDeny, req.MethodArn, MessageInvalid), nil
	}

	a.logger.Info(ctx, "access allowed", "principal", claims.Email, "resource", req.MethodArn)
	return generatePolicy(claims.Email, EffectAllow, req.MethodArn, ""), nil
}
