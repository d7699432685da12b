package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/accounts"
)

const (
	msgEmailNotConfirmed  = "Email not confirmed. Please confirm your email before logging in."
	msgInvalidCredentials = "Invalid email or password. Please check your credentials and try again."
)

type loginResult struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

// LoginService exchanges email and password headers for a token.
type LoginService struct {
	accounts accounts.Repository
	tokens   TokenIssuer
	logger   logging.Logger
}

// NewLoginService returns a LoginService issuing tokens with tokens.
func NewLoginService(repo accounts.Repository, tokens TokenIssuer, l logging.Logger) *LoginService {
	return &LoginService{accounts: repo, tokens: tokens, logger: l.With("module", "login")}
}

// Handle scans all accounts for an exact email and password match. An
// unconfirmed match and no match are reported with different messages;
// the latter never says which of the two values was wrong.
func (s *LoginService) Handle(ctx context.Context, req Request) (Response, error) {
	email := req.Header(common.EmailHeaderName)
	password := req.Header(common.PasswordHeaderName)

	account, err := s.accounts.FindByCredentials(ctx, email, password)
	if errors.Is(err, common.ErrorNotFound) {
		s.logger.Info(ctx, "login rejected", "reason", "invalid credentials")
		return respond(http.StatusUnauthorized, loginResult{Error: msgInvalidCredentials})
	}
	if err != nil {
		return Response{}, err
	}

	if !account.Confirmed() {
		s.logger.Info(ctx, "login rejected", "user_id", account.ID, "reason", "email not confirmed")
		return respond(http.StatusUnauthorized, loginResult{Error: msgEmailNotConfirmed})
	}

	token, err := s.tokens.Issue(email, account.Role)
	if err != nil {
		return Response{}, err
	}

	s.logger.Info(ctx, "login succeeded", "user_id", account.ID)
	return respond(http.StatusOK, loginResult{Token: token})
}
