package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/dmitrijs2005/recipebox/internal/server/policy"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/accounts"
	"github.com/google/uuid"
)

const (
	msgEmptyBody        = "Request body is empty"
	msgEmailAndPassword = "Email and password are mandatory fields"
	msgEmailExists      = "Email already exists"
	msgAccountNotFound  = "User account not found"
	msgUserIDNotFound   = "User Id not found"
)

var (
	selfUpdatableFields  = []string{"email", "first_name", "last_name", "password"}
	adminUpdatableFields = []string{"email", "first_name", "last_name", "password", "role", "confirmed_email"}
)

// Checker is satisfied by *policy.Checker.
type Checker interface {
	Check(role models.Role, op policy.Operation, own policy.Ownership) policy.Decision
}

// AccountDirectory handles signup and the account CRUD verbs. It verifies
// the caller's token itself rather than trusting the gateway.
type AccountDirectory struct {
	accounts accounts.Repository
	tokens   TokenVerifier
	policy   Checker
	logger   logging.Logger
	now      func() time.Time
	newID    func() string
}

// DirectoryOption configures an AccountDirectory.
type DirectoryOption func(*AccountDirectory)

// WithAccountClock sets the clock used for account timestamps.
func WithAccountClock(now func() time.Time) DirectoryOption {
	return func(d *AccountDirectory) { d.now = now }
}

// WithAccountIDs sets the generator of new user IDs.
func WithAccountIDs(newID func() string) DirectoryOption {
	return func(d *AccountDirectory) { d.newID = newID }
}

// NewAccountDirectory returns an AccountDirectory over repo.
func NewAccountDirectory(repo accounts.Repository, tokens TokenVerifier, checker Checker, l logging.Logger, opts ...DirectoryOption) *AccountDirectory {
	d := &AccountDirectory{
		accounts: repo,
		tokens:   tokens,
		policy:   checker,
		logger:   l.With("module", "accounts"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *AccountDirectory) Handle(ctx context.Context, req Request) (Response, error) {
	if req.Method == http.MethodPost {
		return d.create(ctx, req)
	}

	switch req.Method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
	default:
		return methodNotAllowed()
	}

	claims, err := callerClaims(d.tokens, req)
	if err != nil {
		return unauthenticated(err)
	}

	switch req.Method {
	case http.MethodGet:
		return d.read(ctx, claims.Email, claims.Role)
	case http.MethodPut:
		return d.update(ctx, req, claims.Email, claims.Role)
	default:
		return d.delete(ctx, req, claims.Role)
	}
}

func (d *AccountDirectory) create(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Body) == "" {
		return respond(http.StatusBadRequest, msgEmptyBody)
	}

	data, err := decodeObject(req.Body)
	if err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}

	var in struct {
		Email     string `mapstructure:"email"`
		Password  string `mapstructure:"password"`
		FirstName string `mapstructure:"first_name"`
		LastName  string `mapstructure:"last_name"`
	}
	_, hasEmail := data["email"]
	_, hasPassword := data["password"]
	if !hasEmail || !hasPassword {
		return respond(http.StatusBadRequest, msgEmailAndPassword)
	}
	if err := merge(&in, ConvertFloats(data).(map[string]any), []string{"email", "password", "first_name", "last_name"}); err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}

	existing, err := d.accounts.QueryByEmail(ctx, in.Email)
	if err != nil {
		return Response{}, err
	}
	if len(existing) > 0 {
		return respond(http.StatusBadRequest, msgEmailExists)
	}

	now := d.now().UTC()
	account := &models.Account{
		ID:             d.newID(),
		Email:          in.Email,
		Password:       in.Password,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		ConfirmedEmail: models.ConfirmedNo,
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := d.accounts.Put(ctx, account); err != nil {
		return Response{}, err
	}

	d.logger.Info(ctx, "account created", "user_id", account.ID)
	return respond(http.StatusCreated, fmt.Sprintf("%s user created successfully!", account.ID))
}

func (d *AccountDirectory) read(ctx context.Context, email string, role models.Role) (Response, error) {
	if d.policy.Check(role, policy.AccountRead, policy.Any) == policy.Allow {
		all, err := d.accounts.Scan(ctx)
		if err != nil {
			return Response{}, err
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
		return respond(http.StatusOK, nonNilAccounts(all))
	}

	if d.policy.Check(role, policy.AccountRead, policy.Self) == policy.Deny {
		return notAuthorized()
	}

	own, err := d.accounts.QueryByEmail(ctx, email)
	if err != nil {
		return Response{}, err
	}
	if len(own) == 0 {
		return respond(http.StatusNotFound, msgAccountNotFound)
	}
	return respond(http.StatusOK, own)
}

func (d *AccountDirectory) update(ctx context.Context, req Request, email string, role models.Role) (Response, error) {
	var (
		target  *models.Account
		allowed []string
	)

	switch {
	case d.policy.Check(role, policy.AccountUpdate, policy.Any) == policy.Allow:
		id := req.Header(common.UserIDHeaderName)
		if id == "" {
			return respond(http.StatusBadRequest, msgMissingID)
		}
		a, err := d.accounts.Get(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			return respond(http.StatusNotFound, msgUserIDNotFound)
		}
		if err != nil {
			return Response{}, err
		}
		target, allowed = a, adminUpdatableFields

	case d.policy.Check(role, policy.AccountUpdate, policy.Self) == policy.Allow:
		own, err := d.accounts.QueryByEmail(ctx, email)
		if err != nil {
			return Response{}, err
		}
		if len(own) == 0 {
			return respond(http.StatusNotFound, msgAccountNotFound)
		}
		target, allowed = own[0], selfUpdatableFields

	default:
		return notAuthorized()
	}

	patch, err := decodeObject(req.Body)
	if err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}
	previousEmail := target.Email
	if err := merge(target, ConvertFloats(patch).(map[string]any), allowed); err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}

	if target.Email != previousEmail {
		taken, err := d.emailTakenByOther(ctx, target.Email, target.ID)
		if err != nil {
			return Response{}, err
		}
		if taken {
			return respond(http.StatusBadRequest, msgEmailExists)
		}
	}

	if msg, ok := validEnums(target); !ok {
		return respond(http.StatusBadRequest, msg)
	}

	target.UpdatedAt = d.now().UTC()
	if err := d.accounts.Put(ctx, target); err != nil {
		return Response{}, err
	}

	d.logger.Info(ctx, "account updated", "user_id", target.ID)
	return respond(http.StatusOK, fmt.Sprintf("%s  updated successfully!", target.ID))
}

func (d *AccountDirectory) delete(ctx context.Context, req Request, role models.Role) (Response, error) {
	if d.policy.Check(role, policy.AccountDelete, policy.Any) == policy.Deny {
		return notAuthorized()
	}

	id := req.Header(common.UserIDHeaderName)
	if id == "" {
		return respond(http.StatusBadRequest, msgMissingID)
	}

	label := "User"
	a, err := d.accounts.Get(ctx, id)
	switch {
	case err == nil && a.Email != "":
		label = a.Email
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return Response{}, err
	}

	if err := d.accounts.Delete(ctx, id); err != nil {
		return Response{}, err
	}

	d.logger.Info(ctx, "account deleted", "user_id", id)
	return respond(http.StatusOK, fmt.Sprintf("%s is deleted successfully!", label))
}

func (d *AccountDirectory) emailTakenByOther(ctx context.Context, email, id string) (bool, error) {
	found, err := d.accounts.QueryByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	for _, a := range found {
		if a.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func validEnums(a *models.Account) (string, bool) {
	switch a.Role {
	case models.RoleAdmin, models.RoleUser:
	default:
		return fmt.Sprintf("role must be %s or %s", models.RoleAdmin, models.RoleUser), false
	}
	switch a.ConfirmedEmail {
	case models.ConfirmedYes, models.ConfirmedNo:
	default:
		return fmt.Sprintf("confirmed_email must be %s or %s", models.ConfirmedYes, models.ConfirmedNo), false
	}
	return "", true
}

func nonNilAccounts(s []*models.Account) []*models.Account {
	if s == nil {
		return []*models.Account{}
	}
	return s
}
