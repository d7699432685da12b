// Package policy is the single place that decides whether a role may run an
// operation, given whether the caller acts on its own record or on any
// record.
package policy

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

//go:embed model.conf
var modelContent string

// Operation names an action on a resource.
type Operation string

const (
	AccountRead   Operation = "account:read"
	AccountUpdate Operation = "account:update"
	AccountDelete Operation = "account:delete"
	CatalogRead   Operation = "catalog:read"
	CatalogCreate Operation = "catalog:create"
	CatalogUpdate Operation = "catalog:update"
	CatalogDelete Operation = "catalog:delete"
)

// Ownership says whose record an operation targets.
type Ownership string

const (
	Self Ownership = "self"
	Any  Ownership = "any"
)

// Decision is the outcome of Check.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

var userRules = [][]string{
	{string(models.RoleUser), string(AccountRead), string(Self)},
	{string(models.RoleUser), string(AccountUpdate), string(Self)},
	{string(models.RoleUser), string(CatalogRead), string(Any)},
}

var adminOperations = []Operation{
	AccountRead, AccountUpdate, AccountDelete,
	CatalogRead, CatalogCreate, CatalogUpdate, CatalogDelete,
}

// Checker evaluates role rules with an in-memory casbin enforcer.
type Checker struct {
	enforcer casbin.IEnforcer
}

// NewChecker builds the enforcer from the embedded model and the built-in
// rule set.
func NewChecker() (*Checker, error) {
	m, err := model.NewModelFromString(modelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	rules := append([][]string{}, userRules...)
	for _, op := range adminOperations {
		rules = append(rules, []string{string(models.RoleAdmin), string(op), string(Any)})
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("load policies: %w", err)
	}

	return &Checker{enforcer: enforcer}, nil
}

// Check reports whether role may perform op with the given ownership.
// Enforcement errors deny.
func (c *Checker) Check(role models.Role, op Operation, own Ownership) Decision {
	ok, err := c.enforcer.Enforce(string(role), string(op), string(own))
	if err != nil || !ok {
		return Deny
	}
	return Allow
}
