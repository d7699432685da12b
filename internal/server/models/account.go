// Package models holds the records persisted in the document store.
package models

import "time"

// Role is the caller role embedded in tokens and stored on accounts.
type Role string

// Known roles.
const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// IsAdmin reports whether r is the Admin role. Comparison is exact.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Confirmation is the stored confirmed_email flag.
type Confirmation string

// Confirmation values as stored.
const (
	ConfirmedYes Confirmation = "Yes"
	ConfirmedNo  Confirmation = "No"
)

// Account is a user record of the recipe-user table. Password is compared
// in plaintext.
type Account struct {
	ID             string       `json:"user_id" mapstructure:"user_id" dynamodbav:"user_id"`
	Email          string       `json:"email" mapstructure:"email" dynamodbav:"email"`
	Password       string       `json:"password" mapstructure:"password" dynamodbav:"password"`
	FirstName      string       `json:"first_name" mapstructure:"first_name" dynamodbav:"first_name"`
	LastName       string       `json:"last_name" mapstructure:"last_name" dynamodbav:"last_name"`
	ConfirmedEmail Confirmation `json:"confirmed_email" mapstructure:"confirmed_email" dynamodbav:"confirmed_email"`
	Role           Role         `json:"role" mapstructure:"role" dynamodbav:"role"`
	CreatedAt      time.Time    `json:"created_at" mapstructure:"-" dynamodbav:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" mapstructure:"-" dynamodbav:"updated_at"`
}

// Confirmed reports whether the account may log in.
func (a *Account) Confirmed() bool { return a.ConfirmedEmail == ConfirmedYes }
