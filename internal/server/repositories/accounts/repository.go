// Package accounts stores account records. Every backend offers lookup by
// primary key, a secondary lookup by email and a full scan.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

// Repository is the account table contract shared by every backend.
type Repository interface {
	// Put writes the whole record, replacing any record with the same ID.
	Put(ctx context.Context, account *models.Account) error
	// Get returns common.ErrorNotFound when id is unknown.
	Get(ctx context.Context, id string) (*models.Account, error)
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context) ([]*models.Account, error)
	// QueryByEmail uses the email index. Emails are expected to be
	// unique, but the index does not enforce it.
	QueryByEmail(ctx context.Context, email string) ([]*models.Account, error)
	// FindByCredentials scans for an exact email and password match and
	// returns the first hit, or common.ErrorNotFound.
	FindByCredentials(ctx context.Context, email, password string) (*models.Account, error)
}
