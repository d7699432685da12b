// Package recipes stores catalog entries keyed by their ID.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

// Repository is the recipe table contract shared by every backend.
type Repository interface {
	// Put writes the whole record, replacing any record with the same ID.
	Put(ctx context.Context, recipe *models.Recipe) error
	// Get returns common.ErrorNotFound when id is unknown.
	Get(ctx context.Context, id string) (*models.Recipe, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context) ([]*models.Recipe, error)
}
