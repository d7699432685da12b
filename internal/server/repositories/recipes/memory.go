package recipes

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

// MemoryRepository keeps recipes in insertion order. Records are deep
// copied on the way in and out.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Recipe
	order []string
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Recipe)}
}

func (r *MemoryRepository) Put(_ context.Context, recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[recipe.ID]; !ok {
		r.order = append(r.order, recipe.ID)
	}
	r.items[recipe.ID] = clone(recipe)
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := clone(&v)
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryRepository) Scan(_ context.Context) ([]*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Recipe, 0, len(r.order))
	for _, id := range r.order {
		v := r.items[id]
		c := clone(&v)
		out = append(out, &c)
	}
	return out, nil
}

func clone(r *models.Recipe) models.Recipe {
	return r.Clone()
}
