package accounts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

// MemoryRepository keeps accounts in process memory. Records are copied on
// the way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Account
	order []string
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Account)}
}

func (r *MemoryRepository) Put(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[account.ID]; !ok {
		r.order = append(r.order, account.ID)
	}
	r.items[account.ID] = *account
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Scan(_ context.Context) ([]*models.Account, error) {
	return r.filter(func(*models.Account) bool { return true }), nil
}

func (r *MemoryRepository) QueryByEmail(_ context.Context, email string) ([]*models.Account, error) {
	return r.filter(func(a *models.Account) bool { return a.Email == email }), nil
}

func (r *MemoryRepository) FindByCredentials(_ context.Context, email, password string) (*models.Account, error) {
	found := r.filter(func(a *models.Account) bool {
		return a.Email == email && a.Password == password
	})
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *MemoryRepository) filter(keep func(*models.Account) bool) []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Account, 0, len(r.order))
	for _, id := range r.order {
		a := r.items[id]
		if keep(&a) {
			out = append(out, &a)
		}
	}
	return out
}
