// Package repomanager opens a storage backend and vends the repositories
// bound to it. A manager is created once per process and closed on exit.
package repomanager

import (
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/recipes"
)

// RepositoryManager owns the repositories of one storage backend.
type RepositoryManager interface {
	Accounts() accounts.Repository
	Recipes() recipes.Repository
	Close() error
}

// MemoryRepositoryManager keeps everything in process memory.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	recipes  *recipes.MemoryRepository
}

// NewMemoryRepositoryManager returns a manager with empty repositories.
func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		recipes:  recipes.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Accounts() accounts.Repository { return m.accounts }
func (m *MemoryRepositoryManager) Recipes() recipes.Repository   { return m.recipes }
func (m *MemoryRepositoryManager) Close() error                  { return nil }
