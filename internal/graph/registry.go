package graph

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/txrisk/internal/model"
)

// ErrCapacityExceeded is returned when registering an account would exceed
// the registry's maximum account count.
var ErrCapacityExceeded = errors.New("account capacity exceeded")

// Registry maps account names to dense indices and owns the account records.
type Registry struct {
	accounts    []model.Account
	byName      map[string]int
	maxAccounts int // 0 = unbounded
}

// NewRegistry creates an empty Registry. maxAccounts <= 0 disables the limit.
func NewRegistry(maxAccounts int) *Registry {
	if maxAccounts < 0 {
		maxAccounts = 0
	}
	return &Registry{
		byName:      make(map[string]int),
		maxAccounts: maxAccounts,
	}
}

// Find returns the index of the account with exactly this name.
func (r *Registry) Find(name string) (int, bool) {
	idx, ok := r.byName[name]
	return idx, ok
}

// GetOrCreate returns the index for name, registering a new account with
// zero outgoing total if it is not yet known.
func (r *Registry) GetOrCreate(name string) (int, error) {
	if idx, ok := r.byName[name]; ok {
		return idx, nil
	}
	if r.maxAccounts > 0 && len(r.accounts) >= r.maxAccounts {
		return 0, fmt.Errorf("registering %q (limit %d): %w", name, r.maxAccounts, ErrCapacityExceeded)
	}
	idx := len(r.accounts)
	r.accounts = append(r.accounts, model.Account{Name: name, Index: idx})
	r.byName[name] = idx
	return idx, nil
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	return len(r.accounts)
}

// MaxAccounts returns the configured limit, 0 if unbounded.
func (r *Registry) MaxAccounts() int {
	return r.maxAccounts
}
