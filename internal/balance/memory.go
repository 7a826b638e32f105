// Package balance provides the payment-token collaborator the
// reservation ledger settles against. The ledger only ever sees the
// narrow BalanceService interface; this package ships the in-process
// implementation used by the single-operator deployment and by tests.
package balance

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"solo-skies/skyledger/internal/ledger"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// InMemory is a mutex-guarded token ledger. The self account is the
// identity this service acts as: TransferFrom spends allowances
// granted to self, Transfer pays out of self's balance.
type InMemory struct {
	mu         sync.Mutex
	self       string
	balances   map[string]uint64
	allowances map[string]map[string]uint64
}

var _ ledger.BalanceService = (*InMemory)(nil)

func NewInMemory(self string) *InMemory {
	return &InMemory{
		self:       self,
		balances:   make(map[string]uint64),
		allowances: make(map[string]map[string]uint64),
	}
}

// Deposit credits an account. Setup/faucet helper, not part of the
// BalanceService contract.
func (m *InMemory) Deposit(account string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] += amount
}

// Approve lets owner authorize spender to move up to amount of
// owner's funds. Overwrites any previous allowance.
func (m *InMemory) Approve(owner, spender string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.allowances[owner] == nil {
		m.allowances[owner] = make(map[string]uint64)
	}
	m.allowances[owner][spender] = amount
}

func (m *InMemory) BalanceOf(_ context.Context, account string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account], nil
}

func (m *InMemory) AllowanceOf(_ context.Context, owner, spender string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allowances[owner][spender], nil
}

// TransferFrom moves amount from owner to to, spending owner's
// allowance granted to self. Fails without mutating anything if the
// allowance or balance is short.
func (m *InMemory) TransferFrom(_ context.Context, owner, to string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := m.allowances[owner][m.self]
	if allowed < amount {
		return fmt.Errorf("%w: %s allowed %d to %s, need %d", ErrInsufficientAllowance, owner, allowed, m.self, amount)
	}
	if m.balances[owner] < amount {
		return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientBalance, owner, m.balances[owner], amount)
	}
	m.allowances[owner][m.self] = allowed - amount
	m.balances[owner] -= amount
	m.balances[to] += amount
	return nil
}

// Transfer moves amount from self to to.
func (m *InMemory) Transfer(_ context.Context, to string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.balances[m.self] < amount {
		return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientBalance, m.self, m.balances[m.self], amount)
	}
	m.balances[m.self] -= amount
	m.balances[to] += amount
	return nil
}
