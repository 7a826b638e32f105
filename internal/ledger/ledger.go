package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Business limits. Prices and amounts are integers in the payment
// token's smallest unit.
const (
	MinEconomySeats    = 2
	MinFirstClassSeats = 1
	MinEconomyPrice    = uint64(10)
	MinFirstPrice      = uint64(20)
	MaxTicketsPerFlight = 4

	CancelCutoff     = 24 * time.Hour
	FullRefundWindow = 48 * time.Hour
)

// Authorizer answers whether a caller may perform owner-gated
// registry mutations. The admin gate implements it.
type Authorizer interface {
	RequireOwner(caller string) error
}

// BalanceService is the external payment-token collaborator. The
// ledger never mutates balances directly; it only issues these calls.
// TransferFrom spends the caller's allowance granted to the treasury
// account; Transfer pays out of the treasury account.
type BalanceService interface {
	BalanceOf(ctx context.Context, account string) (uint64, error)
	AllowanceOf(ctx context.Context, owner, spender string) (uint64, error)
	TransferFrom(ctx context.Context, owner, to string, amount uint64) error
	Transfer(ctx context.Context, to string, amount uint64) error
}

// Ledger owns all airplane and flight records and runs the
// reservation state machine against them. Registry maps are guarded
// by mu; each flight additionally carries its own mutex so that
// purchases and cancellations on different flights never contend.
type Ledger struct {
	mu        sync.RWMutex
	airplanes map[uint64]*Airplane
	flights   map[uint64]*Flight

	airplaneIDs Sequence
	flightIDs   Sequence

	auth     Authorizer
	balance  BalanceService
	treasury string
	notifier Notifier

	now func() time.Time
}

// New builds an empty ledger. treasury is this system's own account
// at the balance service, credited on purchases and debited on
// refunds.
func New(auth Authorizer, balance BalanceService, treasury string, notifier Notifier) *Ledger {
	if notifier == nil {
		notifier = NopNotifier()
	}
	return &Ledger{
		airplanes: make(map[uint64]*Airplane),
		flights:   make(map[uint64]*Flight),
		auth:      auth,
		balance:   balance,
		treasury:  treasury,
		notifier:  notifier,
		now:       time.Now,
	}
}

// TreasuryAccount returns the account refunds are paid from.
func (l *Ledger) TreasuryAccount() string { return l.treasury }

func (l *Ledger) emit(ctx context.Context, ev Event) {
	ev.ID = uuid.New().String()
	ev.At = l.now()
	l.notifier.Notify(ctx, ev)
}

func (l *Ledger) flight(id uint64) *Flight {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.flights[id]
}
