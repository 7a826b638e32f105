package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// allowAll authorizes every caller; registry tests that care about
// ownership use fixedOwner instead.
type allowAll struct{}

func (allowAll) RequireOwner(string) error { return nil }

type fixedOwner struct{ owner string }

func (f fixedOwner) RequireOwner(caller string) error {
	if caller != f.owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	return nil
}

// stubBalance is a scriptable BalanceService.
type stubBalance struct {
	mu         sync.Mutex
	balances   map[string]uint64
	allowances map[string]uint64 // owner -> amount allowed to treasury

	failTransferFrom bool
	failTransfer     bool

	transferFromCalls int
	transferCalls     int
}

func newStubBalance() *stubBalance {
	return &stubBalance{
		balances:   make(map[string]uint64),
		allowances: make(map[string]uint64),
	}
}

func (s *stubBalance) BalanceOf(_ context.Context, account string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[account], nil
}

func (s *stubBalance) AllowanceOf(_ context.Context, owner, _ string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allowances[owner], nil
}

func (s *stubBalance) TransferFrom(_ context.Context, owner, to string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transferFromCalls++
	if s.failTransferFrom {
		return errors.New("transfer rejected")
	}
	if s.allowances[owner] < amount || s.balances[owner] < amount {
		return errors.New("transfer rejected")
	}
	s.allowances[owner] -= amount
	s.balances[owner] -= amount
	s.balances[to] += amount
	return nil
}

func (s *stubBalance) Transfer(_ context.Context, to string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transferCalls++
	if s.failTransfer {
		return errors.New("transfer rejected")
	}
	s.balances["treasury"] -= amount
	s.balances[to] += amount
	return nil
}

type captureNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureNotifier) Notify(_ context.Context, ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureNotifier) byType(t EventType) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, ev := range c.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// newTestLedger builds a ledger with a 2-economy/1-first airplane, a
// flight departing at departure, and a frozen clock at base.
func newTestLedger(t *testing.T, bal BalanceService, base, departure time.Time) (*Ledger, uint64, *captureNotifier) {
	t.Helper()

	notifier := &captureNotifier{}
	l := New(allowAll{}, bal, "treasury", notifier)
	l.now = func() time.Time { return base }

	ctx := context.Background()
	airplaneID, err := l.RegisterAirplane(ctx, "op", "LN-101", 2, 1)
	if err != nil {
		t.Fatalf("RegisterAirplane: %v", err)
	}
	flightID, err := l.RegisterFlight(ctx, "op", airplaneID, "OSL", departure, 10, 20)
	if err != nil {
		t.Fatalf("RegisterFlight: %v", err)
	}
	return l, flightID, notifier
}

func fund(bal *stubBalance, account string, amount, allowance uint64) {
	bal.mu.Lock()
	defer bal.mu.Unlock()
	bal.balances[account] = amount
	bal.allowances[account] = allowance
}

// checkConservation asserts available + occupied == capacity for both
// classes.
func checkConservation(t *testing.T, l *Ledger, flightID uint64, economyCap, firstCap int) {
	t.Helper()
	snap, err := l.GetFlight(flightID)
	if err != nil {
		t.Fatalf("GetFlight: %v", err)
	}
	occupied := 0
	for _, s := range snap.EconomySeatMap {
		if s != "" {
			occupied++
		}
	}
	if snap.AvailableEconomy+occupied != economyCap {
		t.Errorf("economy conservation broken: available %d + occupied %d != %d", snap.AvailableEconomy, occupied, economyCap)
	}
	occupied = 0
	for _, s := range snap.FirstSeatMap {
		if s != "" {
			occupied++
		}
	}
	if snap.AvailableFirst+occupied != firstCap {
		t.Errorf("first conservation broken: available %d + occupied %d != %d", snap.AvailableFirst, occupied, firstCap)
	}
}

func TestCalculateRefund(t *testing.T) {
	cases := []struct {
		tier  RefundTier
		price uint64
		want  uint64
	}{
		{RefundFull, 10, 10},
		{RefundFull, 23, 23},
		{RefundFull, 0, 0},
		{RefundPartial, 10, 8},
		{RefundPartial, 23, 16}, // 23/5*4, not 23*4/5 (=18)
		{RefundPartial, 0, 0},
		{RefundPartial, 4, 0},
		{RefundPartial, 100, 80},
	}
	for _, c := range cases {
		if got := CalculateRefund(c.tier, c.price); got != c.want {
			t.Errorf("CalculateRefund(%s, %d) = %d, want %d", c.tier, c.price, got, c.want)
		}
	}
}

func TestPurchaseTicket_Success(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 100, 100)
	l, flightID, notifier := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))

	if err := l.PurchaseTicket(context.Background(), flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("PurchaseTicket: %v", err)
	}

	snap, _ := l.GetFlight(flightID)
	if snap.AvailableEconomy != 1 {
		t.Errorf("available economy = %d, want 1", snap.AvailableEconomy)
	}
	if snap.EconomySeatMap[0] != "alice" {
		t.Errorf("seat 0 = %q, want alice", snap.EconomySeatMap[0])
	}
	if snap.Passengers["alice"] != 1 {
		t.Errorf("tickets = %d, want 1", snap.Passengers["alice"])
	}
	if got, _ := bal.BalanceOf(context.Background(), "treasury"); got != 10 {
		t.Errorf("treasury = %d, want 10", got)
	}
	if evs := notifier.byType(EventTicketPurchased); len(evs) != 1 || evs[0].Passenger != "alice" || evs[0].Amount != 10 {
		t.Errorf("unexpected purchase events: %+v", evs)
	}
	checkConservation(t, l, flightID, 2, 1)
}

func TestPurchaseTicket_ErrorOrdering(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 100, 100)
	l, flightID, _ := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))
	ctx := context.Background()

	if err := l.PurchaseTicket(ctx, 999, SeatEconomy, 0, "alice"); !errors.Is(err, ErrFlightNotFound) {
		t.Errorf("unknown flight: got %v, want ErrFlightNotFound", err)
	}
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 99, "alice"); !errors.Is(err, ErrInvalidSeatIndex) {
		t.Errorf("out of bounds: got %v, want ErrInvalidSeatIndex", err)
	}
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, -1, "alice"); !errors.Is(err, ErrInvalidSeatIndex) {
		t.Errorf("negative index: got %v, want ErrInvalidSeatIndex", err)
	}

	// Occupied seat beats everything after the bounds check.
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("setup purchase: %v", err)
	}
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "bob"); !errors.Is(err, ErrSeatAlreadyReserved) {
		t.Errorf("occupied seat: got %v, want ErrSeatAlreadyReserved", err)
	}

	// No allowance surfaces only once the seat checks pass.
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 1, "bob"); !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("no allowance: got %v, want ErrInsufficientAllowance", err)
	}

	// Empty pool reports before the seat index is even looked at.
	fund(bal, "bob", 100, 100)
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 1, "bob"); err != nil {
		t.Fatalf("fill economy: %v", err)
	}
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 99, "bob"); !errors.Is(err, ErrNoAvailableSeats) {
		t.Errorf("full pool: got %v, want ErrNoAvailableSeats", err)
	}
}

func TestPurchaseTicket_TicketCap(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 1000, 1000)

	notifier := &captureNotifier{}
	l := New(allowAll{}, bal, "treasury", notifier)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	airplaneID, err := l.RegisterAirplane(ctx, "op", "LN-747", 6, 1)
	if err != nil {
		t.Fatalf("RegisterAirplane: %v", err)
	}
	flightID, err := l.RegisterFlight(ctx, "op", airplaneID, "JFK", base.Add(72*time.Hour), 10, 20)
	if err != nil {
		t.Fatalf("RegisterFlight: %v", err)
	}

	for i := 0; i < MaxTicketsPerFlight; i++ {
		if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, i, "alice"); err != nil {
			t.Fatalf("purchase %d: %v", i, err)
		}
	}

	err = l.PurchaseTicket(ctx, flightID, SeatEconomy, 4, "alice")
	if !errors.Is(err, ErrMaxTicketsReached) {
		t.Fatalf("5th purchase: got %v, want ErrMaxTicketsReached", err)
	}

	// The failed attempt must not have mutated anything.
	snap, _ := l.GetFlight(flightID)
	if snap.Passengers["alice"] != 4 {
		t.Errorf("tickets = %d, want 4", snap.Passengers["alice"])
	}
	if snap.AvailableEconomy != 2 {
		t.Errorf("available economy = %d, want 2", snap.AvailableEconomy)
	}
	if snap.EconomySeatMap[4] != "" {
		t.Errorf("seat 4 = %q, want empty", snap.EconomySeatMap[4])
	}
}

func TestPurchaseTicket_DepartureBoundary(t *testing.T) {
	base := time.Now()
	departure := base.Add(10 * time.Minute)
	bal := newStubBalance()
	fund(bal, "alice", 100, 100)
	l, flightID, _ := newTestLedger(t, bal, base, departure)
	ctx := context.Background()

	// Exactly at departure is still allowed.
	l.now = func() time.Time { return departure }
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Errorf("purchase at departure instant: %v", err)
	}

	// One unit past departure is not.
	l.now = func() time.Time { return departure.Add(time.Nanosecond) }
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 1, "alice"); !errors.Is(err, ErrFlightDeparted) {
		t.Errorf("purchase after departure: got %v, want ErrFlightDeparted", err)
	}
}

func TestPurchaseTicket_RollbackOnTransferFailure(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 100, 100)
	bal.failTransferFrom = true
	l, flightID, notifier := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))

	err := l.PurchaseTicket(context.Background(), flightID, SeatEconomy, 0, "alice")
	if !errors.Is(err, ErrTransferFailed) {
		t.Fatalf("got %v, want ErrTransferFailed", err)
	}

	snap, _ := l.GetFlight(flightID)
	if snap.AvailableEconomy != 2 {
		t.Errorf("available economy = %d, want 2", snap.AvailableEconomy)
	}
	if snap.EconomySeatMap[0] != "" {
		t.Errorf("seat 0 = %q, want empty", snap.EconomySeatMap[0])
	}
	if snap.Passengers["alice"] != 0 {
		t.Errorf("tickets = %d, want 0", snap.Passengers["alice"])
	}
	if evs := notifier.byType(EventTicketPurchased); len(evs) != 0 {
		t.Errorf("no purchase event expected, got %+v", evs)
	}
	checkConservation(t, l, flightID, 2, 1)
}

func TestCancelTicket_PartialRefund(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 10, 10)
	l, flightID, notifier := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))
	ctx := context.Background()

	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	snap, _ := l.GetFlight(flightID)
	if snap.AvailableEconomy != 2 {
		t.Errorf("available economy = %d, want 2", snap.AvailableEconomy)
	}
	if snap.EconomySeatMap[0] != "" {
		t.Errorf("seat 0 = %q, want empty", snap.EconomySeatMap[0])
	}
	if snap.Passengers["alice"] != 0 {
		t.Errorf("tickets = %d, want 0", snap.Passengers["alice"])
	}

	// Price 10, partial tier: refund 8.
	if got, _ := bal.BalanceOf(ctx, "alice"); got != 8 {
		t.Errorf("alice balance = %d, want 8", got)
	}
	if got, _ := bal.BalanceOf(ctx, "treasury"); got != 2 {
		t.Errorf("treasury balance = %d, want 2", got)
	}
	evs := notifier.byType(EventTicketCanceled)
	if len(evs) != 1 || evs[0].Amount != 8 || evs[0].Status != string(RefundPartial) {
		t.Errorf("unexpected cancel events: %+v", evs)
	}
}

func TestCancelTicket_FullRefundWindow(t *testing.T) {
	base := time.Now()
	// Departure 36h out: inside the 48h full-refund window, outside
	// the 24h cancellation cutoff.
	bal := newStubBalance()
	fund(bal, "alice", 10, 10)
	l, flightID, _ := newTestLedger(t, bal, base, base.Add(36*time.Hour))
	ctx := context.Background()

	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got, _ := bal.BalanceOf(ctx, "alice"); got != 10 {
		t.Errorf("alice balance = %d, want full refund 10", got)
	}
}

func TestCancelTicket_WindowBoundaries(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 100, 100)
	departure := base.Add(30 * 24 * time.Hour)
	l, flightID, _ := newTestLedger(t, bal, base, departure)
	ctx := context.Background()

	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	// now + 24h == departure: boundary is strict >, equality passes.
	l.now = func() time.Time { return departure.Add(-CancelCutoff) }
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("cancel at exact cutoff: %v", err)
	}

	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("re-purchase: %v", err)
	}

	// One unit inside the cutoff: rejected, no refund path.
	l.now = func() time.Time { return departure.Add(-CancelCutoff).Add(time.Nanosecond) }
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice"); !errors.Is(err, ErrRefundWindowClosed) {
		t.Errorf("inside cutoff: got %v, want ErrRefundWindowClosed", err)
	}

	// After departure the departed error wins over the window.
	l.now = func() time.Time { return departure.Add(time.Hour) }
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice"); !errors.Is(err, ErrFlightDeparted) {
		t.Errorf("after departure: got %v, want ErrFlightDeparted", err)
	}
}

func TestCancelTicket_Validation(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 100, 100)
	l, flightID, _ := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))
	ctx := context.Background()

	if err := l.CancelTicket(ctx, 999, SeatEconomy, 0, "alice"); !errors.Is(err, ErrFlightNotFound) {
		t.Errorf("unknown flight: got %v, want ErrFlightNotFound", err)
	}
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice"); !errors.Is(err, ErrNotPassengerOnFlight) {
		t.Errorf("no account: got %v, want ErrNotPassengerOnFlight", err)
	}

	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	// Wrong seat, wrong class, wrong holder all surface the same way.
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 1, "alice"); !errors.Is(err, ErrInvalidSeatIndex) {
		t.Errorf("wrong seat: got %v, want ErrInvalidSeatIndex", err)
	}
	if err := l.CancelTicket(ctx, flightID, SeatFirst, 0, "alice"); !errors.Is(err, ErrInvalidSeatIndex) {
		t.Errorf("wrong class: got %v, want ErrInvalidSeatIndex", err)
	}

	fund(bal, "bob", 100, 100)
	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 1, "bob"); err != nil {
		t.Fatalf("purchase bob: %v", err)
	}
	if err := l.CancelTicket(ctx, flightID, SeatEconomy, 1, "alice"); !errors.Is(err, ErrInvalidSeatIndex) {
		t.Errorf("someone else's seat: got %v, want ErrInvalidSeatIndex", err)
	}
}

func TestCancelTicket_RollbackOnPayoutFailure(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 10, 10)
	l, flightID, _ := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))
	ctx := context.Background()

	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	bal.failTransfer = true
	err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice")
	if !errors.Is(err, ErrTransferFailed) {
		t.Fatalf("got %v, want ErrTransferFailed", err)
	}

	snap, _ := l.GetFlight(flightID)
	if snap.EconomySeatMap[0] != "alice" {
		t.Errorf("seat 0 = %q, want alice restored", snap.EconomySeatMap[0])
	}
	if snap.AvailableEconomy != 1 {
		t.Errorf("available economy = %d, want 1", snap.AvailableEconomy)
	}
	if snap.Passengers["alice"] != 1 {
		t.Errorf("tickets = %d, want 1", snap.Passengers["alice"])
	}
	checkConservation(t, l, flightID, 2, 1)
}

func TestCancelTicket_TreasuryShortfall(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	fund(bal, "alice", 10, 10)
	l, flightID, _ := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))
	ctx := context.Background()

	if err := l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, "alice"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	// Drain the treasury below the 8-unit refund.
	bal.mu.Lock()
	bal.balances["treasury"] = 5
	bal.mu.Unlock()

	err := l.CancelTicket(ctx, flightID, SeatEconomy, 0, "alice")
	if !errors.Is(err, ErrInsufficientTreasury) {
		t.Fatalf("got %v, want ErrInsufficientTreasury", err)
	}

	// Shortfall rolls back like any other failure.
	snap, _ := l.GetFlight(flightID)
	if snap.EconomySeatMap[0] != "alice" || snap.Passengers["alice"] != 1 {
		t.Errorf("state not restored: seat=%q tickets=%d", snap.EconomySeatMap[0], snap.Passengers["alice"])
	}
}

func TestPurchaseTicket_ConcurrentSameSeat(t *testing.T) {
	base := time.Now()
	bal := newStubBalance()
	l, flightID, _ := newTestLedger(t, bal, base, base.Add(30*24*time.Hour))
	ctx := context.Background()

	const callers = 16
	for i := 0; i < callers; i++ {
		fund(bal, fmt.Sprintf("p%d", i), 100, 100)
	}

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = l.PurchaseTicket(ctx, flightID, SeatEconomy, 0, fmt.Sprintf("p%d", i))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrSeatAlreadyReserved) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("seat 0 sold %d times", succeeded)
	}
	checkConservation(t, l, flightID, 2, 1)
}
