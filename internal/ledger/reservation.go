package ledger

import (
	"context"
	"fmt"
)

type RefundTier string

const (
	RefundPartial RefundTier = "partial"
	RefundFull    RefundTier = "full"
)

// CalculateRefund returns the payout for a canceled ticket. The
// partial tier pays 80% with truncating integer division: price/5*4,
// not price*4/5 — the two differ for prices not divisible by 5 and
// the former is the compatible form.
func CalculateRefund(tier RefundTier, price uint64) uint64 {
	if tier == RefundFull {
		return price
	}
	return price / 5 * 4
}

// PurchaseTicket sells the given seat to caller. Validation runs in a
// fixed order so a request failing several checks always surfaces the
// same error. If the balance transfer fails every in-memory mutation
// made by this call is undone.
func (l *Ledger) PurchaseTicket(ctx context.Context, flightID uint64, class SeatClass, seatIndex int, caller string) error {
	f := l.flight(flightID)
	if f == nil {
		return fmt.Errorf("%w: flight %d", ErrFlightNotFound, flightID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Purchase at the departure instant itself is still allowed.
	if l.now().After(f.DepartureTime) {
		return fmt.Errorf("%w: flight %d", ErrFlightDeparted, flightID)
	}

	price, available, seats, err := f.pool(class)
	if err != nil {
		return err
	}
	if *available == 0 {
		return fmt.Errorf("%w: %s on flight %d", ErrNoAvailableSeats, class, flightID)
	}
	if seatIndex < 0 || seatIndex >= len(seats) {
		return fmt.Errorf("%w: seat %d in %s", ErrInvalidSeatIndex, seatIndex, class)
	}
	if seats[seatIndex] != "" {
		return fmt.Errorf("%w: %s seat %d", ErrSeatAlreadyReserved, class, seatIndex)
	}
	if acct := f.Passengers[caller]; acct != nil && acct.Tickets >= MaxTicketsPerFlight {
		return fmt.Errorf("%w: limit is %d", ErrMaxTicketsReached, MaxTicketsPerFlight)
	}

	allowance, err := l.balance.AllowanceOf(ctx, caller, l.treasury)
	if err != nil {
		return fmt.Errorf("%w: allowance lookup: %v", ErrTransferFailed, err)
	}
	if allowance < price {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientAllowance, allowance, price)
	}

	*available--
	seats[seatIndex] = caller
	acct := f.Passengers[caller]
	if acct == nil {
		acct = &PassengerAccount{}
		f.Passengers[caller] = acct
	}
	acct.Tickets++

	if err := l.balance.TransferFrom(ctx, caller, l.treasury, price); err != nil {
		// Roll back: the operation is all-or-nothing.
		*available++
		seats[seatIndex] = ""
		acct.Tickets--
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	l.emit(ctx, Event{
		Type:      EventTicketPurchased,
		FlightID:  flightID,
		Passenger: caller,
		Status:    string(class),
		Amount:    price,
	})
	return nil
}

// CancelTicket releases caller's seat and refunds the price according
// to the refund tier. Cancellation is rejected outright inside the
// final day before departure; inside two days the refund is full,
// earlier it is partial. A failed payout undoes all local mutations.
func (l *Ledger) CancelTicket(ctx context.Context, flightID uint64, class SeatClass, seatIndex int, caller string) error {
	f := l.flight(flightID)
	if f == nil {
		return fmt.Errorf("%w: flight %d", ErrFlightNotFound, flightID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := l.now()
	if now.After(f.DepartureTime) {
		return fmt.Errorf("%w: flight %d", ErrFlightDeparted, flightID)
	}
	acct := f.Passengers[caller]
	if acct == nil || acct.Tickets == 0 {
		return fmt.Errorf("%w: flight %d", ErrNotPassengerOnFlight, flightID)
	}
	if now.Add(CancelCutoff).After(f.DepartureTime) {
		return fmt.Errorf("%w: less than %s to departure", ErrRefundWindowClosed, CancelCutoff)
	}
	tier := RefundPartial
	if now.Add(FullRefundWindow).After(f.DepartureTime) {
		tier = RefundFull
	}

	price, available, seats, err := f.pool(class)
	if err != nil {
		return err
	}
	if seatIndex < 0 || seatIndex >= len(seats) || seats[seatIndex] != caller {
		return fmt.Errorf("%w: %s seat %d is not held by caller", ErrInvalidSeatIndex, class, seatIndex)
	}

	seats[seatIndex] = ""
	*available++
	acct.Tickets--
	refund := CalculateRefund(tier, price)

	rollback := func() {
		seats[seatIndex] = caller
		*available--
		acct.Tickets++
	}

	treasuryBalance, err := l.balance.BalanceOf(ctx, l.treasury)
	if err != nil {
		rollback()
		return fmt.Errorf("%w: treasury lookup: %v", ErrTransferFailed, err)
	}
	if treasuryBalance < refund {
		rollback()
		return fmt.Errorf("%w: have %d, owe %d", ErrInsufficientTreasury, treasuryBalance, refund)
	}
	if err := l.balance.Transfer(ctx, caller, refund); err != nil {
		rollback()
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	l.emit(ctx, Event{
		Type:      EventTicketCanceled,
		FlightID:  flightID,
		Passenger: caller,
		Status:    string(tier),
		Amount:    refund,
	})
	return nil
}
