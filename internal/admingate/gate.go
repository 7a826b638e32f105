// Package admingate implements the owner / invited-admin capability
// handoff that guards registry mutations: the owner invites a new
// admin, who must explicitly accept before ownership transfers.
package admingate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"solo-skies/skyledger/internal/ledger"
)

var (
	ErrNotInvited = errors.New("caller is not the invited admin")
	ErrNoInvite   = errors.New("no pending admin invitation")
)

type Gate struct {
	mu       sync.Mutex
	owner    string
	invited  string
	notifier ledger.Notifier
}

var _ ledger.Authorizer = (*Gate)(nil)

func New(owner string, notifier ledger.Notifier) *Gate {
	if notifier == nil {
		notifier = ledger.NopNotifier()
	}
	return &Gate{owner: owner, notifier: notifier}
}

func (g *Gate) CurrentOwner() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.owner
}

func (g *Gate) InvitedAdmin() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.invited
}

// RequireOwner is the authorization check the registries run before
// any mutating operation.
func (g *Gate) RequireOwner(caller string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if caller != g.owner {
		return fmt.Errorf("%w: %s", ledger.ErrNotOwner, caller)
	}
	return nil
}

// Invite proposes newAdmin as the next owner, overwriting any pending
// invitation. Owner only.
func (g *Gate) Invite(ctx context.Context, caller, newAdmin string) error {
	g.mu.Lock()
	if caller != g.owner {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ledger.ErrNotOwner, caller)
	}
	if newAdmin == "" {
		g.mu.Unlock()
		return fmt.Errorf("%w: invited admin must not be empty", ledger.ErrInvalidInput)
	}
	g.invited = newAdmin
	g.mu.Unlock()

	g.notifier.Notify(ctx, ledger.Event{
		ID:    uuid.New().String(),
		Type:  ledger.EventNewAdminInvited,
		At:    time.Now(),
		Admin: newAdmin,
	})
	return nil
}

// AcceptInvitation transfers ownership to the invited admin. Only the
// invited admin may call it.
func (g *Gate) AcceptInvitation(ctx context.Context, caller string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.invited == "" {
		return ErrNoInvite
	}
	if caller != g.invited {
		return fmt.Errorf("%w: %s", ErrNotInvited, caller)
	}
	g.owner = g.invited
	g.invited = ""
	return nil
}

// DeclineInvitation clears the pending invitation. Owner only.
func (g *Gate) DeclineInvitation(ctx context.Context, caller string) error {
	g.mu.Lock()
	if caller != g.owner {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ledger.ErrNotOwner, caller)
	}
	g.invited = ""
	g.mu.Unlock()

	g.notifier.Notify(ctx, ledger.Event{
		ID:   uuid.New().String(),
		Type: ledger.EventAdminInviteDeclined,
		At:   time.Now(),
	})
	return nil
}
