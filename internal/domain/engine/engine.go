// Package engine maps client identifiers to accounts and dispatches
// events to them.
package engine

import (
	"ledger-engine/internal/domain/account"
	"ledger-engine/internal/domain/event"
	"ledger-engine/internal/pkg/apperrors"
)

// Engine performs no semantic validation of its own; every check
// belongs to the Account it routes to.
type Engine struct {
	accounts map[uint16]*account.Account
}

func New() *Engine {
	return &Engine{accounts: make(map[uint16]*account.Account)}
}

// Submit routes ev to the account for ev.ClientID, creating it if
// absent, and applies the matching transition. The account is created
// on first routing regardless of whether the event is ultimately
// accepted.
func (e *Engine) Submit(ev event.Event) error {
	acc, exists := e.accounts[ev.ClientID]
	if !exists {
		acc = account.New(ev.ClientID)
		e.accounts[ev.ClientID] = acc
	}

	switch ev.Kind {
	case event.Deposit:
		return acc.Deposit(ev.TxID, ev.Amount)
	case event.Withdrawal:
		return acc.Withdraw(ev.TxID, ev.Amount)
	case event.Dispute:
		return acc.Dispute(ev.TxID)
	case event.Resolve:
		return acc.ResolveDispute(ev.TxID)
	case event.Chargeback:
		return acc.Chargeback(ev.TxID)
	default:
		return apperrors.Decode("unrecognized event kind")
	}
}

// Accounts exposes the current account set for the snapshot emitter and
// the optional inspection API. Iteration order is unspecified.
func (e *Engine) Accounts() map[uint16]*account.Account {
	return e.accounts
}
