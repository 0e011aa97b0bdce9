// Package account implements the per-client state machine at the heart
// of the engine. Every exported method applies one event atomically —
// either every field changes or none do.
//
// The core is single-threaded and synchronous: unlike the teacher's
// bank-api, which wraps every mutation in a sync.Mutex to guard
// concurrent HTTP handlers, an Account here carries no lock. Sharding
// by client across independent Engines, not intra-account locking, is
// how a host parallelizes.
package account

import (
	"ledger-engine/internal/domain/money"
	"ledger-engine/internal/pkg/apperrors"
)

type Direction int

const (
	DirectionDeposit Direction = iota
	DirectionWithdrawal
)

type DisputeState int

const (
	Settled DisputeState = iota
	Disputed
	ChargedBack
)

// Posting is a recorded deposit or withdrawal, carrying its current
// dispute state.
type Posting struct {
	Direction Direction
	Amount    money.Decimal
	State     DisputeState
}

// Account is keyed by client identifier. Postings are retained for the
// lifetime of the account since a Settled posting may be disputed
// arbitrarily later.
type Account struct {
	ClientID  uint16
	available money.Decimal
	held      money.Decimal
	frozen    bool
	postings  map[uint32]*Posting
}

// New creates an empty account for clientID. Accounts are created
// lazily by the engine on first reference.
func New(clientID uint16) *Account {
	return &Account{
		ClientID: clientID,
		postings: make(map[uint32]*Posting),
	}
}

func (a *Account) Available() money.Decimal { return a.available }
func (a *Account) Held() money.Decimal      { return a.held }
func (a *Account) Frozen() bool             { return a.frozen }

// Total is the derived view available+held. ok is false if the
// addition overflows, in which case the caller must not trust value.
func (a *Account) Total() (value money.Decimal, ok bool) {
	return money.CheckedAdd(a.available, a.held)
}

// Posting returns the posting recorded for txID, if any. Exposed for
// tests and the inspection API; callers must not mutate the result.
func (a *Account) Posting(txID uint32) (Posting, bool) {
	p, ok := a.postings[txID]
	if !ok {
		return Posting{}, false
	}
	return *p, true
}

// Deposit credits available with amount, rejecting non-positive
// amounts, duplicate transaction ids, and deposits onto a frozen
// account.
func (a *Account) Deposit(txID uint32, amount money.Decimal) error {
	if a.frozen {
		return apperrors.AccountFrozen()
	}
	if !amount.IsPositive() {
		return apperrors.InvalidAmount("deposit amount must be strictly positive")
	}
	if _, exists := a.postings[txID]; exists {
		return apperrors.DuplicateTransactionID()
	}

	newAvailable, ok := money.CheckedAdd(a.available, amount)
	if !ok {
		return apperrors.Overflow("deposit would overflow available balance")
	}

	a.available = newAvailable
	a.postings[txID] = &Posting{Direction: DirectionDeposit, Amount: amount, State: Settled}
	return nil
}

// Withdraw debits available by amount, rejecting non-positive amounts,
// duplicate transaction ids, withdrawals onto a frozen account, and
// withdrawals that would take available below zero.
func (a *Account) Withdraw(txID uint32, amount money.Decimal) error {
	if a.frozen {
		return apperrors.AccountFrozen()
	}
	if !amount.IsPositive() {
		return apperrors.InvalidAmount("withdrawal amount must be strictly positive")
	}
	if _, exists := a.postings[txID]; exists {
		return apperrors.DuplicateTransactionID()
	}
	if money.Compare(amount, a.available) > 0 {
		return apperrors.InsufficientFunds()
	}

	newAvailable, ok := money.CheckedSub(a.available, amount)
	if !ok {
		return apperrors.Overflow("withdrawal would overflow available balance")
	}

	a.available = newAvailable
	a.postings[txID] = &Posting{Direction: DirectionWithdrawal, Amount: amount, State: Settled}
	return nil
}

// Dispute flags the posting for txID as under dispute, moving its
// contribution from available to held. Disputes are admissible even
// while the account is frozen.
func (a *Account) Dispute(txID uint32) error {
	p, exists := a.postings[txID]
	if !exists {
		return apperrors.UnknownTransaction()
	}
	switch p.State {
	case Disputed:
		return apperrors.AlreadyDisputed()
	case ChargedBack:
		return apperrors.NotDisputable()
	}

	delta := signedContribution(p)
	newAvailable, ok := money.CheckedSub(a.available, delta)
	if !ok {
		return apperrors.Overflow("dispute would overflow available balance")
	}
	newHeld, ok := money.CheckedAdd(a.held, delta)
	if !ok {
		return apperrors.Overflow("dispute would overflow held balance")
	}

	a.available = newAvailable
	a.held = newHeld
	p.State = Disputed
	return nil
}

// ResolveDispute settles a disputed posting back to its original
// state, the inverse of Dispute.
func (a *Account) ResolveDispute(txID uint32) error {
	p, exists := a.postings[txID]
	if !exists {
		return apperrors.UnknownTransaction()
	}
	if p.State != Disputed {
		return apperrors.NotUnderDispute()
	}

	delta := signedContribution(p)
	newAvailable, ok := money.CheckedAdd(a.available, delta)
	if !ok {
		return apperrors.Overflow("resolve would overflow available balance")
	}
	newHeld, ok := money.CheckedSub(a.held, delta)
	if !ok {
		return apperrors.Overflow("resolve would overflow held balance")
	}

	a.available = newAvailable
	a.held = newHeld
	p.State = Settled
	return nil
}

// Chargeback reverses a disputed posting's contribution to held and
// freezes the account. ChargedBack is terminal.
func (a *Account) Chargeback(txID uint32) error {
	p, exists := a.postings[txID]
	if !exists {
		return apperrors.UnknownTransaction()
	}
	if p.State != Disputed {
		return apperrors.NotUnderDispute()
	}

	delta := signedContribution(p)
	newHeld, ok := money.CheckedSub(a.held, delta)
	if !ok {
		return apperrors.Overflow("chargeback would overflow held balance")
	}

	a.held = newHeld
	p.State = ChargedBack
	a.frozen = true
	return nil
}

// signedContribution is the contribution a posting made to available
// at acceptance time, which a dispute reverses and a resolve restores:
// +amount for a deposit, -amount for a withdrawal.
func signedContribution(p *Posting) money.Decimal {
	if p.Direction == DirectionWithdrawal {
		return p.Amount.Negate()
	}
	return p.Amount
}
