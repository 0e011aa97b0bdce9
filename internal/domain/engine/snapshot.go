package engine

import (
	"ledger-engine/internal/domain/money"
	"ledger-engine/internal/pkg/apperrors"
)

// Snapshot is the external representation of one account's final
// state.
type Snapshot struct {
	ClientID  uint16
	Available money.Decimal
	Held      money.Decimal
	Total     money.Decimal
	Frozen    bool
}

// Snapshots walks the engine's accounts and yields one Snapshot per
// account. If an account's total overflows, that account is returned
// in errs instead of snapshots rather than emitting a malformed row.
func (e *Engine) Snapshots() (snapshots []Snapshot, errs map[uint16]error) {
	snapshots = make([]Snapshot, 0, len(e.accounts))
	for clientID, acc := range e.accounts {
		total, ok := acc.Total()
		if !ok {
			if errs == nil {
				errs = make(map[uint16]error)
			}
			errs[clientID] = apperrors.Overflow("account total overflows the representable magnitude")
			continue
		}
		snapshots = append(snapshots, Snapshot{
			ClientID:  clientID,
			Available: acc.Available(),
			Held:      acc.Held(),
			Total:     total,
			Frozen:    acc.Frozen(),
		})
	}
	return snapshots, errs
}
