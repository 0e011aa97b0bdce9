package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-engine/internal/domain/account"
	"ledger-engine/internal/domain/money"
	"ledger-engine/internal/pkg/apperrors"
)

func amt(t *testing.T, s string) money.Decimal {
	t.Helper()
	d, ok := money.Parse(s)
	require.True(t, ok)
	return d
}

func assertBalances(t *testing.T, acc *account.Account, available, held string, frozen bool) {
	t.Helper()
	assert.Equal(t, available, acc.Available().String())
	assert.Equal(t, held, acc.Held().String())
	assert.Equal(t, frozen, acc.Frozen())
	total, ok := acc.Total()
	require.True(t, ok)
	want, ok := money.CheckedAdd(acc.Available(), acc.Held())
	require.True(t, ok)
	assert.True(t, money.Equal(want, total))
}

func TestScenarioBasicDepositWithdrawal(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "1.0")))
	require.NoError(t, acc.Deposit(2, amt(t, "2.0")))
	require.NoError(t, acc.Withdraw(3, amt(t, "1.5")))
	assertBalances(t, acc, "1.5", "0", false)
}

func TestScenarioInsufficientFundsIgnored(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "1.0")))
	err := acc.Withdraw(2, amt(t, "5.0"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInsufficientFunds, err.(apperrors.EngineError).Kind)
	assertBalances(t, acc, "1", "0", false)
}

func TestScenarioDisputeThenResolve(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "10.0")))
	require.NoError(t, acc.Dispute(1))
	assertBalances(t, acc, "0", "10", false)
	require.NoError(t, acc.ResolveDispute(1))
	assertBalances(t, acc, "10", "0", false)
}

func TestScenarioDisputeThenChargeback(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "10.0")))
	require.NoError(t, acc.Deposit(2, amt(t, "5.0")))
	require.NoError(t, acc.Dispute(1))
	require.NoError(t, acc.Chargeback(1))
	assertBalances(t, acc, "5", "0", true)

	err := acc.Deposit(3, amt(t, "1.0"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAccountFrozen, err.(apperrors.EngineError).Kind)
}

// The per-client id namespace (two clients independently reusing the
// same transaction id) is exercised at the engine level; see
// engine_test.go.

func TestScenarioRedisputeAfterResolve(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "4.0")))
	require.NoError(t, acc.Dispute(1))
	require.NoError(t, acc.ResolveDispute(1))
	require.NoError(t, acc.Dispute(1))
	require.NoError(t, acc.Chargeback(1))
	assertBalances(t, acc, "0", "0", true)
}

func TestWithdrawalDisputeRestoresFundsOnChargeback(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "10.0")))
	require.NoError(t, acc.Withdraw(2, amt(t, "4.0")))
	assertBalances(t, acc, "6", "0", false)

	require.NoError(t, acc.Dispute(2))
	// disputing a withdrawal returns the money to available and pulls
	// held negative by the signed-delta rule.
	assertBalances(t, acc, "10", "-4", false)

	require.NoError(t, acc.Chargeback(2))
	assertBalances(t, acc, "10", "0", true)
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	acc := account.New(1)
	err := acc.Deposit(1, amt(t, "0"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidAmount, err.(apperrors.EngineError).Kind)
	assertBalances(t, acc, "0", "0", false)
}

func TestDuplicateTransactionIDRejected(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "1.0")))
	err := acc.Deposit(1, amt(t, "2.0"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicateTransactionID, err.(apperrors.EngineError).Kind)

	err = acc.Withdraw(1, amt(t, "0.5"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicateTransactionID, err.(apperrors.EngineError).Kind)
}

func TestDisputeUnknownTransactionRejected(t *testing.T) {
	acc := account.New(1)
	err := acc.Dispute(99)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnknownTransaction, err.(apperrors.EngineError).Kind)
}

func TestDisputeTwiceRejected(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "1.0")))
	require.NoError(t, acc.Dispute(1))
	err := acc.Dispute(1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAlreadyDisputed, err.(apperrors.EngineError).Kind)
}

func TestDisputeAfterChargebackRejected(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "1.0")))
	require.NoError(t, acc.Dispute(1))
	require.NoError(t, acc.Chargeback(1))
	err := acc.Dispute(1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotDisputable, err.(apperrors.EngineError).Kind)
}

func TestResolveWithoutDisputeRejected(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "1.0")))
	err := acc.ResolveDispute(1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotUnderDispute, err.(apperrors.EngineError).Kind)
}

func TestChargebackWithoutDisputeRejected(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "1.0")))
	err := acc.Chargeback(1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotUnderDispute, err.(apperrors.EngineError).Kind)
}

// A rejected event must leave the account bitwise equal to its
// pre-event state.
func TestRejectedEventLeavesStateUnchanged(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "5.0")))
	before := *acc

	_ = acc.Deposit(1, amt(t, "1.0"))         // duplicate id
	_ = acc.Withdraw(2, amt(t, "100.0"))      // insufficient funds
	_ = acc.Dispute(2)                        // unknown transaction
	_ = acc.Deposit(3, amt(t, "-1.0"))        // never parses to positive in practice

	assert.Equal(t, before.Available(), acc.Available())
	assert.Equal(t, before.Held(), acc.Held())
	assert.Equal(t, before.Frozen(), acc.Frozen())
}

// An account with no disputed postings keeps held at zero and
// available equal to the net of its deposits and withdrawals.
func TestUndisputedAccountHeldIsZero(t *testing.T) {
	acc := account.New(1)
	require.NoError(t, acc.Deposit(1, amt(t, "10.0")))
	require.NoError(t, acc.Deposit(2, amt(t, "5.0")))
	require.NoError(t, acc.Withdraw(3, amt(t, "3.0")))
	assertBalances(t, acc, "12", "0", false)
}
