// Package apperrors defines the engine's typed error taxonomy.
package apperrors

import "net/http"

// Kind identifies why an event or decode step failed.
type Kind string

const (
	KindInvalidAmount          Kind = "INVALID_AMOUNT"
	KindInsufficientFunds      Kind = "INSUFFICIENT_FUNDS"
	KindDuplicateTransactionID Kind = "DUPLICATE_TRANSACTION_ID"
	KindUnknownTransaction     Kind = "UNKNOWN_TRANSACTION"
	KindAlreadyDisputed        Kind = "ALREADY_DISPUTED"
	KindNotUnderDispute        Kind = "NOT_UNDER_DISPUTE"
	KindNotDisputable          Kind = "NOT_DISPUTABLE"
	KindAccountFrozen          Kind = "ACCOUNT_FROZEN"
	KindOverflow               Kind = "OVERFLOW"
	KindDecode                 Kind = "DECODE"
)

// EngineError is the error type returned by every engine and account
// operation. Status is carried only for the optional inspection API in
// internal/api; the batch CLI path never serializes it.
type EngineError struct {
	Kind    Kind
	Message string
	Status  int
}

func (e EngineError) Error() string {
	return e.Message
}

func New(kind Kind, message string) EngineError {
	return EngineError{Kind: kind, Message: message, Status: statusFor(kind)}
}

func statusFor(kind Kind) int {
	switch kind {
	case KindOverflow:
		return http.StatusInternalServerError
	case KindUnknownTransaction:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// Common constructors, one per rejection a ledger event can trigger.

func InvalidAmount(message string) EngineError {
	return New(KindInvalidAmount, message)
}

func InsufficientFunds() EngineError {
	return New(KindInsufficientFunds, "withdrawal exceeds available balance")
}

func DuplicateTransactionID() EngineError {
	return New(KindDuplicateTransactionID, "transaction id already used for this client")
}

func UnknownTransaction() EngineError {
	return New(KindUnknownTransaction, "referenced transaction does not exist")
}

func AlreadyDisputed() EngineError {
	return New(KindAlreadyDisputed, "transaction is already under dispute")
}

func NotUnderDispute() EngineError {
	return New(KindNotUnderDispute, "transaction is not under dispute")
}

func NotDisputable() EngineError {
	return New(KindNotDisputable, "transaction has been charged back and cannot be disputed")
}

func AccountFrozen() EngineError {
	return New(KindAccountFrozen, "account is frozen")
}

func Overflow(message string) EngineError {
	return New(KindOverflow, message)
}

func Decode(message string) EngineError {
	return New(KindDecode, message)
}
