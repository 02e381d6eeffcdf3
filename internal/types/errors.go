// Package types holds the stable error kinds exposed at the engine boundary.
package types

import "errors"

// ErrorCode is a stable, machine-readable error kind.
type ErrorCode string

// Error codes surfaced to callers.
const (
	CodeInvalidBet          ErrorCode = "INVALID_BET"
	CodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
	CodeUnknownGame         ErrorCode = "UNKNOWN_GAME"
	CodeInsufficientFunds   ErrorCode = "INSUFFICIENT_FUNDS"
	CodeAccountNotFound     ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeCorruptAccountState ErrorCode = "CORRUPT_ACCOUNT_STATE"
	CodeInvalidCode         ErrorCode = "INVALID_CODE"
	CodeAlreadyRedeemed     ErrorCode = "ALREADY_REDEEMED"
	CodeFailedStorage       ErrorCode = "FAILED_STORAGE"
	CodeStorageUnavailable  ErrorCode = "STORAGE_UNAVAILABLE"
	CodeBadRequest          ErrorCode = "BAD_REQUEST"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeInternal            ErrorCode = "INTERNAL"
)

// Error is a boundary error carrying a code and a message category
// suitable for showing to a player.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a boundary error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the player-facing message for err. Errors without a
// code collapse to a generic message so storage details never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// IsRejection reports whether err is an expected, caller-recoverable condition.
func IsRejection(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidBet, CodeInvalidAmount, CodeUnknownGame, CodeInsufficientFunds,
		CodeAccountNotFound, CodeInvalidCode, CodeAlreadyRedeemed:
		return true
	}
	return false
}
