package game

import "casino-engine/internal/types"

// Outcome engine errors.
var (
	ErrInvalidBet  = types.New(types.CodeInvalidBet, "bet must be a positive amount")
	ErrBetTooHigh  = types.New(types.CodeInvalidBet, "bet exceeds the maximum allowed")
	ErrInvalidPick = types.New(types.CodeInvalidBet, "invalid game selection")
	ErrUnknownGame = types.New(types.CodeUnknownGame, "unknown game type")
	ErrCorruptLuck = types.New(types.CodeCorruptAccountState, "account luck is out of range")
)
