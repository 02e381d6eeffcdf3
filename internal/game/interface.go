// Package game defines the outcome engine, the payout table registry and the
// interface every mini-game implements.
package game

import (
	"github.com/shopspring/decimal"

	"casino-engine/internal/model"
)

// Outcome is the settled result of one wager. It is computed once and never
// mutated. A losing outcome always carries a zero payout.
type Outcome struct {
	Won        bool            `json:"won"`
	Payout     int64           `json:"payout"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Category   string          `json:"category"`
	Display    any             `json:"display"`
}

// PayLine is one row of a game's payout table.
type PayLine struct {
	Category   string          `json:"category"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Options carries game-specific wager parameters.
type Options struct {
	// Pick is the cup chosen by the player in CUPS.
	Pick int
}

// Game defines the interface that all games must implement.
// Adding a game only requires implementing it and registering the value.
type Game interface {
	// Type returns the identifier wagers use to select the game.
	Type() model.GameType

	// Paytable returns the static category to multiplier table.
	Paytable() []PayLine

	// ValidateOptions rejects malformed game-specific parameters.
	ValidateOptions(opts Options) error

	// Resolve picks a category and display consistent with won and prices it.
	// The win/loss decision itself is made by the Engine.
	Resolve(rng Source, won bool, bet int64, opts Options) (*Outcome, error)
}

// Payout returns bet × multiplier floored to the minor unit.
func Payout(bet int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(bet).Mul(multiplier).Floor().IntPart()
}

// MustMultiplier parses a table multiplier literal.
func MustMultiplier(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
