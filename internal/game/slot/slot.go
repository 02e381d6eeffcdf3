// Package slot implements the three-reel slot machine.
package slot

import (
	"github.com/shopspring/decimal"

	"casino-engine/internal/game"
	"casino-engine/internal/model"
)

// Reel symbols.
const (
	SymbolGrape  = "🍇"
	SymbolLemon  = "🍋"
	SymbolCherry = "🍒"
	SymbolBell   = "🔔"
	SymbolGem    = "💎"
	SymbolSeven  = "7️⃣"
)

// Symbols is the reel strip; every reel draws uniformly from it.
var Symbols = []string{SymbolGrape, SymbolLemon, SymbolCherry, SymbolBell, SymbolGem, SymbolSeven}

// Outcome categories.
const (
	CategoryTripleSeven = "triple-seven"
	CategoryTripleGem   = "triple-gem"
	CategoryTripleBell  = "triple-bell"
	CategoryTripleOther = "triple-other"
	CategoryDoubleMatch = "double-match"
	CategoryConsolation = "win-no-match"
	CategoryLoss        = "loss"
)

var multipliers = map[string]decimal.Decimal{
	CategoryTripleSeven: game.MustMultiplier("10"),
	CategoryTripleGem:   game.MustMultiplier("5"),
	CategoryTripleBell:  game.MustMultiplier("4"),
	CategoryTripleOther: game.MustMultiplier("3"),
	CategoryDoubleMatch: game.MustMultiplier("2"),
	CategoryConsolation: game.MustMultiplier("1.2"),
	CategoryLoss:        decimal.Zero,
}

var tableOrder = []string{
	CategoryTripleSeven, CategoryTripleGem, CategoryTripleBell, CategoryTripleOther,
	CategoryDoubleMatch, CategoryConsolation, CategoryLoss,
}

// Reels is the display payload: the three symbols shown left to right.
type Reels [3]string

// Display is the JSON shape of a slot outcome's display payload.
type Display struct {
	Reels Reels `json:"reels"`
}

// Game implements game.Game for slots.
type Game struct{}

// New creates the slot game.
func New() *Game {
	return &Game{}
}

// Type returns SLOTS.
func (g *Game) Type() model.GameType {
	return model.GameSlots
}

// Paytable returns the slot payout table.
func (g *Game) Paytable() []game.PayLine {
	lines := make([]game.PayLine, 0, len(tableOrder))
	for _, c := range tableOrder {
		lines = append(lines, game.PayLine{Category: c, Multiplier: multipliers[c]})
	}
	return lines
}

// ValidateOptions accepts any options; slots take no player choice.
func (g *Game) ValidateOptions(game.Options) error {
	return nil
}

// Resolve spins the reels. A win draws the reels uniformly and prices them by
// the table; a loss that lands on a triple has its last reel moved to a
// different symbol.
func (g *Game) Resolve(rng game.Source, won bool, bet int64, _ game.Options) (*game.Outcome, error) {
	if !won {
		reels := Spin(rng)
		if IsTriple(reels) {
			reels[2] = otherSymbol(rng, reels[2])
		}
		return &game.Outcome{
			Won:        false,
			Payout:     0,
			Multiplier: decimal.Zero,
			Category:   CategoryLoss,
			Display:    Display{Reels: reels},
		}, nil
	}

	reels := Spin(rng)
	category := Classify(reels)
	multiplier := multipliers[category]
	return &game.Outcome{
		Won:        true,
		Payout:     game.Payout(bet, multiplier),
		Multiplier: multiplier,
		Category:   category,
		Display:    Display{Reels: reels},
	}, nil
}

// Spin draws three symbols.
func Spin(rng game.Source) Reels {
	var r Reels
	for i := range r {
		r[i] = Symbols[rng.IntN(len(Symbols))]
	}
	return r
}

// otherSymbol draws uniformly from the symbols other than s.
func otherSymbol(rng game.Source, s string) string {
	idx := 0
	for i, sym := range Symbols {
		if sym == s {
			idx = i
			break
		}
	}
	return Symbols[(idx+1+rng.IntN(len(Symbols)-1))%len(Symbols)]
}

// IsTriple reports whether all three reels show the same symbol.
func IsTriple(r Reels) bool {
	return r[0] == r[1] && r[1] == r[2]
}

// Classify returns the winning category the reels display.
func Classify(r Reels) string {
	if IsTriple(r) {
		switch r[0] {
		case SymbolSeven:
			return CategoryTripleSeven
		case SymbolGem:
			return CategoryTripleGem
		case SymbolBell:
			return CategoryTripleBell
		default:
			return CategoryTripleOther
		}
	}
	if r[0] == r[1] || r[1] == r[2] || r[0] == r[2] {
		return CategoryDoubleMatch
	}
	return CategoryConsolation
}
