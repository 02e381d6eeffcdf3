// Package cups implements the three-cup shell game.
package cups

import (
	"github.com/shopspring/decimal"

	"casino-engine/internal/game"
	"casino-engine/internal/model"
)

// Count is the number of cups on the table.
const Count = 3

// Outcome categories.
const (
	CategoryCorrect   = "correct-guess"
	CategoryIncorrect = "incorrect-guess"
)

var winMultiplier = game.MustMultiplier("2")

// Display is the JSON shape of a cups outcome's display payload.
type Display struct {
	Pick int `json:"pick"`
	Ball int `json:"ball"`
}

// Game implements game.Game for the shell game.
type Game struct{}

// New creates the cups game.
func New() *Game {
	return &Game{}
}

// Type returns CUPS.
func (g *Game) Type() model.GameType {
	return model.GameCups
}

// Paytable returns the cups payout table.
func (g *Game) Paytable() []game.PayLine {
	return []game.PayLine{
		{Category: CategoryCorrect, Multiplier: winMultiplier},
		{Category: CategoryIncorrect, Multiplier: decimal.Zero},
	}
}

// ValidateOptions requires the pick to name one of the cups.
func (g *Game) ValidateOptions(opts game.Options) error {
	if opts.Pick < 0 || opts.Pick >= Count {
		return game.ErrInvalidPick
	}
	return nil
}

// Resolve places the ball under the pick on a win and under one of the
// other cups on a loss.
func (g *Game) Resolve(rng game.Source, won bool, bet int64, opts game.Options) (*game.Outcome, error) {
	if err := g.ValidateOptions(opts); err != nil {
		return nil, err
	}

	if won {
		return &game.Outcome{
			Won:        true,
			Payout:     game.Payout(bet, winMultiplier),
			Multiplier: winMultiplier,
			Category:   CategoryCorrect,
			Display:    Display{Pick: opts.Pick, Ball: opts.Pick},
		}, nil
	}

	ball := (opts.Pick + 1 + rng.IntN(Count-1)) % Count
	return &game.Outcome{
		Won:        false,
		Payout:     0,
		Multiplier: decimal.Zero,
		Category:   CategoryIncorrect,
		Display:    Display{Pick: opts.Pick, Ball: ball},
	}, nil
}
