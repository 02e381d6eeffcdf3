// Package wheel implements the eight-segment prize wheel.
package wheel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"casino-engine/internal/game"
	"casino-engine/internal/model"
)

// Segments is the multiplier printed on each wheel segment, by index.
var Segments = [8]decimal.Decimal{
	decimal.Zero,
	game.MustMultiplier("1.5"),
	decimal.Zero,
	game.MustMultiplier("3"),
	decimal.Zero,
	game.MustMultiplier("0.5"),
	decimal.Zero,
	game.MustMultiplier("10"),
}

// Segment indices with a special role.
const (
	SegmentJackpot = 7
	SegmentTriple  = 3
	SegmentSmall   = 1
)

// winWeights is the cumulative distribution over winning segments:
// jackpot 10%, x3 30%, x1.5 60%.
var winWeights = []struct {
	segment int
	upTo    float64
}{
	{SegmentJackpot, 0.10},
	{SegmentTriple, 0.40},
	{SegmentSmall, 1.00},
}

// losingSegments pay nothing.
var losingSegments = []int{0, 2, 4, 6}

// Display is the JSON shape of a wheel outcome's display payload.
type Display struct {
	Segment int `json:"segment"`
}

// Game implements game.Game for the wheel.
type Game struct{}

// New creates the wheel game.
func New() *Game {
	return &Game{}
}

// Type returns WHEEL.
func (g *Game) Type() model.GameType {
	return model.GameWheel
}

// Paytable lists every segment with its multiplier.
func (g *Game) Paytable() []game.PayLine {
	lines := make([]game.PayLine, len(Segments))
	for i, m := range Segments {
		lines[i] = game.PayLine{Category: Category(i), Multiplier: m}
	}
	return lines
}

// ValidateOptions accepts any options; the wheel takes no player choice.
func (g *Game) ValidateOptions(game.Options) error {
	return nil
}

// Resolve stops the wheel on a segment consistent with won.
func (g *Game) Resolve(rng game.Source, won bool, bet int64, _ game.Options) (*game.Outcome, error) {
	if !won {
		seg := losingSegments[rng.IntN(len(losingSegments))]
		return &game.Outcome{
			Won:        false,
			Payout:     0,
			Multiplier: Segments[seg],
			Category:   Category(seg),
			Display:    Display{Segment: seg},
		}, nil
	}

	r := rng.Float64()
	seg := SegmentSmall
	for _, w := range winWeights {
		if r < w.upTo {
			seg = w.segment
			break
		}
	}
	return &game.Outcome{
		Won:        true,
		Payout:     game.Payout(bet, Segments[seg]),
		Multiplier: Segments[seg],
		Category:   Category(seg),
		Display:    Display{Segment: seg},
	}, nil
}

// Category returns the outcome tag for a segment index.
func Category(segment int) string {
	return fmt.Sprintf("segment-%d", segment)
}
