package game

import (
	"fmt"
	"math"
)

// Win law names accepted by ParseWinLaw.
const (
	LawDirect    = "direct"
	LawHouseEdge = "house_edge"
)

// WinLaw maps an account's luck to a win probability in [0, 1].
type WinLaw interface {
	Name() string
	Probability(luck int) float64
}

// DirectLaw reads luck as a win percentage: p = luck / 100.
type DirectLaw struct{}

func (DirectLaw) Name() string { return LawDirect }

func (DirectLaw) Probability(luck int) float64 {
	return float64(luck) / 100
}

// HouseEdgeLaw centres win probability on a 90% base and lets luck move it
// by at most five points either way.
type HouseEdgeLaw struct{}

func (HouseEdgeLaw) Name() string { return LawHouseEdge }

func (HouseEdgeLaw) Probability(luck int) float64 {
	p := 0.90 + float64(luck-50)/100*0.1
	return math.Max(0.85, math.Min(0.95, p))
}

// ParseWinLaw returns the law configured by name.
func ParseWinLaw(name string) (WinLaw, error) {
	switch name {
	case "", LawDirect:
		return DirectLaw{}, nil
	case LawHouseEdge:
		return HouseEdgeLaw{}, nil
	default:
		return nil, fmt.Errorf("unknown win law %q", name)
	}
}
