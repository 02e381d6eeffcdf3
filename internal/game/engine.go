package game

import (
	"fmt"

	"casino-engine/internal/model"
)

// Engine determines wager outcomes. It holds no per-wager state and is safe
// for concurrent use as long as its Source is.
type Engine struct {
	registry *Registry
	law      WinLaw
	rng      Source
	maxBet   int64
}

// NewEngine creates an outcome engine. A nil law defaults to DirectLaw and a
// nil source to DefaultSource. maxBet of 0 disables the bet cap.
func NewEngine(registry *Registry, law WinLaw, rng Source, maxBet int64) *Engine {
	if law == nil {
		law = DirectLaw{}
	}
	if rng == nil {
		rng = DefaultSource()
	}
	return &Engine{
		registry: registry,
		law:      law,
		rng:      rng,
		maxBet:   maxBet,
	}
}

// Law returns the active win probability law.
func (e *Engine) Law() WinLaw {
	return e.law
}

// Registry returns the payout table registry backing the engine.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Validate checks a wager before any money moves.
func (e *Engine) Validate(gameType model.GameType, bet int64, opts Options) (Game, error) {
	if bet <= 0 {
		return nil, ErrInvalidBet
	}
	if e.maxBet > 0 && bet > e.maxBet {
		return nil, fmt.Errorf("%w: max bet is %d", ErrBetTooHigh, e.maxBet)
	}
	g, ok := e.registry.Get(gameType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, gameType)
	}
	if err := g.ValidateOptions(opts); err != nil {
		return nil, err
	}
	return g, nil
}

// Determine draws won = r < p(luck) and lets the game pick a consistent
// category, display and payout.
func (e *Engine) Determine(gameType model.GameType, bet int64, luck int, opts Options) (*Outcome, error) {
	g, err := e.Validate(gameType, bet, opts)
	if err != nil {
		return nil, err
	}
	if luck < model.MinLuck || luck > model.MaxLuck {
		return nil, fmt.Errorf("%w: %d", ErrCorruptLuck, luck)
	}

	won := e.rng.Float64() < e.law.Probability(luck)

	outcome, err := g.Resolve(e.rng, won, bet, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s outcome: %w", gameType, err)
	}
	if !outcome.Won {
		outcome.Payout = 0
	}
	return outcome, nil
}
