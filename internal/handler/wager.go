package handler

import (
	"encoding/json"
	"math"

	"github.com/gofiber/fiber/v2"

	"casino-engine/internal/game"
	"casino-engine/internal/model"
	"casino-engine/internal/service"
)

// WagerHandler handles wager placement and game catalog requests.
type WagerHandler struct {
	coordinator *service.Coordinator
}

// NewWagerHandler creates a new WagerHandler.
func NewWagerHandler(coordinator *service.Coordinator) *WagerHandler {
	return &WagerHandler{coordinator: coordinator}
}

// WagerRequest is the body of POST /accounts/:id/wagers.
type WagerRequest struct {
	Game string      `json:"game"`
	Bet  json.Number `json:"bet"`
	Pick int         `json:"pick"`
}

// GameInfo describes one playable game.
type GameInfo struct {
	Type     model.GameType `json:"type"`
	Paytable []game.PayLine `json:"paytable"`
}

// HandlePlace settles a wager.
func (h *WagerHandler) HandlePlace(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	var req WagerRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, errBadBody)
	}

	bet, err := parseBet(req.Bet)
	if err != nil {
		return JSONError(c, err)
	}

	result, err := h.coordinator.PlaceWager(c.UserContext(), service.WagerRequest{
		AccountID: id,
		Game:      model.ParseGameType(req.Game),
		Bet:       bet,
		Pick:      req.Pick,
	})
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "Wager settled", result)
}

// HandleGames lists the registered games with their payout tables and the
// active win law.
func (h *WagerHandler) HandleGames(c *fiber.Ctx) error {
	engine := h.coordinator.Engine()
	reg := engine.Registry()

	tables := reg.Paytables()
	games := make([]GameInfo, 0, reg.Count())
	for _, t := range reg.Types() {
		games = append(games, GameInfo{Type: t, Paytable: tables[t]})
	}

	return JSONSuccess(c, "Games retrieved successfully", fiber.Map{
		"win_law": engine.Law().Name(),
		"games":   games,
	})
}

// parseBet accepts whole amounts only; 10.0 is read as 10, 10.5 is an
// invalid bet rather than a malformed body.
func parseBet(n json.Number) (int64, error) {
	if bet, err := n.Int64(); err == nil {
		return bet, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, game.ErrInvalidBet
	}
	return int64(f), nil
}
