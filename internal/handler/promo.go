package handler

import (
	"github.com/gofiber/fiber/v2"

	"casino-engine/internal/service"
)

// PromoHandler handles promo code redemption.
type PromoHandler struct {
	promoService *service.PromoService
}

// NewPromoHandler creates a new PromoHandler.
func NewPromoHandler(promoService *service.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

type redeemRequest struct {
	Code string `json:"code"`
}

// HandleRedeem redeems a promo code for the account.
func (h *PromoHandler) HandleRedeem(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	var req redeemRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, errBadBody)
	}

	r, err := h.promoService.Redeem(c.UserContext(), id, req.Code)
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "Promo code redeemed", r)
}
