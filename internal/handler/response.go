// Package handler provides the HTTP handlers for the engine's inbound
// boundary: wagers, promo redemption and account operations.
package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"casino-engine/internal/types"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool            `json:"success"`
	Code    types.ErrorCode `json:"code,omitempty"`
	Message string          `json:"message"`
	Data    any             `json:"data"`
}

var (
	errBadAccountID = types.New(types.CodeBadRequest, "account id must be a positive integer")
	errBadBody      = types.New(types.CodeBadRequest, "request body is not valid JSON")
)

// JSONSuccess writes a 200 envelope carrying data.
func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// JSONError writes the envelope for err with the status its code maps to.
// Storage details never reach the body.
func JSONError(c *fiber.Ctx, err error) error {
	code := types.CodeOf(err)
	return c.Status(StatusOf(code)).JSON(Response{
		Success: false,
		Code:    code,
		Message: types.MessageOf(err),
	})
}

// StatusOf maps an error code to an HTTP status.
func StatusOf(code types.ErrorCode) int {
	switch code {
	case types.CodeInvalidBet, types.CodeInvalidAmount, types.CodeUnknownGame,
		types.CodeInvalidCode, types.CodeBadRequest:
		return fiber.StatusBadRequest
	case types.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case types.CodeInsufficientFunds:
		return fiber.StatusPaymentRequired
	case types.CodeAccountNotFound:
		return fiber.StatusNotFound
	case types.CodeAlreadyRedeemed:
		return fiber.StatusConflict
	case types.CodeStorageUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// accountID parses the :id route parameter.
func accountID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadAccountID
	}
	return id, nil
}
