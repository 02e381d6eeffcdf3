package handler

import (
	"github.com/gofiber/fiber/v2"

	"casino-engine/internal/service"
)

// AccountHandler handles account lifecycle and balance movement requests.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// EnsureRequest is the body of POST /accounts/:id.
type EnsureRequest struct {
	Username   string `json:"username"`
	ReferredBy *int64 `json:"referred_by"`
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type luckRequest struct {
	Luck *int `json:"luck"`
}

// HandleEnsure creates the account if it does not exist yet.
func (h *AccountHandler) HandleEnsure(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	var req EnsureRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return JSONError(c, errBadBody)
		}
	}

	acc, created, err := h.accountService.Ensure(c.UserContext(), id, req.Username, req.ReferredBy)
	if err != nil {
		return JSONError(c, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Message: "Account created", Data: acc})
	}
	return JSONSuccess(c, "Account exists", acc)
}

// HandleGet returns the account's balance and luck.
func (h *AccountHandler) HandleGet(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	acc, err := h.accountService.Get(c.UserContext(), id)
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "Account retrieved successfully", acc)
}

// HandleHistory returns the most recent transaction records.
func (h *AccountHandler) HandleHistory(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	txs, err := h.accountService.History(c.UserContext(), id, c.QueryInt("limit", service.DefaultHistoryLimit))
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "History retrieved successfully", txs)
}

// HandleDeposit credits the account.
func (h *AccountHandler) HandleDeposit(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, errBadBody)
	}

	m, err := h.accountService.Deposit(c.UserContext(), id, req.Amount)
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "Deposit completed", m)
}

// HandleWithdraw debits the account.
func (h *AccountHandler) HandleWithdraw(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return JSONError(c, errBadBody)
	}

	m, err := h.accountService.Withdraw(c.UserContext(), id, req.Amount)
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "Withdrawal completed", m)
}

// HandleSetLuck sets the account's luck. Admin only.
func (h *AccountHandler) HandleSetLuck(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	var req luckRequest
	if err := c.BodyParser(&req); err != nil || req.Luck == nil {
		return JSONError(c, errBadBody)
	}

	acc, err := h.accountService.SetLuck(c.UserContext(), id, *req.Luck)
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "Luck updated", acc)
}

// HandleAudit compares the balance with the transaction log. Admin only.
func (h *AccountHandler) HandleAudit(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return JSONError(c, err)
	}

	a, err := h.accountService.Audit(c.UserContext(), id)
	if err != nil {
		return JSONError(c, err)
	}
	return JSONSuccess(c, "Audit completed", a)
}
