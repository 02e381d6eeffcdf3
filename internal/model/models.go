// Package model defines the data models for the wagering and ledger engine.
package model

import (
	"strings"
	"time"
)

// Account luck bounds and defaults.
const (
	MinLuck     = 0
	MaxLuck     = 100
	DefaultLuck = 50
)

// Account represents a player account holding a balance in minor units
// and the luck value that drives win probability.
type Account struct {
	ID         int64     `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	Balance    int64     `db:"balance" json:"balance"`
	Luck       int       `db:"luck" json:"luck"`
	ReferredBy *int64    `db:"referred_by" json:"referred_by,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// LuckValid reports whether the stored luck value is inside [0, 100].
func (a *Account) LuckValid() bool {
	return a.Luck >= MinLuck && a.Luck <= MaxLuck
}

// TxKind categorizes a balance-affecting event.
type TxKind string

// Transaction kinds recorded in the log.
const (
	TxKindDeposit      TxKind = "deposit"
	TxKindWithdraw     TxKind = "withdraw"
	TxKindGameWin      TxKind = "game_win"
	TxKindGameLoss     TxKind = "game_loss"
	TxKindPromo        TxKind = "promo"
	TxKindWelcomeBonus TxKind = "welcome_bonus"
)

// Valid reports whether k is one of the known kinds.
func (k TxKind) Valid() bool {
	switch k {
	case TxKindDeposit, TxKindWithdraw, TxKindGameWin, TxKindGameLoss, TxKindPromo, TxKindWelcomeBonus:
		return true
	}
	return false
}

// GameKind returns game_win for a non-negative net result and game_loss otherwise.
func GameKind(net int64) TxKind {
	if net >= 0 {
		return TxKindGameWin
	}
	return TxKindGameLoss
}

// Transaction is an immutable ledger entry. Amount is the signed delta
// applied to the balance by the event.
type Transaction struct {
	ID          string    `db:"id" json:"id"`
	AccountID   int64     `db:"account_id" json:"account_id"`
	Kind        TxKind    `db:"kind" json:"kind"`
	Amount      int64     `db:"amount" json:"amount"`
	Reference   *string   `db:"reference" json:"reference,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// GameType identifies a mini-game.
type GameType string

// Known game types.
const (
	GameSlots GameType = "SLOTS"
	GameWheel GameType = "WHEEL"
	GameCups  GameType = "CUPS"
)

// ParseGameType normalizes a client supplied identifier.
func ParseGameType(s string) GameType {
	return GameType(strings.ToUpper(strings.TrimSpace(s)))
}

// UnlimitedUses marks a promo code without a use cap.
const UnlimitedUses = -1

// PromoCode is a redeemable bonus code. Codes are stored upper-case.
type PromoCode struct {
	Code     string `db:"code" json:"code"`
	Reward   int64  `db:"reward_amount" json:"reward"`
	UsesLeft int    `db:"uses_left" json:"uses_left"`
	Active   bool   `db:"is_active" json:"active"`
}

// Redeemable reports whether the code can still be claimed by someone.
func (p *PromoCode) Redeemable() bool {
	return p.Active && (p.UsesLeft == UnlimitedUses || p.UsesLeft > 0)
}

// NormalizeCode makes promo code lookups case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RecoveryStatus tracks whether an owed settlement has been replayed.
type RecoveryStatus string

// Recovery entry states.
const (
	RecoveryPending  RecoveryStatus = "pending"
	RecoveryResolved RecoveryStatus = "resolved"
)

// RecoveryEntry records a balance-affecting operation that could not be
// completed after money already moved: a wager whose payout credit or log
// record failed after the debit, or a credit whose log record failed.
// Credited and Logged tell the replayer which steps still have to be applied.
type RecoveryEntry struct {
	ID        string         `db:"id" json:"id"`
	Reference string         `db:"reference" json:"reference,omitempty"`
	AccountID int64          `db:"account_id" json:"account_id"`
	Kind      TxKind         `db:"kind" json:"kind"`
	Game      GameType       `db:"game" json:"game"`
	Bet       int64          `db:"bet" json:"bet"`
	Payout    int64          `db:"payout" json:"payout"`
	Credited  bool           `db:"credited" json:"credited"`
	Logged    bool           `db:"logged" json:"logged"`
	Reason    string         `db:"reason" json:"reason"`
	Status    RecoveryStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Net returns the signed balance effect of the operation.
func (r *RecoveryEntry) Net() int64 {
	return r.Payout - r.Bet
}
