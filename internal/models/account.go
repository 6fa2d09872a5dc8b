package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a player's play-money wallet. Version backs the optimistic
// balance update; every write bumps it.
type Account struct {
	ID        string          `json:"id" db:"id"`
	OwnerID   string          `json:"owner_id" db:"owner_id"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Version   int             `json:"version" db:"version"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Movement kinds.
const (
	MovementBet = "BET"
	MovementWin = "WIN"
)

// Movement is one immutable balance change. Amount is signed: negative
// for BET debits, positive for WIN credits. BalanceBefore/After snapshot
// the account around the change so the ledger can be audited without
// replaying it.
type Movement struct {
	ID            string          `json:"id" db:"id"`
	AccountID     string          `json:"account_id" db:"account_id"`
	RoundID       string          `json:"round_id" db:"round_id"`
	Kind          string          `json:"kind" db:"kind"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before" db:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after" db:"balance_after"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
