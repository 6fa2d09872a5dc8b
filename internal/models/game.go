package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// GameHistory is one settled round as shown to the player. GameData
// carries the per-game detail (reels, cards, winning number) as raw JSON.
type GameHistory struct {
	ID        string          `json:"id" db:"id"`
	AccountID string          `json:"account_id" db:"account_id"`
	RoundID   string          `json:"round_id" db:"round_id"`
	GameType  string          `json:"game_type" db:"game_type"`
	BetAmount decimal.Decimal `json:"bet_amount" db:"bet_amount"`
	WinAmount decimal.Decimal `json:"win_amount" db:"win_amount"`
	Result    string          `json:"result" db:"result"`
	GameData  json.RawMessage `json:"game_data" db:"game_data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// GameStats aggregates a player's history for the stats endpoint.
type GameStats struct {
	TotalRounds int64           `json:"total_rounds"`
	TotalWins   int64           `json:"total_wins"`
	TotalLosses int64           `json:"total_losses"`
	TotalDraws  int64           `json:"total_draws"`
	TotalBet    decimal.Decimal `json:"total_bet"`
	TotalWon    decimal.Decimal `json:"total_won"`
	NetResult   decimal.Decimal `json:"net_result"`
}
