package games

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// GameType identifies one of the supported casino games.
type GameType string

const (
	Roulette  GameType = "roulette"
	Dice      GameType = "dice"
	Slots     GameType = "slots"
	Blackjack GameType = "blackjack"
	Poker     GameType = "poker"
)

// Result is the player-facing classification of a settled round.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// ErrInvalidBet marks bet-shape validation failures. These happen before
// any balance is touched and map to a 400 at the HTTP boundary.
var ErrInvalidBet = errors.New("invalid bet")

// Outcome is the resolved result of one round, independent of account
// state. WinAmount is the total amount credited back to the player,
// including the returned stake where the game returns it, so the net
// balance change is always WinAmount - totalWager.
type Outcome struct {
	GameType  GameType
	Won       bool
	Result    Result
	WinAmount decimal.Decimal
	GameData  map[string]any
}

// NewRand returns a rand.Rand seeded for a single round. Draw quality is
// sufficient for play-money outcomes; cryptographic fairness is out of
// scope.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ValidateWager rejects non-positive wager amounts.
func ValidateWager(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: bet amount must be greater than 0", ErrInvalidBet)
	}
	return nil
}
