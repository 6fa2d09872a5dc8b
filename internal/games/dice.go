package games

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
)

// Craps-style single-roll bet types.
const (
	DicePass     = "pass"
	DiceDontPass = "dont-pass"
	DiceField    = "field"
	DiceAnyCraps = "any-craps"
	DiceAnySeven = "any-seven"
)

var diceBetTypes = map[string]bool{
	DicePass:     true,
	DiceDontPass: true,
	DiceField:    true,
	DiceAnyCraps: true,
	DiceAnySeven: true,
}

// Win probabilities for rounds that establish a point. The original table
// resolves the point in the same roll rather than waiting for a second
// throw.
const (
	passPointWinProb     = 0.52
	dontPassPointWinProb = 0.48
)

// ValidateDiceBet rejects unknown bet types and non-positive wagers.
func ValidateDiceBet(betType string, amount decimal.Decimal) error {
	if err := ValidateWager(amount); err != nil {
		return err
	}
	if !diceBetTypes[betType] {
		return fmt.Errorf("%w: unknown dice bet type: %s", ErrInvalidBet, betType)
	}
	return nil
}

// RollDice throws two six-sided dice.
func RollDice(rng *rand.Rand) (int, int) {
	return rng.Intn(6) + 1, rng.Intn(6) + 1
}

// ResolveDice settles one craps-style roll. Winning bets credit
// wager*(payout+1); a don't-pass push on 12 credits the stake back. rng is
// consulted only when the roll establishes a point.
func ResolveDice(rng *rand.Rand, betType string, wager decimal.Decimal, die1, die2 int) Outcome {
	total := die1 + die2

	var (
		won     bool
		push    bool
		payout  int64
		winType string
	)

	switch betType {
	case DicePass:
		switch {
		case total == 7 || total == 11:
			won, payout, winType = true, 1, "natural"
		case total == 2 || total == 3 || total == 12:
			winType = "craps"
		default:
			winType = "point_established"
			won, payout = rng.Float64() < passPointWinProb, 1
		}
	case DiceDontPass:
		switch {
		case total == 7 || total == 11:
			winType = "seven_out"
		case total == 2 || total == 3:
			won, payout, winType = true, 1, "craps"
		case total == 12:
			push, winType = true, "push"
		default:
			winType = "point_established"
			won, payout = rng.Float64() < dontPassPointWinProb, 1
		}
	case DiceField:
		switch total {
		case 2, 12:
			won, payout, winType = true, 2, "field_double"
		case 3, 4, 9, 10, 11:
			won, payout, winType = true, 1, "field"
		default:
			winType = "no_field"
		}
	case DiceAnyCraps:
		if total == 2 || total == 3 || total == 12 {
			won, payout, winType = true, 7, "craps"
		} else {
			winType = "no_craps"
		}
	case DiceAnySeven:
		if total == 7 {
			won, payout, winType = true, 4, "seven"
		} else {
			winType = "no_seven"
		}
	}

	winAmount := decimal.Zero
	result := ResultLoss
	switch {
	case won:
		winAmount = wager.Mul(decimal.NewFromInt(payout + 1))
		result = ResultWin
	case push:
		winAmount = wager
		result = ResultDraw
	}

	return Outcome{
		GameType:  Dice,
		Won:       won,
		Result:    result,
		WinAmount: winAmount,
		GameData: map[string]any{
			"dice1":   die1,
			"dice2":   die2,
			"total":   total,
			"betType": betType,
			"winType": winType,
			"payout":  payout,
		},
	}
}
