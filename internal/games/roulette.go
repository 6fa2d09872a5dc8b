package games

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// European single-zero layout.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Named outside bets and their payout-to-one.
var namedRoulettePayouts = map[string]int64{
	"red": 1, "black": 1,
	"even": 1, "odd": 1,
	"low": 1, "high": 1,
	"1st12": 2, "2nd12": 2, "3rd12": 2,
	"col1": 2, "col2": 2, "col3": 2,
}

// RouletteBet is one chip placement (a leg) within a round.
type RouletteBet struct {
	BetKey string          `json:"betKey" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// SpinWheel draws the winning pocket, 0 through 36.
func SpinWheel(rng *rand.Rand) int {
	return rng.Intn(37)
}

// ValidateRouletteBets rejects empty rounds, non-positive leg amounts and
// malformed bet keys before any balance is touched.
func ValidateRouletteBets(bets []RouletteBet) error {
	if len(bets) == 0 {
		return fmt.Errorf("%w: at least one bet is required", ErrInvalidBet)
	}
	for _, bet := range bets {
		if !bet.Amount.IsPositive() {
			return fmt.Errorf("%w: all bet amounts must be greater than 0", ErrInvalidBet)
		}
		if err := validateRouletteKey(bet.BetKey); err != nil {
			return err
		}
	}
	return nil
}

func validateRouletteKey(betKey string) error {
	if n, err := strconv.Atoi(betKey); err == nil {
		if n < 0 || n > 36 {
			return fmt.Errorf("%w: number out of range: %d", ErrInvalidBet, n)
		}
		return nil
	}
	if _, ok := namedRoulettePayouts[betKey]; ok {
		return nil
	}
	if nums, ok := parseCombination(betKey); ok {
		for _, n := range nums {
			if n < 0 || n > 36 {
				return fmt.Errorf("%w: number out of range in combination: %d", ErrInvalidBet, n)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown bet type: %s", ErrInvalidBet, betKey)
}

// parseCombination parses hyphen-joined number lists ("8-9", "1-2-3",
// "1-2-4-5") used for split, street, corner and line bets.
func parseCombination(betKey string) ([]int, bool) {
	if !strings.Contains(betKey, "-") {
		return nil, false
	}
	parts := strings.Split(betKey, "-")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}

// rouletteLegPayout returns the payout-to-one for a leg. Combination bets
// covering N numbers pay floor(36/N)-1, the standard European schedule.
func rouletteLegPayout(betKey string) int64 {
	if _, err := strconv.Atoi(betKey); err == nil {
		return 35
	}
	if nums, ok := parseCombination(betKey); ok && len(nums) > 0 {
		return int64(36/len(nums)) - 1
	}
	return namedRoulettePayouts[betKey]
}

func rouletteLegWins(winningNumber int, betKey string) bool {
	if n, err := strconv.Atoi(betKey); err == nil {
		return winningNumber == n
	}
	if nums, ok := parseCombination(betKey); ok {
		for _, n := range nums {
			if n == winningNumber {
				return true
			}
		}
		return false
	}

	switch betKey {
	case "red":
		return redNumbers[winningNumber]
	case "black":
		return winningNumber != 0 && !redNumbers[winningNumber]
	case "even":
		return winningNumber != 0 && winningNumber%2 == 0
	case "odd":
		return winningNumber%2 == 1
	case "low":
		return winningNumber >= 1 && winningNumber <= 18
	case "high":
		return winningNumber >= 19 && winningNumber <= 36
	case "1st12":
		return winningNumber >= 1 && winningNumber <= 12
	case "2nd12":
		return winningNumber >= 13 && winningNumber <= 24
	case "3rd12":
		return winningNumber >= 25 && winningNumber <= 36
	case "col1":
		return winningNumber != 0 && winningNumber%3 == 1
	case "col2":
		return winningNumber != 0 && winningNumber%3 == 2
	case "col3":
		return winningNumber != 0 && winningNumber%3 == 0
	}
	return false
}

// TotalRouletteWager sums all leg amounts of a round.
func TotalRouletteWager(bets []RouletteBet) decimal.Decimal {
	total := decimal.Zero
	for _, bet := range bets {
		total = total.Add(bet.Amount)
	}
	return total
}

// ResolveRoulette settles every leg against the winning pocket. A winning
// leg credits amount*(payout+1), so the round's WinAmount already includes
// the returned stakes of winning legs.
func ResolveRoulette(winningNumber int, bets []RouletteBet) Outcome {
	totalWinnings := decimal.Zero
	winningBets := make([]map[string]any, 0)

	for _, bet := range bets {
		if !rouletteLegWins(winningNumber, bet.BetKey) {
			continue
		}
		payout := rouletteLegPayout(bet.BetKey)
		winAmount := bet.Amount.Mul(decimal.NewFromInt(payout + 1))
		totalWinnings = totalWinnings.Add(winAmount)
		winningBets = append(winningBets, map[string]any{
			"betKey":    bet.BetKey,
			"amount":    bet.Amount,
			"payout":    payout,
			"winAmount": winAmount,
		})
	}

	won := totalWinnings.IsPositive()
	result := ResultLoss
	if won {
		result = ResultWin
	}

	return Outcome{
		GameType:  Roulette,
		Won:       won,
		Result:    result,
		WinAmount: totalWinnings,
		GameData: map[string]any{
			"winningNumber": winningNumber,
			"isRed":         redNumbers[winningNumber],
			"isBlack":       winningNumber != 0 && !redNumbers[winningNumber],
			"winningBets":   winningBets,
		},
	}
}
