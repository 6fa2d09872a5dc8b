package games

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// Reel strip with weighted symbols; duplicates make the fruit symbols
// land more often than SEVEN.
var slotReelStrip = []string{
	"CHERRY", "CHERRY", "LEMON", "LEMON", "ORANGE", "ORANGE",
	"GRAPE", "STAR", "DIAMOND", "SEVEN",
}

// Three-of-a-kind multipliers; any symbol not listed is a common fruit.
var slotTriplePayouts = map[string]int64{
	"SEVEN":   100,
	"DIAMOND": 50,
	"STAR":    25,
	"GRAPE":   15,
}

const (
	slotFruitTriplePayout = 10
	slotDoublePayout      = 2
)

// SpinReels draws three independent reel positions.
func SpinReels(rng *rand.Rand) []string {
	return []string{
		slotReelStrip[rng.Intn(len(slotReelStrip))],
		slotReelStrip[rng.Intn(len(slotReelStrip))],
		slotReelStrip[rng.Intn(len(slotReelStrip))],
	}
}

// ResolveSlots settles a spin. The multiplier table is a total-return
// table: WinAmount = wager * multiplier, so a two-of-three pays the stake
// back doubled and a losing spin pays nothing.
func ResolveSlots(reels []string, wager decimal.Decimal) Outcome {
	var (
		multiplier int64
		won        bool
		winType    string
	)

	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		won = true
		winType = "triple"
		if m, ok := slotTriplePayouts[reels[0]]; ok {
			multiplier = m
			if reels[0] == "SEVEN" {
				winType = "jackpot"
			}
		} else {
			multiplier = slotFruitTriplePayout
		}
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		won = true
		winType = "double"
		multiplier = slotDoublePayout
	}

	winAmount := decimal.Zero
	result := ResultLoss
	if won {
		winAmount = wager.Mul(decimal.NewFromInt(multiplier))
		result = ResultWin
	}

	return Outcome{
		GameType:  Slots,
		Won:       won,
		Result:    result,
		WinAmount: winAmount,
		GameData: map[string]any{
			"symbols":    reels,
			"multiplier": multiplier,
			"winType":    winType,
		},
	}
}
