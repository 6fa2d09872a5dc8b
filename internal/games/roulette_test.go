package games

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateRouletteBets(t *testing.T) {
	t.Run("valid mix of bet keys", func(t *testing.T) {
		bets := []RouletteBet{
			{BetKey: "17", Amount: decimal.NewFromInt(10)},
			{BetKey: "red", Amount: decimal.NewFromInt(5)},
			{BetKey: "8-9", Amount: decimal.NewFromInt(2)},
			{BetKey: "1-2-3", Amount: decimal.NewFromInt(1)},
		}

		assert.NoError(t, ValidateRouletteBets(bets))
	})

	t.Run("empty round", func(t *testing.T) {
		err := ValidateRouletteBets(nil)
		assert.ErrorIs(t, err, ErrInvalidBet)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "red", Amount: decimal.Zero}}
		assert.ErrorIs(t, ValidateRouletteBets(bets), ErrInvalidBet)
	})

	t.Run("number out of range", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "37", Amount: decimal.NewFromInt(1)}}
		assert.ErrorIs(t, ValidateRouletteBets(bets), ErrInvalidBet)
	})

	t.Run("unknown named bet", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "lucky", Amount: decimal.NewFromInt(1)}}
		assert.ErrorIs(t, ValidateRouletteBets(bets), ErrInvalidBet)
	})

	t.Run("malformed combination", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "1-2-x", Amount: decimal.NewFromInt(1)}}
		assert.ErrorIs(t, ValidateRouletteBets(bets), ErrInvalidBet)
	})
}

func TestResolveRoulette_StraightUp(t *testing.T) {
	bets := []RouletteBet{{BetKey: "17", Amount: decimal.NewFromInt(10)}}

	t.Run("hit pays 35 to 1 plus stake", func(t *testing.T) {
		outcome := ResolveRoulette(17, bets)

		assert.True(t, outcome.Won)
		assert.Equal(t, ResultWin, outcome.Result)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(360)),
			"expected 360, got %s", outcome.WinAmount)

		net := outcome.WinAmount.Sub(TotalRouletteWager(bets))
		assert.True(t, net.Equal(decimal.NewFromInt(350)))
	})

	t.Run("miss loses the stake", func(t *testing.T) {
		outcome := ResolveRoulette(18, bets)

		assert.False(t, outcome.Won)
		assert.Equal(t, ResultLoss, outcome.Result)
		assert.True(t, outcome.WinAmount.IsZero())
	})
}

func TestResolveRoulette_OutsideBets(t *testing.T) {
	t.Run("even money red", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "red", Amount: decimal.NewFromInt(10)}}
		outcome := ResolveRoulette(32, bets)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("dozen pays 2 to 1", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "2nd12", Amount: decimal.NewFromInt(10)}}
		outcome := ResolveRoulette(13, bets)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(30)))
	})

	t.Run("column membership", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "col2", Amount: decimal.NewFromInt(10)}}

		assert.True(t, ResolveRoulette(5, bets).Won)
		assert.False(t, ResolveRoulette(6, bets).Won)
	})

	t.Run("zero loses every outside bet", func(t *testing.T) {
		for _, key := range []string{"red", "black", "even", "odd", "low", "high", "1st12", "col1"} {
			bets := []RouletteBet{{BetKey: key, Amount: decimal.NewFromInt(10)}}
			outcome := ResolveRoulette(0, bets)
			assert.False(t, outcome.Won, "bet %s should lose on zero", key)
		}
	})

	t.Run("straight zero still pays", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "0", Amount: decimal.NewFromInt(1)}}
		outcome := ResolveRoulette(0, bets)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(36)))
	})
}

func TestResolveRoulette_Combinations(t *testing.T) {
	t.Run("split pays 17 to 1", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "8-9", Amount: decimal.NewFromInt(2)}}
		outcome := ResolveRoulette(9, bets)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(36)))
	})

	t.Run("street pays 11 to 1", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "1-2-3", Amount: decimal.NewFromInt(3)}}
		outcome := ResolveRoulette(2, bets)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(36)))
	})

	t.Run("corner pays 8 to 1", func(t *testing.T) {
		bets := []RouletteBet{{BetKey: "1-2-4-5", Amount: decimal.NewFromInt(4)}}
		outcome := ResolveRoulette(5, bets)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(36)))
	})
}

func TestResolveRoulette_MultipleLegs(t *testing.T) {
	bets := []RouletteBet{
		{BetKey: "17", Amount: decimal.NewFromInt(1)},
		{BetKey: "odd", Amount: decimal.NewFromInt(10)},
		{BetKey: "black", Amount: decimal.NewFromInt(10)},
	}

	// 17 is odd and black: straight 36 + odd 20 + black 20.
	outcome := ResolveRoulette(17, bets)

	assert.True(t, outcome.Won)
	assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(76)))
	assert.Len(t, outcome.GameData["winningBets"], 3)
}

func TestSpinWheel_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		n := SpinWheel(rng)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 36)
	}
}
