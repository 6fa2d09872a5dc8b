package games

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveSlots(t *testing.T) {
	wager := decimal.NewFromInt(10)

	t.Run("two of three doubles the stake", func(t *testing.T) {
		outcome := ResolveSlots([]string{"CHERRY", "CHERRY", "LEMON"}, wager)

		assert.True(t, outcome.Won)
		assert.Equal(t, ResultWin, outcome.Result)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, "double", outcome.GameData["winType"])

		net := outcome.WinAmount.Sub(wager)
		assert.True(t, net.Equal(decimal.NewFromInt(10)))
	})

	t.Run("non-adjacent pair still counts", func(t *testing.T) {
		outcome := ResolveSlots([]string{"STAR", "LEMON", "STAR"}, wager)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("triple seven jackpot", func(t *testing.T) {
		outcome := ResolveSlots([]string{"SEVEN", "SEVEN", "SEVEN"}, wager)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, "jackpot", outcome.GameData["winType"])
	})

	t.Run("triple fruit pays the base triple", func(t *testing.T) {
		outcome := ResolveSlots([]string{"LEMON", "LEMON", "LEMON"}, wager)

		assert.True(t, outcome.Won)
		assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "triple", outcome.GameData["winType"])
	})

	t.Run("premium triples use the paytable", func(t *testing.T) {
		cases := map[string]int64{
			"DIAMOND": 500,
			"STAR":    250,
			"GRAPE":   150,
		}
		for symbol, want := range cases {
			outcome := ResolveSlots([]string{symbol, symbol, symbol}, wager)
			assert.True(t, outcome.WinAmount.Equal(decimal.NewFromInt(want)),
				"%s: expected %d, got %s", symbol, want, outcome.WinAmount)
		}
	})

	t.Run("no match loses", func(t *testing.T) {
		outcome := ResolveSlots([]string{"CHERRY", "LEMON", "ORANGE"}, wager)

		assert.False(t, outcome.Won)
		assert.Equal(t, ResultLoss, outcome.Result)
		assert.True(t, outcome.WinAmount.IsZero())
	})
}

func TestSpinReels(t *testing.T) {
	valid := map[string]bool{}
	for _, s := range slotReelStrip {
		valid[s] = true
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		reels := SpinReels(rng)
		assert.Len(t, reels, 3)
		for _, s := range reels {
			assert.True(t, valid[s], "unexpected symbol %s", s)
		}
	}
}
