package games

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

var (
	blackjackWinMultiplier     = decimal.NewFromInt(2)
	blackjackNaturalMultiplier = decimal.RequireFromString("2.5")
)

// BlackjackRound holds the dealt hands after the dealer has finished
// drawing.
type BlackjackRound struct {
	PlayerCards []string
	DealerCards []string
	PlayerScore int
	DealerScore int
}

// DealBlackjack deals two cards each from a fresh shuffled shoe, then has
// the dealer draw until reaching 17.
func DealBlackjack(rng *rand.Rand) BlackjackRound {
	shoe := ShuffleDeck(rng, NewDeck())

	player := []string{shoe[0], shoe[1]}
	dealer := []string{shoe[2], shoe[3]}
	next := 4

	dealerScore := BlackjackScore(dealer)
	for dealerScore < 17 && next < len(shoe) {
		dealer = append(dealer, shoe[next])
		next++
		dealerScore = BlackjackScore(dealer)
	}

	return BlackjackRound{
		PlayerCards: player,
		DealerCards: dealer,
		PlayerScore: BlackjackScore(player),
		DealerScore: dealerScore,
	}
}

// ResolveBlackjack applies standard bust/compare/push rules. A win
// credits 2x the stake, a two-card natural 21 credits 2.5x (3:2 payout),
// and a push returns the stake.
func ResolveBlackjack(round BlackjackRound, wager decimal.Decimal) Outcome {
	var (
		won  bool
		push bool
	)
	multiplier := decimal.Zero

	switch {
	case round.PlayerScore > 21:
		// bust
	case round.DealerScore > 21:
		won, multiplier = true, blackjackWinMultiplier
	case round.PlayerScore == 21 && len(round.PlayerCards) == 2:
		won, multiplier = true, blackjackNaturalMultiplier
	case round.PlayerScore > round.DealerScore:
		won, multiplier = true, blackjackWinMultiplier
	case round.PlayerScore == round.DealerScore:
		push = true
	}

	winAmount := decimal.Zero
	result := ResultLoss
	switch {
	case won:
		winAmount = wager.Mul(multiplier)
		result = ResultWin
	case push:
		winAmount = wager
		result = ResultDraw
	}

	return Outcome{
		GameType:  Blackjack,
		Won:       won,
		Result:    result,
		WinAmount: winAmount,
		GameData: map[string]any{
			"playerCards": round.PlayerCards,
			"dealerCards": round.DealerCards,
			"playerScore": round.PlayerScore,
			"dealerScore": round.DealerScore,
			"push":        push,
		},
	}
}
