package games

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
)

// Jacks-or-better paytable; multipliers are total-return factors applied
// to the wager.
var pokerPayouts = []struct {
	rank       string
	multiplier int64
}{
	{"Royal Flush", 250},
	{"Straight Flush", 50},
	{"Four of a Kind", 25},
	{"Full House", 9},
	{"Flush", 6},
	{"Straight", 4},
	{"Three of a Kind", 3},
	{"Two Pair", 2},
	{"Pair (Jacks or Better)", 1},
	{"High Card", 0},
}

// ValidatePokerKeeps rejects hold indices outside the 5-card hand.
func ValidatePokerKeeps(cardsToKeep []int) error {
	if len(cardsToKeep) > 5 {
		return fmt.Errorf("%w: at most 5 cards can be kept", ErrInvalidBet)
	}
	for _, idx := range cardsToKeep {
		if idx < 0 || idx > 4 {
			return fmt.Errorf("%w: card index out of range: %d", ErrInvalidBet, idx)
		}
	}
	return nil
}

// DealPokerHand deals five cards, then replaces every card whose index is
// not held, drawing replacements from the remaining deck.
func DealPokerHand(rng *rand.Rand, cardsToKeep []int) []string {
	deck := ShuffleDeck(rng, NewDeck())
	hand := make([]string, 5)
	copy(hand, deck[:5])
	next := 5

	held := make(map[int]bool, len(cardsToKeep))
	for _, idx := range cardsToKeep {
		held[idx] = true
	}
	for i := 0; i < 5; i++ {
		if !held[i] {
			hand[i] = deck[next]
			next++
		}
	}
	return hand
}

// EvaluatePokerHand ranks a 5-card hand and returns its paytable
// multiplier.
func EvaluatePokerHand(hand []string) (string, int64) {
	ranks := make([]int, 5)
	suits := make([]string, 5)
	for i, card := range hand {
		value, suit := splitCard(card)
		ranks[i] = pokerCardRank(value)
		suits[i] = suit
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}
	groups := make([]int, 0, len(counts))
	var pairRank int
	for r, c := range counts {
		groups = append(groups, c)
		if c == 2 && r > pairRank {
			pairRank = r
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	flush := true
	for _, s := range suits {
		if s != suits[0] {
			flush = false
			break
		}
	}
	straight := isStraight(ranks)

	var rank string
	switch {
	case flush && straight && ranks[0] == 14 && ranks[4] == 10:
		rank = "Royal Flush"
	case flush && straight:
		rank = "Straight Flush"
	case groups[0] == 4:
		rank = "Four of a Kind"
	case groups[0] == 3 && groups[1] == 2:
		rank = "Full House"
	case flush:
		rank = "Flush"
	case straight:
		rank = "Straight"
	case groups[0] == 3:
		rank = "Three of a Kind"
	case groups[0] == 2 && groups[1] == 2:
		rank = "Two Pair"
	case groups[0] == 2 && pairRank >= 11:
		rank = "Pair (Jacks or Better)"
	default:
		rank = "High Card"
	}

	for _, p := range pokerPayouts {
		if p.rank == rank {
			return rank, p.multiplier
		}
	}
	return "High Card", 0
}

// isStraight expects ranks sorted descending; the wheel (A-5-4-3-2)
// counts.
func isStraight(ranks []int) bool {
	consecutive := true
	for i := 0; i < len(ranks)-1; i++ {
		if ranks[i]-ranks[i+1] != 1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return true
	}
	return ranks[0] == 14 && ranks[1] == 5 && ranks[2] == 4 && ranks[3] == 3 && ranks[4] == 2
}

// ResolvePoker settles a drawn hand. A bare jacks-or-better pair returns
// the stake (net zero, recorded as a draw); higher ranks credit
// wager*multiplier.
func ResolvePoker(hand []string, cardsKept []int, wager decimal.Decimal) Outcome {
	rank, multiplier := EvaluatePokerHand(hand)

	won := multiplier > 0
	winAmount := decimal.Zero
	result := ResultLoss
	if won {
		winAmount = wager.Mul(decimal.NewFromInt(multiplier))
		if multiplier == 1 {
			result = ResultDraw
		} else {
			result = ResultWin
		}
	}

	return Outcome{
		GameType:  Poker,
		Won:       won,
		Result:    result,
		WinAmount: winAmount,
		GameData: map[string]any{
			"hand":       hand,
			"handRank":   rank,
			"multiplier": multiplier,
			"cardsKept":  cardsKept,
		},
	}
}
