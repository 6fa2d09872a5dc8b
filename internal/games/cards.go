package games

import "math/rand"

var (
	cardSuits  = []string{"♠", "♥", "♦", "♣"}
	cardValues = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// NewDeck builds an ordered 52-card deck; cards are value+suit strings
// like "A♠" or "10♦".
func NewDeck() []string {
	deck := make([]string, 0, 52)
	for _, suit := range cardSuits {
		for _, value := range cardValues {
			deck = append(deck, value+suit)
		}
	}
	return deck
}

// ShuffleDeck returns a Fisher-Yates shuffled copy.
func ShuffleDeck(rng *rand.Rand, deck []string) []string {
	shuffled := make([]string, len(deck))
	copy(shuffled, deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// splitCard separates the value from the single-rune suit.
func splitCard(card string) (value string, suit string) {
	runes := []rune(card)
	return string(runes[:len(runes)-1]), string(runes[len(runes)-1])
}

// BlackjackScore totals a hand, counting aces as 11 and downgrading them
// to 1 while the hand would bust.
func BlackjackScore(cards []string) int {
	score, aces := 0, 0
	for _, card := range cards {
		value, _ := splitCard(card)
		switch value {
		case "A":
			aces++
			score += 11
		case "J", "Q", "K", "10":
			score += 10
		default:
			score += int(value[0] - '0')
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// pokerCardRank maps a card value to its numeric rank, ace high.
func pokerCardRank(value string) int {
	switch value {
	case "A":
		return 14
	case "K":
		return 13
	case "Q":
		return 12
	case "J":
		return 11
	case "10":
		return 10
	default:
		return int(value[0] - '0')
	}
}
