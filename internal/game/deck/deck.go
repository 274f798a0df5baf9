package deck

import "math/rand"

// Suit is one of the four standard suits.
type Suit string

// Rank is one of the thirteen standard ranks.
type Rank string

var Suits = []Suit{"♠", "♣", "♥", "♦"}

var Ranks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Card is an immutable suit/rank pair. Cards are plain values; no code
// mutates one after it leaves this package.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// New returns a single unshuffled 52-card deck.
func New() []Card {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards
}

// Shuffled returns numberOfDecks full decks shuffled together using r.
// The caller draws from the logical top, the end of the slice.
func Shuffled(r *rand.Rand, numberOfDecks int) []Card {
	cards := make([]Card, 0, 52*numberOfDecks)
	for i := 0; i < numberOfDecks; i++ {
		cards = append(cards, New()...)
	}
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// Golf scoring: numerals at face value, aces one, jacks zero, queens
// and kings ten.
var rankScore = map[Rank]int{
	"A": 1,
	"2": 2,
	"3": 3,
	"4": 4,
	"5": 5,
	"6": 6,
	"7": 7,
	"8": 8,
	"9": 9,
	"10": 10,
	"J": 0,
	"Q": 10,
	"K": 10,
}

// Score returns the point total of a hand.
func Score(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += rankScore[c.Rank]
	}
	return total
}
