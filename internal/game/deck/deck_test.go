package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countCards(cards []Card) map[Card]int {
	counts := make(map[Card]int)
	for _, c := range cards {
		counts[c]++
	}
	return counts
}

func TestNewDeck(t *testing.T) {
	cards := New()

	assert.Len(t, cards, 52)

	counts := countCards(cards)
	assert.Len(t, counts, 52, "deck should not contain duplicates")

	suits := make(map[Suit]bool)
	ranks := make(map[Rank]bool)
	for _, c := range cards {
		suits[c.Suit] = true
		ranks[c.Rank] = true
	}
	assert.Len(t, suits, 4)
	assert.Len(t, ranks, 13)
}

func TestShuffledSameSeedSameOrder(t *testing.T) {
	d1 := Shuffled(rand.New(rand.NewSource(42)), 1)
	d2 := Shuffled(rand.New(rand.NewSource(42)), 1)
	assert.Equal(t, d1, d2)

	d3 := Shuffled(rand.New(rand.NewSource(99)), 1)
	assert.NotEqual(t, d1, d3)
}

func TestShuffledMultipleDecks(t *testing.T) {
	cards := Shuffled(rand.New(rand.NewSource(7)), 2)

	assert.Len(t, cards, 104)
	for card, n := range countCards(cards) {
		assert.Equalf(t, 2, n, "card %s should appear exactly twice", card)
	}
}

func TestScore(t *testing.T) {
	hand := []Card{
		{Suit: "♠", Rank: "A"},
		{Suit: "♣", Rank: "10"},
		{Suit: "♥", Rank: "J"},
		{Suit: "♦", Rank: "Q"},
	}
	assert.Equal(t, 21, Score(hand))

	assert.Equal(t, 0, Score(nil))
	assert.Equal(t, 10, Score([]Card{{Suit: "♥", Rank: "K"}}))
	assert.Equal(t, 2, Score([]Card{{Suit: "♦", Rank: "2"}}))

	// one full deck: 1+2+...+10 + 0 + 10 + 10 per suit
	assert.Equal(t, 300, Score(New()))
}
