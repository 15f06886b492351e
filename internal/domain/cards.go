package domain

// Rank symbols in ascending order of strength. The deck plays 4 as the lowest
// card; 2 and 3 sit above the ace, and the two jokers above everything.
var RankOrder = []string{"4", "5", "6", "7", "8", "9", "10", "B", "D", "K", "A", "2", "3", "JB", "JR"}

// Suits in deal order. The jokers carry their own pseudo-suits, see NewDeck.
var Suits = []string{"♠", "♥", "♦", "♣"}

const (
	// BlackJoker and RedJoker are the rank symbols of the two unique jokers.
	BlackJoker = "JB"
	RedJoker   = "JR"

	// suitedRankCount is the number of ranks dealt in all four suits.
	suitedRankCount = 13

	// DeckSize is the full deck: 13 ranks x 4 suits plus two jokers.
	DeckSize = 54
)

var rankValue = func() map[string]int {
	m := make(map[string]int, len(RankOrder))
	for i, r := range RankOrder {
		m[r] = i
	}
	return m
}()

// AceValue is the strength of the ace, the highest rank allowed in a run.
var AceValue = rankValue["A"]

// RankValue returns the strength of a rank symbol, or -1 for an unknown rank.
func RankValue(rank string) int {
	if v, ok := rankValue[rank]; ok {
		return v
	}
	return -1
}

// Card is a single playing card. Cards are compared by rank only; the suit
// matters just for identity and for locating the opening 4♠.
type Card struct {
	Rank string
	Suit string
}

// ID returns the unique identifier of the card. Jokers are identified by
// their rank symbol alone.
func (c Card) ID() string {
	if c.Rank == BlackJoker || c.Rank == RedJoker {
		return c.Rank
	}
	return c.Rank + c.Suit
}

// Value returns the strength of the card's rank.
func (c Card) Value() int {
	return RankValue(c.Rank)
}

// NewDeck returns the ordered 54-card deck: every suited rank plus the two
// jokers.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range RankOrder[:suitedRankCount] {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	deck = append(deck, Card{Rank: BlackJoker, Suit: "🃏"})
	deck = append(deck, Card{Rank: RedJoker, Suit: "🃟"})
	return deck
}
