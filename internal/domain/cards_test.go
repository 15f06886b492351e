package domain

import "testing"

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[string]bool, len(deck))
	jokers := 0
	for _, c := range deck {
		if seen[c.ID()] {
			t.Fatalf("duplicate card id: %s", c.ID())
		}
		seen[c.ID()] = true
		if c.Rank == BlackJoker || c.Rank == RedJoker {
			jokers++
			continue
		}
		if v := c.Value(); v < 0 || v > AceValue+2 {
			t.Fatalf("suited card %s has value %d out of range", c.ID(), v)
		}
	}
	if jokers != 2 {
		t.Fatalf("joker count = %d, want 2", jokers)
	}
}

func TestRankValueOrdering(t *testing.T) {
	// 2 and 3 outrank the ace; jokers outrank everything.
	if RankValue("2") <= RankValue("A") || RankValue("3") <= RankValue("2") {
		t.Fatalf("2/3 must outrank the ace: A=%d 2=%d 3=%d", RankValue("A"), RankValue("2"), RankValue("3"))
	}
	if RankValue(BlackJoker) <= RankValue("3") || RankValue(RedJoker) <= RankValue(BlackJoker) {
		t.Fatalf("jokers must be the highest ranks: 3=%d JB=%d JR=%d", RankValue("3"), RankValue(BlackJoker), RankValue(RedJoker))
	}

	for i := 1; i < len(RankOrder); i++ {
		if RankValue(RankOrder[i]) != RankValue(RankOrder[i-1])+1 {
			t.Fatalf("rank order not dense at %s", RankOrder[i])
		}
	}

	if RankValue("X") != -1 {
		t.Fatalf("unknown rank value = %d, want -1", RankValue("X"))
	}
}

func TestCardID(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{Card{Rank: "4", Suit: "♠"}, "4♠"},
		{Card{Rank: "10", Suit: "♦"}, "10♦"},
		{Card{Rank: BlackJoker, Suit: "🃏"}, "JB"},
		{Card{Rank: RedJoker, Suit: "🃟"}, "JR"},
	}
	for _, tt := range tests {
		if got := tt.card.ID(); got != tt.want {
			t.Errorf("ID(%s %s) = %s, want %s", tt.card.Rank, tt.card.Suit, got, tt.want)
		}
	}
}
