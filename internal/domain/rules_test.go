package domain

import (
	"math/rand"
	"testing"
)

func TestIdentifyCombination(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  Combination
	}{
		{
			name:  "Single",
			cards: []Card{{Rank: "K", Suit: "♠"}},
			want:  Combination{Type: ComboSingle, Rank: "K", Value: 9},
		},
		{
			name:  "Pair of fours",
			cards: []Card{{Rank: "4", Suit: "♠"}, {Rank: "4", Suit: "♥"}},
			want:  Combination{Type: ComboPair, Rank: "4", Value: 0},
		},
		{
			name:  "Triple",
			cards: []Card{{Rank: "9", Suit: "♠"}, {Rank: "9", Suit: "♥"}, {Rank: "9", Suit: "♦"}},
			want:  Combination{Type: ComboTriple, Rank: "9", Value: 5},
		},
		{
			name:  "Quad beats the run check",
			cards: []Card{{Rank: "7", Suit: "♠"}, {Rank: "7", Suit: "♥"}, {Rank: "7", Suit: "♦"}, {Rank: "7", Suit: "♣"}},
			want:  Combination{Type: ComboQuad, Rank: "7", Value: 3},
		},
		{
			name:  "Joker single",
			cards: []Card{{Rank: RedJoker, Suit: "🃟"}},
			want:  Combination{Type: ComboSingle, Rank: RedJoker, Value: 14},
		},
		{
			name:  "Katarik of four",
			cards: []Card{{Rank: "4", Suit: "♠"}, {Rank: "5", Suit: "♠"}, {Rank: "6", Suit: "♥"}, {Rank: "7", Suit: "♦"}},
			want:  Combination{Type: ComboKatarik, MinVal: 0, MaxVal: 3, Length: 4},
		},
		{
			name: "Katarik ending at the ace",
			cards: []Card{
				{Rank: "B", Suit: "♠"}, {Rank: "D", Suit: "♥"}, {Rank: "K", Suit: "♦"}, {Rank: "A", Suit: "♣"},
			},
			want: Combination{Type: ComboKatarik, MinVal: 7, MaxVal: 10, Length: 4},
		},
		{
			name:  "Katarik of three is too short",
			cards: []Card{{Rank: "4", Suit: "♠"}, {Rank: "5", Suit: "♠"}, {Rank: "6", Suit: "♥"}},
			want:  Combination{Type: ComboInvalid},
		},
		{
			name:  "Non-contiguous run",
			cards: []Card{{Rank: "4", Suit: "♠"}, {Rank: "5", Suit: "♠"}, {Rank: "7", Suit: "♦"}, {Rank: "8", Suit: "♦"}},
			want:  Combination{Type: ComboInvalid},
		},
		{
			name:  "Run with a repeated rank",
			cards: []Card{{Rank: "4", Suit: "♠"}, {Rank: "5", Suit: "♠"}, {Rank: "5", Suit: "♥"}, {Rank: "6", Suit: "♦"}},
			want:  Combination{Type: ComboInvalid},
		},
		{
			name: "Run above the ace",
			cards: []Card{
				{Rank: "A", Suit: "♠"}, {Rank: "2", Suit: "♥"}, {Rank: "3", Suit: "♦"}, {Rank: BlackJoker, Suit: "🃏"},
			},
			want: Combination{Type: ComboInvalid},
		},
		{
			name: "Sanzhud of three pairs",
			cards: []Card{
				{Rank: "4", Suit: "♠"}, {Rank: "4", Suit: "♥"},
				{Rank: "5", Suit: "♠"}, {Rank: "5", Suit: "♥"},
				{Rank: "6", Suit: "♠"}, {Rank: "6", Suit: "♥"},
			},
			want: Combination{Type: ComboSanzhud, MinVal: 0, MaxVal: 2, Length: 3},
		},
		{
			name: "Sanzhud above the ace is allowed",
			cards: []Card{
				{Rank: "A", Suit: "♠"}, {Rank: "A", Suit: "♥"},
				{Rank: "2", Suit: "♠"}, {Rank: "2", Suit: "♥"},
				{Rank: "3", Suit: "♠"}, {Rank: "3", Suit: "♥"},
			},
			want: Combination{Type: ComboSanzhud, MinVal: 10, MaxVal: 12, Length: 3},
		},
		{
			name: "Sanzhud rejects a quad inside",
			cards: []Card{
				{Rank: "4", Suit: "♠"}, {Rank: "4", Suit: "♥"}, {Rank: "4", Suit: "♦"}, {Rank: "4", Suit: "♣"},
				{Rank: "5", Suit: "♠"}, {Rank: "5", Suit: "♥"},
			},
			want: Combination{Type: ComboInvalid},
		},
		{
			name: "Sanzhud rejects a triple inside",
			cards: []Card{
				{Rank: "4", Suit: "♠"}, {Rank: "4", Suit: "♥"}, {Rank: "4", Suit: "♦"},
				{Rank: "5", Suit: "♠"}, {Rank: "5", Suit: "♥"}, {Rank: "6", Suit: "♠"},
			},
			want: Combination{Type: ComboInvalid},
		},
		{
			name: "Sanzhud rejects non-contiguous pairs",
			cards: []Card{
				{Rank: "4", Suit: "♠"}, {Rank: "4", Suit: "♥"},
				{Rank: "6", Suit: "♠"}, {Rank: "6", Suit: "♥"},
				{Rank: "7", Suit: "♠"}, {Rank: "7", Suit: "♥"},
			},
			want: Combination{Type: ComboInvalid},
		},
		{
			name:  "Empty set",
			cards: nil,
			want:  Combination{Type: ComboInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdentifyCombination(tt.cards); got != tt.want {
				t.Errorf("IdentifyCombination() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIdentifyCombinationOrderInvariant(t *testing.T) {
	cards := []Card{
		{Rank: "8", Suit: "♠"}, {Rank: "9", Suit: "♥"}, {Rank: "10", Suit: "♦"}, {Rank: "B", Suit: "♣"}, {Rank: "D", Suit: "♠"},
	}
	want := IdentifyCombination(cards)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]Card(nil), cards...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := IdentifyCombination(shuffled); got != want {
			t.Fatalf("classification depends on card order: %+v vs %+v", got, want)
		}
	}
}

func TestCanBeat(t *testing.T) {
	single := func(rank string) Combination {
		return IdentifyCombination([]Card{{Rank: rank, Suit: "♠"}})
	}
	pair := func(rank string) Combination {
		return IdentifyCombination([]Card{{Rank: rank, Suit: "♠"}, {Rank: rank, Suit: "♥"}})
	}
	triple := func(rank string) Combination {
		return IdentifyCombination([]Card{{Rank: rank, Suit: "♠"}, {Rank: rank, Suit: "♥"}, {Rank: rank, Suit: "♦"}})
	}
	quad := func(rank string) Combination {
		return IdentifyCombination([]Card{{Rank: rank, Suit: "♠"}, {Rank: rank, Suit: "♥"}, {Rank: rank, Suit: "♦"}, {Rank: rank, Suit: "♣"}})
	}
	katarik := Combination{Type: ComboKatarik, MinVal: 0, MaxVal: 3, Length: 4}
	katarikHigh := Combination{Type: ComboKatarik, MinVal: 1, MaxVal: 4, Length: 4}
	katarikLong := Combination{Type: ComboKatarik, MinVal: 0, MaxVal: 4, Length: 5}
	sanzhud := Combination{Type: ComboSanzhud, MinVal: 0, MaxVal: 2, Length: 3}
	sanzhudHigh := Combination{Type: ComboSanzhud, MinVal: 1, MaxVal: 3, Length: 3}
	sanzhudLong := Combination{Type: ComboSanzhud, MinVal: 0, MaxVal: 3, Length: 4}

	tests := []struct {
		name     string
		attacker Combination
		defender Combination
		want     bool
	}{
		{"higher single wins", single("5"), single("4"), true},
		{"equal single loses", single("5"), single("5"), false},
		{"joker tops any single", single(RedJoker), single("3"), true},
		{"higher pair wins", pair("K"), pair("D"), true},
		{"pair cannot hit a single", pair("K"), single("4"), false},
		{"single cannot hit a pair", single(RedJoker), pair("4"), false},

		{"quad beats single", quad("4"), single(RedJoker), true},
		{"quad beats pair", quad("4"), pair("3"), true},
		{"quad beats triple", quad("4"), triple("3"), true},
		{"quad beats katarik", quad("4"), katarikLong, true},
		{"quad beats sanzhud", quad("4"), sanzhudLong, true},
		{"higher quad beats quad", quad("5"), quad("4"), true},
		{"equal quad loses", quad("5"), quad("5"), false},
		{"lower quad loses", quad("4"), quad("5"), false},

		{"triple loses to quad", triple("3"), quad("4"), false},
		{"higher triple beats triple", triple("6"), triple("5"), true},
		{"lower triple loses to triple", triple("5"), triple("6"), false},
		{"triple always beats single", triple("4"), single(RedJoker), true},
		{"triple always beats pair", triple("4"), pair("3"), true},
		{"triple always beats katarik", triple("4"), katarikLong, true},
		{"triple always beats sanzhud", triple("4"), sanzhudLong, true},

		{"higher katarik wins at equal length", katarikHigh, katarik, true},
		{"longer katarik never beats shorter", katarikLong, katarik, false},
		{"shorter katarik never beats longer", katarik, katarikLong, false},
		{"higher sanzhud wins at equal length", sanzhudHigh, sanzhud, true},
		{"longer sanzhud never beats shorter", sanzhudLong, sanzhud, false},
		{"katarik cannot hit a sanzhud", katarikHigh, sanzhud, false},
		{"katarik cannot hit a pair", katarikHigh, pair("4"), false},

		{"invalid attacker", Combination{Type: ComboInvalid}, single("4"), false},
		{"invalid defender", single("4"), Combination{Type: ComboInvalid}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanBeat(tt.attacker, tt.defender); got != tt.want {
				t.Errorf("CanBeat() = %v, want %v", got, tt.want)
			}
		})
	}
}
