package domain

import "sort"

// CombinationType identifies the shape of a played card set.
type CombinationType string

const (
	ComboInvalid CombinationType = "invalid"
	ComboSingle  CombinationType = "single"
	ComboPair    CombinationType = "pair"
	ComboTriple  CombinationType = "triple"
	ComboQuad    CombinationType = "quad"
	// ComboKatarik is a run: four or more distinct consecutive ranks, none
	// above the ace.
	ComboKatarik CombinationType = "katarik"
	// ComboSanzhud is a pair run: three or more consecutive ranks, each
	// contributed as an exact pair.
	ComboSanzhud CombinationType = "sanzhud"
)

// Combination is a classified card set. Rank/Value are set for same-rank
// combinations, MinVal/MaxVal/Length for katarik and sanzhud.
type Combination struct {
	Type   CombinationType
	Rank   string
	Value  int
	MinVal int
	MaxVal int
	Length int
}

// Valid reports whether the combination is playable.
func (c Combination) Valid() bool {
	return c.Type != ComboInvalid && c.Type != ""
}

// IdentifyCombination classifies a card set. The result does not depend on
// the order of the input cards.
func IdentifyCombination(cards []Card) Combination {
	n := len(cards)
	if n == 0 {
		return Combination{Type: ComboInvalid}
	}

	vals := make([]int, n)
	for i, c := range cards {
		vals[i] = c.Value()
	}

	if n == 1 {
		return Combination{Type: ComboSingle, Rank: cards[0].Rank, Value: vals[0]}
	}

	if allSameRank(cards) {
		combo := Combination{Rank: cards[0].Rank, Value: vals[0]}
		switch n {
		case 2:
			combo.Type = ComboPair
			return combo
		case 3:
			combo.Type = ComboTriple
			return combo
		case 4:
			combo.Type = ComboQuad
			return combo
		}
	}

	// Katarik: >=4 cards, all at or below the ace, distinct consecutive ranks.
	// A four-of-a-kind never reaches this point, so a 4-card set with any
	// repeated rank is invalid rather than a short run.
	if n >= 4 && maxOf(vals) <= AceValue {
		sorted := append([]int(nil), vals...)
		sort.Ints(sorted)
		if consecutive(sorted) {
			return Combination{Type: ComboKatarik, MinVal: sorted[0], MaxVal: sorted[n-1], Length: n}
		}
	}

	// Sanzhud: even count >=6 where every card belongs to an exact pair and
	// the pair ranks are consecutive. A rank appearing once, three or four
	// times disqualifies the whole set.
	if n >= 6 && n%2 == 0 {
		counts := make(map[string]int, n)
		for _, c := range cards {
			counts[c.Rank]++
		}
		pairVals := make([]int, 0, n/2)
		for r, cnt := range counts {
			if cnt == 2 {
				pairVals = append(pairVals, RankValue(r))
			}
		}
		if len(pairVals) == n/2 {
			sort.Ints(pairVals)
			if consecutive(pairVals) {
				return Combination{Type: ComboSanzhud, MinVal: pairVals[0], MaxVal: pairVals[len(pairVals)-1], Length: len(pairVals)}
			}
		}
	}

	return Combination{Type: ComboInvalid}
}

// CanBeat reports whether the attacker supersedes the combination on the
// table. Quads beat everything except a higher quad; a triple beats any
// single, pair, katarik or sanzhud outright regardless of their value.
func CanBeat(attacker, defender Combination) bool {
	if !attacker.Valid() || !defender.Valid() {
		return false
	}

	if attacker.Type == ComboQuad {
		if defender.Type == ComboQuad {
			return attacker.Value > defender.Value
		}
		return true
	}

	if attacker.Type == ComboTriple {
		switch defender.Type {
		case ComboQuad:
			return false
		case ComboTriple:
			return attacker.Value > defender.Value
		case ComboSingle, ComboPair, ComboKatarik, ComboSanzhud:
			return true
		}
		return false
	}

	if attacker.Type == defender.Type {
		switch attacker.Type {
		case ComboSingle, ComboPair:
			return attacker.Value > defender.Value
		case ComboKatarik, ComboSanzhud:
			if attacker.Length != defender.Length {
				return false
			}
			return attacker.MaxVal > defender.MaxVal
		}
	}

	return false
}

func allSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

func consecutive(sorted []int) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

func maxOf(vals []int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
