package poker

import "sort"

// HandRank orders five-card hands, 1 (high card) through 10.
type HandRank uint8

const (
	HighCard          HandRank = 1
	RuneMark          HandRank = 2  // one pair
	DualRunes         HandRank = 3  // two pair
	ThorsHammer       HandRank = 4  // three of a kind
	FatesPath         HandRank = 5  // straight
	OdinsEye          HandRank = 6  // flush
	ValhallasBlessing HandRank = 7  // full house
	GodlyPower        HandRank = 8  // four of a kind
	DivineAlignment   HandRank = 9  // straight flush
	Ragnarok          HandRank = 10 // ace-high straight flush
)

var rankNames = [...]string{
	HighCard:          "High Card",
	RuneMark:          "Rune Mark",
	DualRunes:         "Dual Runes",
	ThorsHammer:       "Thor's Hammer",
	FatesPath:         "Fate's Path",
	OdinsEye:          "Odin's Eye",
	ValhallasBlessing: "Valhalla's Blessing",
	GodlyPower:        "Godly Power",
	DivineAlignment:   "Divine Alignment",
	Ragnarok:          "RAGNAROK",
}

var traditionalNames = [...]string{
	HighCard:          "High Card",
	RuneMark:          "One Pair",
	DualRunes:         "Two Pair",
	ThorsHammer:       "Three of a Kind",
	FatesPath:         "Straight",
	OdinsEye:          "Flush",
	ValhallasBlessing: "Full House",
	GodlyPower:        "Four of a Kind",
	DivineAlignment:   "Straight Flush",
	Ragnarok:          "Royal Flush",
}

func (r HandRank) valid() bool { return r >= HighCard && r <= Ragnarok }

// String returns the themed name of the rank.
func (r HandRank) String() string {
	if !r.valid() {
		return "unknown"
	}
	return rankNames[r]
}

// Traditional returns the conventional poker name of the rank.
func (r HandRank) Traditional() string {
	if !r.valid() {
		return "unknown"
	}
	return traditionalNames[r]
}

// DisplayName combines both names, e.g. "Odin's Eye (Flush)".
func (r HandRank) DisplayName() string {
	if r.String() == r.Traditional() {
		return r.String()
	}
	return r.String() + " (" + r.Traditional() + ")"
}

// Evaluated is the result of scoring a hand.
type Evaluated struct {
	Rank HandRank `json:"rank"`
	// Cards are ordered by group size then value, both descending; they are
	// the comparison key for every rank except straights.
	Cards []Card `json:"cards"`
	// HighCard is the effective top card. A wheel reports 5.
	HighCard    int   `json:"highCard"`
	Multiplier  int   `json:"multiplierX100"`
	TieBreakers []int `json:"tieBreakers"`
}

// valueCounts tallies card values.
func valueCounts(cards []Card) map[int]int {
	counts := make(map[int]int, len(cards))
	for _, c := range cards {
		counts[c.Value]++
	}
	return counts
}

// sortForTiebreak orders cards by how often their value occurs, then by value.
func sortForTiebreak(cards []Card) []Card {
	counts := valueCounts(cards)
	out := append([]Card(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := counts[out[i].Value], counts[out[j].Value]
		if ci != cj {
			return ci > cj
		}
		return out[i].Value > out[j].Value
	})
	return out
}

func sortByValueDesc(cards []Card) []Card {
	out := append([]Card(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

type group struct{ value, count int }

// groups returns the distinct values ordered by count then value.
func groups(counts map[int]int) []group {
	gs := make([]group, 0, len(counts))
	for v, n := range counts {
		gs = append(gs, group{value: v, count: n})
	}
	sort.Slice(gs, func(i, j int) bool {
		if gs[i].count != gs[j].count {
			return gs[i].count > gs[j].count
		}
		return gs[i].value > gs[j].value
	})
	return gs
}

// EvaluateFive scores exactly five cards.
func EvaluateFive(hand [5]Card) Evaluated {
	cards := hand[:]
	sorted := sortByValueDesc(cards)
	values := make([]int, len(sorted))
	for i, c := range sorted {
		values[i] = c.Value
	}

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	regular := true
	for i := 1; i < len(values); i++ {
		if values[i-1]-values[i] != 1 {
			regular = false
			break
		}
	}
	wheel := values[0] == Ace && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2
	straight := regular || wheel

	gs := groups(valueCounts(cards))
	top, second := gs[0].count, 0
	if len(gs) > 1 {
		second = gs[1].count
	}

	var rank HandRank
	switch {
	case flush && straight && values[0] == Ace && values[4] == 10:
		rank = Ragnarok
	case flush && straight:
		rank = DivineAlignment
	case top == 4:
		rank = GodlyPower
	case top == 3 && second == 2:
		rank = ValhallasBlessing
	case flush:
		rank = OdinsEye
	case straight:
		rank = FatesPath
	case top == 3:
		rank = ThorsHammer
	case top == 2 && second == 2:
		rank = DualRunes
	case top == 2:
		rank = RuneMark
	default:
		rank = HighCard
	}

	high := values[0]
	if wheel {
		high = 5
	}

	var tb []int
	switch rank {
	case Ragnarok, DivineAlignment, FatesPath:
		tb = []int{high}
	case OdinsEye, HighCard:
		tb = values
	case DualRunes:
		// gs already holds both pairs first, higher pair leading, then the kicker.
		tb = []int{gs[0].value, gs[1].value, gs[2].value}
	default:
		for _, g := range gs {
			tb = append(tb, g.value)
		}
	}

	return Evaluated{
		Rank:        rank,
		Cards:       sortForTiebreak(cards),
		HighCard:    high,
		Multiplier:  MultiplierX100(rank),
		TieBreakers: tb,
	}
}

// Compare returns +1 when a beats b, -1 when b beats a and 0 on a tie.
// Straights compare only by their effective high card; every other rank
// compares the tie-break ordered card values.
func Compare(a, b Evaluated) int {
	if a.Rank != b.Rank {
		return sign(int(a.Rank) - int(b.Rank))
	}
	if a.Rank == FatesPath || a.Rank == DivineAlignment {
		return sign(a.HighCard - b.HighCard)
	}
	n := len(a.Cards)
	if len(b.Cards) < n {
		n = len(b.Cards)
	}
	for i := 0; i < n; i++ {
		if d := a.Cards[i].Value - b.Cards[i].Value; d != 0 {
			return sign(d)
		}
	}
	return 0
}

func sign(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

// FindBestHand returns the strongest five-card hand among hole and
// community. With fewer than five cards the result is a high-card hand of
// whatever is available.
func FindBestHand(hole, community []Card) Evaluated {
	all := make([]Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)

	if len(all) < 5 {
		sorted := sortByValueDesc(all)
		e := Evaluated{Rank: HighCard, Cards: sorted, Multiplier: MultiplierX100(HighCard)}
		for _, c := range sorted {
			e.TieBreakers = append(e.TieBreakers, c.Value)
		}
		if len(sorted) > 0 {
			e.HighCard = sorted[0].Value
		}
		return e
	}

	var best Evaluated
	found := false
	n := len(all)
	for i := 0; i < n-4; i++ {
		for j := i + 1; j < n-3; j++ {
			for k := j + 1; k < n-2; k++ {
				for l := k + 1; l < n-1; l++ {
					for m := l + 1; m < n; m++ {
						e := EvaluateFive([5]Card{all[i], all[j], all[k], all[l], all[m]})
						if !found || Compare(e, best) > 0 {
							best, found = e, true
						}
					}
				}
			}
		}
	}
	return best
}

var strengthByRank = [...]int{0, 10, 25, 40, 55, 65, 75, 85, 92, 97, 100}

// HandStrength rates a hand 0..100 for automated betting. With five or more
// cards available the best hand is scored; before the flop the two hole
// cards are rated by high card, pair, suitedness and connectedness.
func HandStrength(hole, community []Card) int {
	if len(hole) < 2 {
		return 0
	}
	if len(hole)+len(community) >= 5 {
		best := FindBestHand(hole, community)
		base := 10
		if best.Rank.valid() {
			base = strengthByRank[best.Rank]
		}
		return min(base+(best.HighCard-2)*5/12, 100)
	}

	c1, c2 := hole[0].Value, hole[1].Value
	strength := (max(c1, c2) - 2) * 30 / 12
	if c1 == c2 {
		strength += 40 + c1*20/14
	}
	if hole[0].Suit == hole[1].Suit {
		strength += 12
	}
	gap := c1 - c2
	if gap < 0 {
		gap = -gap
	}
	switch gap {
	case 1:
		strength += 10
	case 2:
		strength += 6
	case 3:
		strength += 3
	}
	return min(strength, 100)
}
