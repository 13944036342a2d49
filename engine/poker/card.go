// Package poker implements the poker-combat sub-mode: a 52-card deck, the
// five-card hand evaluator, the heads-up betting state machine and the
// phase sequencer that drives one combat round.
//
// Everything here is deterministic integer arithmetic. Randomness enters
// only through a Shuffler supplied by the caller, normally the match PRNG.
package poker

import "fmt"

// Suit is a card suit, 0 through 3.
type Suit uint8

const (
	Spades   Suit = 0
	Hearts   Suit = 1
	Diamonds Suit = 2
	Clubs    Suit = 3
)

var suitNames = [...]string{"spades", "hearts", "diamonds", "clubs"}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return fmt.Sprintf("suit(%d)", uint8(s))
}

// Card values. Number cards use their face value.
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14

	MinValue = 2
	MaxValue = Ace
)

// DeckSize is the number of cards in a fresh deck.
const DeckSize = 52

// Card is one playing card. Value runs 2..14 with the ace high.
type Card struct {
	Suit  Suit `json:"suit"`
	Value int  `json:"value"`
}

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool {
	return c.Suit <= Clubs && c.Value >= MinValue && c.Value <= MaxValue
}

func (c Card) String() string {
	var v string
	switch c.Value {
	case Ace:
		v = "A"
	case King:
		v = "K"
	case Queen:
		v = "Q"
	case Jack:
		v = "J"
	case 10:
		v = "T"
	default:
		v = fmt.Sprint(c.Value)
	}
	return v + suitNames[c.Suit&3][:1]
}

// NewDeck returns the 52 cards in a fixed order: suits in declaration order,
// values ascending within each suit.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Spades; s <= Clubs; s++ {
		for v := MinValue; v <= MaxValue; v++ {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	return deck
}

// Shuffler permutes n elements through swap. *engine.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deal returns a fresh deck shuffled by s.
func Deal(s Shuffler) []Card {
	deck := NewDeck()
	s.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
