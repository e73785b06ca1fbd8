package models

import (
	"fmt"
	"sort"
	"strings"
)

// Seat is one of the four table positions, clockwise North→East→South→West.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

var seatLetters = [4]string{"N", "E", "S", "W"}

func (s Seat) String() string {
	if s < North || s > West {
		return "?"
	}
	return seatLetters[s]
}

// Next returns the seat to the left (clockwise).
func (s Seat) Next() Seat { return (s + 1) % 4 }

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return (s + 2) % 4 }

// SameSide reports whether o belongs to s's partnership
// (North+South vs East+West).
func (s Seat) SameSide(o Seat) bool { return s%2 == o%2 }

// SeatOrder returns the clockwise rotation starting at the given seat.
// Dealer digit 1/2/3/4 in a deal tag corresponds to a rotation starting
// at North/East/South/West.
func SeatOrder(start Seat) [4]Seat {
	var order [4]Seat
	for i := range order {
		order[i] = (start + Seat(i)) % 4
	}
	return order
}

// Suit is a card suit, stored as its letter.
type Suit byte

const (
	Spades   Suit = 'S'
	Hearts   Suit = 'H'
	Diamonds Suit = 'D'
	Clubs    Suit = 'C'
)

// Suits lists the four suits in deck order.
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) String() string { return string(rune(s)) }

// Strain returns the strain naming this suit.
func (s Suit) Strain() Strain { return Strain(s.String()) }

// IsSuit reports whether b is one of the four suit letters (upper case).
func IsSuit(b byte) bool {
	return b == 'S' || b == 'H' || b == 'D' || b == 'C'
}

// Rank is a card rank with the strict order 2 < 3 < ... < T < J < Q < K < A.
type Rank int

const (
	RankTwo Rank = iota + 2
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

const rankChars = "23456789TJQKA"

func (r Rank) String() string {
	if r < RankTwo || r > RankAce {
		return "?"
	}
	return string(rankChars[r-RankTwo])
}

// RankFromChar maps a rank character (upper case) to its Rank.
func RankFromChar(b byte) (Rank, bool) {
	for i := 0; i < len(rankChars); i++ {
		if rankChars[i] == b {
			return Rank(i) + RankTwo, true
		}
	}
	return 0, false
}

// Card is one of the 52 distinct playing cards.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string { return c.Suit.String() + c.Rank.String() }

// ParseCard parses a card token like "SA" or "h9" (case-insensitive).
func ParseCard(tok string) (Card, error) {
	if len(tok) != 2 {
		return Card{}, fmt.Errorf("invalid card token %q", tok)
	}
	su := upper(tok[0])
	rk := upper(tok[1])
	if !IsSuit(su) {
		return Card{}, fmt.Errorf("invalid card token %q: unknown suit %q", tok, tok[:1])
	}
	r, ok := RankFromChar(rk)
	if !ok {
		return Card{}, fmt.Errorf("invalid card token %q: unknown rank %q", tok, tok[1:])
	}
	return Card{Suit: Suit(su), Rank: r}, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return b
}

// cardIndex maps each of the 52 cards to a stable index 0..51
// (suit-major, deck order S,H,D,C). Built once at init, never mutated.
var cardIndex map[Card]int

func init() {
	cardIndex = make(map[Card]int, 52)
	i := 0
	for _, s := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			cardIndex[Card{Suit: s, Rank: r}] = i
			i++
		}
	}
}

// CardIndex returns the deck index of c in 0..51, or -1 for an unknown card.
func CardIndex(c Card) int {
	if i, ok := cardIndex[c]; ok {
		return i
	}
	return -1
}

// Strain is a contract denomination: a suit or no-trump.
type Strain string

const (
	StrainClubs    Strain = "C"
	StrainDiamonds Strain = "D"
	StrainHearts   Strain = "H"
	StrainSpades   Strain = "S"
	StrainNoTrump  Strain = "NT"
)

// StrainFromChar maps a bid strain character to a Strain; 'N' means no-trump.
func StrainFromChar(b byte) (Strain, bool) {
	switch upper(b) {
	case 'C':
		return StrainClubs, true
	case 'D':
		return StrainDiamonds, true
	case 'H':
		return StrainHearts, true
	case 'S':
		return StrainSpades, true
	case 'N':
		return StrainNoTrump, true
	}
	return "", false
}

// Bid is one auction call, assigned to a seat.
// Token keeps the raw transcript form (e.g. "1C", "p", "6NTx").
type Bid struct {
	Seat  Seat
	Token string
}

// Contract is the qualifying final bid of an auction: the last bid whose
// token starts with a level digit. Declarer is the seat that made it.
type Contract struct {
	Level    int
	Strain   Strain
	Declarer Seat
	Token    string
}

// Board is one normalized deal. Optional outcome fields are pointers;
// nil means unresolved, which is a valid terminal state.
type Board struct {
	ID          string
	Hands       [4][]Card // indexed by Seat
	HandsSet    bool
	Bids        []Bid
	Plays       []Card
	OpeningLead *Card
	Contract    *Contract
	Tricks      *int
}

// Trump returns the trump strain of the board's contract, if resolved.
func (b *Board) Trump() (Strain, bool) {
	if b.Contract == nil {
		return "", false
	}
	return b.Contract.Strain, true
}

// Hand returns the cards held by the given seat at deal start.
func (b *Board) Hand(s Seat) []Card { return b.Hands[s] }

// HandString renders a hand in transcript form: each suit letter followed
// by its ranks high to low, suits in deck order. Parsing the result yields
// the same multiset of cards.
func HandString(cards []Card) string {
	var b strings.Builder
	for _, s := range Suits {
		var ranks []Rank
		for _, c := range cards {
			if c.Suit == s {
				ranks = append(ranks, c.Rank)
			}
		}
		if len(ranks) == 0 {
			continue
		}
		sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
		b.WriteString(s.String())
		for _, r := range ranks {
			b.WriteString(r.String())
		}
	}
	return b.String()
}
