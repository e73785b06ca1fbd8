package parser

import (
	"sort"
	"testing"

	"github.com/deckside/lin-converter/internal/models"
)

func TestParseHand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		count   int
		wantErr bool
	}{
		{name: "full hand", input: "S753H9DK7652CJT93", count: 13},
		{name: "leading dealer digit ignored", input: "3S2HA76DAQT84CQ875", count: 13},
		{name: "lower case", input: "sakqh2", count: 4},
		{name: "empty", input: "", count: 0},
		{name: "invalid suit letter", input: "XQ2", wantErr: true},
		{name: "rank before any suit", input: "Q2S3", wantErr: true},
		{name: "character outside both alphabets", input: "SAK?Q", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseHand(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cards) != tt.count {
				t.Errorf("got %d cards, want %d", len(cards), tt.count)
			}
		})
	}
}

func TestParseHandAssignsSuits(t *testing.T) {
	cards, err := ParseHand("S2HA76")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Card{
		{Suit: models.Spades, Rank: models.RankTwo},
		{Suit: models.Hearts, Rank: models.RankAce},
		{Suit: models.Hearts, Rank: models.RankSeven},
		{Suit: models.Hearts, Rank: models.RankSix},
	}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i, c := range want {
		if cards[i] != c {
			t.Errorf("card %d: got %v, want %v", i, cards[i], c)
		}
	}
}

// Parsing a hand and rendering it back must preserve the multiset of cards.
func TestHandRoundTrip(t *testing.T) {
	hands := []string{
		"S753H9DK7652CJT93",
		"SKQJ6HKJ83DJCAK64",
		"S2HA76DAQT84CQ875",
		"SAT984HQT542D93C2",
	}
	for _, h := range hands {
		t.Run(h, func(t *testing.T) {
			first, err := ParseHand(h)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			second, err := ParseHand(models.HandString(first))
			if err != nil {
				t.Fatalf("re-parse: %v", err)
			}
			if !sameCards(first, second) {
				t.Errorf("round trip changed the hand: %v vs %v", first, second)
			}
		})
	}
}

func sameCards(a, b []models.Card) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(cs []models.Card) []int {
		ks := make([]int, len(cs))
		for i, c := range cs {
			ks[i] = models.CardIndex(c)
		}
		sort.Ints(ks)
		return ks
	}
	ka, kb := key(a), key(b)
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}
