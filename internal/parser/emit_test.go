package parser

import (
	"testing"

	"github.com/deckside/lin-converter/internal/models"
)

// fullDeal deals each seat one whole suit: a valid 52-card partition.
func fullDeal() [4][]models.Card {
	var hands [4][]models.Card
	for i, s := range models.Suits {
		for r := models.RankTwo; r <= models.RankAce; r++ {
			hands[i] = append(hands[i], models.Card{Suit: s, Rank: r})
		}
	}
	return hands
}

func validFullBoard() *models.Board {
	tricks := 7
	return &models.Board{
		ID:       "b1",
		Hands:    fullDeal(),
		HandsSet: true,
		Tricks:   &tricks,
	}
}

func TestValidateBoard(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Board)
		reason models.SkipReason
		ok     bool
	}{
		{
			name:   "complete board passes",
			mutate: func(*models.Board) {},
			ok:     true,
		},
		{
			name:   "missing hands",
			mutate: func(b *models.Board) { b.HandsSet = false },
			reason: models.SkipMissingHands,
		},
		{
			name: "duplicate card across hands",
			mutate: func(b *models.Board) {
				b.Hands[models.East][0] = b.Hands[models.North][0]
			},
			reason: models.SkipDuplicateCard,
		},
		{
			name: "incomplete deck",
			mutate: func(b *models.Board) {
				b.Hands[models.West] = b.Hands[models.West][:12]
			},
			reason: models.SkipIncompleteDeck,
		},
		{
			name: "no outcome and no lead",
			mutate: func(b *models.Board) {
				b.Tricks = nil
			},
			reason: models.SkipMissingOutcome,
		},
		{
			name: "opening lead alone is enough",
			mutate: func(b *models.Board) {
				b.Tricks = nil
				b.OpeningLead = &models.Card{Suit: models.Hearts, Rank: models.RankNine}
			},
			ok: true,
		},
		{
			name: "trick count out of range",
			mutate: func(b *models.Board) {
				n := 14
				b.Tricks = &n
			},
			reason: models.SkipMissingOutcome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validFullBoard()
			tt.mutate(b)
			reason, _, ok := validateBoard(b)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v (reason %q)", ok, tt.ok, reason)
			}
			if !tt.ok && reason != tt.reason {
				t.Errorf("reason: got %q, want %q", reason, tt.reason)
			}
		})
	}
}
