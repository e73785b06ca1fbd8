// Package sim replays a board's play sequence trick by trick to derive
// how many tricks the declaring partnership won.
package sim

import (
	"fmt"

	"github.com/deckside/lin-converter/internal/models"
)

// Leader returns the seat whose hand holds the given card. It identifies
// the opening leader when the transcript does not state one.
func Leader(hands [4][]models.Card, first models.Card) (models.Seat, error) {
	for seat := models.North; seat <= models.West; seat++ {
		for _, c := range hands[seat] {
			if c == first {
				return seat, nil
			}
		}
	}
	return 0, fmt.Errorf("card %s not found in any hand", first)
}

// DeclarerTricks partitions the play sequence into consecutive groups of
// four cards and tallies the tricks won by the declarer's partnership.
// A trailing group smaller than four is discarded, never counted. The
// winner of each trick leads the next.
func DeclarerTricks(plays []models.Card, trump models.Strain, leader, declarer models.Seat) int {
	tricks := 0
	for start := 0; start+4 <= len(plays); start += 4 {
		trick := plays[start : start+4]
		led := trick[0].Suit

		best, bestValue := 0, -1
		for i, c := range trick {
			if v := cardValue(c, trump, led); v > bestValue {
				best, bestValue = i, v
			}
		}

		winner := (leader + models.Seat(best)) % 4
		if winner.SameSide(declarer) {
			tricks++
		}
		leader = winner
	}
	return tricks
}

// cardValue ranks a card within one trick: trumps beat everything, cards
// of the led suit compete on rank, anything else cannot win. Ranks within
// a suit are unique, so ties cannot occur.
func cardValue(c models.Card, trump models.Strain, led models.Suit) int {
	switch {
	case c.Suit.Strain() == trump:
		return 100 + int(c.Rank)
	case c.Suit == led:
		return int(c.Rank)
	default:
		return 0
	}
}
