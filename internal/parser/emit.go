package parser

import (
	"fmt"

	"github.com/deckside/lin-converter/internal/models"
)

// validateBoard decides whether a finalized board is minimally useful:
// all four hands present and forming an exact 52-card partition, plus at
// least one outcome source (explicit or simulated trick count, or failing
// that an opening lead). Boards failing the check are dropped with a
// reason; a drop is never fatal to the run.
func validateBoard(b *models.Board) (models.SkipReason, string, bool) {
	if !b.HandsSet {
		return models.SkipMissingHands, "", false
	}

	var seen [52]bool
	total := 0
	for seat := models.North; seat <= models.West; seat++ {
		for _, c := range b.Hands[seat] {
			i := models.CardIndex(c)
			if i < 0 {
				return models.SkipMalformedHand, fmt.Sprintf("unknown card %s", c), false
			}
			if seen[i] {
				return models.SkipDuplicateCard, fmt.Sprintf("%s dealt twice", c), false
			}
			seen[i] = true
			total++
		}
	}
	if total != 52 {
		return models.SkipIncompleteDeck, fmt.Sprintf("%d of 52 cards dealt", total), false
	}

	if b.Tricks == nil && b.OpeningLead == nil {
		return models.SkipMissingOutcome, "", false
	}
	if b.Tricks != nil && (*b.Tricks < 0 || *b.Tricks > 13) {
		return models.SkipMissingOutcome, fmt.Sprintf("trick count %d out of range", *b.Tricks), false
	}
	return "", "", true
}
