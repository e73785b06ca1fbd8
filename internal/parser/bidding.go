package parser

import (
	"fmt"
	"strings"

	"github.com/deckside/lin-converter/internal/models"
)

// AnalyzeBidding derives the contract from a seat-assigned bid sequence.
// Scanning from the end, the first bid whose token starts with a level
// digit 1-7 is the qualifying final bid; its strain letter maps C/D/H/S
// through and N to no-trump, and its seat becomes the declarer.
//
// Declarer here is the seat that made the last numeric bid of the auction.
// Real auction rules credit the first partner of the winning side to name
// the final strain; this simplification is intentional and must stay.
//
// A sequence with no numeric bid (all passes, or empty) yields a nil
// contract, which is a valid terminal state, not an error.
func AnalyzeBidding(bids []models.Bid) (*models.Contract, error) {
	for i := len(bids) - 1; i >= 0; i-- {
		tok := strings.TrimSpace(bids[i].Token)
		if tok == "" || tok[0] < '1' || tok[0] > '7' {
			continue
		}
		if len(tok) < 2 {
			return nil, fmt.Errorf("bad bid token %q: level without strain", tok)
		}
		strain, ok := models.StrainFromChar(tok[1])
		if !ok {
			return nil, fmt.Errorf("bad bid token %q: unknown strain %q", tok, string(rune(tok[1])))
		}
		return &models.Contract{
			Level:    int(tok[0] - '0'),
			Strain:   strain,
			Declarer: bids[i].Seat,
			Token:    tok,
		}, nil
	}
	return nil, nil
}
