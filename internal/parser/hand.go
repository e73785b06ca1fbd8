package parser

import (
	"fmt"
	"strings"

	"github.com/deckside/lin-converter/internal/models"
)

// ParseHand parses one hand string from a deal tag: an optional leading
// decimal-digit run (ignored), then suit letters each followed by one or
// more rank characters. "SAK3H97" is ace, king and three of spades plus
// nine and seven of hearts. A rank before any suit letter, or a character
// outside both alphabets, is an error for this hand only.
func ParseHand(s string) ([]models.Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	var cards []models.Card
	var suit models.Suit
	haveSuit := false
	for ; i < len(s); i++ {
		ch := s[i]
		if models.IsSuit(ch) {
			suit = models.Suit(ch)
			haveSuit = true
			continue
		}
		r, ok := models.RankFromChar(ch)
		if !ok {
			return nil, fmt.Errorf("malformed hand %q: unexpected character %q at position %d", s, string(rune(ch)), i)
		}
		if !haveSuit {
			return nil, fmt.Errorf("malformed hand %q: rank %q before any suit letter", s, string(rune(ch)))
		}
		cards = append(cards, models.Card{Suit: suit, Rank: r})
	}
	return cards, nil
}
