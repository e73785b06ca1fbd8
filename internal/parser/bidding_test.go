package parser

import (
	"testing"

	"github.com/deckside/lin-converter/internal/models"
)

func bid(seat models.Seat, tok string) models.Bid {
	return models.Bid{Seat: seat, Token: tok}
}

func TestAnalyzeBidding(t *testing.T) {
	tests := []struct {
		name     string
		bids     []models.Bid
		level    int
		strain   models.Strain
		declarer models.Seat
	}{
		{
			name: "last numeric bid wins",
			bids: []models.Bid{
				bid(models.North, "1C"),
				bid(models.East, "1H"),
				bid(models.South, "2H"),
				bid(models.West, "p"),
				bid(models.North, "p"),
				bid(models.East, "p"),
			},
			level: 2, strain: models.StrainHearts, declarer: models.South,
		},
		{
			name: "declarer is the last numeric bidder, not the first strain bidder",
			bids: []models.Bid{
				bid(models.East, "1H"),
				bid(models.South, "p"),
				bid(models.West, "4H"),
				bid(models.North, "p"),
				bid(models.East, "p"),
				bid(models.South, "p"),
			},
			level: 4, strain: models.StrainHearts, declarer: models.West,
		},
		{
			name: "N maps to no-trump",
			bids: []models.Bid{
				bid(models.West, "6NTx"),
				bid(models.North, "p"),
				bid(models.East, "p"),
				bid(models.South, "p"),
			},
			level: 6, strain: models.StrainNoTrump, declarer: models.West,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := AnalyzeBidding(tt.bids)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c == nil {
				t.Fatal("expected a contract, got nil")
			}
			if c.Level != tt.level || c.Strain != tt.strain || c.Declarer != tt.declarer {
				t.Errorf("got %d%s by %v, want %d%s by %v",
					c.Level, c.Strain, c.Declarer, tt.level, tt.strain, tt.declarer)
			}
		})
	}
}

func TestAnalyzeBiddingUnresolved(t *testing.T) {
	tests := []struct {
		name string
		bids []models.Bid
	}{
		{name: "empty auction", bids: nil},
		{
			name: "all pass",
			bids: []models.Bid{
				bid(models.North, "p"),
				bid(models.East, "p"),
				bid(models.South, "p"),
				bid(models.West, "p"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := AnalyzeBidding(tt.bids)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c != nil {
				t.Errorf("expected unresolved contract, got %+v", c)
			}
		})
	}
}

func TestAnalyzeBiddingBadToken(t *testing.T) {
	for _, tok := range []string{"1", "2x"} {
		t.Run(tok, func(t *testing.T) {
			_, err := AnalyzeBidding([]models.Bid{bid(models.North, tok)})
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
