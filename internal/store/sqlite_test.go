package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/deckside/lin-converter/internal/models"
)

func testBoard(id string, withContract bool) *models.Board {
	var hands [4][]models.Card
	for i, s := range models.Suits {
		for r := models.RankTwo; r <= models.RankAce; r++ {
			hands[i] = append(hands[i], models.Card{Suit: s, Rank: r})
		}
	}
	b := &models.Board{ID: id, Hands: hands, HandsSet: true}
	if withContract {
		tricks := 10
		lead := models.Card{Suit: models.Hearts, Rank: models.RankNine}
		b.Contract = &models.Contract{Level: 4, Strain: models.StrainSpades, Declarer: models.South, Token: "4S"}
		b.Tricks = &tricks
		b.OpeningLead = &lead
	}
	return b
}

func TestSaveAndCountBoards(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "boards.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	boards := []*models.Board{
		testBoard("o1", true),
		testBoard("o2", false), // unresolved fields stored as NULL
	}
	if err := s.SaveBoards(ctx, "match.lin", boards); err != nil {
		t.Fatalf("save boards: %v", err)
	}

	n, err := s.CountBoards(ctx, "match.lin")
	if err != nil {
		t.Fatalf("count boards: %v", err)
	}
	if n != 2 {
		t.Errorf("got %d boards, want 2", n)
	}

	n, err = s.CountBoards(ctx, "other.lin")
	if err != nil {
		t.Fatalf("count boards: %v", err)
	}
	if n != 0 {
		t.Errorf("got %d boards for unknown source, want 0", n)
	}
}

func TestSaveBoardsIsRepeatable(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "boards.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := s.SaveBoards(ctx, "match.lin", []*models.Board{testBoard("o1", true)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	n, err := s.CountBoards(ctx, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("got %d rows, want 2", n)
	}
}
