package parser

import (
	"bufio"
	"fmt"
	"io"

	"github.com/deckside/lin-converter/internal/models"
)

// Parser converts a tag-delimited transcript stream into normalized
// boards. The zero value is ready to use: bad boards are skipped with a
// recorded reason and the run continues. With Strict set, the first
// skipped board instead aborts the run with its reason as the error.
type Parser struct {
	Strict bool
}

// Parse reads r line by line, feeding tokens through the accumulator and
// calling emit for every accepted board. Memory stays bounded by the one
// in-progress board; emit returning an error stops the run early (no
// partially-assembled board is ever emitted). The returned report accounts
// for every board seen, accepted or skipped.
func (p *Parser) Parse(r io.Reader, emit func(*models.Board) error) (*models.Report, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	acc := &Accumulator{}
	report := &models.Report{}
	line := 0

	for sc.Scan() {
		line++
		for _, tok := range Tokens(sc.Text()) {
			if err := p.settle(acc.Consume(tok, line), report, emit); err != nil {
				return report, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return report, fmt.Errorf("read transcript: %w", err)
	}

	if err := p.settle(acc.Flush(), report, emit); err != nil {
		return report, err
	}
	return report, nil
}

// ParseAll collects every accepted board into a slice.
func (p *Parser) ParseAll(r io.Reader) ([]*models.Board, *models.Report, error) {
	var boards []*models.Board
	report, err := p.Parse(r, func(b *models.Board) error {
		boards = append(boards, b)
		return nil
	})
	return boards, report, err
}

// settle routes one finalization outcome: accepted boards go to emit,
// skipped ones into the report (or, in strict mode, become the run error).
func (p *Parser) settle(out *Outcome, report *models.Report, emit func(*models.Board) error) error {
	if out == nil {
		return nil
	}
	if out.Board != nil {
		report.Accepted++
		return emit(out.Board)
	}
	s := out.Skip
	if p.Strict {
		if s.Detail != "" {
			return fmt.Errorf("board %q (line %d): %s: %s", s.BoardID, s.Line, s.Reason, s.Detail)
		}
		return fmt.Errorf("board %q (line %d): %s", s.BoardID, s.Line, s.Reason)
	}
	report.Skipped = append(report.Skipped, *s)
	return nil
}
