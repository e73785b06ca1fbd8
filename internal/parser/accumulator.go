package parser

import (
	"strconv"
	"strings"

	"github.com/deckside/lin-converter/internal/models"
	"github.com/deckside/lin-converter/internal/sim"
)

// Recognized transcript tags. Everything else passes through unhandled.
const (
	tagBoard  = "qx" // board boundary, value is the board id
	tagDeal   = "md" // dealer digit + four hands, N,E,S,W order
	tagBid    = "mb" // one auction call
	tagPlay   = "pc" // one played card
	tagResult = "mc" // explicit declarer-side trick count
)

// boardFault remembers the first parse failure inside the open board.
// The board keeps consuming tokens and is dropped at finalization, so one
// bad board never derails its neighbours.
type boardFault struct {
	reason models.SkipReason
	detail string
}

// Accumulator assembles one board at a time from transcript tokens.
// It is Idle until a board tag opens a board, then Open until the next
// board tag or end of input finalizes it. The in-progress board is owned
// exclusively by the accumulator until hand-off.
type Accumulator struct {
	board   *models.Board
	order   *[4]models.Seat // bidding rotation, known once the deal tag arrives
	pending []string        // bid tokens seen before the rotation is known
	line    int             // line where the open board started
	fault   *boardFault
}

// Outcome is the result of finalizing one board: exactly one of Board or
// Skip is set.
type Outcome struct {
	Board *models.Board
	Skip  *models.SkippedBoard
}

// Consume feeds one token into the state machine. A non-nil Outcome is
// returned only when tok is a board boundary that closed a previous board.
func (a *Accumulator) Consume(tok Token, line int) *Outcome {
	if tok.Tag == tagBoard {
		out := a.finalize()
		a.board = &models.Board{ID: strings.TrimSpace(tok.Value)}
		a.order = nil
		a.pending = nil
		a.fault = nil
		a.line = line
		return out
	}
	if a.board == nil {
		// Idle: nothing to attach this token to.
		return nil
	}

	switch tok.Tag {
	case tagDeal:
		a.consumeDeal(tok.Value)
	case tagBid:
		a.consumeBid(tok.Value)
	case tagPlay:
		a.consumePlay(tok.Value)
	case tagResult:
		if n, err := strconv.Atoi(strings.TrimSpace(tok.Value)); err == nil {
			a.board.Tricks = &n
		}
	}
	return nil
}

// consumeDeal parses a deal tag value: an optional dealer digit 1-4, then
// four comma-separated hand strings in North,East,South,West order. The
// dealer digit fixes the bidding rotation and drains any buffered bids.
func (a *Accumulator) consumeDeal(val string) {
	v := strings.TrimSpace(val)
	if len(v) > 0 && v[0] >= '1' && v[0] <= '4' {
		order := models.SeatOrder(models.Seat(v[0] - '1'))
		a.order = &order
		v = v[1:]
	}

	var hands []string
	for _, h := range strings.Split(v, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hands = append(hands, h)
		}
	}
	if len(hands) == 4 {
		for seat := models.North; seat <= models.West; seat++ {
			cards, err := ParseHand(hands[seat])
			if err != nil {
				a.setFault(models.SkipMalformedHand, err.Error())
				break
			}
			a.board.Hands[seat] = cards
		}
		if a.fault == nil {
			a.board.HandsSet = true
		}
	}

	a.drainPending(a.board)
}

// consumeBid records one auction call. Until the rotation is known the raw
// token is buffered; afterwards the seat follows from how many calls have
// already been assigned.
func (a *Accumulator) consumeBid(val string) {
	tok := strings.TrimSpace(val)
	if tok == "" {
		return
	}
	if a.order == nil {
		a.pending = append(a.pending, tok)
		return
	}
	a.board.Bids = append(a.board.Bids, assignSeats(*a.order, len(a.board.Bids), []string{tok})...)
}

// consumePlay appends one played card; the first play of a board is also
// recorded as the opening lead.
func (a *Accumulator) consumePlay(val string) {
	tok := strings.TrimSpace(val)
	if tok == "" {
		return
	}
	card, err := models.ParseCard(tok)
	if err != nil {
		a.setFault(models.SkipBadCard, err.Error())
		return
	}
	a.board.Plays = append(a.board.Plays, card)
	if a.board.OpeningLead == nil {
		a.board.OpeningLead = &card
	}
}

// drainPending assigns every buffered bid in original arrival order, in one
// pass, before any further live bid is assigned. Bids arriving before the
// deal tag therefore get the same seats as if the deal tag had come first.
func (a *Accumulator) drainPending(b *models.Board) {
	if a.order == nil || len(a.pending) == 0 {
		return
	}
	b.Bids = append(b.Bids, assignSeats(*a.order, len(b.Bids), a.pending)...)
	a.pending = nil
}

// assignSeats maps bid tokens to seats by table rotation, continuing from
// count already-assigned calls. Pure function of its inputs.
func assignSeats(order [4]models.Seat, count int, toks []string) []models.Bid {
	bids := make([]models.Bid, 0, len(toks))
	for i, t := range toks {
		bids = append(bids, models.Bid{Seat: order[(count+i)%4], Token: t})
	}
	return bids
}

func (a *Accumulator) setFault(reason models.SkipReason, detail string) {
	if a.fault == nil {
		a.fault = &boardFault{reason: reason, detail: detail}
	}
}

// Flush finalizes the board still open at end of input, if any.
func (a *Accumulator) Flush() *Outcome {
	out := a.finalize()
	a.board = nil
	a.order = nil
	a.pending = nil
	a.fault = nil
	return out
}

// finalize closes the open board: drains buffered bids, derives the
// contract, simulates the play when no explicit trick count was given, and
// validates minimum completeness. Returns nil when no board is open.
func (a *Accumulator) finalize() *Outcome {
	b := a.board
	if b == nil {
		return nil
	}
	a.board = nil
	a.drainPending(b)

	skip := func(reason models.SkipReason, detail string) *Outcome {
		return &Outcome{Skip: &models.SkippedBoard{BoardID: b.ID, Line: a.line, Reason: reason, Detail: detail}}
	}

	if a.fault != nil {
		return skip(a.fault.reason, a.fault.detail)
	}

	contract, err := AnalyzeBidding(b.Bids)
	if err != nil {
		return skip(models.SkipBadBid, err.Error())
	}
	b.Contract = contract

	// Simulation only runs when no explicit mc count arrived and there is
	// a play sequence to replay. It needs a resolved declarer and a leader.
	if b.Tricks == nil && len(b.Plays) > 0 && b.Contract != nil && b.HandsSet {
		leader, err := sim.Leader(b.Hands, b.Plays[0])
		if err != nil {
			return skip(models.SkipUnknownLeader, err.Error())
		}
		tricks := sim.DeclarerTricks(b.Plays, b.Contract.Strain, leader, b.Contract.Declarer)
		b.Tricks = &tricks
	}

	if reason, detail, ok := validateBoard(b); !ok {
		return skip(reason, detail)
	}
	return &Outcome{Board: b}
}
