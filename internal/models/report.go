package models

// SkipReason classifies why a board was dropped instead of emitted.
type SkipReason string

const (
	SkipMalformedHand  SkipReason = "malformed hand"
	SkipMissingHands   SkipReason = "missing hands"
	SkipDuplicateCard  SkipReason = "duplicate card"
	SkipIncompleteDeck SkipReason = "incomplete deck"
	SkipBadCard        SkipReason = "bad card token"
	SkipBadBid         SkipReason = "bad bid token"
	SkipMissingOutcome SkipReason = "missing outcome"
	SkipUnknownLeader  SkipReason = "opening lead not in any hand"
)

// SkippedBoard records one dropped board: which one, where, and why.
type SkippedBoard struct {
	BoardID string     `json:"boardId"`
	Line    int        `json:"line"`
	Reason  SkipReason `json:"reason"`
	Detail  string     `json:"detail,omitempty"`
}

// Report aggregates the outcome of one conversion run. Every input board
// is accounted for: accepted or listed in Skipped with a reason.
type Report struct {
	Accepted int            `json:"accepted"`
	Skipped  []SkippedBoard `json:"skipped,omitempty"`
}

// ConvertResult bundles the boards accepted from one transcript with the
// run report.
type ConvertResult struct {
	Source string   `json:"source,omitempty"`
	Boards []*Board `json:"boards"`
	Report *Report  `json:"report,omitempty"`
}
