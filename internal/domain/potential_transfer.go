package domain

import "github.com/shopspring/decimal"

// MatchType classifies how tight a candidate pairing is.
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchClose MatchType = "close"
	MatchLoose MatchType = "loose"
)

// ConfidenceBand is the coarse bucket derived from the score. It drives UI
// urgency and is not part of the scoring math.
type ConfidenceBand string

const (
	ConfidenceHigh   ConfidenceBand = "high"
	ConfidenceMedium ConfidenceBand = "medium"
	ConfidenceLow    ConfidenceBand = "low"
)

// PotentialTransfer is a scored candidate pairing of exactly one outgoing and
// one incoming transaction. It is immutable once scored; re-scoring produces
// a new value.
type PotentialTransfer struct {
	Outgoing        *Transaction
	Incoming        *Transaction
	OutgoingAccount *Account
	IncomingAccount *Account
	MatchType       MatchType
	Confidence      ConfidenceBand
	AmountDifference decimal.Decimal
	Score           float64
	DayDifference   int
}

// Validate checks the structural invariants of a scored pair.
func (p *PotentialTransfer) Validate() error {
	if p.Outgoing == nil || p.Incoming == nil {
		return ErrInvalidCandidate
	}

	if p.Outgoing.ID == p.Incoming.ID {
		return ErrInvalidCandidate
	}

	if !p.Outgoing.IsOutflow() || !p.Incoming.IsInflow() {
		return ErrInvalidCandidate
	}

	return nil
}
