package matcher

import (
	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
)

const baseScore = 100

// ScoreCandidate turns a candidate into an immutable PotentialTransfer.
//
// The score starts at 100, loses DayPenalty points per day between the two
// dates, loses the relative magnitude mismatch (as a percentage) times
// AmountPenalty, and is floored at 0. The function is referentially
// transparent: identical inputs always yield an identical PotentialTransfer.
//
// A malformed candidate (same-sign amounts, a transaction paired with
// itself, both sides on one account) is a programming-contract failure and
// fails fast with ErrInvalidCandidate or ErrSameAccount rather than being
// silently skipped.
func ScoreCandidate(c Candidate, cfg Config) (*domain.PotentialTransfer, error) {
	if c.Outgoing == nil || c.Incoming == nil || c.Outgoing.ID == c.Incoming.ID {
		return nil, domain.ErrInvalidCandidate
	}

	if !c.Outgoing.IsOutflow() || !c.Incoming.IsInflow() {
		return nil, domain.ErrInvalidCandidate
	}

	if c.Outgoing.AccountID == c.Incoming.AccountID {
		return nil, domain.ErrSameAccount
	}

	dayDiff := domain.DaysBetween(c.Outgoing.Date, c.Incoming.Date)

	magOut := c.Outgoing.Magnitude()
	magIn := c.Incoming.Magnitude()
	amountDiff := magOut.Sub(magIn).Abs()
	relDiff := amountDiff.Div(decimal.Max(magOut, magIn)).InexactFloat64()

	score := baseScore - float64(dayDiff)*cfg.DayPenalty - relDiff*100*cfg.AmountPenalty
	if score < 0 {
		score = 0
	}

	return &domain.PotentialTransfer{
		Outgoing:         c.Outgoing,
		Incoming:         c.Incoming,
		OutgoingAccount:  c.OutgoingAccount,
		IncomingAccount:  c.IncomingAccount,
		Score:            score,
		MatchType:        classify(dayDiff, amountDiff, relDiff, cfg),
		Confidence:       band(score, cfg),
		DayDifference:    dayDiff,
		AmountDifference: amountDiff,
	}, nil
}

// ScoreCandidates scores every candidate, preserving order.
func ScoreCandidates(candidates []Candidate, cfg Config) ([]*domain.PotentialTransfer, error) {
	scored := make([]*domain.PotentialTransfer, 0, len(candidates))

	for _, c := range candidates {
		pt, err := ScoreCandidate(c, cfg)
		if err != nil {
			return nil, err
		}

		scored = append(scored, pt)
	}

	return scored, nil
}

func classify(dayDiff int, amountDiff decimal.Decimal, relDiff float64, cfg Config) domain.MatchType {
	switch {
	case dayDiff == 0 && amountDiff.IsZero():
		return domain.MatchExact
	case dayDiff <= cfg.CloseDayWindow && relDiff <= cfg.CloseRelativeTolerance:
		return domain.MatchClose
	default:
		return domain.MatchLoose
	}
}

func band(score float64, cfg Config) domain.ConfidenceBand {
	switch {
	case score >= cfg.HighConfidenceThreshold:
		return domain.ConfidenceHigh
	case score >= cfg.MediumConfidenceThreshold:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
