// Package matcher implements the pure core of transfer reconciliation:
// candidate generation, scoring and pair resolution.
//
// A transfer between two of a user's own accounts shows up in the raw ledger
// as one outgoing and one incoming transaction with (nearly) the same
// magnitude a few days apart. The matcher finds those pairs:
//
//	candidates := matcher.GenerateCandidates(transactions, accounts, cfg)
//	scored, err := matcher.ScoreCandidates(candidates, cfg)
//	accepted, rejected := matcher.Resolve(scored)
//
// Every function in this package is free of side effects: identical inputs
// always yield identical outputs, which is what makes re-running
// reconciliation over an unchanged ledger idempotent.
package matcher

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/transfermatch/internal/domain"
)

// Candidate is a structurally eligible but unscored outgoing/incoming pair.
type Candidate struct {
	Outgoing        *domain.Transaction
	Incoming        *domain.Transaction
	OutgoingAccount *domain.Account
	IncomingAccount *domain.Account
}

// GenerateCandidates scans the transactions and produces every pair that is
// structurally eligible to be the two sides of one transfer: opposite signs,
// both unresolved, different accounts, dates within the day window and
// magnitudes within tolerance.
//
// Outgoing transactions are bucketed by whole-unit magnitude so each incoming
// transaction only probes the bucket range its tolerance can reach, instead
// of the full O(n^2) cross product. The result is fully materialized and
// sorted by (outgoing ID, incoming ID) so a fixed input always yields the
// same sequence.
func GenerateCandidates(transactions []*domain.Transaction, accounts []*domain.Account, cfg Config) []Candidate {
	accountsByID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountsByID[a.ID] = a
	}

	outgoingBuckets := make(map[int64][]*domain.Transaction)

	var incoming []*domain.Transaction

	for _, txn := range transactions {
		if txn.Resolved() || txn.Amount.IsZero() {
			continue
		}

		if txn.IsOutflow() {
			key := txn.Magnitude().IntPart()
			outgoingBuckets[key] = append(outgoingBuckets[key], txn)

			continue
		}

		incoming = append(incoming, txn)
	}

	var candidates []Candidate

	for _, in := range incoming {
		lo, hi := bucketRange(in.Magnitude(), cfg)

		for key := lo; key <= hi; key++ {
			for _, out := range outgoingBuckets[key] {
				if !eligible(out, in, cfg) {
					continue
				}

				candidates = append(candidates, Candidate{
					Outgoing:        out,
					Incoming:        in,
					OutgoingAccount: accountsByID[out.AccountID],
					IncomingAccount: accountsByID[in.AccountID],
				})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Outgoing.ID != candidates[j].Outgoing.ID {
			return candidates[i].Outgoing.ID < candidates[j].Outgoing.ID
		}

		return candidates[i].Incoming.ID < candidates[j].Incoming.ID
	})

	return candidates
}

// eligible checks every pairwise structural criterion.
func eligible(out, in *domain.Transaction, cfg Config) bool {
	if out.AccountID == in.AccountID {
		return false
	}

	if domain.DaysBetween(out.Date, in.Date) > cfg.DayWindow {
		return false
	}

	return withinTolerance(out.Magnitude(), in.Magnitude(), cfg)
}

// withinTolerance reports whether two magnitudes differ by no more than the
// looser of the absolute and the relative tolerance. The relative tolerance
// is taken against the larger magnitude, matching the scorer's relative
// difference.
func withinTolerance(a, b decimal.Decimal, cfg Config) bool {
	diff := a.Sub(b).Abs()
	larger := decimal.Max(a, b)
	relative := larger.Mul(decimal.NewFromFloat(cfg.RelativeAmountTolerance))

	return diff.LessThanOrEqual(decimal.Max(cfg.AbsoluteAmountTolerance, relative))
}

// bucketRange returns the inclusive whole-unit bucket keys an incoming
// magnitude m can possibly match. The lower bound follows from
// m - magOut <= max(abs, rel*m); the upper bound from
// magOut - m <= max(abs, rel*magOut), i.e. magOut <= max(m+abs, m/(1-rel)).
func bucketRange(m decimal.Decimal, cfg Config) (int64, int64) {
	rel := decimal.NewFromFloat(cfg.RelativeAmountTolerance)

	lower := m.Sub(decimal.Max(cfg.AbsoluteAmountTolerance, m.Mul(rel)))

	upper := m.Add(cfg.AbsoluteAmountTolerance)
	if one := decimal.NewFromInt(1); rel.LessThan(one) {
		upper = decimal.Max(upper, m.Div(one.Sub(rel)))
	}

	lo := lower.IntPart()
	if lo < 0 {
		lo = 0
	}

	return lo, upper.IntPart()
}
