package matcher

import (
	"sort"

	"github.com/iho/transfermatch/internal/domain"
)

// Resolve deduplicates overlapping candidates so that no transaction appears
// in more than one accepted pair. Selection is greedy in descending score
// order; when scores tie, the candidate with the smaller day difference wins,
// then the smaller amount difference, then the lexicographically smaller
// outgoing (and finally incoming) transaction ID. The greedy pass
// approximates maximum-weight bipartite matching at near-linear cost.
//
// Rejected candidates are returned rather than discarded so a caller can
// still surface them for manual resolution.
func Resolve(candidates []*domain.PotentialTransfer) (accepted, rejected []*domain.PotentialTransfer) {
	ordered := make([]*domain.PotentialTransfer, len(candidates))
	copy(ordered, candidates)

	sort.Slice(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	claimed := make(map[string]bool, len(ordered)*2)

	for _, c := range ordered {
		if claimed[c.Outgoing.ID] || claimed[c.Incoming.ID] {
			rejected = append(rejected, c)
			continue
		}

		claimed[c.Outgoing.ID] = true
		claimed[c.Incoming.ID] = true
		accepted = append(accepted, c)
	}

	return accepted, rejected
}

// less orders candidates by descending score with the deterministic
// tie-break chain.
func less(a, b *domain.PotentialTransfer) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}

	if a.DayDifference != b.DayDifference {
		return a.DayDifference < b.DayDifference
	}

	if !a.AmountDifference.Equal(b.AmountDifference) {
		return a.AmountDifference.LessThan(b.AmountDifference)
	}

	if a.Outgoing.ID != b.Outgoing.ID {
		return a.Outgoing.ID < b.Outgoing.ID
	}

	return a.Incoming.ID < b.Incoming.ID
}

// Suggest runs the full pipeline: generate candidates, score them and
// resolve overlaps. It is pure over the supplied snapshot.
func Suggest(transactions []*domain.Transaction, accounts []*domain.Account, cfg Config) (accepted, rejected []*domain.PotentialTransfer, err error) {
	candidates := GenerateCandidates(transactions, accounts, cfg)

	scored, err := ScoreCandidates(candidates, cfg)
	if err != nil {
		return nil, nil, err
	}

	accepted, rejected = Resolve(scored)

	return accepted, rejected, nil
}
