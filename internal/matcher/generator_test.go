package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/matcher"
)

func TestGenerateCandidates_StructuralEligibility(t *testing.T) {
	cfg := matcher.DefaultConfig()

	tests := []struct {
		name         string
		transactions []*domain.Transaction
		wantPairs    int
	}{
		{
			name: "matching pair across accounts",
			transactions: []*domain.Transaction{
				txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
				txn(t, "in-1", "acc-b", "500.00", "2024-01-10"),
			},
			wantPairs: 1,
		},
		{
			name: "same account never pairs",
			transactions: []*domain.Transaction{
				txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
				txn(t, "in-1", "acc-a", "500.00", "2024-01-10"),
			},
			wantPairs: 0,
		},
		{
			name: "same sign never pairs",
			transactions: []*domain.Transaction{
				txn(t, "in-1", "acc-a", "500.00", "2024-01-10"),
				txn(t, "in-2", "acc-b", "500.00", "2024-01-10"),
			},
			wantPairs: 0,
		},
		{
			name: "outside day window",
			transactions: []*domain.Transaction{
				txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
				txn(t, "in-1", "acc-b", "500.00", "2024-01-16"),
			},
			wantPairs: 0,
		},
		{
			name: "at day window boundary",
			transactions: []*domain.Transaction{
				txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
				txn(t, "in-1", "acc-b", "500.00", "2024-01-15"),
			},
			wantPairs: 1,
		},
		{
			name: "within relative tolerance",
			transactions: []*domain.Transaction{
				txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
				txn(t, "in-1", "acc-b", "490.00", "2024-01-10"),
			},
			wantPairs: 1,
		},
		{
			name: "outside both tolerances",
			transactions: []*domain.Transaction{
				txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
				txn(t, "in-1", "acc-b", "480.00", "2024-01-10"),
			},
			wantPairs: 0,
		},
		{
			name: "absolute tolerance is looser for small amounts",
			transactions: []*domain.Transaction{
				txn(t, "out-1", "acc-a", "-10.00", "2024-01-10"),
				txn(t, "in-1", "acc-b", "9.10", "2024-01-10"),
			},
			wantPairs: 1,
		},
		{
			name: "already paired outgoing excluded",
			transactions: []*domain.Transaction{
				resolved(txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"), "pair-1"),
				txn(t, "in-1", "acc-b", "500.00", "2024-01-10"),
			},
			wantPairs: 0,
		},
		{
			name: "ignored outgoing excluded",
			transactions: []*domain.Transaction{
				resolved(txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"), domain.IgnoredPairID),
				txn(t, "in-1", "acc-b", "500.00", "2024-01-10"),
			},
			wantPairs: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := matcher.GenerateCandidates(tt.transactions, testAccounts, cfg)
			assert.Len(t, candidates, tt.wantPairs)

			for _, c := range candidates {
				assert.True(t, c.Outgoing.IsOutflow())
				assert.True(t, c.Incoming.IsInflow())
				assert.False(t, c.Outgoing.Resolved())
				assert.False(t, c.Incoming.Resolved())
				assert.NotEqual(t, c.Outgoing.AccountID, c.Incoming.AccountID)
			}
		})
	}
}

func TestGenerateCandidates_BucketingCrossesWholeUnitBoundaries(t *testing.T) {
	// 499.60 vs 500.40 sit in different whole-unit buckets but differ by
	// only 0.80, well inside the absolute tolerance.
	transactions := []*domain.Transaction{
		txn(t, "out-1", "acc-a", "-499.60", "2024-01-10"),
		txn(t, "in-1", "acc-b", "500.40", "2024-01-10"),
	}

	candidates := matcher.GenerateCandidates(transactions, testAccounts, matcher.DefaultConfig())
	require.Len(t, candidates, 1)

	// Large amounts lean on the relative tolerance: 2% of 10200 is 200,
	// spanning many whole-unit buckets in both directions.
	transactions = []*domain.Transaction{
		txn(t, "out-2", "acc-a", "-10200.00", "2024-01-10"),
		txn(t, "in-2", "acc-b", "10000.00", "2024-01-10"),
		txn(t, "out-3", "acc-a", "-9810.00", "2024-01-10"),
	}

	candidates = matcher.GenerateCandidates(transactions, testAccounts, matcher.DefaultConfig())
	require.Len(t, candidates, 2)
}

func TestGenerateCandidates_AttachesAccounts(t *testing.T) {
	transactions := []*domain.Transaction{
		txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
		txn(t, "in-1", "acc-b", "500.00", "2024-01-10"),
	}

	candidates := matcher.GenerateCandidates(transactions, testAccounts, matcher.DefaultConfig())
	require.Len(t, candidates, 1)

	require.NotNil(t, candidates[0].OutgoingAccount)
	require.NotNil(t, candidates[0].IncomingAccount)
	assert.Equal(t, "acc-a", candidates[0].OutgoingAccount.ID)
	assert.Equal(t, "acc-b", candidates[0].IncomingAccount.ID)
}

func TestGenerateCandidates_DeterministicOrder(t *testing.T) {
	transactions := []*domain.Transaction{
		txn(t, "in-2", "acc-b", "500.00", "2024-01-12"),
		txn(t, "out-2", "acc-a", "-500.00", "2024-01-11"),
		txn(t, "in-1", "acc-c", "500.00", "2024-01-10"),
		txn(t, "out-1", "acc-a", "-500.00", "2024-01-10"),
	}

	cfg := matcher.DefaultConfig()
	first := matcher.GenerateCandidates(transactions, testAccounts, cfg)
	require.NotEmpty(t, first)

	// Sorted by outgoing then incoming ID regardless of input order.
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		inOrder := prev.Outgoing.ID < cur.Outgoing.ID ||
			(prev.Outgoing.ID == cur.Outgoing.ID && prev.Incoming.ID < cur.Incoming.ID)
		assert.True(t, inOrder, "candidates out of order at %d", i)
	}

	second := matcher.GenerateCandidates(transactions, testAccounts, cfg)
	assert.Equal(t, first, second)
}
