package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Reconciliation metrics
	SuggestionRuns      prometheus.Counter
	SuggestionsAccepted prometheus.Histogram
	SuggestionsRejected prometheus.Histogram
	SuggestionDuration  prometheus.Histogram
	DecisionsApplied    *prometheus.CounterVec
	DecisionErrors      *prometheus.CounterVec

	// Ledger metrics
	TransactionsImported prometheus.Counter
	AccountsCreated      prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SuggestionRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transfermatch_suggestion_runs_total",
			Help: "Total number of reconciliation runs",
		}),
		SuggestionsAccepted: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transfermatch_suggestions_accepted",
			Help:    "Accepted suggestions per reconciliation run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		SuggestionsRejected: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transfermatch_suggestions_rejected",
			Help:    "Rejected candidates per reconciliation run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		SuggestionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transfermatch_suggestion_duration_seconds",
			Help:    "Duration of reconciliation runs",
			Buckets: prometheus.DefBuckets,
		}),
		DecisionsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfermatch_decisions_applied_total",
				Help: "Total decisions applied by kind",
			},
			[]string{"kind"},
		),
		DecisionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfermatch_decision_errors_total",
				Help: "Total decision failures by kind",
			},
			[]string{"kind"},
		),

		TransactionsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transfermatch_transactions_imported_total",
			Help: "Total number of ledger transactions imported",
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transfermatch_accounts_created_total",
			Help: "Total number of accounts created",
		}),
	}
}
