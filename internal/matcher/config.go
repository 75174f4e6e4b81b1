package matcher

import "github.com/shopspring/decimal"

// Config holds every tunable of the reconciliation core. The numeric
// thresholds are deliberately configuration, not constants.
type Config struct {
	// Candidate generation
	DayWindow               int             // max days between the two sides (default 5)
	RelativeAmountTolerance float64         // relative magnitude mismatch (default 0.02)
	AbsoluteAmountTolerance decimal.Decimal // absolute magnitude mismatch (default 1.00)

	// Scoring
	DayPenalty    float64 // points lost per day of distance (default 10)
	AmountPenalty float64 // multiplier on the relative mismatch (default 1)

	// Match-type classification
	CloseDayWindow         int     // max days for a "close" match (default 2)
	CloseRelativeTolerance float64 // max relative mismatch for "close" (default 0.01)

	// Confidence banding
	HighConfidenceThreshold   float64 // score at or above is "high" (default 80)
	MediumConfidenceThreshold float64 // score at or above is "medium" (default 50)
}

// DefaultConfig returns the default reconciliation configuration.
func DefaultConfig() Config {
	return Config{
		DayWindow:                 5,
		RelativeAmountTolerance:   0.02,
		AbsoluteAmountTolerance:   decimal.NewFromInt(1),
		DayPenalty:                10,
		AmountPenalty:             1,
		CloseDayWindow:            2,
		CloseRelativeTolerance:    0.01,
		HighConfidenceThreshold:   80,
		MediumConfidenceThreshold: 50,
	}
}
