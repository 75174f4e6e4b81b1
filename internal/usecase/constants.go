package usecase

import "time"

const (
	// SuggestionCacheTTL bounds how long a cached suggestion set may be
	// served before reconciliation runs again. Decisions and imports
	// invalidate the cache immediately; the TTL only covers ledger
	// mutations made outside this service.
	SuggestionCacheTTL = 10 * time.Minute
)
