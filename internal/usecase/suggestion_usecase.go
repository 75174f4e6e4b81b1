package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iho/transfermatch/internal/domain"
	"github.com/iho/transfermatch/internal/matcher"
)

// SuggestionUseCase produces transfer suggestions for a user's ledger.
// It fetches a snapshot through the repositories, runs the pure matcher
// pipeline over it and caches the result per user.
type SuggestionUseCase struct {
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	cache           Cache
	cfg             matcher.Config
}

// NewSuggestionUseCase creates a new SuggestionUseCase. cache may be nil to
// disable result caching.
func NewSuggestionUseCase(
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	cache Cache,
	cfg matcher.Config,
) *SuggestionUseCase {
	return &SuggestionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cache:           cache,
		cfg:             cfg,
	}
}

// GenerateSuggestionsInput represents input for generating suggestions.
type GenerateSuggestionsInput struct {
	From   *time.Time
	To     *time.Time
	UserID string
}

// SuggestionSet is the outcome of one reconciliation run: the accepted
// pairings plus the rejected remainder kept for manual resolution.
type SuggestionSet struct {
	Accepted []*domain.PotentialTransfer `json:"accepted"`
	Rejected []*domain.PotentialTransfer `json:"rejected"`
}

// GenerateSuggestions runs reconciliation over the user's current ledger
// snapshot. The computation itself is pure; re-running it over an unchanged
// ledger yields identical results, so serving a cached set is safe.
//
// Only unscoped requests are cached: date-ranged requests bypass the cache
// entirely rather than multiplying keys per range.
func (uc *SuggestionUseCase) GenerateSuggestions(ctx context.Context, input GenerateSuggestionsInput) (*SuggestionSet, error) {
	cacheable := uc.cache != nil && input.From == nil && input.To == nil

	if cacheable {
		if cached, err := uc.cache.Get(ctx, suggestionCacheKey(input.UserID)); err == nil {
			var set SuggestionSet
			if err := json.Unmarshal(cached, &set); err == nil {
				return &set, nil
			}
		}
	}

	transactions, err := uc.transactionRepo.ListByUser(ctx, input.UserID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	accepted, rejected, err := matcher.Suggest(transactions, accounts, uc.cfg)
	if err != nil {
		return nil, err
	}

	set := &SuggestionSet{Accepted: accepted, Rejected: rejected}

	if cacheable {
		if payload, err := json.Marshal(set); err == nil {
			// Best effort: a failed cache write never fails the request.
			_ = uc.cache.Set(ctx, suggestionCacheKey(input.UserID), payload, SuggestionCacheTTL)
		}
	}

	return set, nil
}

func suggestionCacheKey(userID string) string {
	return "suggestions:" + userID
}
