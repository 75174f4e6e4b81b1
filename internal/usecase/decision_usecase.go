package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/iho/transfermatch/internal/domain"
)

// DecisionUseCase is the decision ledger: the single mutation gateway of the
// reconciliation core. Every decision is applied all-or-nothing inside one
// database transaction, with both rows re-read under lock immediately before
// writing so a stale suggestion fails with ErrAlreadyResolved instead of
// double-pairing money.
type DecisionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	idGen           IDGenerator
	retrier         Retrier
	cache           Cache
}

// NewDecisionUseCase creates a new DecisionUseCase. retrier and cache may be
// nil to disable conflict retries and cache invalidation.
func NewDecisionUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *DecisionUseCase {
	return &DecisionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		retrier:         retrier,
		cache:           cache,
	}
}

// ApplyDecision applies a TransferPairAction against the ledger and returns
// the transfer-pair identifier the decision resulted in (the minted one for
// pair, the caller's for manual, the ignored sentinel for ignore, the
// cleared one for unpair).
//
// The core never retries business failures; only storage-level
// serialization conflicts are replayed through the retrier.
func (uc *DecisionUseCase) ApplyDecision(ctx context.Context, action domain.TransferPairAction) (string, error) {
	if err := action.Validate(); err != nil {
		return "", err
	}

	var pairID string

	apply := func() error {
		var err error
		pairID, err = uc.applyOnce(ctx, action)

		return err
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, apply)
	} else {
		err = apply()
	}

	if err != nil {
		return "", err
	}

	if uc.cache != nil && action.UserID != "" {
		_ = uc.cache.Delete(ctx, suggestionCacheKey(action.UserID))
	}

	return pairID, nil
}

func (uc *DecisionUseCase) applyOnce(ctx context.Context, action domain.TransferPairAction) (string, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var pairID string

	switch action.Kind {
	case domain.ActionPair, domain.ActionManual:
		pairID, err = uc.applyPair(ctx, tx, action)
	case domain.ActionIgnore:
		pairID, err = uc.applyIgnore(ctx, tx, action)
	case domain.ActionUnpair:
		pairID, err = uc.applyUnpair(ctx, tx, action)
	default:
		err = domain.ErrInvalidAction
	}

	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	return pairID, nil
}

// applyPair handles both pair (minted identifier) and manual (caller
// supplied identifier) decisions.
func (uc *DecisionUseCase) applyPair(ctx context.Context, tx Transaction, action domain.TransferPairAction) (string, error) {
	outgoing, incoming, err := uc.lockPair(ctx, tx, action.OutgoingID, action.IncomingID)
	if err != nil {
		return "", err
	}

	if !outgoing.IsOutflow() || !incoming.IsInflow() {
		return "", domain.ErrInvalidCandidate
	}

	if outgoing.AccountID == incoming.AccountID {
		return "", domain.ErrSameAccount
	}

	if !action.Override && (outgoing.Resolved() || incoming.Resolved()) {
		return "", domain.ErrAlreadyResolved
	}

	pairID := action.PairID
	if action.Kind == domain.ActionPair {
		pairID = uc.idGen.Generate()
	}

	if action.Kind == domain.ActionManual {
		// A manual identifier must not collide with an unrelated pairing.
		members, err := uc.transactionRepo.ListByTransferPair(ctx, tx, pairID)
		if err != nil {
			return "", err
		}

		for _, m := range members {
			if m.ID != outgoing.ID && m.ID != incoming.ID {
				return "", domain.ErrInvalidReference
			}
		}
	}

	now := time.Now().UTC()

	if err := uc.transactionRepo.SetTransferPair(ctx, tx, outgoing.ID, &pairID, now); err != nil {
		return "", err
	}

	if err := uc.transactionRepo.SetTransferPair(ctx, tx, incoming.ID, &pairID, now); err != nil {
		return "", err
	}

	return pairID, nil
}

func (uc *DecisionUseCase) applyIgnore(ctx context.Context, tx Transaction, action domain.TransferPairAction) (string, error) {
	outgoing, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, action.OutgoingID)
	if err != nil {
		return "", err
	}

	if !action.Override && outgoing.Resolved() {
		return "", domain.ErrAlreadyResolved
	}

	sentinel := domain.IgnoredPairID
	if err := uc.transactionRepo.SetTransferPair(ctx, tx, outgoing.ID, &sentinel, time.Now().UTC()); err != nil {
		return "", err
	}

	return sentinel, nil
}

// applyUnpair is the symmetric inverse of pair: it clears the pair
// identifier from every transaction carrying it, returning them to
// Unresolved.
func (uc *DecisionUseCase) applyUnpair(ctx context.Context, tx Transaction, action domain.TransferPairAction) (string, error) {
	outgoing, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, action.OutgoingID)
	if err != nil {
		return "", err
	}

	if !outgoing.Resolved() {
		return "", domain.ErrNotPaired
	}

	pairID := *outgoing.TransferPairID
	now := time.Now().UTC()

	if pairID == domain.IgnoredPairID {
		if err := uc.transactionRepo.SetTransferPair(ctx, tx, outgoing.ID, nil, now); err != nil {
			return "", err
		}

		return pairID, nil
	}

	members, err := uc.transactionRepo.ListByTransferPair(ctx, tx, pairID)
	if err != nil {
		return "", err
	}

	for _, m := range members {
		if err := uc.transactionRepo.SetTransferPair(ctx, tx, m.ID, nil, now); err != nil {
			return "", err
		}
	}

	return pairID, nil
}

// lockPair row-locks both sides in sorted ID order (deadlock prevention).
func (uc *DecisionUseCase) lockPair(ctx context.Context, tx Transaction, outgoingID, incomingID string) (outgoing, incoming *domain.Transaction, err error) {
	ids := []string{outgoingID, incomingID}
	sort.Strings(ids)

	locked := make(map[string]*domain.Transaction, 2)

	for _, id := range ids {
		txn, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, nil, err
		}

		locked[id] = txn
	}

	return locked[outgoingID], locked[incomingID], nil
}
