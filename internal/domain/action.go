package domain

// ActionKind is the kind of decision a caller makes over a suggestion.
type ActionKind string

const (
	ActionPair   ActionKind = "pair"
	ActionIgnore ActionKind = "ignore"
	ActionManual ActionKind = "manual"
	ActionUnpair ActionKind = "unpair"
)

// TransferPairAction is a user or system decision over one outgoing
// transaction and, for pair/manual, exactly one incoming transaction.
// It is consumed immediately by the decision ledger and never held across
// reconciliation runs.
type TransferPairAction struct {
	Kind       ActionKind
	UserID     string
	OutgoingID string
	IncomingID string
	PairID     string
	Override   bool
}

// Validate validates the action shape before it touches the store.
func (a *TransferPairAction) Validate() error {
	if a.OutgoingID == "" {
		return ErrInvalidAction
	}

	switch a.Kind {
	case ActionPair:
		if a.IncomingID == "" || a.IncomingID == a.OutgoingID {
			return ErrInvalidAction
		}
	case ActionManual:
		if a.IncomingID == "" || a.IncomingID == a.OutgoingID {
			return ErrInvalidAction
		}
		if a.PairID == "" || a.PairID == IgnoredPairID {
			return ErrInvalidAction
		}
	case ActionIgnore, ActionUnpair:
		// Outgoing transaction only.
	default:
		return ErrInvalidAction
	}

	return nil
}
