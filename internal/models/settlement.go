package models

// SettlementStatus tracks whether a recorded repayment has actually happened.
type SettlementStatus string

const (
	SettlementPending SettlementStatus = "pending"
	SettlementSettled SettlementStatus = "settled"
)

// Valid reports whether s is a known status.
func (s SettlementStatus) Valid() bool {
	return s == SettlementPending || s == SettlementSettled
}

// Settlement represents a payment between group members to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromMemberID is the member who paid (debtor settling up).
	FromMemberID string

	// ToMemberID is the member who received payment (creditor being paid).
	ToMemberID string

	// Amount is the payment amount.
	Amount float64

	// Status is pending until the receiver confirms the money arrived.
	Status SettlementStatus

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the profile ID who recorded this settlement.
	CreatedBy string

	// Note is an optional description for the settlement.
	Note string
}
