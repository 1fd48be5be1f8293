package models

import "time"

// Expense is a payment made by one member on behalf of the group.
// Its splits are owned by it and removed with it.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g., "Dinner", "Cab to airport").
	Description string

	// Amount is the total paid, always > 0.
	Amount float64

	// PaidBy is the profile ID of the member who paid.
	PaidBy string

	// Date is the day the expense happened.
	Date time.Time

	// Notes is an optional free-form comment.
	Notes string

	// Splits are the members' shares. Their sum is not forced to equal Amount.
	Splits []ExpenseSplit

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// CreatedBy is the profile ID that recorded the expense.
	CreatedBy string
}

// ExpenseSplit is one member's share of an expense.
type ExpenseSplit struct {
	ExpenseID string
	MemberID  string
	Share     float64
}
