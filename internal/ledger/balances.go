// Package ledger computes group balances and a settle-up plan from expenses
// and settlements. Everything here is pure and safe for concurrent use.
package ledger

// ExpenseForBalance is an expense with the minimal information needed for
// balance calculations.
type ExpenseForBalance struct {
	PaidBy string
	// Amount is informational. The payer is credited with the sum of the
	// splits, and shares are not checked against Amount here.
	Amount float64
	Splits []Split
}

// Split is one member's share of an expense.
type Split struct {
	MemberID string
	Share    float64
}

// SettlementForBalance is a recorded repayment. Only settled ones move balances.
type SettlementForBalance struct {
	FromMemberID string // Who paid (debtor settling up)
	ToMemberID   string // Who received (creditor being paid)
	Amount       float64
	Settled      bool
}

// Balance is one member's net position. Positive = owed money, Negative = owes money.
type Balance struct {
	MemberID string
	Amount   float64
}

// Balances holds one entry per member, in member order.
type Balances []Balance

// Get returns the balance for memberID, or 0 if the member is unknown.
func (b Balances) Get(memberID string) float64 {
	for _, bal := range b {
		if bal.MemberID == memberID {
			return bal.Amount
		}
	}
	return 0
}

// Map returns the balances keyed by member ID.
func (b Balances) Map() map[string]float64 {
	m := make(map[string]float64, len(b))
	for _, bal := range b {
		m[bal.MemberID] = bal.Amount
	}
	return m
}

// Sum adds every balance. It is zero for any output of ComputeBalances.
func (b Balances) Sum() float64 {
	var total float64
	for _, bal := range b {
		total += bal.Amount
	}
	return total
}

// ComputeBalances folds expenses and settled settlements into a signed
// balance per member.
//
// Algorithm:
//   - every member starts at 0; duplicate IDs keep their first position
//   - for each split: the sharer owes the share, the payer is owed it
//   - for each settled settlement: the payer's balance improves, the receiver's decreases
//
// References to members outside members are dropped, pair by pair, so the
// result always sums to zero. No rounding is applied.
func ComputeBalances(members []string, expenses []ExpenseForBalance, settlements []SettlementForBalance) Balances {
	index := make(map[string]int, len(members))
	balances := make(Balances, 0, len(members))
	for _, m := range members {
		if _, exists := index[m]; exists {
			continue
		}
		index[m] = len(balances)
		balances = append(balances, Balance{MemberID: m})
	}

	for _, exp := range expenses {
		payer, ok := index[exp.PaidBy]
		if !ok {
			continue
		}
		for _, split := range exp.Splits {
			sharer, ok := index[split.MemberID]
			if !ok {
				continue
			}
			// Self-pay splits land on the same entry and cancel out.
			balances[sharer].Amount -= split.Share
			balances[payer].Amount += split.Share
		}
	}

	for _, s := range settlements {
		if !s.Settled {
			continue
		}
		from, okFrom := index[s.FromMemberID]
		to, okTo := index[s.ToMemberID]
		if !okFrom || !okTo {
			continue
		}
		balances[from].Amount += s.Amount
		balances[to].Amount -= s.Amount
	}

	return balances
}
