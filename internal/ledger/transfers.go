package ledger

import "sort"

// Epsilon is the rounding tolerance, one currency minor unit. Balances
// within Epsilon of zero count as settled.
const Epsilon = 0.01

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From   string  // Person who owes
	To     string  // Person who is owed
	Amount float64
}

type remaining struct {
	memberID string
	amount   float64
}

// PlanTransfers turns balances into an ordered list of payments that brings
// every member back to zero.
//
// Greedy matching: the largest remaining debtor pays the largest remaining
// creditor min(debt, credit). Ties keep the input order (stable sort). The
// plan has at most creditors+debtors-1 entries but is not guaranteed to be
// the smallest possible one. If credits and debits do not add up, the sweep
// simply stops when one side runs out.
func PlanTransfers(balances Balances) []Transfer {
	var creditors, debtors []remaining
	for _, bal := range balances {
		if bal.Amount > Epsilon {
			creditors = append(creditors, remaining{bal.MemberID, bal.Amount})
		} else if bal.Amount < -Epsilon {
			debtors = append(debtors, remaining{bal.MemberID, -bal.Amount})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		transfers = append(transfers, Transfer{
			From:   debtor.memberID,
			To:     creditor.memberID,
			Amount: amount,
		})

		debtor.amount -= amount
		creditor.amount -= amount

		// Both advance on an exact match.
		if debtor.amount < Epsilon {
			i++
		}
		if creditor.amount < Epsilon {
			j++
		}
	}

	return transfers
}

// PlanTransfersFromMap plans transfers for an unordered balance map. Members
// are ordered by ID first so equal amounts always resolve the same way.
func PlanTransfersFromMap(balances map[string]float64) []Transfer {
	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ordered := make(Balances, len(ids))
	for i, id := range ids {
		ordered[i] = Balance{MemberID: id, Amount: balances[id]}
	}
	return PlanTransfers(ordered)
}

// Apply returns a copy of balances with every transfer applied: the payer
// is credited, the receiver debited. Members unknown to balances are ignored.
func Apply(balances Balances, transfers []Transfer) Balances {
	out := make(Balances, len(balances))
	copy(out, balances)
	index := make(map[string]int, len(out))
	for i, bal := range out {
		index[bal.MemberID] = i
	}
	for _, t := range transfers {
		if i, ok := index[t.From]; ok {
			out[i].Amount += t.Amount
		}
		if i, ok := index[t.To]; ok {
			out[i].Amount -= t.Amount
		}
	}
	return out
}

// TransfersFrom returns the transfers memberID has to pay.
func TransfersFrom(transfers []Transfer, memberID string) []Transfer {
	var out []Transfer
	for _, t := range transfers {
		if t.From == memberID {
			out = append(out, t)
		}
	}
	return out
}

// TransfersTo returns the transfers memberID should receive.
func TransfersTo(transfers []Transfer, memberID string) []Transfer {
	var out []Transfer
	for _, t := range transfers {
		if t.To == memberID {
			out = append(out, t)
		}
	}
	return out
}
