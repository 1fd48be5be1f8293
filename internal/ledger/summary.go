package ledger

// MemberSummary breaks a member's balance down into what they paid, what
// their shares came to, and what they settled.
type MemberSummary struct {
	MemberID   string
	TotalPaid  float64 // Shares covered for others and self as payer
	TotalShare float64 // Sum of this member's own shares
	SettledOut float64 // Settled repayments this member made
	SettledIn  float64 // Settled repayments this member received
	Net        float64 // TotalPaid - TotalShare + SettledOut - SettledIn
}

// Summaries applies the same filtering as ComputeBalances and reports the
// components of each member's balance. Net matches ComputeBalances.
func Summaries(members []string, expenses []ExpenseForBalance, settlements []SettlementForBalance) []MemberSummary {
	index := make(map[string]int, len(members))
	summaries := make([]MemberSummary, 0, len(members))
	for _, m := range members {
		if _, exists := index[m]; exists {
			continue
		}
		index[m] = len(summaries)
		summaries = append(summaries, MemberSummary{MemberID: m})
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
			summaries[payer].TotalPaid += split.Share
			summaries[sharer].TotalShare += split.Share
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
		summaries[from].SettledOut += s.Amount
		summaries[to].SettledIn += s.Amount
	}

	for i := range summaries {
		s := &summaries[i]
		s.Net = s.TotalPaid - s.TotalShare + s.SettledOut - s.SettledIn
	}
	return summaries
}
