// Package cli computes and renders an offline settle-up plan for the
// splitstuff command line.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/splitstuff/splitstuff/internal/ledger"
	"github.com/splitstuff/splitstuff/internal/models"
)

// Input is the JSON document accepted by `splitstuff settle`.
type Input struct {
	Currency    string            `json:"currency,omitempty"`
	Members     []InputMember     `json:"members"`
	Expenses    []InputExpense    `json:"expenses"`
	Settlements []InputSettlement `json:"settlements"`
}

type InputMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	UPIID string `json:"upi_id,omitempty"`
}

// InputExpense without splits is shared equally by every member.
type InputExpense struct {
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	PaidBy      string       `json:"paid_by"`
	Splits      []InputSplit `json:"splits,omitempty"`
}

type InputSplit struct {
	MemberID string  `json:"member_id"`
	Share    float64 `json:"share"`
}

// InputSettlement counts only when Status is "settled" or empty.
type InputSettlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Status string  `json:"status,omitempty"`
}

// Plan is the computed result for an Input.
type Plan struct {
	Input     *Input
	Balances  ledger.Balances
	Summaries []ledger.MemberSummary
	Transfers []ledger.Transfer
	Residual  ledger.Balances // Balances after applying Transfers
}

// ReadInput decodes an Input and validates it.
func ReadInput(r io.Reader) (*Input, error) {
	var in Input
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Validate checks member references, amounts and statuses.
func (in *Input) Validate() error {
	if len(in.Members) == 0 {
		return errors.New("input has no members")
	}

	known := make(map[string]bool, len(in.Members))
	for _, m := range in.Members {
		if m.ID == "" {
			return errors.New("member without id")
		}
		known[m.ID] = true
	}
	for i, e := range in.Expenses {
		if !known[e.PaidBy] {
			return fmt.Errorf("expense %d: unknown payer %q", i, e.PaidBy)
		}
		if !(e.Amount > 0) || math.IsInf(e.Amount, 0) {
			return fmt.Errorf("expense %d: amount must be positive", i)
		}
		for _, s := range e.Splits {
			if !known[s.MemberID] {
				return fmt.Errorf("expense %d: unknown member %q", i, s.MemberID)
			}
			if s.Share < 0 || math.IsNaN(s.Share) || math.IsInf(s.Share, 0) {
				return fmt.Errorf("expense %d: share for %q cannot be negative", i, s.MemberID)
			}
		}
	}
	for i, s := range in.Settlements {
		if !known[s.From] || !known[s.To] {
			return fmt.Errorf("settlement %d: unknown member", i)
		}
		if s.From == s.To {
			return fmt.Errorf("settlement %d: payer and receiver are the same", i)
		}
		if !(s.Amount > 0) || math.IsInf(s.Amount, 0) {
			return fmt.Errorf("settlement %d: amount must be positive", i)
		}
		if s.Status != "" && !models.SettlementStatus(s.Status).Valid() {
			return fmt.Errorf("settlement %d: unknown status %q", i, s.Status)
		}
	}
	return nil
}

// MemberIDs returns the member IDs in input order.
func (in *Input) MemberIDs() []string {
	ids := make([]string, len(in.Members))
	for i, m := range in.Members {
		ids[i] = m.ID
	}
	return ids
}

// Member looks up a member by ID.
func (in *Input) Member(id string) (InputMember, bool) {
	for _, m := range in.Members {
		if m.ID == id {
			return m, true
		}
	}
	return InputMember{}, false
}

// Compute builds the plan for in.
func Compute(in *Input) (*Plan, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	members := in.MemberIDs()

	expenses := make([]ledger.ExpenseForBalance, len(in.Expenses))
	for i, e := range in.Expenses {
		var splits []ledger.Split
		for _, s := range e.Splits {
			splits = append(splits, ledger.Split{MemberID: s.MemberID, Share: s.Share})
		}
		if len(splits) == 0 {
			var err error
			splits, err = ledger.SplitEqually(e.Amount, members)
			if err != nil {
				return nil, fmt.Errorf("expense %d: %w", i, err)
			}
		}
		expenses[i] = ledger.ExpenseForBalance{PaidBy: e.PaidBy, Amount: e.Amount, Splits: splits}
	}

	settlements := make([]ledger.SettlementForBalance, len(in.Settlements))
	for i, s := range in.Settlements {
		settlements[i] = ledger.SettlementForBalance{
			FromMemberID: s.From,
			ToMemberID:   s.To,
			Amount:       s.Amount,
			Settled:      s.Status == "" || models.SettlementStatus(s.Status) == models.SettlementSettled,
		}
	}

	balances := ledger.ComputeBalances(members, expenses, settlements)
	transfers := ledger.PlanTransfers(balances)
	return &Plan{
		Input:     in,
		Balances:  balances,
		Summaries: ledger.Summaries(members, expenses, settlements),
		Transfers: transfers,
		Residual:  ledger.Apply(balances, transfers),
	}, nil
}
