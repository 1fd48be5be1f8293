package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/splitstuff/splitstuff/internal/api"
	"github.com/splitstuff/splitstuff/internal/ledger"
	"github.com/splitstuff/splitstuff/internal/models"
	"github.com/splitstuff/splitstuff/internal/storage"
	"github.com/splitstuff/splitstuff/internal/upi"
)

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService. Balances are
// recomputed from stored expenses and settlements on every call.
type LedgerService struct {
	store    storage.Store
	currency string
	planSize prometheus.Gauge
}

// NewLedgerService creates a new LedgerService. currency is echoed in
// responses and used for payment links.
func NewLedgerService(store storage.Store, currency string) *LedgerService {
	if currency == "" {
		currency = upi.DefaultCurrency
	}
	return &LedgerService{store: store, currency: currency}
}

// RegisterMetrics exposes the size of the most recently computed plan.
func (s *LedgerService) RegisterMetrics(reg prometheus.Registerer) {
	s.planSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "splitstuff",
		Name:      "last_plan_transfers",
		Help:      "Number of transfers in the most recently computed settle-up plan.",
	})
	reg.MustRegister(s.planSize)
}

// groupLedger is everything computed for one group.
type groupLedger struct {
	group      *models.Group
	balances   ledger.Balances
	summaries  []ledger.MemberSummary
	transfers  []ledger.Transfer
	totalSpent float64
}

func (s *LedgerService) compute(ctx context.Context, group *models.Group) (*groupLedger, error) {
	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError(err)
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError(err)
	}

	members := group.MemberIDs()
	exps := expensesForBalance(expenses)
	sets := settlementsForBalance(settlements)

	out := &groupLedger{
		group:     group,
		balances:  ledger.ComputeBalances(members, exps, sets),
		summaries: ledger.Summaries(members, exps, sets),
	}
	out.transfers = ledger.PlanTransfers(out.balances)
	for _, e := range expenses {
		out.totalSpent += e.Amount
	}

	if s.planSize != nil {
		s.planSize.Set(float64(len(out.transfers)))
	}
	slog.Debug("Ledger computed",
		"group_id", group.ID,
		"expenses", len(expenses),
		"settlements", len(settlements),
		"transfers", len(out.transfers),
	)
	return out, nil
}

func expensesForBalance(expenses []*models.Expense) []ledger.ExpenseForBalance {
	out := make([]ledger.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		splits := make([]ledger.Split, len(e.Splits))
		for j, sp := range e.Splits {
			splits[j] = ledger.Split{MemberID: sp.MemberID, Share: sp.Share}
		}
		out[i] = ledger.ExpenseForBalance{PaidBy: e.PaidBy, Amount: e.Amount, Splits: splits}
	}
	return out
}

func settlementsForBalance(settlements []*models.Settlement) []ledger.SettlementForBalance {
	out := make([]ledger.SettlementForBalance, len(settlements))
	for i, st := range settlements {
		out[i] = ledger.SettlementForBalance{
			FromMemberID: st.FromMemberID,
			ToMemberID:   st.ToMemberID,
			Amount:       st.Amount,
			Settled:      st.Status == models.SettlementSettled,
		}
	}
	return out
}

// toAPITransfer names both ends and attaches a payment link when the
// receiver has a UPI ID.
func (s *LedgerService) toAPITransfer(group *models.Group, t ledger.Transfer) *api.Transfer {
	from, _ := group.Member(t.From)
	to, _ := group.Member(t.To)
	out := &api.Transfer{
		From:     t.From,
		FromName: from.DisplayName,
		To:       t.To,
		ToName:   to.DisplayName,
		Amount:   round2(t.Amount),
	}

	if to.UPIID == "" {
		return out
	}
	link, err := upi.Link(upi.Params{
		PayeeVPA:  to.UPIID,
		PayeeName: to.DisplayName,
		Amount:    t.Amount,
		Note:      "SplitStuff: " + group.Name,
		Currency:  s.currency,
	})
	if err != nil {
		slog.Warn("Failed to build payment link", "to", t.To, "error", err)
		return out
	}
	out.PayLink = link
	return out
}

func (s *LedgerService) toAPITransfers(group *models.Group, transfers []ledger.Transfer) []*api.Transfer {
	out := make([]*api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = s.toAPITransfer(group, t)
	}
	return out
}

// GetGroupBalances returns every member's balance and the settle-up plan.
func (s *LedgerService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	slog.Info("GetGroupBalances request received", "group_id", req.Msg.GroupID)

	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	gl, err := s.compute(ctx, group)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	balances := make([]*api.MemberBalance, len(gl.summaries))
	for i, sum := range gl.summaries {
		member, _ := group.Member(sum.MemberID)
		balances[i] = &api.MemberBalance{
			MemberID:    sum.MemberID,
			DisplayName: member.DisplayName,
			NetBalance:  round2(sum.Net),
			TotalPaid:   round2(sum.TotalPaid),
			TotalShare:  round2(sum.TotalShare),
			SettledOut:  round2(sum.SettledOut),
			SettledIn:   round2(sum.SettledIn),
		}
	}

	slog.Info("GetGroupBalances successful",
		"group_id", group.ID,
		"members", len(balances),
		"transfers", len(gl.transfers),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Balances:   balances,
		Transfers:  s.toAPITransfers(group, gl.transfers),
		TotalSpent: round2(gl.totalSpent),
		Currency:   s.currency,
	}), nil
}

// GetMyTransfers returns the caller's part of the settle-up plan.
func (s *LedgerService) GetMyTransfers(ctx context.Context, req *connect.Request[api.GetMyTransfersRequest]) (*connect.Response[api.GetMyTransfersResponse], error) {
	slog.Info("GetMyTransfers request received", "group_id", req.Msg.GroupID)

	group, caller, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	gl, err := s.compute(ctx, group)
	if err != nil {
		slog.Error("GetMyTransfers failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	return connect.NewResponse(&api.GetMyTransfersResponse{
		NetBalance: round2(gl.balances.Get(caller)),
		ToPay:      s.toAPITransfers(group, ledger.TransfersFrom(gl.transfers, caller)),
		ToReceive:  s.toAPITransfers(group, ledger.TransfersTo(gl.transfers, caller)),
		Currency:   s.currency,
	}), nil
}
