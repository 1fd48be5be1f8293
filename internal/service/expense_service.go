package service

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/splitstuff/splitstuff/internal/api"
	"github.com/splitstuff/splitstuff/internal/ledger"
	"github.com/splitstuff/splitstuff/internal/models"
	"github.com/splitstuff/splitstuff/internal/storage"
)

const dateLayout = "2006-01-02"

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense records an expense and its splits.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("CreateExpense request received",
		"group_id", msg.GroupID,
		"amount", msg.Amount,
		"split_type", msg.SplitType,
		"splits_count", len(msg.Splits),
	)

	group, caller, err := memberGroup(ctx, s.store, msg.GroupID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(msg.Description)
	if description == "" {
		return nil, invalidArgument("description is required")
	}
	if !(msg.Amount > 0) || math.IsInf(msg.Amount, 0) {
		return nil, invalidArgument("amount must be positive")
	}

	paidBy := msg.PaidBy
	if paidBy == "" {
		paidBy = caller
	}
	if !group.HasMember(paidBy) {
		return nil, invalidArgument("paid_by %q is not a member of the group", paidBy)
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if msg.Date != "" {
		date, err = time.Parse(dateLayout, msg.Date)
		if err != nil {
			return nil, invalidArgument("date must be YYYY-MM-DD: %v", err)
		}
	}

	splits, err := buildSplits(group, msg.Amount, msg.SplitType, msg.Splits)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: description,
		Amount:      msg.Amount,
		PaidBy:      paidBy,
		Date:        date,
		Notes:       strings.TrimSpace(msg.Notes),
		CreatedBy:   caller,
	}
	for _, sp := range splits {
		expense.Splits = append(expense.Splits, models.ExpenseSplit{MemberID: sp.MemberID, Share: sp.Share})
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", group.ID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// buildSplits turns the request's split inputs into shares. With no inputs
// the amount is divided equally among every member of the group.
func buildSplits(group *models.Group, amount float64, splitType string, inputs []api.SplitInput) ([]ledger.Split, error) {
	if len(inputs) == 0 {
		if splitType != "" && splitType != api.SplitEqual {
			return nil, invalidArgument("%s split needs at least one split entry", splitType)
		}
		return ledger.SplitEqually(amount, group.MemberIDs())
	}

	ids := make([]string, len(inputs))
	values := make([]float64, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		if !group.HasMember(in.MemberID) {
			return nil, invalidArgument("split member %q is not a member of the group", in.MemberID)
		}
		if seen[in.MemberID] {
			return nil, invalidArgument("member %q appears twice in splits", in.MemberID)
		}
		if in.Value < 0 {
			return nil, invalidArgument("split values cannot be negative")
		}
		seen[in.MemberID] = true
		ids[i] = in.MemberID
		values[i] = in.Value
	}

	switch splitType {
	case "", api.SplitEqual:
		return ledger.SplitEqually(amount, ids)
	case api.SplitWeights:
		splits, err := ledger.SplitByWeights(amount, ids, values)
		if err != nil {
			return nil, invalidArgument("invalid weights: %v", err)
		}
		return splits, nil
	case api.SplitExact:
		var total float64
		splits := make([]ledger.Split, len(ids))
		for i := range ids {
			splits[i] = ledger.Split{MemberID: ids[i], Share: values[i]}
			total += values[i]
		}
		if math.Abs(total-amount) >= ledger.Epsilon {
			return nil, invalidArgument("exact shares add up to %.2f, expected %.2f", total, amount)
		}
		return splits, nil
	default:
		return nil, invalidArgument("unknown split_type %q", splitType)
	}
}

// ListExpenses retrieves a group's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}

	slog.Info("ListExpenses successful", "group_id", group.ID, "count", len(out))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id is required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := recordGroup(ctx, s.store, expense.GroupID, "expense", expense.ID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}
