package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/splitstuff/splitstuff/internal/models"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Unix(expense.CreatedAt, 0).UTC()
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO expenses (id, group_id, description, amount, paid_by, expense_date, notes, created_at, created_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			expense.ID, expense.GroupID, expense.Description, expense.Amount, expense.PaidBy,
			expense.Date, optional(expense.Notes), time.Unix(expense.CreatedAt, 0), optional(expense.CreatedBy),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		batch := &pgx.Batch{}
		for i := range expense.Splits {
			expense.Splits[i].ExpenseID = expense.ID
			batch.Queue(
				"INSERT INTO expense_splits (expense_id, member_id, position, share) VALUES ($1, $2, $3, $4)",
				expense.ID, expense.Splits[i].MemberID, i, expense.Splits[i].Share,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert expense splits: %w", err)
		}
		return nil
	})
}

const expenseColumns = "id, group_id, description, amount, paid_by, expense_date, notes, created_at, created_by"

func scanExpense(row pgx.Row) (*models.Expense, error) {
	e := &models.Expense{}
	var notes, createdBy *string
	var createdAt time.Time
	if err := row.Scan(&e.ID, &e.GroupID, &e.Description, &e.Amount, &e.PaidBy,
		&e.Date, &notes, &createdAt, &createdBy); err != nil {
		return nil, err
	}
	e.Notes = deref(notes)
	e.CreatedBy = deref(createdBy)
	e.CreatedAt = createdAt.Unix()
	return e, nil
}

// GetExpense retrieves an expense with its splits.
func (s *Store) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.pool.QueryRow(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = $1", expenseID))
	if isNoRows(err) {
		return nil, notFound("expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	splits, err := s.listSplits(ctx, []string{expenseID})
	if err != nil {
		return nil, err
	}
	expense.Splits = splits[expenseID]
	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group with their splits.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = $1 ORDER BY expense_date DESC, created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	expenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses: %w", err)
	}

	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	splits, err := s.listSplits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Splits = splits[e.ID]
	}
	return expenses, nil
}

func (s *Store) listSplits(ctx context.Context, expenseIDs []string) (map[string][]models.ExpenseSplit, error) {
	result := make(map[string][]models.ExpenseSplit, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}
	rows, err := s.pool.Query(ctx,
		"SELECT expense_id, member_id, share FROM expense_splits WHERE expense_id = ANY($1) ORDER BY expense_id, position",
		expenseIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.ExpenseSplit
		if err := rows.Scan(&split.ExpenseID, &split.MemberID, &split.Share); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		result[split.ExpenseID] = append(result[split.ExpenseID], split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return result, nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("expense", expenseID)
	}
	return nil
}

// CreateSettlement persists a new settlement.
func (s *Store) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementPending
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO settlements (id, group_id, from_member_id, to_member_id, amount, status, created_at, created_by, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		settlement.ID, settlement.GroupID, settlement.FromMemberID, settlement.ToMemberID, settlement.Amount,
		string(settlement.Status), time.Unix(settlement.CreatedAt, 0), optional(settlement.CreatedBy), optional(settlement.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

const settlementColumns = "id, group_id, from_member_id, to_member_id, amount, status, created_at, created_by, note"

func scanSettlement(row pgx.Row) (*models.Settlement, error) {
	st := &models.Settlement{}
	var status string
	var createdBy, note *string
	var createdAt time.Time
	if err := row.Scan(&st.ID, &st.GroupID, &st.FromMemberID, &st.ToMemberID, &st.Amount,
		&status, &createdAt, &createdBy, &note); err != nil {
		return nil, err
	}
	st.Status = models.SettlementStatus(status)
	st.CreatedAt = createdAt.Unix()
	st.CreatedBy = deref(createdBy)
	st.Note = deref(note)
	return st, nil
}

// GetSettlement retrieves a settlement by ID.
func (s *Store) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	st, err := scanSettlement(s.pool.QueryRow(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = $1", settlementID))
	if isNoRows(err) {
		return nil, notFound("settlement", settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return st, nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *Store) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id = $1 ORDER BY created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	settlements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Settlement, error) {
		return scanSettlement(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan settlements: %w", err)
	}
	return settlements, nil
}

// UpdateSettlementStatus changes a settlement's status.
func (s *Store) UpdateSettlementStatus(ctx context.Context, settlementID string, status models.SettlementStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid settlement status %q", status)
	}
	tag, err := s.pool.Exec(ctx, "UPDATE settlements SET status = $1 WHERE id = $2", string(status), settlementID)
	if err != nil {
		return fmt.Errorf("failed to update settlement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("settlement", settlementID)
	}
	return nil
}

// DeleteSettlement removes a settlement by ID.
func (s *Store) DeleteSettlement(ctx context.Context, settlementID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM settlements WHERE id = $1", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("settlement", settlementID)
	}
	return nil
}
