package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splitstuff/splitstuff/internal/models"
)

const dateLayout = "2006-01-02"

// CreateExpense persists a new expense and its splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Unix(expense.CreatedAt, 0).UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, expense_date, notes, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount, expense.PaidBy,
		expense.Date.Format(dateLayout), nullString(expense.Notes), expense.CreatedAt, nullString(expense.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		split.ExpenseID = expense.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id, position, share) VALUES (?, ?, ?, ?)",
			expense.ID, split.MemberID, i, split.Share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const expenseColumns = "id, group_id, description, amount, paid_by, expense_date, notes, created_at, created_by"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var date string
	var notes, createdBy sql.NullString
	if err := row.Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.PaidBy, &date, &notes, &expense.CreatedAt, &createdBy); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense date %q: %w", date, err)
	}
	expense.Date = parsed
	expense.Notes = notes.String
	expense.CreatedBy = createdBy.String
	return expense, nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID))
	if errors.Is(err, sql.ErrNoRows) {
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
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = ? ORDER BY expense_date DESC, created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	var ids []string
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
		ids = append(ids, expense.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	splits, err := s.listSplits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Splits = splits[e.ID]
	}
	return expenses, nil
}

// listSplits loads the splits of several expenses in one query, keyed by expense ID.
func (s *SQLiteStore) listSplits(ctx context.Context, expenseIDs []string) (map[string][]models.ExpenseSplit, error) {
	result := make(map[string][]models.ExpenseSplit, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}

	args := make([]any, len(expenseIDs))
	for i, id := range expenseIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, member_id, share FROM expense_splits WHERE expense_id IN ("+placeholders(len(args))+") ORDER BY expense_id, position",
		args...,
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

// DeleteExpense removes an expense; ON DELETE CASCADE removes its splits.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted expense: %w", err)
	}
	if n == 0 {
		return notFound("expense", expenseID)
	}
	return nil
}
