package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// CreateExpense persists a new expense and its split members.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, paid_by, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.PaidBy.ID,
		expense.Amount.String(), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, m := range expense.SplitMembers {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, position, user_id) VALUES (?, ?, ?)",
			expense.ID, i, m.ID,
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

// GetExpense retrieves an expense by ID with payer and split member names.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT e.id, e.group_id, e.description, e.paid_by, u.name, e.amount, e.created_at
		 FROM expenses e
		 JOIN users u ON u.id = e.paid_by
		 WHERE e.id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description,
		&expense.PaidBy.ID, &expense.PaidBy.Name, &expense.Amount, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.SplitMembers, err = s.expenseSplits(ctx, expense.ID); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.group_id, e.description, e.paid_by, u.name, e.amount, e.created_at
		 FROM expenses e
		 JOIN users u ON u.id = e.paid_by
		 WHERE e.group_id = ?
		 ORDER BY e.created_at DESC, e.rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description,
			&expense.PaidBy.ID, &expense.PaidBy.Name, &expense.Amount, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	for _, expense := range expenses {
		if expense.SplitMembers, err = s.expenseSplits(ctx, expense.ID); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(res, "expense", expenseID)
}

func (s *SQLiteStore) expenseSplits(ctx context.Context, expenseID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name
		 FROM expense_splits es
		 JOIN users u ON u.id = es.user_id
		 WHERE es.expense_id = ?
		 ORDER BY es.position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return members, nil
}
