package expense

import (
	"context"
	"database/sql"
	"fmt"

	"splitledger/pkg/money"
)

// Repository handles expense and split persistence. An expense and its
// splits are written and removed inside a single transaction: the database
// never holds an expense whose splits are partial or missing.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSplits inserts an expense and one split row per participant as
// one atomic unit. participantIDs and shares are parallel slices; insertion
// order is preserved so the remainder policy survives a later re-split.
func (r *Repository) CreateWithSplits(ctx context.Context, groupID, payerID int64, description string, amount money.Money, participantIDs []int64, shares []money.Money) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO expenses (group_id, payer_id, description, amount_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, group_id, payer_id, description, amount_cents, created_at
	`, groupID, payerID, description, amount).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, expense.ID, participantIDs, shares)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// UpdateWithSplits updates an expense's description and amount and rewrites
// its splits, all in one transaction. The splits must always be recomputed
// by the caller whenever the amount changes; this method never leaves the
// old shares behind.
func (r *Repository) UpdateWithSplits(ctx context.Context, id int64, description string, amount money.Money, participantIDs []int64, shares []money.Money) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, `
		UPDATE expenses
		SET description = $2, amount_cents = $3
		WHERE id = $1
		RETURNING id, group_id, payer_id, description, amount_cents, created_at
	`, id, description, amount).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear splits: %w", err)
	}

	splits, err := insertSplits(ctx, tx, id, participantIDs, shares)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID int64, participantIDs []int64, shares []money.Money) ([]*Split, error) {
	splits := make([]*Split, len(participantIDs))
	for i := range participantIDs {
		split := &Split{}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO splits (expense_id, participant_id, share_cents)
			VALUES ($1, $2, $3)
			RETURNING id, expense_id, participant_id, share_cents
		`, expenseID, participantIDs[i], shares[i]).Scan(
			&split.ID,
			&split.ExpenseID,
			&split.ParticipantID,
			&split.Share,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = split
	}
	return splits, nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount_cents, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.CreatedAt,
		&expense.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplits retrieves an expense's splits in creation order
func (r *Repository) GetSplits(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.participant_id, s.share_cents, u.username
		FROM splits s
		JOIN users u ON s.participant_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		split := &Split{}
		if err := rows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.ParticipantID,
			&split.Share,
			&split.ParticipantUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	return splits, nil
}

// Delete removes an expense and all its splits atomically
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense deletion: %w", err)
	}

	return nil
}

// ListByGroup retrieves a page of a group's expenses, newest first
func (r *Repository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount_cents, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.CreatedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListWithSplitsByGroup retrieves every expense of a group together with its
// splits. This is the read snapshot the balance aggregator consumes; the
// whole group is recomputed from it on every balance query.
func (r *Repository) ListWithSplitsByGroup(ctx context.Context, groupID int64) ([]*ExpenseWithSplits, error) {
	expenseQuery := `
		SELECT id, group_id, payer_id, description, amount_cents, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, expenseQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var result []*ExpenseWithSplits
	byID := make(map[int64]*ExpenseWithSplits)
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		ews := &ExpenseWithSplits{Expense: expense}
		result = append(result, ews)
		byID[expense.ID] = ews
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}

	splitQuery := `
		SELECT s.id, s.expense_id, s.participant_id, s.share_cents
		FROM splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = $1
		ORDER BY s.id
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		split := &Split{}
		if err := splitRows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.ParticipantID,
			&split.Share,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if ews, ok := byID[split.ExpenseID]; ok {
			ews.Splits = append(ews.Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read splits: %w", err)
	}

	return result, nil
}
