package expense

import (
	"context"
	"errors"
	"fmt"

	"splitledger/internal/expense/split"
	"splitledger/internal/group"
	"splitledger/pkg/money"
)

// Common errors
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrInvalidAmount       = errors.New("expense amount cannot be negative")
	ErrInvalidParticipants = errors.New("participants must be a non-empty list of distinct users")
	ErrReferenceNotFound   = errors.New("payer or participant is not a member of the group")
)

// Store is the persistence surface the ledger needs. Creation, update, and
// deletion of an expense together with its splits are atomic: either the
// whole write lands or nothing does.
type Store interface {
	CreateWithSplits(ctx context.Context, groupID, payerID int64, description string, amount money.Money, participantIDs []int64, shares []money.Money) (*ExpenseWithSplits, error)
	UpdateWithSplits(ctx context.Context, id int64, description string, amount money.Money, participantIDs []int64, shares []money.Money) (*ExpenseWithSplits, error)
	GetByID(ctx context.Context, id int64) (*Expense, error)
	GetSplits(ctx context.Context, expenseID int64) ([]*Split, error)
	Delete(ctx context.Context, id int64) error
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error)
}

// MemberRegistry answers whether a user belongs to a group.
type MemberRegistry interface {
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
}

// ActivityRecorder receives a best-effort note after each successful ledger
// write. Implementations must never fail the calling operation.
type ActivityRecorder interface {
	Record(ctx context.Context, groupID, actorID int64, action, detail string)
}

// Service is the ledger facade: it validates references, runs the split
// engine, and drives the atomic persistence of expenses with their splits.
type Service struct {
	store    Store
	registry MemberRegistry
	activity ActivityRecorder
}

// NewService creates a new expense service
func NewService(store Store, registry MemberRegistry, activity ActivityRecorder) *Service {
	return &Service{
		store:    store,
		registry: registry,
		activity: activity,
	}
}

// CreateExpense validates the payer and participants against the group's
// membership, computes exact equal splits, and persists the expense and all
// split rows as one atomic unit. The payer gets a split row like everyone
// else; their net position is credited with the full amount by the balance
// aggregator.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	if req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if err := validateParticipants(req.ParticipantIDs); err != nil {
		return nil, err
	}

	if err := s.checkMembership(ctx, req.GroupID, payerID); err != nil {
		return nil, err
	}
	for _, id := range req.ParticipantIDs {
		if err := s.checkMembership(ctx, req.GroupID, id); err != nil {
			return nil, err
		}
	}

	shares, err := split.Even(req.Amount, req.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	result, err := s.store.CreateWithSplits(ctx, req.GroupID, payerID, req.Description, req.Amount, req.ParticipantIDs, shares)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, req.GroupID, payerID, "expense.created",
		fmt.Sprintf("%s paid %s for %q among %d participants",
			usernameOrID(result.Expense), req.Amount, req.Description, len(req.ParticipantIDs)))

	return result, nil
}

// UpdateExpense changes an expense's description and/or amount. An amount
// change always re-runs the split engine over the stored participant order
// and rewrites the splits in the same transaction, so the sum invariant
// holds after every update.
func (s *Service) UpdateExpense(ctx context.Context, id, actorID int64, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	description := existing.Description
	if req.Description != nil {
		description = *req.Description
	}
	amount := existing.Amount
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		amount = *req.Amount
	}

	splits, err := s.store.GetSplits(ctx, id)
	if err != nil {
		return nil, err
	}
	participantIDs := make([]int64, len(splits))
	for i, sp := range splits {
		participantIDs[i] = sp.ParticipantID
	}

	shares, err := split.Even(amount, participantIDs)
	if err != nil {
		return nil, err
	}

	result, err := s.store.UpdateWithSplits(ctx, id, description, amount, participantIDs, shares)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrExpenseNotFound
	}

	s.activity.Record(ctx, existing.GroupID, actorID, "expense.updated",
		fmt.Sprintf("expense %d updated to %s (%q)", id, amount, description))

	return result, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	expense, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.store.GetSplits(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByGroup retrieves a page of a group's expenses
func (s *Service) ListByGroup(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByGroup(ctx, groupID, perPage, offset)
}

// DeleteExpense removes the expense and all its splits atomically, so the
// group's balances return to their values before the expense existed.
func (s *Service) DeleteExpense(ctx context.Context, id, actorID int64) error {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrExpenseNotFound
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, existing.GroupID, actorID, "expense.deleted",
		fmt.Sprintf("expense %d (%q, %s) deleted", id, existing.Description, existing.Amount))

	return nil
}

func (s *Service) checkMembership(ctx context.Context, groupID, userID int64) error {
	isMember, err := s.registry.IsMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			return ErrReferenceNotFound
		}
		return err
	}
	if !isMember {
		return ErrReferenceNotFound
	}
	return nil
}

func validateParticipants(ids []int64) error {
	if len(ids) == 0 {
		return ErrInvalidParticipants
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return ErrInvalidParticipants
		}
		seen[id] = struct{}{}
	}
	return nil
}

func usernameOrID(e *Expense) string {
	if e.PayerUsername != "" {
		return e.PayerUsername
	}
	return fmt.Sprintf("user %d", e.PayerID)
}
