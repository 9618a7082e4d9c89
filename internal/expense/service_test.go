package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"splitledger/internal/group"
	"splitledger/pkg/money"
)

// fakeStore keeps expenses and splits in memory. Writes are all-or-nothing,
// mirroring the transactional repository.
type fakeStore struct {
	nextID   int64
	expenses map[int64]*Expense
	splits   map[int64][]*Split
	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:   1,
		expenses: make(map[int64]*Expense),
		splits:   make(map[int64][]*Split),
	}
}

func (f *fakeStore) CreateWithSplits(_ context.Context, groupID, payerID int64, description string, amount money.Money, participantIDs []int64, shares []money.Money) (*ExpenseWithSplits, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}

	e := &Expense{
		ID:          f.nextID,
		GroupID:     groupID,
		PayerID:     payerID,
		Description: description,
		Amount:      amount,
		CreatedAt:   time.Now(),
	}
	f.nextID++

	splits := make([]*Split, len(participantIDs))
	for i := range participantIDs {
		splits[i] = &Split{
			ID:            f.nextID,
			ExpenseID:     e.ID,
			ParticipantID: participantIDs[i],
			Share:         shares[i],
		}
		f.nextID++
	}

	f.expenses[e.ID] = e
	f.splits[e.ID] = splits
	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

func (f *fakeStore) UpdateWithSplits(_ context.Context, id int64, description string, amount money.Money, participantIDs []int64, shares []money.Money) (*ExpenseWithSplits, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, nil
	}
	e.Description = description
	e.Amount = amount

	splits := make([]*Split, len(participantIDs))
	for i := range participantIDs {
		splits[i] = &Split{
			ID:            f.nextID,
			ExpenseID:     id,
			ParticipantID: participantIDs[i],
			Share:         shares[i],
		}
		f.nextID++
	}
	f.splits[id] = splits
	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Expense, error) {
	return f.expenses[id], nil
}

func (f *fakeStore) GetSplits(_ context.Context, expenseID int64) ([]*Split, error) {
	return f.splits[expenseID], nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.expenses[id]; !ok {
		return ErrExpenseNotFound
	}
	delete(f.expenses, id)
	delete(f.splits, id)
	return nil
}

func (f *fakeStore) ListByGroup(_ context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var expenses []*Expense
	for _, e := range f.expenses {
		if e.GroupID == groupID {
			expenses = append(expenses, e)
		}
	}
	return expenses, len(expenses), nil
}

// fakeRegistry maps group id to member set.
type fakeRegistry struct {
	members map[int64]map[int64]bool
}

func (f *fakeRegistry) IsMember(_ context.Context, groupID, userID int64) (bool, error) {
	members, ok := f.members[groupID]
	if !ok {
		return false, group.ErrGroupNotFound
	}
	return members[userID], nil
}

// fakeActivity records the actions it was asked to note.
type fakeActivity struct {
	events []string
}

func (f *fakeActivity) Record(_ context.Context, groupID, actorID int64, action, detail string) {
	f.events = append(f.events, action)
}

func newTestService() (*Service, *fakeStore, *fakeActivity) {
	store := newFakeStore()
	registry := &fakeRegistry{members: map[int64]map[int64]bool{
		1: {1: true, 2: true, 3: true},
	}}
	activity := &fakeActivity{}
	return NewService(store, registry, activity), store, activity
}

func TestCreateExpenseSplitsExactly(t *testing.T) {
	svc, store, activity := newTestService()

	result, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		GroupID:        1,
		Description:    "groceries",
		Amount:         money.FromMinorUnits(100),
		ParticipantIDs: []int64{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	want := []int64{34, 33, 33}
	if len(result.Splits) != len(want) {
		t.Fatalf("got %d splits, want %d", len(result.Splits), len(want))
	}
	var sum int64
	for i, s := range result.Splits {
		if s.Share.MinorUnits() != want[i] {
			t.Errorf("split[%d] = %d, want %d", i, s.Share.MinorUnits(), want[i])
		}
		sum += s.Share.MinorUnits()
	}
	if sum != 100 {
		t.Errorf("splits sum to %d, want 100", sum)
	}

	if len(store.splits[result.Expense.ID]) != 3 {
		t.Error("splits were not persisted with the expense")
	}
	if len(activity.events) != 1 || activity.events[0] != "expense.created" {
		t.Errorf("activity events = %v, want [expense.created]", activity.events)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	tests := []struct {
		name    string
		payerID int64
		req     *CreateExpenseRequest
		wantErr error
	}{
		{
			name:    "negative amount",
			payerID: 1,
			req: &CreateExpenseRequest{
				GroupID: 1, Description: "x",
				Amount:         money.FromMinorUnits(-1),
				ParticipantIDs: []int64{1, 2},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "empty participants",
			payerID: 1,
			req: &CreateExpenseRequest{
				GroupID: 1, Description: "x",
				Amount: money.FromMinorUnits(100),
			},
			wantErr: ErrInvalidParticipants,
		},
		{
			name:    "duplicate participants",
			payerID: 1,
			req: &CreateExpenseRequest{
				GroupID: 1, Description: "x",
				Amount:         money.FromMinorUnits(100),
				ParticipantIDs: []int64{2, 2},
			},
			wantErr: ErrInvalidParticipants,
		},
		{
			name:    "unknown group",
			payerID: 1,
			req: &CreateExpenseRequest{
				GroupID: 99, Description: "x",
				Amount:         money.FromMinorUnits(100),
				ParticipantIDs: []int64{1, 2},
			},
			wantErr: ErrReferenceNotFound,
		},
		{
			name:    "payer not a member",
			payerID: 42,
			req: &CreateExpenseRequest{
				GroupID: 1, Description: "x",
				Amount:         money.FromMinorUnits(100),
				ParticipantIDs: []int64{1, 2},
			},
			wantErr: ErrReferenceNotFound,
		},
		{
			name:    "participant not a member",
			payerID: 1,
			req: &CreateExpenseRequest{
				GroupID: 1, Description: "x",
				Amount:         money.FromMinorUnits(100),
				ParticipantIDs: []int64{2, 42},
			},
			wantErr: ErrReferenceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService()

			_, err := svc.CreateExpense(context.Background(), tt.payerID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateExpense() error = %v, want %v", err, tt.wantErr)
			}
			if len(store.expenses) != 0 {
				t.Error("failed create left an expense behind")
			}
		})
	}
}

func TestCreateExpensePersistenceFailureSurfaced(t *testing.T) {
	svc, store, activity := newTestService()
	storeErr := errors.New("connection reset")
	store.failNext = storeErr

	_, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		GroupID: 1, Description: "x",
		Amount:         money.FromMinorUnits(100),
		ParticipantIDs: []int64{1, 2},
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("CreateExpense() error = %v, want the store error", err)
	}
	if len(activity.events) != 0 {
		t.Error("activity recorded for a failed create")
	}
}

func TestUpdateExpenseAmountRecomputesSplits(t *testing.T) {
	svc, store, _ := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		GroupID: 1, Description: "dinner",
		Amount:         money.FromMinorUnits(9000),
		ParticipantIDs: []int64{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	newAmount := money.FromMinorUnits(100)
	updated, err := svc.UpdateExpense(context.Background(), created.Expense.ID, 1, &UpdateExpenseRequest{
		Amount: &newAmount,
	})
	if err != nil {
		t.Fatalf("UpdateExpense() error = %v", err)
	}

	// Splits must be rewritten, exact, and follow the stored participant order.
	want := []int64{34, 33, 33}
	for i, s := range updated.Splits {
		if s.Share.MinorUnits() != want[i] {
			t.Errorf("split[%d] = %d, want %d", i, s.Share.MinorUnits(), want[i])
		}
	}

	var sum int64
	for _, s := range store.splits[created.Expense.ID] {
		sum += s.Share.MinorUnits()
	}
	if sum != 100 {
		t.Errorf("persisted splits sum to %d, want the new amount 100", sum)
	}
}

func TestUpdateExpenseDescriptionOnly(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		GroupID: 1, Description: "dinner",
		Amount:         money.FromMinorUnits(9000),
		ParticipantIDs: []int64{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	desc := "team dinner"
	updated, err := svc.UpdateExpense(context.Background(), created.Expense.ID, 1, &UpdateExpenseRequest{
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("UpdateExpense() error = %v", err)
	}
	if updated.Expense.Description != desc {
		t.Errorf("description = %q, want %q", updated.Expense.Description, desc)
	}
	if updated.Expense.Amount.MinorUnits() != 9000 {
		t.Errorf("amount changed to %d on a description-only update", updated.Expense.Amount.MinorUnits())
	}
}

func TestUpdateExpenseNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateExpense(context.Background(), 99, 1, &UpdateExpenseRequest{})
	if !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("UpdateExpense() error = %v, want ErrExpenseNotFound", err)
	}
}

func TestDeleteExpenseRemovesSplits(t *testing.T) {
	svc, store, activity := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		GroupID: 1, Description: "dinner",
		Amount:         money.FromMinorUnits(9000),
		ParticipantIDs: []int64{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	if err := svc.DeleteExpense(context.Background(), created.Expense.ID, 1); err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}

	if len(store.expenses) != 0 || len(store.splits) != 0 {
		t.Error("delete left expense or splits behind")
	}
	if activity.events[len(activity.events)-1] != "expense.deleted" {
		t.Errorf("last activity event = %q, want expense.deleted", activity.events[len(activity.events)-1])
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.DeleteExpense(context.Background(), 99, 1); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("DeleteExpense() error = %v, want ErrExpenseNotFound", err)
	}
}
