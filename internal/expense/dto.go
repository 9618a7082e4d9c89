package expense

import "splitledger/pkg/money"

// CreateExpenseRequest represents the request to create an expense. The
// amount is a two-decimal value at the boundary; it is parsed straight into
// minor units.
type CreateExpenseRequest struct {
	GroupID        int64       `json:"group_id" validate:"required"`
	Description    string      `json:"description" validate:"required,min=1,max=255"`
	Amount         money.Money `json:"amount" validate:"required"`
	ParticipantIDs []int64     `json:"participant_ids" validate:"required,min=1"`
}

// UpdateExpenseRequest represents the request to update an expense. When the
// amount changes, the splits are recomputed over the stored participant
// order; a description-only change leaves them untouched.
type UpdateExpenseRequest struct {
	Description *string      `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Amount      *money.Money `json:"amount,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            int64            `json:"id"`
	GroupID       int64            `json:"group_id"`
	PayerID       int64            `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Description   string           `json:"description"`
	Amount        money.Money      `json:"amount"`
	CreatedAt     string           `json:"created_at"`
	Splits        []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID                  int64       `json:"id"`
	ExpenseID           int64       `json:"expense_id"`
	ParticipantID       int64       `json:"participant_id"`
	ParticipantUsername string      `json:"participant_username,omitempty"`
	Share               money.Money `json:"share"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:                  s.ID,
		ExpenseID:           s.ExpenseID,
		ParticipantID:       s.ParticipantID,
		ParticipantUsername: s.ParticipantUsername,
		Share:               s.Share,
	}
}

// ToResponse converts an ExpenseWithSplits to its DTO
func (e *ExpenseWithSplits) ToResponse() *ExpenseResponse {
	resp := e.Expense.ToResponse()
	resp.Splits = make([]*SplitResponse, len(e.Splits))
	for i, s := range e.Splits {
		resp.Splits[i] = s.ToResponse()
	}
	return resp
}
