package expense

import (
	"time"

	"splitledger/pkg/money"
)

// Expense represents a shared expense paid by one group member.
type Expense struct {
	ID          int64       `json:"id"`
	GroupID     int64       `json:"group_id"`
	PayerID     int64       `json:"payer_id"`
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
	CreatedAt   time.Time   `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Split is one participant's share of an expense. Every participant of an
// expense has exactly one split row, the payer included; the shares of an
// expense always sum to its total amount.
type Split struct {
	ID            int64       `json:"id"`
	ExpenseID     int64       `json:"expense_id"`
	ParticipantID int64       `json:"participant_id"`
	Share         money.Money `json:"share"`

	// Populated via JOIN
	ParticipantUsername string `json:"participant_username,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits.
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
