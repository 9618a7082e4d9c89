package balance

import "splitledger/pkg/money"

// NetPosition is a member's aggregate position within a group: total paid
// minus total owed. Positive means the member is owed money, negative means
// they owe money. Positions are derived on every read, never stored.
type NetPosition struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username,omitempty"`
	Balance  money.Money `json:"balance"`
}

// Transfer is a single point-to-point payment in a settlement plan.
type Transfer struct {
	FromUserID   int64       `json:"from_user_id"`
	FromUsername string      `json:"from_username,omitempty"`
	ToUserID     int64       `json:"to_user_id"`
	ToUsername   string      `json:"to_username,omitempty"`
	Amount       money.Money `json:"amount"`
}

// GroupSummary is the full read-side view for a group: every member's net
// position plus the minimal transfer set that settles them all.
type GroupSummary struct {
	GroupID   int64         `json:"group_id"`
	Positions []NetPosition `json:"positions"`
	Transfers []Transfer    `json:"transfers"`
}

// GroupBalance is one group's contribution to a user's overall balance.
type GroupBalance struct {
	GroupID   int64       `json:"group_id"`
	GroupName string      `json:"group_name"`
	Balance   money.Money `json:"balance"`
}

// OverallBalance folds a user's net positions across all their groups.
type OverallBalance struct {
	UserID  int64          `json:"user_id"`
	Balance money.Money    `json:"balance"`
	Groups  []GroupBalance `json:"groups"`
}
