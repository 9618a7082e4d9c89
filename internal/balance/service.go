package balance

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"splitledger/internal/expense"
	"splitledger/internal/group"
	"splitledger/pkg/money"
)

// GroupDirectory exposes the membership reads the balance engine needs.
type GroupDirectory interface {
	Members(ctx context.Context, groupID int64) ([]*group.Member, error)
	GroupsForUser(ctx context.Context, userID int64) ([]*group.Group, error)
}

// ExpenseSource provides the expense snapshot a group's balances are
// recomputed from.
type ExpenseSource interface {
	ListWithSplitsByGroup(ctx context.Context, groupID int64) ([]*expense.ExpenseWithSplits, error)
}

// Service derives balances and settlement plans. It holds no state of its
// own; every query recomputes from the current expense snapshot.
type Service struct {
	groups   GroupDirectory
	expenses ExpenseSource
}

// NewService creates a new balance service
func NewService(groups GroupDirectory, expenses ExpenseSource) *Service {
	return &Service{groups: groups, expenses: expenses}
}

// GroupSummary computes every member's net position in the group and the
// minimal set of transfers that settles them. Positions follow the group's
// membership order, retain users with split rows who have since left the
// group, and always sum to zero.
func (s *Service) GroupSummary(ctx context.Context, groupID int64) (*GroupSummary, error) {
	members, err := s.groups.Members(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListWithSplitsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group expenses: %w", err)
	}

	memberIDs := make([]int64, len(members))
	usernames := make(map[int64]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
		usernames[m.UserID] = m.Username
	}

	positions := Aggregate(memberIDs, expenses)
	for i := range positions {
		positions[i].Username = usernames[positions[i].UserID]
	}

	transfers := Settle(positions)
	for i := range transfers {
		transfers[i].FromUsername = usernames[transfers[i].FromUserID]
		transfers[i].ToUsername = usernames[transfers[i].ToUserID]
	}

	return &GroupSummary{
		GroupID:   groupID,
		Positions: positions,
		Transfers: transfers,
	}, nil
}

// UserOverallBalance folds a user's net position across every group they
// belong to. Groups are aggregated concurrently; the per-group rows come
// back sorted by group id so the response is stable.
func (s *Service) UserOverallBalance(ctx context.Context, userID int64) (*OverallBalance, error) {
	groups, err := s.groups.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		balances []GroupBalance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, grp := range groups {
		g.Go(func() error {
			summary, err := s.GroupSummary(gctx, grp.ID)
			if err != nil {
				return err
			}

			var position money.Money
			for _, p := range summary.Positions {
				if p.UserID == userID {
					position = p.Balance
					break
				}
			}

			mu.Lock()
			balances = append(balances, GroupBalance{
				GroupID:   grp.ID,
				GroupName: grp.Name,
				Balance:   position,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(balances, func(i, j int) bool { return balances[i].GroupID < balances[j].GroupID })

	overall := &OverallBalance{UserID: userID, Groups: balances}
	for _, b := range balances {
		overall.Balance = overall.Balance.Add(b.Balance)
	}
	return overall, nil
}
