package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/ayo6706/payment-instructions/internal/models"
)

var ErrBalanceOverflow = errors.New("credit balance would overflow")

// Settlement is the executor's decision plus the involved accounts after it.
type Settlement struct {
	Status       string
	StatusCode   string
	StatusReason string
	Accounts     []models.AccountView
}

// IsDue reports whether an instruction dated executeAt runs on the UTC day of now.
// A nil date is always due; a date equal to today is due.
func IsDue(executeAt *time.Time, now time.Time) bool {
	if executeAt == nil {
		return true
	}
	return !domain.UTCDate(*executeAt).After(domain.UTCDate(now))
}

// Settle executes v immediately or defers it. The snapshot is read, never written:
// the returned views are fresh values restricted to the two involved accounts, in
// snapshot order.
func Settle(v ValidatedInstruction, accounts []models.Account, now time.Time) (Settlement, error) {
	due := IsDue(v.ExecuteAt, now)

	views := make([]models.AccountView, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, acct := range accounts {
		if acct.ID != v.Fields.DebitAccount && acct.ID != v.Fields.CreditAccount {
			continue
		}
		if _, dup := seen[acct.ID]; dup {
			continue
		}
		seen[acct.ID] = struct{}{}

		view := accountView(acct)
		if due {
			switch acct.ID {
			case v.Fields.DebitAccount:
				view.Balance -= v.Amount
			case v.Fields.CreditAccount:
				if view.Balance > math.MaxInt64-v.Amount {
					return Settlement{}, ErrBalanceOverflow
				}
				view.Balance += v.Amount
			}
		}
		views = append(views, view)
	}

	if !due {
		return Settlement{
			Status:       domain.StatusPending,
			StatusCode:   domain.CodeScheduled,
			StatusReason: domain.StatusMessage(domain.CodeScheduled),
			Accounts:     views,
		}, nil
	}
	return Settlement{
		Status:       domain.StatusSuccessful,
		StatusCode:   domain.CodeExecuted,
		StatusReason: domain.StatusMessage(domain.CodeExecuted),
		Accounts:     views,
	}, nil
}

func accountView(acct models.Account) models.AccountView {
	return models.AccountView{
		ID:            acct.ID,
		Balance:       acct.Balance,
		BalanceBefore: acct.Balance,
		Currency:      strings.ToUpper(acct.Currency),
	}
}

// involvedAccounts snapshots the debit and credit accounts without settling them.
func involvedAccounts(accounts []models.Account, debitID, creditID string) []models.AccountView {
	views := make([]models.AccountView, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, acct := range accounts {
		if acct.ID != debitID && acct.ID != creditID {
			continue
		}
		if _, dup := seen[acct.ID]; dup {
			continue
		}
		seen[acct.ID] = struct{}{}
		views = append(views, accountView(acct))
	}
	return views
}
