package service

import (
	"math"
	"testing"
	"time"

	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/ayo6706/payment-instructions/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)

func validated(t *testing.T, amount string, executeBy *string, accounts []models.Account) ValidatedInstruction {
	t.Helper()
	v, err := Validate(debitFields(amount, "NGN", "A1", "B2", executeBy), accounts)
	require.NoError(t, err)
	return v
}

func TestIsDue(t *testing.T) {
	yesterday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	sameDay := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsDue(nil, today))
	assert.True(t, IsDue(&yesterday, today))
	assert.True(t, IsDue(&sameDay, today))
	assert.False(t, IsDue(&tomorrow, today))

	// time of day in another zone does not move the UTC date
	lagos := time.FixedZone("WAT", 3600)
	assert.False(t, IsDue(&tomorrow, time.Date(2025, 6, 11, 0, 30, 0, 0, lagos)))
}

func TestSettleImmediate(t *testing.T) {
	accounts := []models.Account{
		{ID: "OTHER", Balance: 1, Currency: "ngn"},
		{ID: "B2", Balance: 200, Currency: "ngn"},
		{ID: "A1", Balance: 1000, Currency: "NGN"},
	}
	s, err := Settle(validated(t, "500", nil, accounts), accounts, today)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSuccessful, s.Status)
	assert.Equal(t, domain.CodeExecuted, s.StatusCode)
	require.Len(t, s.Accounts, 2)
	assert.Equal(t, models.AccountView{ID: "B2", Balance: 700, BalanceBefore: 200, Currency: "NGN"}, s.Accounts[0])
	assert.Equal(t, models.AccountView{ID: "A1", Balance: 500, BalanceBefore: 1000, Currency: "NGN"}, s.Accounts[1])

	// snapshot untouched
	assert.Equal(t, int64(1000), accounts[2].Balance)
	assert.Equal(t, "ngn", accounts[1].Currency)
	require.NoError(t, checkConservation(s.Accounts))
}

func TestSettleDatedToday(t *testing.T) {
	date := "2025-06-10"
	accounts := snapshot()
	s, err := Settle(validated(t, "100", &date, accounts), accounts, today)
	require.NoError(t, err)
	assert.Equal(t, domain.CodeExecuted, s.StatusCode)
}

func TestSettleFutureIsPending(t *testing.T) {
	date := "2025-06-11"
	accounts := snapshot()
	s, err := Settle(validated(t, "100", &date, accounts), accounts, today)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, s.Status)
	assert.Equal(t, domain.CodeScheduled, s.StatusCode)
	for _, view := range s.Accounts {
		assert.Equal(t, view.BalanceBefore, view.Balance)
	}
}

func TestSettleCreditOverflow(t *testing.T) {
	accounts := []models.Account{
		{ID: "A1", Balance: 10, Currency: "NGN"},
		{ID: "B2", Balance: math.MaxInt64 - 5, Currency: "NGN"},
	}
	_, err := Settle(validated(t, "10", nil, accounts), accounts, today)
	require.ErrorIs(t, err, ErrBalanceOverflow)
}

func TestSettleDuplicateIDsReportedOnce(t *testing.T) {
	accounts := []models.Account{
		{ID: "A1", Balance: 1000, Currency: "NGN"},
		{ID: "B2", Balance: 200, Currency: "NGN"},
		{ID: "A1", Balance: 5, Currency: "NGN"},
	}
	s, err := Settle(validated(t, "100", nil, accounts), accounts, today)
	require.NoError(t, err)
	require.Len(t, s.Accounts, 2)
	assert.Equal(t, int64(900), s.Accounts[0].Balance)
}

func TestCheckConservation(t *testing.T) {
	require.NoError(t, checkConservation([]models.AccountView{
		{ID: "A", Balance: 5, BalanceBefore: 10, Currency: "NGN"},
		{ID: "B", Balance: 15, BalanceBefore: 10, Currency: "NGN"},
	}))
	err := checkConservation([]models.AccountView{
		{ID: "A", Balance: 5, BalanceBefore: 10, Currency: "NGN"},
		{ID: "B", Balance: 10, BalanceBefore: 10, Currency: "NGN"},
	})
	require.ErrorIs(t, err, ErrLedgerImbalance)
}
