package service

import (
	"errors"
	"fmt"

	"github.com/ayo6706/payment-instructions/internal/models"
	"github.com/ayo6706/payment-instructions/internal/observability"
	"go.uber.org/zap"
)

var ErrLedgerImbalance = errors.New("settlement does not conserve value")

// checkConservation verifies that the involved balances sum to the same total
// before and after settlement.
func checkConservation(views []models.AccountView) error {
	var before, after int64
	currency := "ALL"
	for _, v := range views {
		before += v.BalanceBefore
		after += v.Balance
		currency = v.Currency
	}
	if before == after {
		return nil
	}

	observability.IncrementLedgerImbalance(currency)
	zap.L().Error("CRITICAL: settlement imbalance detected",
		zap.Int64("before", before),
		zap.Int64("after", after),
		zap.String("currency", currency),
	)
	return fmt.Errorf("%w: before %d, after %d", ErrLedgerImbalance, before, after)
}
