package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/ayo6706/payment-instructions/internal/instruction"
	"github.com/ayo6706/payment-instructions/internal/models"
)

var accountIDPattern = regexp.MustCompile(`^[A-Za-z0-9.@-]+$`)

// ValidatedInstruction is a parsed instruction that passed every business rule.
type ValidatedInstruction struct {
	Fields    instruction.ParsedFields
	Amount    int64
	ExecuteAt *time.Time
	Debit     models.Account
	Credit    models.Account
}

// Validate applies the business rules in order and stops at the first failure:
// AM01, CU02, AC04, AC02, AC03, CU01, AC01, DT01.
func Validate(fields instruction.ParsedFields, accounts []models.Account) (ValidatedInstruction, error) {
	amount, err := domain.ParseAmount(fields.Amount)
	if err != nil {
		return ValidatedInstruction{}, domain.NewStatusError(domain.CodeInvalidAmount)
	}

	if !domain.IsSupportedCurrency(fields.Currency) {
		return ValidatedInstruction{}, domain.NewStatusErrorf(domain.CodeUnsupportedCurrency, "got %s", fields.Currency)
	}

	for _, id := range []string{fields.DebitAccount, fields.CreditAccount} {
		if !accountIDPattern.MatchString(id) {
			return ValidatedInstruction{}, domain.NewStatusErrorf(domain.CodeInvalidAccountID, "%s", id)
		}
	}

	if fields.DebitAccount == fields.CreditAccount {
		return ValidatedInstruction{}, domain.NewStatusError(domain.CodeSameAccount)
	}

	debit, ok := findAccount(accounts, fields.DebitAccount)
	if !ok {
		return ValidatedInstruction{}, domain.NewStatusErrorf(domain.CodeAccountNotFound, "%s", fields.DebitAccount)
	}
	credit, ok := findAccount(accounts, fields.CreditAccount)
	if !ok {
		return ValidatedInstruction{}, domain.NewStatusErrorf(domain.CodeAccountNotFound, "%s", fields.CreditAccount)
	}

	if !strings.EqualFold(debit.Currency, credit.Currency) || !strings.EqualFold(debit.Currency, fields.Currency) {
		return ValidatedInstruction{}, domain.NewStatusErrorf(domain.CodeCurrencyMismatch,
			"debit account is %s, credit account is %s, instruction is %s",
			strings.ToUpper(debit.Currency), strings.ToUpper(credit.Currency), strings.ToUpper(fields.Currency))
	}

	if debit.Balance < amount {
		return ValidatedInstruction{}, domain.NewStatusErrorf(domain.CodeInsufficientFunds,
			"available %d, required %d", debit.Balance, amount)
	}

	v := ValidatedInstruction{Fields: fields, Amount: amount, Debit: debit, Credit: credit}
	if fields.ExecuteBy != nil {
		executeAt, err := domain.ParseExecutionDate(*fields.ExecuteBy)
		if err != nil {
			return ValidatedInstruction{}, domain.NewStatusErrorf(domain.CodeInvalidDate, "expected YYYY-MM-DD, got %q", *fields.ExecuteBy)
		}
		v.ExecuteAt = &executeAt
	}
	return v, nil
}

// findAccount returns a copy of the first snapshot record with an exactly matching id.
func findAccount(accounts []models.Account, id string) (models.Account, bool) {
	for _, acct := range accounts {
		if acct.ID == id {
			return acct, true
		}
	}
	return models.Account{}, false
}
