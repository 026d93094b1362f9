package service

import (
	"strings"

	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/ayo6706/payment-instructions/internal/instruction"
	"github.com/ayo6706/payment-instructions/internal/models"
)

// FallbackResponse is returned for unparsable instructions and internal failures.
func FallbackResponse() *models.TransactionResponse {
	return parseFailureResponse(domain.NewStatusError(domain.CodeMalformed))
}

func parseFailureResponse(se *domain.StatusError) *models.TransactionResponse {
	return &models.TransactionResponse{
		Status:       domain.StatusFailed,
		StatusReason: se.Reason,
		StatusCode:   se.Code,
		Accounts:     []models.AccountView{},
	}
}

func validationFailureResponse(fields instruction.ParsedFields, accounts []models.Account, se *domain.StatusError) *models.TransactionResponse {
	resp := instructionFields(fields)
	if amount, err := domain.ParseAmount(fields.Amount); err == nil {
		resp.Amount = &amount
	}
	resp.Status = domain.StatusFailed
	resp.StatusReason = se.Reason
	resp.StatusCode = se.Code
	resp.Accounts = involvedAccounts(accounts, fields.DebitAccount, fields.CreditAccount)
	return resp
}

func settledResponse(v ValidatedInstruction, s Settlement) *models.TransactionResponse {
	resp := instructionFields(v.Fields)
	amount := v.Amount
	resp.Amount = &amount
	resp.Status = s.Status
	resp.StatusReason = s.StatusReason
	resp.StatusCode = s.StatusCode
	resp.Accounts = s.Accounts
	return resp
}

func instructionFields(fields instruction.ParsedFields) *models.TransactionResponse {
	resp := &models.TransactionResponse{
		Type:          stringPtr(fields.Type),
		Currency:      stringPtr(strings.ToUpper(fields.Currency)),
		DebitAccount:  stringPtr(fields.DebitAccount),
		CreditAccount: stringPtr(fields.CreditAccount),
	}
	if fields.ExecuteBy != nil {
		resp.ExecuteBy = stringPtr(*fields.ExecuteBy)
	}
	return resp
}

func stringPtr(s string) *string {
	return &s
}
