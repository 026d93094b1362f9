package events

import (
	"time"

	"github.com/ayo6706/payment-instructions/internal/models"
	"github.com/google/uuid"
)

// InstructionEvent is published once per processed instruction to
// "{prefix}.{status}", e.g. "instructions.successful".
type InstructionEvent struct {
	ID      string `json:"id"`
	TraceID string `json:"trace_id,omitempty"`

	// Parsed instruction, null when parsing failed
	Type          *string `json:"type"`
	Amount        *int64  `json:"amount"`
	Currency      *string `json:"currency"`
	DebitAccount  *string `json:"debit_account"`
	CreditAccount *string `json:"credit_account"`
	ExecuteBy     *string `json:"execute_by"`

	// Outcome
	Status       string `json:"status"`
	StatusCode   string `json:"status_code"`
	StatusReason string `json:"status_reason"`
	Stage        string `json:"stage"`

	Accounts    []models.AccountView `json:"accounts"`
	ProcessedAt time.Time            `json:"processed_at"`
}

// FromResponse converts a pipeline response into an outcome event.
func FromResponse(resp *models.TransactionResponse, stage, traceID string) *InstructionEvent {
	accounts := make([]models.AccountView, len(resp.Accounts))
	copy(accounts, resp.Accounts)

	return &InstructionEvent{
		ID:            uuid.NewString(),
		TraceID:       traceID,
		Type:          resp.Type,
		Amount:        resp.Amount,
		Currency:      resp.Currency,
		DebitAccount:  resp.DebitAccount,
		CreditAccount: resp.CreditAccount,
		ExecuteBy:     resp.ExecuteBy,
		Status:        resp.Status,
		StatusCode:    resp.StatusCode,
		StatusReason:  resp.StatusReason,
		Stage:         stage,
		Accounts:      accounts,
		ProcessedAt:   time.Now().UTC(),
	}
}
