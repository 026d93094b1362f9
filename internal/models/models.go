package models

// Account is a caller-supplied snapshot record.
type Account struct {
	ID       string `json:"id"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// AccountView is an involved account as reported back to the caller.
type AccountView struct {
	ID            string `json:"id"`
	Balance       int64  `json:"balance"`
	BalanceBefore int64  `json:"balance_before"`
	Currency      string `json:"currency"`
}

// ProcessRequest is the input of one pipeline invocation.
// A nil Instruction means the instruction was absent or not a string.
type ProcessRequest struct {
	Instruction *string
	Accounts    []Account
}

// TransactionResponse is the canonical outcome of an instruction.
// Nil pointers serialize as explicit nulls.
type TransactionResponse struct {
	Type          *string       `json:"type"`
	Amount        *int64        `json:"amount"`
	Currency      *string       `json:"currency"`
	DebitAccount  *string       `json:"debit_account"`
	CreditAccount *string       `json:"credit_account"`
	ExecuteBy     *string       `json:"execute_by"`
	Status        string        `json:"status"`
	StatusReason  string        `json:"status_reason"`
	StatusCode    string        `json:"status_code"`
	Accounts      []AccountView `json:"accounts"`
}
