package domain

import "strings"

// Instruction types (leading keyword of the sentence).
const (
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

// Outward transaction statuses.
const (
	StatusSuccessful = "successful"
	StatusPending    = "pending"
	StatusFailed     = "failed"
)

// Status codes. The set is closed; clients match on these values.
const (
	CodeMissingKeyword      = "SY01"
	CodeInvalidKeywordOrder = "SY02"
	CodeMalformed           = "SY03"

	CodeInvalidAmount       = "AM01"
	CodeUnsupportedCurrency = "CU02"
	CodeCurrencyMismatch    = "CU01"
	CodeInvalidAccountID    = "AC04"
	CodeSameAccount         = "AC02"
	CodeAccountNotFound     = "AC03"
	CodeInsufficientFunds   = "AC01"
	CodeInvalidDate         = "DT01"

	CodeExecuted  = "AP00"
	CodeScheduled = "AP02"
)

var statusMessages = map[string]string{
	CodeMissingKeyword:      "Missing required keyword",
	CodeInvalidKeywordOrder: "Invalid keyword order",
	CodeMalformed:           "Malformed instruction: unable to parse keywords",
	CodeInvalidAmount:       "Amount must be a positive integer",
	CodeUnsupportedCurrency: "Unsupported currency. Only NGN, USD, GBP, and GHS are supported",
	CodeCurrencyMismatch:    "Account currency mismatch",
	CodeInvalidAccountID:    "Invalid account ID format",
	CodeSameAccount:         "Debit and credit accounts cannot be the same",
	CodeAccountNotFound:     "Account not found",
	CodeInsufficientFunds:   "Insufficient funds in debit account",
	CodeInvalidDate:         "Invalid date format",
	CodeExecuted:            "Transaction executed successfully",
	CodeScheduled:           "Transaction scheduled for future execution",
}

// supportedCurrencies is read-only after init.
var supportedCurrencies = map[string]struct{}{
	"NGN": {},
	"USD": {},
	"GBP": {},
	"GHS": {},
}

// StatusMessage returns the canonical reason for a status code.
func StatusMessage(code string) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}
	return statusMessages[CodeMalformed]
}

// IsKnownCode reports whether code belongs to the status taxonomy.
func IsKnownCode(code string) bool {
	_, ok := statusMessages[code]
	return ok
}

// IsSupportedCurrency compares case-insensitively against the supported set.
func IsSupportedCurrency(currency string) bool {
	_, ok := supportedCurrencies[strings.ToUpper(currency)]
	return ok
}
