package instruction

import (
	"testing"

	"github.com/ayo6706/payment-instructions/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) (ParsedFields, error) {
	t.Helper()
	return Parse(Normalize(raw))
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var se *domain.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, code, se.Code, se.Reason)
}

func TestParseDebitForm(t *testing.T) {
	fields, err := parse(t, "DEBIT 500 NGN FROM ACCOUNT a1 FOR CREDIT TO ACCOUNT B2")
	require.NoError(t, err)

	assert.Equal(t, domain.TypeDebit, fields.Type)
	assert.Equal(t, "500", fields.Amount)
	assert.Equal(t, "NGN", fields.Currency)
	assert.Equal(t, "a1", fields.DebitAccount)
	assert.Equal(t, "B2", fields.CreditAccount)
	assert.Nil(t, fields.ExecuteBy)
}

func TestParseCreditForm(t *testing.T) {
	fields, err := parse(t, "credit 100 usd to account Acct.X for debit from account y@bank ON 2025-01-01")
	require.NoError(t, err)

	assert.Equal(t, domain.TypeCredit, fields.Type)
	assert.Equal(t, "100", fields.Amount)
	assert.Equal(t, "USD", fields.Currency)
	assert.Equal(t, "y@bank", fields.DebitAccount)
	assert.Equal(t, "Acct.X", fields.CreditAccount)
	require.NotNil(t, fields.ExecuteBy)
	assert.Equal(t, "2025-01-01", *fields.ExecuteBy)
}

func TestParseRawAmountAndCurrencyKeptAsIs(t *testing.T) {
	fields, err := parse(t, "DEBIT 10.5 xyz FROM ACCOUNT A FOR CREDIT TO ACCOUNT B")
	require.NoError(t, err)
	assert.Equal(t, "10.5", fields.Amount)
	assert.Equal(t, "XYZ", fields.Currency)
}

func TestParseOnWithoutDate(t *testing.T) {
	fields, err := parse(t, "DEBIT 5 NGN FROM ACCOUNT A FOR CREDIT TO ACCOUNT B ON")
	require.NoError(t, err)
	require.NotNil(t, fields.ExecuteBy)
	assert.Equal(t, "", *fields.ExecuteBy)
}

func TestParseAccountNamedOn(t *testing.T) {
	fields, err := parse(t, "DEBIT 5 NGN FROM ACCOUNT A FOR CREDIT TO ACCOUNT ON")
	require.NoError(t, err)
	assert.Equal(t, "ON", fields.CreditAccount)
	assert.Nil(t, fields.ExecuteBy)
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		code string
	}{
		{name: "too_short", raw: "DEBIT 500 NGN FROM ACCOUNT A1", code: domain.CodeMalformed},
		{name: "empty", raw: "   ", code: domain.CodeMalformed},
		{name: "unknown_leading_keyword", raw: "PAY 100 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT B2", code: domain.CodeMissingKeyword},

		{name: "debit_missing_from", raw: "DEBIT 500 NGN ACCOUNT A1 FOR CREDIT TO ACCOUNT B2", code: domain.CodeMissingKeyword},
		{name: "debit_missing_first_account", raw: "DEBIT 500 NGN FROM A1 FOR CREDIT TO ACCOUNT B2", code: domain.CodeMissingKeyword},
		{name: "debit_missing_for", raw: "DEBIT 500 NGN FROM ACCOUNT A1 CREDIT TO ACCOUNT B2", code: domain.CodeMissingKeyword},
		{name: "debit_missing_credit", raw: "DEBIT 500 NGN FROM ACCOUNT A1 FOR TO ACCOUNT B2", code: domain.CodeMissingKeyword},
		{name: "debit_missing_to", raw: "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT ACCOUNT B2", code: domain.CodeMissingKeyword},
		{name: "debit_missing_second_account", raw: "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO B2", code: domain.CodeMissingKeyword},

		{name: "credit_missing_to", raw: "CREDIT 100 USD ACCOUNT X FOR DEBIT FROM ACCOUNT Y", code: domain.CodeMissingKeyword},
		{name: "credit_missing_debit", raw: "CREDIT 100 USD TO ACCOUNT X FOR FROM ACCOUNT Y", code: domain.CodeMissingKeyword},
		{name: "credit_missing_first_account", raw: "CREDIT 100 USD TO X FOR DEBIT FROM ACCOUNT Y", code: domain.CodeMissingKeyword},

		{name: "debit_from_for_swapped", raw: "DEBIT 500 NGN FOR ACCOUNT A1 FROM CREDIT TO ACCOUNT B2", code: domain.CodeInvalidKeywordOrder},
		{name: "debit_phrases_swapped", raw: "DEBIT 500 NGN TO ACCOUNT B2 FOR CREDIT FROM ACCOUNT A1", code: domain.CodeInvalidKeywordOrder},
		{name: "debit_for_credit_after_to", raw: "DEBIT 500 NGN FROM ACCOUNT A1 TO ACCOUNT B2 FOR CREDIT", code: domain.CodeInvalidKeywordOrder},
		{name: "debit_credit_before_for", raw: "DEBIT 500 NGN FROM ACCOUNT A1 CREDIT FOR TO ACCOUNT B2", code: domain.CodeInvalidKeywordOrder},
		{name: "credit_phrases_swapped", raw: "CREDIT 100 USD FROM ACCOUNT Y FOR DEBIT TO ACCOUNT X", code: domain.CodeInvalidKeywordOrder},

		{name: "debit_missing_first_identifier", raw: "DEBIT 500 NGN FROM ACCOUNT FOR CREDIT TO ACCOUNT B2", code: domain.CodeMalformed},
		{name: "debit_first_identifier_named_for", raw: "DEBIT 500 NGN FROM ACCOUNT for FOR CREDIT TO ACCOUNT B2", code: domain.CodeMalformed},
		{name: "debit_missing_second_identifier", raw: "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT", code: domain.CodeMalformed},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.raw)
			requireCode(t, err, tc.code)
		})
	}
}

func TestParseMissingKeywordNamesKeyword(t *testing.T) {
	_, err := parse(t, "DEBIT 500 NGN FROM ACCOUNT A1 CREDIT TO ACCOUNT B2")
	var se *domain.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Missing required keyword: FOR", se.Reason)
}

func TestParseIdentifiersSpelledLikeKeywords(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		debit  string
		credit string
	}{
		{name: "debit_first_to", raw: "DEBIT 5 NGN FROM ACCOUNT to FOR CREDIT TO ACCOUNT B", debit: "to", credit: "B"},
		{name: "debit_first_from", raw: "DEBIT 5 NGN FROM ACCOUNT from FOR CREDIT TO ACCOUNT B", debit: "from", credit: "B"},
		{name: "debit_first_account", raw: "DEBIT 5 NGN FROM ACCOUNT account FOR CREDIT TO ACCOUNT B", debit: "account", credit: "B"},
		{name: "debit_second_credit", raw: "DEBIT 5 NGN FROM ACCOUNT A FOR CREDIT TO ACCOUNT credit", debit: "A", credit: "credit"},
		{name: "debit_both", raw: "DEBIT 5 NGN FROM ACCOUNT to FOR CREDIT TO ACCOUNT from", debit: "to", credit: "from"},
		{name: "credit_first_from", raw: "CREDIT 5 NGN TO ACCOUNT from FOR DEBIT FROM ACCOUNT B", debit: "B", credit: "from"},
		{name: "credit_first_to", raw: "CREDIT 5 NGN TO ACCOUNT to FOR DEBIT FROM ACCOUNT B", debit: "B", credit: "to"},
		{name: "credit_second_debit", raw: "CREDIT 5 NGN TO ACCOUNT A FOR DEBIT FROM ACCOUNT debit", debit: "debit", credit: "A"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			fields, err := parse(t, tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.debit, fields.DebitAccount)
			assert.Equal(t, tc.credit, fields.CreditAccount)
			assert.Nil(t, fields.ExecuteBy)
		})
	}
}

func TestParseKeywordNamedIdentifierErrors(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		code   string
		reason string
	}{
		{
			name:   "debit_missing_second_account",
			raw:    "DEBIT 5 NGN FROM ACCOUNT to FOR CREDIT TO B",
			code:   domain.CodeMissingKeyword,
			reason: "Missing required keyword: ACCOUNT",
		},
		{
			name:   "credit_missing_debit",
			raw:    "CREDIT 5 NGN TO ACCOUNT from FOR FROM ACCOUNT B",
			code:   domain.CodeMissingKeyword,
			reason: "Missing required keyword: DEBIT",
		},
		{
			name:   "debit_credit_only_as_identifier",
			raw:    "DEBIT 5 NGN FROM ACCOUNT credit FOR TO ACCOUNT B",
			code:   domain.CodeInvalidKeywordOrder,
			reason: "Invalid keyword order: CREDIT must come after FOR",
		},
		{
			name:   "credit_phrases_swapped",
			raw:    "CREDIT 5 NGN FROM ACCOUNT to FOR DEBIT TO ACCOUNT B",
			code:   domain.CodeInvalidKeywordOrder,
			reason: "Invalid keyword order: FOR must come after ACCOUNT",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.raw)
			requireCode(t, err, tc.code)
			var se *domain.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.reason, se.Reason)
		})
	}
}
