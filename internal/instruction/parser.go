package instruction

import (
	"github.com/ayo6706/payment-instructions/internal/domain"
)

// Positions of the fields that have no anchor keyword of their own.
const (
	amountPos   = 1
	currencyPos = 2
)

const keywordAccount = "ACCOUNT"
const keywordOn = "ON"

// ParsedFields is a grammatically recognized instruction. Amount and currency are
// still raw; account identifiers keep their original case.
type ParsedFields struct {
	Type          string
	Amount        string
	Currency      string
	DebitAccount  string
	CreditAccount string
	ExecuteBy     *string
}

// phrase is an anchor keyword followed by the keyword it introduces,
// e.g. FROM ACCOUNT or FOR CREDIT.
type phrase struct {
	lead   string
	follow string
}

type grammar struct {
	typ     string
	phrases [3]phrase
	// debitFirst is true when the first ACCOUNT names the debit account.
	debitFirst bool
}

var debitGrammar = grammar{
	typ: domain.TypeDebit,
	phrases: [3]phrase{
		{lead: "FROM", follow: keywordAccount},
		{lead: "FOR", follow: "CREDIT"},
		{lead: "TO", follow: keywordAccount},
	},
	debitFirst: true,
}

var creditGrammar = grammar{
	typ: domain.TypeCredit,
	phrases: [3]phrase{
		{lead: "TO", follow: keywordAccount},
		{lead: "FOR", follow: "DEBIT"},
		{lead: "FROM", follow: keywordAccount},
	},
	debitFirst: false,
}

// Parse recognizes a DEBIT or CREDIT sentence. Failures are *domain.StatusError
// with SY01, SY02 or SY03.
func Parse(tokens Tokens) (fields ParsedFields, err error) {
	defer func() {
		if r := recover(); r != nil {
			fields = ParsedFields{}
			err = domain.NewStatusError(domain.CodeMalformed)
		}
	}()

	if tokens.Len() < MinTokens {
		return ParsedFields{}, domain.NewStatusError(domain.CodeMalformed)
	}

	switch tokens.At(0) {
	case domain.TypeDebit:
		return debitGrammar.parse(tokens)
	case domain.TypeCredit:
		return creditGrammar.parse(tokens)
	default:
		return ParsedFields{}, domain.NewStatusErrorf(domain.CodeMissingKeyword, "DEBIT or CREDIT")
	}
}

func (g grammar) keywords() [6]string {
	var out [6]string
	for i, p := range g.phrases {
		out[2*i] = p.lead
		out[2*i+1] = p.follow
	}
	return out
}

// missingKeyword reports the first anchor keyword that occurs fewer times than the
// grammar requires (ACCOUNT appears twice in both forms).
func (g grammar) missingKeyword(upper []string) (string, bool) {
	keywords := g.keywords()
	required := make(map[string]int, len(keywords))
	for _, kw := range keywords {
		required[kw]++
	}
	for _, kw := range keywords {
		count := 0
		for pos := Find(upper, kw, amountPos); pos != NotFound; pos = Find(upper, kw, pos+1) {
			count++
		}
		if count < required[kw] {
			return kw, true
		}
	}
	return "", false
}

// locate resolves the six anchors in sequence, each search starting right after the
// previous anchor. It returns the position of the first anchor that could not be
// resolved, or NotFound when all six were.
func (g grammar) locate(upper []string) (idx [6]int, unresolved int) {
	keywords := g.keywords()
	from := amountPos
	for i, kw := range keywords {
		idx[i] = Find(upper, kw, from)
		if idx[i] == NotFound {
			return idx, i
		}
		from = idx[i] + 1
	}
	return idx, NotFound
}

func (g grammar) parse(tokens Tokens) (ParsedFields, error) {
	keywords := g.keywords()
	idx, unresolved := g.locate(tokens.upper)
	if unresolved != NotFound {
		if kw, missing := g.missingKeyword(tokens.upper); missing {
			return ParsedFields{}, domain.NewStatusErrorf(domain.CodeMissingKeyword, "%s", kw)
		}
		// Every keyword occurs often enough, so the one that could not be resolved
		// only appears before its predecessor.
		prev := g.typ
		if unresolved > 0 {
			prev = keywords[unresolved-1]
		}
		return ParsedFields{}, domain.NewStatusErrorf(domain.CodeInvalidKeywordOrder, "%s must come after %s", keywords[unresolved], prev)
	}

	firstPos := idx[1] + 1
	if firstPos >= idx[2] {
		return ParsedFields{}, domain.NewStatusErrorf(domain.CodeMalformed, "missing account after %s %s", keywords[0], keywords[1])
	}
	first, _ := tokens.Original(firstPos)

	secondPos := idx[5] + 1
	second, ok := tokens.Original(secondPos)
	if !ok {
		return ParsedFields{}, domain.NewStatusErrorf(domain.CodeMalformed, "missing account after %s %s", keywords[4], keywords[5])
	}

	fields := ParsedFields{
		Type:     g.typ,
		Amount:   tokens.At(amountPos),
		Currency: tokens.At(currencyPos),
	}
	if g.debitFirst {
		fields.DebitAccount, fields.CreditAccount = first, second
	} else {
		fields.DebitAccount, fields.CreditAccount = second, first
	}

	if on := Find(tokens.upper, keywordOn, secondPos+1); on != NotFound {
		date, _ := tokens.Original(on + 1)
		fields.ExecuteBy = &date
	}

	return fields, nil
}
