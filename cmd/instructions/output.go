package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ayo6706/payment-instructions/client"
	"github.com/ayo6706/payment-instructions/internal/models"
	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"
)

// render writes v as JSON when --json or --jq is set, otherwise calls human.
func render(c *cli.Context, w io.Writer, v interface{}, human func(io.Writer)) error {
	if filter := c.String("jq"); filter != "" {
		return writeJQ(w, v, filter)
	}
	if c.Bool("json") {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	human(w)
	return nil
}

// writeJQ runs filter over the JSON form of v and prints each result on its own line.
// String results are printed raw.
func writeJQ(w io.Writer, v interface{}, filter string) error {
	query, err := gojq.Parse(filter)
	if err != nil {
		return fmt.Errorf("failed to parse jq filter %q: %w", filter, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("failed to compile jq filter %q: %w", filter, err)
	}

	// gojq only understands plain JSON values.
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	var input interface{}
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to decode output: %w", err)
	}

	iter := code.Run(input)
	for {
		out, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := out.(error); isErr {
			return fmt.Errorf("jq filter %q: %w", filter, err)
		}
		if s, isString := out.(string); isString {
			fmt.Fprintln(w, s)
			continue
		}
		line, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal jq result: %w", err)
		}
		fmt.Fprintln(w, string(line))
	}
}

func printResponse(w io.Writer, resp *models.TransactionResponse) {
	fmt.Fprintf(w, "Status:  %s (%s)\n", resp.Status, resp.StatusCode)
	fmt.Fprintf(w, "Reason:  %s\n", resp.StatusReason)
	if resp.Type != nil {
		fmt.Fprintf(w, "Type:    %s\n", *resp.Type)
	}
	if resp.Amount != nil && resp.Currency != nil {
		fmt.Fprintf(w, "Amount:  %d %s\n", *resp.Amount, *resp.Currency)
	}
	if resp.DebitAccount != nil && resp.CreditAccount != nil {
		fmt.Fprintf(w, "From/To: %s -> %s\n", *resp.DebitAccount, *resp.CreditAccount)
	}
	if resp.ExecuteBy != nil {
		fmt.Fprintf(w, "Date:    %s\n", *resp.ExecuteBy)
	}
	for _, a := range resp.Accounts {
		fmt.Fprintf(w, "  %-20s %d -> %d %s\n", a.ID, a.BalanceBefore, a.Balance, a.Currency)
	}
}

func printClientResponse(w io.Writer, resp *client.TransactionResponse) {
	views := make([]models.AccountView, len(resp.Accounts))
	for i, a := range resp.Accounts {
		views[i] = models.AccountView(a)
	}
	printResponse(w, &models.TransactionResponse{
		Type:          resp.Type,
		Amount:        resp.Amount,
		Currency:      resp.Currency,
		DebitAccount:  resp.DebitAccount,
		CreditAccount: resp.CreditAccount,
		ExecuteBy:     resp.ExecuteBy,
		Status:        resp.Status,
		StatusReason:  resp.StatusReason,
		StatusCode:    resp.StatusCode,
		Accounts:      views,
	})
}
